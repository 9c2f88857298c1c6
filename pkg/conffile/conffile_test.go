package conffile_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spark-gap/confkit/pkg/conffile"
)

func Test_Lookup_ReturnsValue_When_FileDefinesKey(t *testing.T) {
	t.Parallel()

	input := strings.Join([]string{
		"// device config",
		"",
		"name = spark gap one",
		"chargeCurrent = 10k // in milliamps",
		"chargeVoltage=400",
		"   name = shadowed later definition",
	}, "\n")

	cases := []struct {
		name string
		key  string
		want string
	}{
		{name: "spaced definition", key: "name", want: "spark gap one"},
		{name: "definition with comment", key: "chargeCurrent", want: "10k"},
		{name: "tight definition", key: "chargeVoltage", want: "400"},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got, err := conffile.Lookup(strings.NewReader(input), tc.key)
			if err != nil {
				t.Fatalf("Lookup(%q): %v", tc.key, err)
			}

			if got != tc.want {
				t.Fatalf("Lookup(%q) = %q, want %q", tc.key, got, tc.want)
			}
		})
	}
}

func Test_Lookup_ReturnsNotFound_When_NoLineDefinesKey(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name  string
		input string
		key   string
		opts  []conffile.Option
	}{
		{
			name:  "missing key",
			input: "a = 1\nb = 2\n",
			key:   "c",
		},
		{
			name:  "key only in a comment",
			input: "// c = 3\n",
			key:   "c",
		},
		{
			name:  "empty input",
			input: "",
			key:   "c",
		},
		{
			name:  "definition past the line count limit",
			input: strings.Repeat("x = 1\n", 5) + "c = 3\n",
			key:   "c",
			opts:  []conffile.Option{conffile.MaxLineCount(5)},
		},
		{
			name:  "definition on an overlong line",
			input: "c = " + strings.Repeat("v", 200) + "\n",
			key:   "c",
		},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			_, err := conffile.Lookup(strings.NewReader(tc.input), tc.key, tc.opts...)
			if err == nil {
				t.Fatal("expected an error")
			}

			if err != conffile.ErrNotFound {
				t.Fatalf("err = %v, want ErrNotFound", err)
			}
		})
	}
}

// An overlong line must be skipped whole: its tail must not be scanned
// as a fresh line.
func Test_Lookup_SkipsOverlongLineTail_When_LineExceedsLimit(t *testing.T) {
	t.Parallel()

	input := strings.Repeat("pad", 20) + " junk = hidden\n" + "key = visible\n"

	_, err := conffile.Lookup(strings.NewReader(input), "junk", conffile.MaxLineSize(16))
	if err != conffile.ErrNotFound {
		t.Fatalf("junk: err = %v, want ErrNotFound", err)
	}

	got, err := conffile.Lookup(strings.NewReader(input), "key", conffile.MaxLineSize(16))
	if err != nil {
		t.Fatalf("key: %v", err)
	}

	if got != "visible" {
		t.Fatalf("key = %q, want %q", got, "visible")
	}
}

func Test_Lookup_HandlesMissingFinalNewline(t *testing.T) {
	t.Parallel()

	got, err := conffile.Lookup(strings.NewReader("key = value"), "key")
	if err != nil {
		t.Fatal(err)
	}

	if got != "value" {
		t.Fatalf("got %q, want %q", got, "value")
	}
}

func Test_LookupFile_ReadsFromDisk(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "device.conf")
	writeFile(t, path, "volume = 11\n")

	got, err := conffile.LookupFile(path, "volume")
	if err != nil {
		t.Fatal(err)
	}

	if got != "11" {
		t.Fatalf("got %q, want %q", got, "11")
	}
}

func Test_Set_RewritesDefinition_And_KeepsComment(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "device.conf")
	writeFile(t, path, strings.Join([]string{
		"// header",
		"a = 1",
		"b = 2 // amps",
		"",
	}, "\n"))

	err := conffile.Set(path, "b", "3")
	if err != nil {
		t.Fatal(err)
	}

	want := strings.Join([]string{
		"// header",
		"a = 1",
		"b = 3 // amps",
		"",
	}, "\n")

	if got := readFile(t, path); got != want {
		t.Fatalf("file contents:\n%q\nwant:\n%q", got, want)
	}
}

func Test_Set_AppendsDefinition_When_KeyMissing(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "device.conf")
	writeFile(t, path, "a = 1\n")

	err := conffile.Set(path, "b", "2")
	if err != nil {
		t.Fatal(err)
	}

	if got, want := readFile(t, path), "a = 1\nb = 2\n"; got != want {
		t.Fatalf("file contents %q, want %q", got, want)
	}
}

func Test_Set_CreatesFile_When_Missing(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "fresh.conf")

	err := conffile.Set(path, "a", "1")
	if err != nil {
		t.Fatal(err)
	}

	if got, want := readFile(t, path), "a = 1\n"; got != want {
		t.Fatalf("file contents %q, want %q", got, want)
	}
}

func Test_Set_ThenLookup_RoundTrips(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "device.conf")
	writeFile(t, path, "chargeCurrent = 5k\n")

	err := conffile.Set(path, "chargeCurrent", "10k")
	if err != nil {
		t.Fatal(err)
	}

	got, err := conffile.LookupFile(path, "chargeCurrent")
	if err != nil {
		t.Fatal(err)
	}

	if got != "10k" {
		t.Fatalf("got %q, want %q", got, "10k")
	}
}

func writeFile(t *testing.T, path, contents string) {
	t.Helper()

	err := os.WriteFile(path, []byte(contents), 0o600)
	if err != nil {
		t.Fatal(err)
	}
}

func readFile(t *testing.T, path string) string {
	t.Helper()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	return string(data)
}
