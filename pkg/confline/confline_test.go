package confline_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/spark-gap/confkit/pkg/confline"
)

func Test_Scan_ReturnsPair_When_LineDefinesKey(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		line string
		want confline.KV
	}{
		{
			name: "plain",
			line: "key=value",
			want: confline.KV{Key: "key", Value: "value"},
		},
		{
			name: "spaced equals",
			line: "key = value",
			want: confline.KV{Key: "key", Value: "value"},
		},
		{
			name: "generous spacing",
			line: "key   =   value   ",
			want: confline.KV{Key: "key", Value: "value"},
		},
		{
			name: "leading space before key",
			line: "   key = value",
			want: confline.KV{Key: "key", Value: "value"},
		},
		{
			name: "value with interior spaces",
			line: "motd = a very nice value",
			want: confline.KV{Key: "motd", Value: "a very nice value"},
		},
		{
			name: "trailing comment",
			line: "key = value // comment",
			want: confline.KV{Key: "key", Value: "value"},
		},
		{
			name: "comment tight against value",
			line: "key = value// comment",
			want: confline.KV{Key: "key", Value: "value"},
		},
		{
			name: "single slash is part of the value",
			line: "path = /etc/conf",
			want: confline.KV{Key: "path", Value: "/etc/conf"},
		},
		{
			name: "slash then space then slash",
			line: "k = a / / b",
			want: confline.KV{Key: "k", Value: "a / / b"},
		},
		{
			name: "junk between key and equals is ignored",
			line: "key junk = value",
			want: confline.KV{Key: "key", Value: "value"},
		},
		{
			name: "equals inside value is plain text",
			line: "a = b=c",
			want: confline.KV{Key: "a", Value: "b=c"},
		},
		{
			name: "tab and control bytes delimit like spaces",
			line: "\tkey\t=\tvalue\t",
			want: confline.KV{Key: "key", Value: "value"},
		},
		{
			name: "numeric value with unit",
			line: "chargeCurrent = 10k",
			want: confline.KV{Key: "chargeCurrent", Value: "10k"},
		},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			kv, ok := confline.Scan(tc.line)
			if !ok {
				t.Fatalf("Scan(%q) reported no match", tc.line)
			}

			if diff := cmp.Diff(tc.want, kv); diff != "" {
				t.Fatalf("Scan(%q) mismatch (-want +got):\n%s", tc.line, diff)
			}
		})
	}
}

func Test_Scan_ReportsNoMatch_When_LineHasNoCompleteDefinition(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		line string
	}{
		{name: "empty line", line: ""},
		{name: "spaces only", line: "    "},
		{name: "comment only", line: "// just a comment"},
		{name: "indented comment", line: "   // a comment"},
		{name: "empty key", line: "=value"},
		{name: "space then equals", line: "   = value"},
		{name: "key only", line: "key"},
		{name: "key without equals", line: "key value"},
		{name: "no value after equals", line: "key ="},
		{name: "spaces after equals", line: "key =    "},
		{name: "comment where value would start", line: "key = // comment"},
		{name: "comment before equals", line: "key // = value"},
		{name: "comment inside key", line: "ke//y = value"},
		{name: "whitespace key", line: " \t = value"},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			kv, ok := confline.Scan(tc.line)
			if ok {
				t.Fatalf("Scan(%q) = %+v, want no match", tc.line, kv)
			}
		})
	}
}

// The comment cut must restore a pending trailing-space trim: spaces
// between the value and the "//" never leak into the value.
func Test_Scan_TrimsValue_When_CommentFollowsSpaces(t *testing.T) {
	t.Parallel()

	kv, ok := confline.Scan("key = value   // trailing words")
	if !ok {
		t.Fatal("expected a match")
	}

	if kv.Value != "value" {
		t.Fatalf("value = %q, want %q", kv.Value, "value")
	}
}

func Test_Scan_KeepsInteriorSlash_When_NotDoubled(t *testing.T) {
	t.Parallel()

	kv, ok := confline.Scan("k = v /")
	if !ok {
		t.Fatal("expected a match")
	}

	if kv.Value != "v /" {
		t.Fatalf("value = %q, want %q", kv.Value, "v /")
	}
}
