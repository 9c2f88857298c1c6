package cli

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/peterh/liner"
	flag "github.com/spf13/pflag"

	"github.com/spark-gap/confkit/pkg/conffile"
	"github.com/spark-gap/confkit/pkg/fixedpoint"
)

var replCommands = []string{"parse", "get", "set", "scale", "file", "help", "exit", "quit"}

func newReplCmd(a *app) *Command {
	flags := flag.NewFlagSet("repl", flag.ContinueOnError)
	scale := flags.Int("scale", a.cfg.Scale, "base-10 exponent for parsed literals")

	return &Command{
		Flags: flags,
		Usage: "repl [flags]",
		Short: "interactive literal and config file explorer",
		Long: "repl starts an interactive loop. Bare input parses as a literal;\n" +
			"'get'/'set' work against the current target file; 'scale' and 'file'\n" +
			"change the session state.",
		Exec: func(o *IO, _ []string) error {
			r := &repl{app: a, scale: *scale}

			return r.run(o)
		},
	}
}

// repl is the interactive command loop.
type repl struct {
	app   *app
	scale int
	liner *liner.State
}

// historyFile returns the path to the history file.
func historyFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}

	return filepath.Join(home, ".confkit_history")
}

func (r *repl) run(o *IO) error {
	r.liner = liner.NewLiner()
	defer r.liner.Close()

	r.liner.SetCtrlCAborts(true)
	r.liner.SetCompleter(func(line string) []string {
		var out []string
		for _, c := range replCommands {
			if strings.HasPrefix(c, strings.ToLower(line)) {
				out = append(out, c+" ")
			}
		}

		return out
	})

	if f, err := os.Open(historyFile()); err == nil {
		_, _ = r.liner.ReadHistory(f)
		_ = f.Close()
	}

	o.Printf("confkit repl (scale=%d, file=%q)\n", r.scale, r.app.cfg.File)
	o.Println("Type 'help' for available commands; bare input parses as a literal.")

	for {
		line, err := r.liner.Prompt("confkit> ")
		if err != nil {
			if errors.Is(err, liner.ErrPromptAborted) || errors.Is(err, io.EOF) {
				o.Println()
				r.saveHistory()

				return nil
			}

			return err
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		r.liner.AppendHistory(line)

		parts := strings.Fields(line)
		cmd := strings.ToLower(parts[0])
		args := parts[1:]

		switch cmd {
		case "exit", "quit", "q":
			r.saveHistory()

			return nil

		case "help", "?":
			r.printHelp(o)

		case "parse":
			for _, lit := range args {
				r.parseLiteral(o, lit)
			}

		case "get":
			r.cmdGet(o, args)

		case "set":
			r.cmdSet(o, args)

		case "scale":
			r.cmdScale(o, args)

		case "file":
			if len(args) == 1 {
				r.app.cfg.File = args[0]
			}

			o.Printf("file = %q\n", r.app.cfg.File)

		default:
			// Anything else is a literal.
			r.parseLiteral(o, line)
		}
	}
}

func (r *repl) parseLiteral(o *IO, lit string) {
	v, err := fixedpoint.Parse(lit, r.scale, fixedpoint.AllowTrailingUnit())
	if err != nil {
		o.ErrPrintln("error:", err)

		return
	}

	o.Printf("%s = %d (x10^%d)\n", lit, v, r.scale)
}

func (r *repl) cmdGet(o *IO, args []string) {
	if len(args) != 1 {
		o.ErrPrintln("usage: get <key>")

		return
	}

	path, err := r.app.targetFile()
	if err != nil {
		o.ErrPrintln("error:", err)

		return
	}

	value, err := conffile.LookupFile(path, args[0], r.app.fileOptions()...)
	if err != nil {
		o.ErrPrintln("error:", err)

		return
	}

	o.Printf("%s = %s\n", args[0], value)
}

func (r *repl) cmdSet(o *IO, args []string) {
	if len(args) < 2 {
		o.ErrPrintln("usage: set <key> <value>")

		return
	}

	path, err := r.app.targetFile()
	if err != nil {
		o.ErrPrintln("error:", err)

		return
	}

	err = conffile.Set(path, args[0], strings.Join(args[1:], " "), r.app.fileOptions()...)
	if err != nil {
		o.ErrPrintln("error:", err)

		return
	}

	o.Printf("%s = %s\n", args[0], strings.Join(args[1:], " "))
}

func (r *repl) cmdScale(o *IO, args []string) {
	if len(args) == 1 {
		n, err := strconv.Atoi(args[0])
		if err != nil {
			o.ErrPrintln("error: bad scale:", err)

			return
		}

		r.scale = n
	}

	o.Printf("scale = %d\n", r.scale)
}

func (r *repl) printHelp(o *IO) {
	o.Println("Commands:")
	o.Println("  parse <literal>...   parse literals at the current scale")
	o.Println("  get <key>            look a key up in the target file")
	o.Println("  set <key> <value>    update a key in the target file")
	o.Println("  scale [n]            show or change the scale exponent")
	o.Println("  file [path]          show or change the target file")
	o.Println("  exit                 leave the repl")
	o.Println()
	o.Println("Bare input parses as a literal.")
}

func (r *repl) saveHistory() {
	path := historyFile()
	if path == "" {
		return
	}

	f, err := os.Create(path)
	if err != nil {
		return
	}

	_, _ = r.liner.WriteHistory(f)
	_ = f.Close()
}
