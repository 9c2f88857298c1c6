package cli

import (
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
	flag "github.com/spf13/pflag"
)

// app carries the state shared by all commands of one invocation.
type app struct {
	cfg Config
	log zerolog.Logger
}

// Run is the main entry point. Returns exit code.
func Run(_ io.Reader, out, errOut io.Writer, args []string, env map[string]string) int {
	o := NewIO(out, errOut)

	gf := flag.NewFlagSet("confkit", flag.ContinueOnError)
	gf.SetInterspersed(false) // flags after the command belong to the command
	gf.SetOutput(&strings.Builder{})

	configPath := gf.StringP("config", "c", "", "explicit tool config file")
	file := gf.StringP("file", "f", "", "config file to operate on")
	logLevel := gf.String("log-level", "warn", "log level (trace, debug, info, warn, error)")
	pretty := gf.Bool("pretty", false, "human-friendly log output")
	help := gf.BoolP("help", "h", false, "show help")

	if err := gf.Parse(args[1:]); err != nil {
		o.ErrPrintln("error:", err)

		return 1
	}

	workDir, err := os.Getwd()
	if err != nil {
		o.ErrPrintln("error: cannot get working directory:", err)

		return 1
	}

	cfg, err := LoadConfig(workDir, *configPath, env)
	if err != nil {
		o.ErrPrintln("error:", err)

		return 1
	}

	if *file != "" {
		cfg.File = *file
	}

	a := &app{
		cfg: cfg,
		log: newLogger(errOut, *logLevel, *pretty),
	}

	commands := []*Command{
		newGetCmd(a),
		newSetCmd(a),
		newParseCmd(a),
		newReplCmd(a),
	}

	rest := gf.Args()
	if len(rest) == 0 || *help {
		printUsage(o, commands)

		return 0
	}

	name := rest[0]
	for _, c := range commands {
		if c.Name() == name {
			return c.Run(o, rest[1:])
		}
	}

	o.ErrPrintln("error: unknown command:", name)
	printUsage(o, commands)

	return 1
}

func printUsage(o *IO, commands []*Command) {
	o.Println("Usage: confkit [global flags] <command> [args]")
	o.Println()
	o.Println("Read and update \"key = value\" config files and engineering literals.")
	o.Println()
	o.Println("Commands:")

	for _, c := range commands {
		o.Println(c.HelpLine())
	}

	o.Println()
	o.Println("Global flags:")
	o.Println("  -c, --config <path>        explicit tool config file")
	o.Println("  -f, --file <path>          config file to operate on")
	o.Println("      --log-level <level>    log level (trace, debug, info, warn, error)")
	o.Println("      --pretty               human-friendly log output")
}

// targetFile resolves the config file commands operate on.
func (a *app) targetFile() (string, error) {
	if a.cfg.File == "" {
		return "", errNoTargetFile
	}

	return a.cfg.File, nil
}
