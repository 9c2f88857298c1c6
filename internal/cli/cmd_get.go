package cli

import (
	"fmt"

	flag "github.com/spf13/pflag"

	"github.com/spark-gap/confkit/pkg/conffile"
	"github.com/spark-gap/confkit/pkg/fixedpoint"
)

// fileOptions translates the tool config into conffile options.
func (a *app) fileOptions() []conffile.Option {
	opts := []conffile.Option{conffile.WithLogger(a.log)}

	if a.cfg.MaxLineSize > 0 {
		opts = append(opts, conffile.MaxLineSize(a.cfg.MaxLineSize))
	}

	if a.cfg.MaxLineCount > 0 {
		opts = append(opts, conffile.MaxLineCount(a.cfg.MaxLineCount))
	}

	return opts
}

func newGetCmd(a *app) *Command {
	flags := flag.NewFlagSet("get", flag.ContinueOnError)
	num := flags.Bool("num", false, "parse the value as a fixed-point number")
	scale := flags.Int("scale", a.cfg.Scale, "base-10 exponent applied with --num")
	unit := flags.Bool("unit", false, "with --num, tolerate a trailing unit word")

	return &Command{
		Flags: flags,
		Usage: "get <key> [flags]",
		Short: "print the value of a key from the target file",
		Long: "get looks the key up in the target config file and prints its value.\n" +
			"With --num the value is parsed as an engineering literal (10k, 1.5m,\n" +
			"2.5e3, ...) and printed as an integer scaled by 10^scale.",
		Exec: func(o *IO, args []string) error {
			if len(args) < 1 {
				return errKeyRequired
			}

			path, err := a.targetFile()
			if err != nil {
				return err
			}

			value, err := conffile.LookupFile(path, args[0], a.fileOptions()...)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}

			if !*num {
				o.Println(value)

				return nil
			}

			var parseOpts []fixedpoint.Option
			if *unit {
				parseOpts = append(parseOpts, fixedpoint.AllowTrailingUnit())
			}

			v, err := fixedpoint.Parse(value, *scale, parseOpts...)
			if err != nil {
				return fmt.Errorf("value %q: %w", value, err)
			}

			o.Println(v)

			return nil
		},
	}
}
