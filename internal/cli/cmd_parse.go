package cli

import (
	"fmt"

	flag "github.com/spf13/pflag"

	"github.com/spark-gap/confkit/pkg/fixedpoint"
)

func newParseCmd(a *app) *Command {
	flags := flag.NewFlagSet("parse", flag.ContinueOnError)
	scale := flags.Int("scale", a.cfg.Scale, "base-10 exponent applied to the result")
	unit := flags.Bool("unit", false, "tolerate a trailing unit word")
	limit := flags.Int("limit", 0, "examine at most this many bytes (0 = all)")

	return &Command{
		Flags: flags,
		Usage: "parse <literal> [flags]",
		Short: "parse an engineering literal to a fixed-point integer",
		Long: "parse evaluates one literal like 10k, 4.7u, -2.5e3 or 330m and prints\n" +
			"the fixed-point integer scaled by 10^scale. Digits below the scale\n" +
			"truncate toward zero; results must fit a signed 32-bit integer.",
		Exec: func(o *IO, args []string) error {
			if len(args) < 1 {
				return errLiteralRequired
			}

			opts := []fixedpoint.Option{fixedpoint.Limit(*limit)}
			if *unit {
				opts = append(opts, fixedpoint.AllowTrailingUnit())
			}

			for _, literal := range args {
				v, err := fixedpoint.Parse(literal, *scale, opts...)
				if err != nil {
					return fmt.Errorf("%q: %w", literal, err)
				}

				o.Println(v)
			}

			return nil
		},
	}
}
