package cli

import (
	"fmt"
	"strings"

	flag "github.com/spf13/pflag"

	"github.com/spark-gap/confkit/pkg/conffile"
)

func newSetCmd(a *app) *Command {
	flags := flag.NewFlagSet("set", flag.ContinueOnError)

	return &Command{
		Flags: flags,
		Usage: "set <key> <value>",
		Short: "update a key in the target file (atomic rewrite)",
		Long: "set rewrites the first line defining the key, or appends one if the\n" +
			"key does not exist yet. Extra arguments join into a spaced value. The\n" +
			"file is replaced atomically; a trailing comment on the line survives.",
		Exec: func(o *IO, args []string) error {
			if len(args) < 1 {
				return errKeyRequired
			}

			if len(args) < 2 {
				return errValueRequired
			}

			path, err := a.targetFile()
			if err != nil {
				return err
			}

			key := args[0]
			value := strings.Join(args[1:], " ")

			err = conffile.Set(path, key, value, a.fileOptions()...)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}

			o.Printf("%s = %s\n", key, value)

			return nil
		},
	}
}
