// Package main provides confkit, a toolkit for reading and updating
// firmware-style "key = value" config files and engineering literals.
package main

import (
	"os"
	"strings"

	"github.com/spark-gap/confkit/internal/cli"
)

func main() {
	environ := os.Environ()
	env := make(map[string]string, len(environ))

	for _, e := range environ {
		if k, v, ok := strings.Cut(e, "="); ok {
			env[k] = v
		}
	}

	os.Exit(cli.Run(os.Stdin, os.Stdout, os.Stderr, os.Args, env))
}
