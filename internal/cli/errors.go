package cli

import "errors"

var (
	errConfigFileNotFound = errors.New("config file not found")
	errConfigFileRead     = errors.New("cannot read config file")
	errConfigInvalid      = errors.New("invalid config file")
	errNoTargetFile       = errors.New("no target file (use -f or set \"file\" in .confkit.json)")
	errKeyRequired        = errors.New("key is required")
	errValueRequired      = errors.New("value is required")
	errLiteralRequired    = errors.New("literal is required")
	errLineLimitInvalid   = errors.New("line limits must be positive")
)
