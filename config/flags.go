package config

import (
	"github.com/pkg/errors"
	"github.com/spf13/pflag"
)

// Command line flags. Apart from FlagConfigDir, each name is the koanf key it overrides.
const (
	FlagConfigDir   = "config-dir"
	FlagHTTPPort    = "http.port"
	FlagStoreDriver = "store.driver"
	FlagLogLevel    = "env.log.level"
)

// NewFlagSet parses args into a flag set understood by New.
// Flags that are left unset never override the config file or environment.
func NewFlagSet(name string, args []string) (*pflag.FlagSet, error) {
	flags := pflag.NewFlagSet(name, pflag.ContinueOnError)
	flags.String(FlagConfigDir, "", "directory holding config.yaml")
	flags.Int(FlagHTTPPort, 0, "HTTP listen port")
	flags.String(FlagStoreDriver, "", "credential store driver (postgres or memory)")
	flags.String(FlagLogLevel, "", "log level (debug, info, warn, error)")

	if err := flags.Parse(args); err != nil {
		return nil, errors.Wrap(err, "parse flags")
	}

	return flags, nil
}
