package config

import (
	"fmt"
	"os"

	"github.com/creasty/defaults"
)

type GlobalConfig struct {
	Server   Server   `mapstructure:",squash"`
	Catalog  Catalog  `mapstructure:",squash"`
	Database Database `mapstructure:",squash"`
	Redis    Redis    `mapstructure:",squash"`
	Lock     Lock     `mapstructure:",squash"`
	RPC      RPC      `mapstructure:",squash"`
	Log      Log      `mapstructure:",squash"`
	Trace    Trace    `mapstructure:",squash"`
}

var config = &GlobalConfig{}

func init() {
	if err := defaults.Set(config); err != nil {
		fmt.Printf("set default err: %+v", err)
		os.Exit(1)
	}
}

func Global() *GlobalConfig {
	return config
}

// New returns a config populated with defaults only. Used by tests and
// by callers that do not want to share the process-wide instance.
func New() (*GlobalConfig, error) {
	c := &GlobalConfig{}
	if err := defaults.Set(c); err != nil {
		return nil, err
	}
	return c, nil
}
