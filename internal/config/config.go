// Package config resolves the interpreter's tunables from the environment,
// leaning on mstoykov/envconfig rather than hand-rolled os.Getenv calls.
package config

import "github.com/mstoykov/envconfig"

// Config holds the interpreter's environment-tunable limits and the log
// level the CLI should install before running anything.
type Config struct {
	StackSize int    `envconfig:"VERTEXVM_STACK_SIZE"`
	MaxFrames int    `envconfig:"VERTEXVM_MAX_FRAMES"`
	LogLevel  string `envconfig:"VERTEXVM_LOG_LEVEL"`
}

// Default returns the interpreter's zero-config defaults: unbounded stack
// and call depth, info-level logging.
func Default() Config {
	return Config{
		StackSize: 0,
		MaxFrames: 0,
		LogLevel:  "info",
	}
}

// Load starts from Default and overlays any VERTEXVM_* environment
// variables that are set.
func Load() (Config, error) {
	cfg := Default()
	if err := envconfig.Process("vertexvm", &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
