package test

import (
	"github.com/kelseyhightower/envconfig"
)

// Config tunes the in-process integration run. Everything has a default so
// the suite runs with no environment at all.
type Config struct {
	TokenSecret     string `envconfig:"TEST_TOKEN_SECRET" default:"integration-secret"`
	ConnectionBuf   int    `envconfig:"TEST_CONNECTION_BUFFER_SIZE" default:"32"`
	MembershipMs    int    `envconfig:"TEST_MEMBERSHIP_TIMEOUT_MS" default:"1000"`
	ReplacementChar string `envconfig:"TEST_REPLACEMENT_CHAR" default:"*"`
}

func LoadConfig() (Config, error) {
	var cfg Config
	err := envconfig.Process("", &cfg)
	return cfg, err
}
