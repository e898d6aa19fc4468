// Package config parses configuration from the environment, which is the
// only configuration source this service uses.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v10"
)

// Load populates cfg from environment variables using `env` struct tags.
//
//	type Config struct {
//	    RedisHost   string `env:"REDIS_HOST" envDefault:"localhost"`
//	    CartTTLDays int    `env:"CART_TTL_DAYS" envDefault:"30"`
//	}
func Load(cfg any) error {
	if err := env.Parse(cfg); err != nil {
		return fmt.Errorf("parse config: %w", err)
	}
	return nil
}
