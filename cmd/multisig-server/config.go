// Copyright 2021 Optakt Labs OÜ
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not
// use this file except in compliance with the License. You may obtain a copy of
// the License at
//
//     https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS, WITHOUT
// WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the
// License for the specific language governing permissions and limitations under
// the License.

package main

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/caarlos0/env/v6"
	"github.com/gagliardetto/solana-go"
	"github.com/hashicorp/go-multierror"
	"github.com/rs/zerolog"

	"github.com/optakt/passkey-multisig/service/initializer"
)

// Config holds the settings of the server. Every field can be set from the
// environment and overridden on the command line.
type Config struct {
	Level           string           `env:"MULTISIG_LEVEL" envDefault:"info"`
	Port            uint16           `env:"MULTISIG_PORT" envDefault:"8080"`
	MetricsPort     uint16           `env:"MULTISIG_METRICS_PORT" envDefault:"9010"`
	Dir             string           `env:"MULTISIG_DIR" envDefault:"data"`
	Memory          bool             `env:"MULTISIG_MEMORY" envDefault:"false"`
	Program         solana.PublicKey `env:"MULTISIG_PROGRAM"`
	CacheSize       uint64           `env:"MULTISIG_CACHE_SIZE" envDefault:"104857600"`
	ConflictRetries uint             `env:"MULTISIG_CONFLICT_RETRIES" envDefault:"8"`
}

// LoadConfig reads the configuration from the environment.
func LoadConfig() (Config, error) {

	cfg := Config{
		Program: initializer.DefaultProgramID,
	}
	err := env.ParseWithFuncs(&cfg, map[reflect.Type]env.ParserFunc{
		reflect.TypeOf(solana.PublicKey{}): func(v string) (interface{}, error) {
			return solana.PublicKeyFromBase58(v)
		},
	})
	if err != nil {
		return Config{}, fmt.Errorf("could not parse environment: %w", err)
	}

	return cfg, nil
}

// Validate checks the configuration and reports every problem it finds.
func (c Config) Validate() error {

	var merr *multierror.Error
	_, err := zerolog.ParseLevel(c.Level)
	if err != nil {
		merr = multierror.Append(merr, fmt.Errorf("invalid log level (level: %s): %w", c.Level, err))
	}
	if c.Port == 0 {
		merr = multierror.Append(merr, errors.New("API port must not be zero"))
	}
	if c.MetricsPort == 0 {
		merr = multierror.Append(merr, errors.New("metrics port must not be zero"))
	}
	if c.Port == c.MetricsPort {
		merr = multierror.Append(merr, fmt.Errorf("API and metrics ports must differ (port: %d)", c.Port))
	}
	if !c.Memory && c.Dir == "" {
		merr = multierror.Append(merr, errors.New("database directory must be set unless running in memory"))
	}
	if c.Program.Equals(solana.PublicKey{}) {
		merr = multierror.Append(merr, errors.New("program ID must be set"))
	}
	if c.CacheSize == 0 {
		merr = multierror.Append(merr, errors.New("cache size must not be zero"))
	}

	return merr.ErrorOrNil()
}
