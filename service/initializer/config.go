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

package initializer

import (
	"github.com/gagliardetto/solana-go"

	"github.com/optakt/passkey-multisig/service/rent"
)

// DefaultProgramID is the program that owns multisig accounts unless another
// one is configured.
var DefaultProgramID = solana.MustPublicKeyFromBase58("BWzgXaQGxFk1ojzJ1Y2c91QTw7uF9zK9AJcGkdJA3VZt")

// DefaultConfig is the default configuration for the initializer.
var DefaultConfig = Config{
	ProgramID: DefaultProgramID,
	Rent:      rent.Default(),
}

// Config contains the configuration options for the initializer.
type Config struct {
	ProgramID solana.PublicKey
	Rent      rent.Calculator
}

// WithProgramID sets the program under which account addresses are derived.
func WithProgramID(program solana.PublicKey) func(*Config) {
	return func(cfg *Config) {
		cfg.ProgramID = program
	}
}

// WithRent sets the rent parameters used to compute the lamports deposited on
// account creation.
func WithRent(calculator rent.Calculator) func(*Config) {
	return func(cfg *Config) {
		cfg.Rent = calculator
	}
}
