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
	"fmt"
	"os"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/rs/zerolog"
	"github.com/spf13/pflag"

	"github.com/optakt/passkey-multisig/models/multisig"
	"github.com/optakt/passkey-multisig/service/address"
	"github.com/optakt/passkey-multisig/service/initializer"
	"github.com/optakt/passkey-multisig/service/rent"
	"github.com/optakt/passkey-multisig/service/seed"
)

const (
	success = 0
	failure = 1
)

func main() {
	os.Exit(run())
}

func run() int {

	// Command line parameter initialization.
	var (
		flagCredential string
		flagLevel      string
		flagProgram    string
	)

	pflag.StringVarP(&flagCredential, "credential", "c", "", "WebAuthn credential ID to derive the seed for")
	pflag.StringVarP(&flagLevel, "level", "l", "info", "log output level")
	pflag.StringVarP(&flagProgram, "program", "p", initializer.DefaultProgramID.String(), "program ID under which the address is derived")

	pflag.Parse()

	// Logger initialization.
	zerolog.TimestampFunc = func() time.Time { return time.Now().UTC() }
	log := zerolog.New(os.Stderr).With().Timestamp().Logger().Level(zerolog.DebugLevel)
	level, err := zerolog.ParseLevel(flagLevel)
	if err != nil {
		log.Error().Str("level", flagLevel).Err(err).Msg("could not parse log level")
		return failure
	}
	log = log.Level(level)

	if flagCredential == "" {
		log.Error().Msg("credential ID must not be empty")
		return failure
	}
	if len(flagCredential) > multisig.MaxCredentialIDLength {
		log.Warn().
			Int("length", len(flagCredential)).
			Int("max", multisig.MaxCredentialIDLength).
			Msg("credential ID too long to initialize an account")
	}

	program, err := solana.PublicKeyFromBase58(flagProgram)
	if err != nil {
		log.Error().Str("program", flagProgram).Err(err).Msg("could not parse program ID")
		return failure
	}

	derived := seed.NewTracer(log).Derive(flagCredential)
	addr, bump, err := address.New(program).Derive(derived)
	if err != nil {
		log.Error().Err(err).Msg("could not derive address")
		return failure
	}

	regime := "padded"
	if seed.Folded([]byte(flagCredential)) {
		regime = "folded"
	}
	space := multisig.Space(flagCredential)

	fmt.Printf("seed:    %s\n", derived.Hex())
	fmt.Printf("regime:  %s\n", regime)
	fmt.Printf("address: %s\n", addr)
	fmt.Printf("bump:    %d\n", bump)
	fmt.Printf("space:   %d\n", space)
	fmt.Printf("rent:    %d\n", rent.Default().MinimumBalance(space))

	return success
}
