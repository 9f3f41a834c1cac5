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

package seed

import (
	"github.com/rs/zerolog"

	"github.com/optakt/passkey-multisig/models/multisig"
)

// Tracer derives seeds and logs the input and output of every derivation.
type Tracer struct {
	log zerolog.Logger
}

// NewTracer returns a tracer logging to the given logger.
func NewTracer(log zerolog.Logger) *Tracer {
	t := Tracer{
		log: log.With().Str("component", "seed_tracer").Logger(),
	}

	return &t
}

// Derive derives the seed for the given credential ID.
func (t *Tracer) Derive(credentialID string) multisig.Seed {
	identifier := []byte(credentialID)
	seed := Derive(identifier)

	t.log.Debug().
		Str("credential_id", credentialID).
		Int("length", len(identifier)).
		Hex("identifier", identifier).
		Bool("folded", Folded(identifier)).
		Hex("seed", seed[:]).
		Msg("credential seed derived")

	return seed
}
