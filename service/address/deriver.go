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

package address

import (
	"fmt"

	"github.com/gagliardetto/solana-go"

	"github.com/optakt/passkey-multisig/models/multisig"
	"github.com/optakt/passkey-multisig/service/seed"
)

// Deriver derives the program addresses of multisig accounts.
type Deriver struct {
	program solana.PublicKey
}

// New returns a deriver for accounts owned by the given program.
func New(program solana.PublicKey) *Deriver {
	d := Deriver{
		program: program,
	}

	return &d
}

// Program returns the program that owns derived addresses.
func (d *Deriver) Program() solana.PublicKey {
	return d.program
}

// Derive returns the address of the account for the given seed, along with
// the bump that moves the address off the ed25519 curve.
func (d *Deriver) Derive(seed multisig.Seed) (solana.PublicKey, uint8, error) {
	address, bump, err := solana.FindProgramAddress(seeds(seed), d.program)
	if err != nil {
		return solana.PublicKey{}, 0, fmt.Errorf("could not find program address (seed: %x): %w", seed[:], err)
	}

	return address, bump, nil
}

// Verify checks that the account lives at the address derived from its own
// credential ID and bump.
func (d *Deriver) Verify(account *multisig.Account, address solana.PublicKey) error {
	derived, err := solana.CreateProgramAddress(
		append(seeds(seed.Derive([]byte(account.CredentialID))), []byte{account.Bump}),
		d.program,
	)
	if err != nil {
		return fmt.Errorf("could not create program address (bump: %d): %w", account.Bump, err)
	}

	if !derived.Equals(address) {
		return fmt.Errorf("derived address mismatch (have: %s, want: %s): %w", derived, address, multisig.ErrAddressMismatch)
	}

	return nil
}

func seeds(seed multisig.Seed) [][]byte {
	return [][]byte{[]byte(multisig.Namespace), seed[:]}
}
