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
	"github.com/optakt/passkey-multisig/models/multisig"
)

// Derive maps a credential ID of any length onto a fixed-length seed.
//
// Identifiers of up to 24 bytes are copied to the start of the seed and the
// remainder is left zero, so no information is lost. Longer identifiers are
// folded onto the seed by XOR-ing the byte at position i into position
// i mod 24. The fold is not a hash: distinct identifiers longer than 24 bytes
// can fold onto the same seed, and therefore onto the same account address.
// Existing accounts are addressed through this exact fold, so it can not be
// replaced without moving every account.
func Derive(identifier []byte) multisig.Seed {
	var seed multisig.Seed
	if !Folded(identifier) {
		copy(seed[:], identifier)
		return seed
	}

	for i, b := range identifier {
		seed[i%multisig.SeedLength] ^= b
	}

	return seed
}

// Folded returns whether the identifier is too long to be copied verbatim and
// is folded instead.
func Folded(identifier []byte) bool {
	return len(identifier) > multisig.SeedLength
}
