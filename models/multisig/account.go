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

package multisig

import (
	"encoding/hex"

	"github.com/gagliardetto/solana-go"
)

const (
	// Namespace is the fixed seed prefix used when deriving the address of a
	// multisig account.
	Namespace = "multisig"

	// SeedLength is the size of the seed derived from a credential ID. The
	// namespace and the seed together fit into a single 32-byte address seed.
	SeedLength = 24

	// MaxCredentialIDLength is the maximum number of bytes of a credential ID
	// that can be bound to an account.
	MaxCredentialIDLength = 64
)

// Seed is the fixed-length seed derived from a credential ID.
type Seed [SeedLength]byte

// Hex returns the hexadecimal encoding of the seed.
func (s Seed) Hex() string {
	return hex.EncodeToString(s[:])
}

// Account is the multisig wallet account bound to a single credential ID.
type Account struct {
	Threshold                uint8            `json:"threshold"`
	GuardianCount            uint8            `json:"guardian_count"`
	RecoveryNonce            uint64           `json:"recovery_nonce"`
	Bump                     uint8            `json:"bump"`
	TransactionNonce         uint64           `json:"transaction_nonce"`
	LastTransactionTimestamp int64            `json:"last_transaction_timestamp"`
	Owner                    solana.PublicKey `json:"owner"`
	CredentialID             string           `json:"credential_id"`
}

// Record is what the host keeps at an address: the lamports deposited to
// cover rent, the program owning the data and the raw account data.
type Record struct {
	Lamports uint64
	Owner    solana.PublicKey
	Data     []byte
}

// Preview describes where the account for a credential ID lives and what it
// costs to create, without touching storage.
type Preview struct {
	CredentialID string
	Seed         Seed
	Folded       bool
	Address      solana.PublicKey
	Bump         uint8
	Space        int
	Rent         uint64
}
