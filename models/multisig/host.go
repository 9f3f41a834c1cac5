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
	"github.com/gagliardetto/solana-go"
)

// Host represents the execution environment that owns the address space in
// which accounts are created. It guarantees that at most one record is ever
// created at a given address.
type Host interface {
	Funder

	// Create atomically stores the record at the given address and debits
	// its lamports from the payer. It fails with ErrAlreadyInitialized if a
	// record already exists at the address, and with ErrInsufficientFunds
	// if the payer cannot cover the rent; in both cases nothing changes.
	Create(address solana.PublicKey, payer solana.PublicKey, record *Record) error

	// Record returns the record stored at the given address, or ErrNotFound.
	Record(address solana.PublicKey) (*Record, error)
}

// Funder represents something that holds lamport balances.
type Funder interface {
	Balance(owner solana.PublicKey) (uint64, error)
	Fund(owner solana.PublicKey, lamports uint64) (uint64, error)
}

// Initializer represents something that can create and look up multisig
// accounts by credential ID.
type Initializer interface {
	Initialize(threshold uint8, credentialID string, payer solana.PublicKey) (solana.PublicKey, *Account, error)
	Lookup(credentialID string) (solana.PublicKey, *Account, error)
	Preview(credentialID string) (*Preview, error)
}
