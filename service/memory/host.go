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

package memory

import (
	"fmt"
	"hash/maphash"

	"github.com/OneOfOne/xxhash"
	"github.com/gagliardetto/solana-go"
	"github.com/puzpuzpuz/xsync/v2"
	"github.com/rs/zerolog"

	"github.com/optakt/passkey-multisig/models/multisig"
)

// Host is a host environment that keeps records and balances in concurrent
// maps. It loses its state on restart and is meant for tests and local runs.
type Host struct {
	log      zerolog.Logger
	records  *xsync.MapOf[solana.PublicKey, *multisig.Record]
	balances *xsync.MapOf[solana.PublicKey, uint64]
}

// New creates a new empty in-memory host.
func New(log zerolog.Logger) *Host {

	h := Host{
		log:      log.With().Str("component", "memory_host").Logger(),
		records:  xsync.NewTypedMapOf[solana.PublicKey, *multisig.Record](hashPublicKey),
		balances: xsync.NewTypedMapOf[solana.PublicKey, uint64](hashPublicKey),
	}

	return &h
}

// Create stores the record at the given address and debits its lamports from
// the payer. The debit happens while the address is locked, so only the first
// of several concurrent creations at one address ever touches the balance.
func (h *Host) Create(address solana.PublicKey, payer solana.PublicKey, record *multisig.Record) error {

	var err error
	h.records.Compute(address, func(current *multisig.Record, loaded bool) (*multisig.Record, bool) {
		if loaded {
			err = multisig.ErrAlreadyInitialized
			return current, false
		}
		err = h.debit(payer, record.Lamports)
		if err != nil {
			return nil, true
		}
		return clone(record), false
	})
	if err != nil {
		return fmt.Errorf("could not create record (address: %s): %w", address, err)
	}

	h.log.Info().
		Str("address", address.String()).
		Str("payer", payer.String()).
		Uint64("lamports", record.Lamports).
		Int("space", len(record.Data)).
		Msg("record created")

	return nil
}

// Record returns a copy of the record stored at the given address.
func (h *Host) Record(address solana.PublicKey) (*multisig.Record, error) {
	record, ok := h.records.Load(address)
	if !ok {
		return nil, fmt.Errorf("no record at address (address: %s): %w", address, multisig.ErrNotFound)
	}
	return clone(record), nil
}

// Balance returns the lamport balance of the given owner.
func (h *Host) Balance(owner solana.PublicKey) (uint64, error) {
	balance, _ := h.balances.Load(owner)
	return balance, nil
}

// Fund credits lamports to the given owner and returns the new balance.
func (h *Host) Fund(owner solana.PublicKey, lamports uint64) (uint64, error) {

	overflow := false
	balance, _ := h.balances.Compute(owner, func(current uint64, loaded bool) (uint64, bool) {
		if current+lamports < current {
			overflow = true
			return current, !loaded
		}
		return current + lamports, false
	})
	if overflow {
		return 0, fmt.Errorf("could not credit balance (owner: %s): balance overflow (have: %d, add: %d)", owner, balance, lamports)
	}

	h.log.Debug().
		Str("owner", owner.String()).
		Uint64("lamports", lamports).
		Uint64("balance", balance).
		Msg("balance funded")

	return balance, nil
}

func (h *Host) debit(owner solana.PublicKey, lamports uint64) error {

	var have uint64
	insufficient := false
	h.balances.Compute(owner, func(current uint64, loaded bool) (uint64, bool) {
		if current < lamports {
			have = current
			insufficient = true
			return current, !loaded
		}
		return current - lamports, false
	})
	if insufficient {
		return fmt.Errorf("could not debit balance (owner: %s, have: %d, need: %d): %w", owner, have, lamports, multisig.ErrInsufficientFunds)
	}

	return nil
}

func clone(record *multisig.Record) *multisig.Record {
	dup := multisig.Record{
		Lamports: record.Lamports,
		Owner:    record.Owner,
		Data:     make([]byte, len(record.Data)),
	}
	copy(dup.Data, record.Data)

	return &dup
}

func hashPublicKey(seed maphash.Seed, key solana.PublicKey) uint64 {
	var h maphash.Hash
	h.SetSeed(seed)
	return xxhash.Checksum64S(key[:], h.Sum64())
}
