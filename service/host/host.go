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

package host

import (
	"errors"
	"fmt"

	"github.com/avast/retry-go"
	"github.com/dgraph-io/badger/v2"
	"github.com/gagliardetto/solana-go"
	"github.com/rs/zerolog"

	"github.com/optakt/passkey-multisig/models/multisig"
	"github.com/optakt/passkey-multisig/service/storage"
)

// Host is a host environment that keeps records and balances in a Badger
// database. Every creation runs in a single transaction that checks the
// address is free, stores the record and debits the payer.
type Host struct {
	log zerolog.Logger
	db  *badger.DB
	lib *storage.Library
	cfg Config
}

// New creates a new host on top of the given database.
func New(log zerolog.Logger, db *badger.DB, lib *storage.Library, options ...func(*Config)) *Host {

	cfg := DefaultConfig
	for _, option := range options {
		option(&cfg)
	}

	h := Host{
		log: log.With().Str("component", "badger_host").Logger(),
		db:  db,
		lib: lib,
		cfg: cfg,
	}

	return &h
}

// Create stores the record at the given address and debits its lamports from
// the payer, unless a record already exists at the address.
func (h *Host) Create(address solana.PublicKey, payer solana.PublicKey, record *multisig.Record) error {

	op := storage.Combine(
		h.lib.CreateRecord(address, record),
		h.lib.DebitBalance(payer, record.Lamports),
	)
	err := h.update(op)
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

// Record returns the record stored at the given address.
func (h *Host) Record(address solana.PublicKey) (*multisig.Record, error) {

	var record multisig.Record
	err := h.db.View(h.lib.RetrieveRecord(address, &record))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, fmt.Errorf("no record at address (address: %s): %w", address, multisig.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("could not retrieve record (address: %s): %w", address, err)
	}

	return &record, nil
}

// Balance returns the lamport balance of the given owner.
func (h *Host) Balance(owner solana.PublicKey) (uint64, error) {

	var balance uint64
	err := h.db.View(h.lib.RetrieveBalance(owner, &balance))
	if err != nil {
		return 0, fmt.Errorf("could not retrieve balance (owner: %s): %w", owner, err)
	}

	return balance, nil
}

// Fund credits lamports to the given owner and returns the new balance.
func (h *Host) Fund(owner solana.PublicKey, lamports uint64) (uint64, error) {

	var balance uint64
	err := h.update(h.lib.CreditBalance(owner, lamports, &balance))
	if err != nil {
		return 0, fmt.Errorf("could not credit balance (owner: %s): %w", owner, err)
	}

	h.log.Debug().
		Str("owner", owner.String()).
		Uint64("lamports", lamports).
		Uint64("balance", balance).
		Msg("balance funded")

	return balance, nil
}

// update runs the operation in a read-write transaction, retrying it when the
// commit conflicts with a concurrent transaction.
func (h *Host) update(op func(*badger.Txn) error) error {
	return retry.Do(
		func() error {
			return h.db.Update(op)
		},
		retry.RetryIf(func(err error) bool {
			return errors.Is(err, badger.ErrConflict)
		}),
		retry.OnRetry(func(n uint, err error) {
			h.log.Debug().Uint("attempt", n+1).Err(err).Msg("retrying conflicting transaction")
		}),
		retry.Attempts(h.cfg.ConflictRetries+1),
		retry.Delay(h.cfg.RetryDelay),
		retry.LastErrorOnly(true),
	)
}
