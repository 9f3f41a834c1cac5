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

package storage

import (
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v2"
	"github.com/gagliardetto/solana-go"

	"github.com/optakt/passkey-multisig/models/multisig"
)

// CreateRecord is an operation that writes the record at the given address,
// unless a record is already present there.
func (l *Library) CreateRecord(address solana.PublicKey, record *multisig.Record) func(*badger.Txn) error {
	key := EncodeKey(PrefixRecord, address)
	return Combine(
		absent(key, multisig.ErrAlreadyInitialized),
		l.save(key, record),
	)
}

// RetrieveRecord retrieves the record at the given address.
func (l *Library) RetrieveRecord(address solana.PublicKey, record *multisig.Record) func(*badger.Txn) error {
	return l.retrieve(EncodeKey(PrefixRecord, address), record)
}

// SaveBalance is an operation that writes the balance of the given owner.
func (l *Library) SaveBalance(owner solana.PublicKey, balance uint64) func(*badger.Txn) error {
	return l.save(EncodeKey(PrefixBalance, owner), balance)
}

// RetrieveBalance retrieves the balance of the given owner. Owners that were
// never funded have a zero balance.
func (l *Library) RetrieveBalance(owner solana.PublicKey, balance *uint64) func(*badger.Txn) error {
	key := EncodeKey(PrefixBalance, owner)
	return Fallback(
		l.retrieve(key, balance),
		empty(key, balance),
	)
}

// CreditBalance is an operation that adds lamports to the balance of the
// given owner and retrieves the resulting balance.
func (l *Library) CreditBalance(owner solana.PublicKey, lamports uint64, balance *uint64) func(*badger.Txn) error {
	return func(tx *badger.Txn) error {
		var current uint64
		err := l.RetrieveBalance(owner, &current)(tx)
		if err != nil {
			return fmt.Errorf("could not retrieve balance: %w", err)
		}

		if current+lamports < current {
			return fmt.Errorf("balance overflow (have: %d, add: %d)", current, lamports)
		}

		*balance = current + lamports
		return l.SaveBalance(owner, *balance)(tx)
	}
}

// DebitBalance is an operation that removes lamports from the balance of the
// given owner. It fails with ErrInsufficientFunds if the balance is too low.
func (l *Library) DebitBalance(owner solana.PublicKey, lamports uint64) func(*badger.Txn) error {
	return func(tx *badger.Txn) error {
		var current uint64
		err := l.RetrieveBalance(owner, &current)(tx)
		if err != nil {
			return fmt.Errorf("could not retrieve balance: %w", err)
		}

		if current < lamports {
			return fmt.Errorf("could not debit balance (owner: %s, have: %d, need: %d): %w", owner, current, lamports, multisig.ErrInsufficientFunds)
		}

		return l.SaveBalance(owner, current-lamports)(tx)
	}
}

func empty(key []byte, balance *uint64) func(*badger.Txn) error {
	return func(tx *badger.Txn) error {
		_, err := tx.Get(key)
		if errors.Is(err, badger.ErrKeyNotFound) {
			*balance = 0
			return nil
		}
		if err != nil {
			return fmt.Errorf("could not check key (key: %x): %w", key, err)
		}

		return fmt.Errorf("key present (key: %x)", key)
	}
}
