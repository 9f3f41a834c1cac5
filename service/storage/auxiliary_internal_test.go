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
	"testing"

	"github.com/dgraph-io/badger/v2"
	"github.com/stretchr/testify/assert"

	"github.com/optakt/passkey-multisig/testing/mocks"
)

func TestEncodeKey(t *testing.T) {
	address := mocks.GenericPublicKey(0)

	t.Run("public key segment", func(t *testing.T) {
		got := EncodeKey(PrefixRecord, address)

		assert.Len(t, got, 33)
		assert.Equal(t, byte(PrefixRecord), got[0])
		assert.Equal(t, address[:], got[1:])
	})

	t.Run("mixed segments", func(t *testing.T) {
		got := EncodeKey(PrefixBalance, address, uint64(0x0102))

		assert.Len(t, got, 41)
		assert.Equal(t, []byte{0, 0, 0, 0, 0, 0, 1, 2}, got[33:])
	})

	t.Run("panics on unknown segment type", func(t *testing.T) {
		assert.Panics(t, func() {
			EncodeKey(PrefixRecord, "unknown")
		})
	})
}

func TestCombine(t *testing.T) {
	succeed := func(*badger.Txn) error { return nil }
	fail := func(*badger.Txn) error { return mocks.GenericError }

	t.Run("all operations succeed", func(t *testing.T) {
		err := Combine(succeed, succeed)(nil)
		assert.NoError(t, err)
	})

	t.Run("stops on first failure", func(t *testing.T) {
		var called bool
		last := func(*badger.Txn) error {
			called = true
			return nil
		}

		err := Combine(succeed, fail, last)(nil)

		assert.ErrorIs(t, err, mocks.GenericError)
		assert.False(t, called)
	})
}

func TestFallback(t *testing.T) {
	succeed := func(*badger.Txn) error { return nil }
	fail := func(*badger.Txn) error { return mocks.GenericError }

	t.Run("first success wins", func(t *testing.T) {
		err := Fallback(fail, succeed)(nil)
		assert.NoError(t, err)
	})

	t.Run("all failures are returned", func(t *testing.T) {
		err := Fallback(fail, fail)(nil)
		assert.ErrorIs(t, err, mocks.GenericError)
	})
}
