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

package memory_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/optakt/passkey-multisig/models/multisig"
	"github.com/optakt/passkey-multisig/service/memory"
	"github.com/optakt/passkey-multisig/testing/mocks"
)

func TestHost_Create(t *testing.T) {
	h := memory.New(mocks.NoopLogger)
	address := mocks.GenericPublicKey(0)
	record := mocks.GenericRecord(254)

	_, err := h.Fund(mocks.GenericPayer, 3*record.Lamports)
	require.NoError(t, err)

	t.Run("nominal case", func(t *testing.T) {
		err := h.Create(address, mocks.GenericPayer, record)
		require.NoError(t, err)

		got, err := h.Record(address)
		require.NoError(t, err)
		assert.Equal(t, record, got)

		balance, err := h.Balance(mocks.GenericPayer)
		require.NoError(t, err)
		assert.Equal(t, 2*record.Lamports, balance)
	})

	t.Run("returned record is a copy", func(t *testing.T) {
		got, err := h.Record(address)
		require.NoError(t, err)
		got.Data[0] ^= 0xff

		again, err := h.Record(address)
		require.NoError(t, err)
		assert.Equal(t, record, again)
	})

	t.Run("second creation at same address is rejected", func(t *testing.T) {
		err := h.Create(address, mocks.GenericPayer, mocks.GenericRecord(1))
		assert.ErrorIs(t, err, multisig.ErrAlreadyInitialized)

		got, err := h.Record(address)
		require.NoError(t, err)
		assert.Equal(t, record, got)

		balance, err := h.Balance(mocks.GenericPayer)
		require.NoError(t, err)
		assert.Equal(t, 2*record.Lamports, balance)
	})

	t.Run("payer without funds creates nothing", func(t *testing.T) {
		free := mocks.GenericPublicKey(1)
		poor := mocks.GenericPublicKey(2)

		err := h.Create(free, poor, record)
		assert.ErrorIs(t, err, multisig.ErrInsufficientFunds)

		_, err = h.Record(free)
		assert.ErrorIs(t, err, multisig.ErrNotFound)

		balance, err := h.Balance(poor)
		require.NoError(t, err)
		assert.Zero(t, balance)
	})
}

func TestHost_Fund(t *testing.T) {
	h := memory.New(mocks.NoopLogger)

	balance, err := h.Fund(mocks.GenericPayer, 10)
	require.NoError(t, err)
	assert.Equal(t, uint64(10), balance)

	balance, err = h.Fund(mocks.GenericPayer, 5)
	require.NoError(t, err)
	assert.Equal(t, uint64(15), balance)

	_, err = h.Fund(mocks.GenericPayer, ^uint64(0))
	assert.Error(t, err)

	balance, err = h.Balance(mocks.GenericPayer)
	require.NoError(t, err)
	assert.Equal(t, uint64(15), balance)
}

func TestHost_CreateConcurrent(t *testing.T) {
	const workers = 32

	h := memory.New(mocks.NoopLogger)
	address := mocks.GenericPublicKey(0)
	record := mocks.GenericRecord(254)

	_, err := h.Fund(mocks.GenericPayer, workers*record.Lamports)
	require.NoError(t, err)

	var wg sync.WaitGroup
	errs := make(chan error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs <- h.Create(address, mocks.GenericPayer, record)
		}()
	}
	wg.Wait()
	close(errs)

	var created int
	for err := range errs {
		if err == nil {
			created++
			continue
		}
		assert.ErrorIs(t, err, multisig.ErrAlreadyInitialized)
	}
	assert.Equal(t, 1, created)

	balance, err := h.Balance(mocks.GenericPayer)
	require.NoError(t, err)
	assert.Equal(t, (workers-1)*record.Lamports, balance)
}

func TestHost_CreateConcurrentSamePayer(t *testing.T) {
	const (
		contenders = 16
		distinct   = 16
	)

	h := memory.New(mocks.NoopLogger)
	record := mocks.GenericRecord(254)
	contested := mocks.GenericPublicKey(0)
	addresses := mocks.GenericPublicKeys(distinct + 1)[1:]

	// The payer can afford exactly one account at the contested address and
	// one at each distinct address, so losing contenders must never hold
	// any of its lamports.
	_, err := h.Fund(mocks.GenericPayer, (distinct+1)*record.Lamports)
	require.NoError(t, err)

	var wg sync.WaitGroup
	contestedErrs := make(chan error, contenders)
	distinctErrs := make(chan error, distinct)
	for i := 0; i < contenders; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			contestedErrs <- h.Create(contested, mocks.GenericPayer, record)
		}()
	}
	for _, address := range addresses {
		address := address
		wg.Add(1)
		go func() {
			defer wg.Done()
			distinctErrs <- h.Create(address, mocks.GenericPayer, record)
		}()
	}
	wg.Wait()
	close(contestedErrs)
	close(distinctErrs)

	for err := range distinctErrs {
		assert.NoError(t, err)
	}

	var created int
	for err := range contestedErrs {
		if err == nil {
			created++
			continue
		}
		assert.ErrorIs(t, err, multisig.ErrAlreadyInitialized)
	}
	assert.Equal(t, 1, created)

	balance, err := h.Balance(mocks.GenericPayer)
	require.NoError(t, err)
	assert.Zero(t, balance)
}
