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

package address_test

import (
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/optakt/passkey-multisig/models/multisig"
	"github.com/optakt/passkey-multisig/service/address"
	"github.com/optakt/passkey-multisig/service/seed"
	"github.com/optakt/passkey-multisig/testing/mocks"
)

func TestDeriver_Derive(t *testing.T) {
	deriver := address.New(mocks.GenericProgram)
	credential := seed.Derive([]byte(mocks.GenericCredentialID))

	t.Run("nominal case", func(t *testing.T) {
		addr, bump, err := deriver.Derive(credential)
		require.NoError(t, err)

		want, err := solana.CreateProgramAddress(
			[][]byte{[]byte(multisig.Namespace), credential[:], {bump}},
			mocks.GenericProgram,
		)
		require.NoError(t, err)
		assert.Equal(t, want, addr)
	})

	t.Run("deterministic", func(t *testing.T) {
		first, firstBump, err := deriver.Derive(credential)
		require.NoError(t, err)
		second, secondBump, err := deriver.Derive(credential)
		require.NoError(t, err)

		assert.Equal(t, first, second)
		assert.Equal(t, firstBump, secondBump)
	})

	t.Run("different program gives different address", func(t *testing.T) {
		addr, _, err := deriver.Derive(credential)
		require.NoError(t, err)

		other, _, err := address.New(mocks.GenericPublicKey(7)).Derive(credential)
		require.NoError(t, err)

		assert.NotEqual(t, addr, other)
	})

	t.Run("different seed gives different address", func(t *testing.T) {
		addr, _, err := deriver.Derive(credential)
		require.NoError(t, err)

		other, _, err := deriver.Derive(seed.Derive([]byte(mocks.GenericLongCredentialID)))
		require.NoError(t, err)

		assert.NotEqual(t, addr, other)
	})
}

func TestDeriver_Verify(t *testing.T) {
	deriver := address.New(mocks.GenericProgram)
	addr, bump, err := deriver.Derive(seed.Derive([]byte(mocks.GenericCredentialID)))
	require.NoError(t, err)

	t.Run("nominal case", func(t *testing.T) {
		account := mocks.GenericAccount(bump)

		err := deriver.Verify(account, addr)

		assert.NoError(t, err)
	})

	t.Run("handles wrong bump", func(t *testing.T) {
		account := mocks.GenericAccount(bump - 1)

		err := deriver.Verify(account, addr)

		assert.Error(t, err)
	})

	t.Run("handles wrong credential ID", func(t *testing.T) {
		account := mocks.GenericAccount(bump)
		account.CredentialID = mocks.GenericLongCredentialID

		err := deriver.Verify(account, addr)

		assert.Error(t, err)
	})

	t.Run("handles wrong address", func(t *testing.T) {
		account := mocks.GenericAccount(bump)

		err := deriver.Verify(account, mocks.GenericPublicKey(3))

		assert.ErrorIs(t, err, multisig.ErrAddressMismatch)
	})
}
