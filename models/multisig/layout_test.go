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

package multisig_test

import (
	"encoding/binary"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/optakt/passkey-multisig/models/multisig"
	"github.com/optakt/passkey-multisig/testing/mocks"
)

func TestSpace(t *testing.T) {
	assert.Equal(t, 72, multisig.Space("a"))
	assert.Equal(t, 135, multisig.Space(strings.Repeat("a", multisig.MaxCredentialIDLength)))
	assert.Equal(t, 8+1+1+8+1+8+8+32+4+10, multisig.Space(mocks.GenericCredentialID))
}

func TestEncode(t *testing.T) {
	account := multisig.Account{
		Threshold:                2,
		GuardianCount:            3,
		RecoveryNonce:            4,
		Bump:                     254,
		TransactionNonce:         5,
		LastTransactionTimestamp: -6,
		Owner:                    mocks.GenericPublicKey(0),
		CredentialID:             mocks.GenericCredentialID,
	}

	t.Run("nominal case", func(t *testing.T) {
		space := multisig.Space(account.CredentialID)
		data := multisig.Encode(&account, space)

		require.Len(t, data, space)
		assert.Equal(t, multisig.Discriminator[:], data[0:8])
		assert.Equal(t, uint8(2), data[8])
		assert.Equal(t, uint8(3), data[9])
		assert.Equal(t, uint64(4), binary.LittleEndian.Uint64(data[10:18]))
		assert.Equal(t, uint8(254), data[18])
		assert.Equal(t, uint64(5), binary.LittleEndian.Uint64(data[19:27]))
		assert.Equal(t, int64(-6), int64(binary.LittleEndian.Uint64(data[27:35])))
		assert.Equal(t, account.Owner[:], data[35:67])
		assert.Equal(t, uint32(len(account.CredentialID)), binary.LittleEndian.Uint32(data[67:71]))
		assert.Equal(t, []byte(account.CredentialID), data[71:])
	})

	t.Run("panics on under-allocated space", func(t *testing.T) {
		assert.Panics(t, func() {
			multisig.Encode(&account, multisig.Space(account.CredentialID)-1)
		})
	})

	t.Run("panics on over-allocated space", func(t *testing.T) {
		assert.Panics(t, func() {
			multisig.Encode(&account, multisig.Space(account.CredentialID)+1)
		})
	})
}

func TestDecode(t *testing.T) {
	account := multisig.Account{
		Threshold:    1,
		Bump:         255,
		Owner:        mocks.GenericPublicKey(1),
		CredentialID: strings.Repeat("x", multisig.MaxCredentialIDLength),
	}
	data := multisig.Encode(&account, multisig.Space(account.CredentialID))

	t.Run("nominal case", func(t *testing.T) {
		got, err := multisig.Decode(data)

		require.NoError(t, err)
		assert.Equal(t, &account, got)
	})

	t.Run("handles data that is too short", func(t *testing.T) {
		_, err := multisig.Decode(data[:20])

		assert.ErrorIs(t, err, multisig.ErrInvalidData)
	})

	t.Run("handles unknown discriminator", func(t *testing.T) {
		tampered := append([]byte{}, data...)
		tampered[0] ^= 0xff

		_, err := multisig.Decode(tampered)

		assert.ErrorIs(t, err, multisig.ErrInvalidData)
	})

	t.Run("handles credential ID length beyond the data", func(t *testing.T) {
		tampered := append([]byte{}, data...)
		binary.LittleEndian.PutUint32(tampered[67:71], 60)

		_, err := multisig.Decode(tampered[:100])

		assert.ErrorIs(t, err, multisig.ErrInvalidData)
	})

	t.Run("handles trailing bytes after the credential ID", func(t *testing.T) {
		padded := append(append([]byte{}, data...), 0)

		_, err := multisig.Decode(padded)

		assert.ErrorIs(t, err, multisig.ErrInvalidData)
	})

	t.Run("handles credential ID shorter than the data", func(t *testing.T) {
		tampered := append([]byte{}, data...)
		binary.LittleEndian.PutUint32(tampered[67:71], multisig.MaxCredentialIDLength-1)

		_, err := multisig.Decode(tampered)

		assert.ErrorIs(t, err, multisig.ErrInvalidData)
	})
}
