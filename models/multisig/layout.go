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
	"bytes"
	"crypto/sha256"
	"fmt"

	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
)

const (
	// DiscriminatorLength is the size of the type tag at the start of the
	// account data.
	DiscriminatorLength = 8

	// HeaderLength is the size of the fixed-width fields of an account:
	// threshold, guardian count, recovery nonce, bump, transaction nonce,
	// last transaction timestamp and owner.
	HeaderLength = 1 + 1 + 8 + 1 + 8 + 8 + solana.PublicKeyLength

	// LengthPrefix is the size of the length prefix of the credential ID.
	LengthPrefix = 4
)

// Discriminator tags the account data as a multisig wallet account. It is the
// first eight bytes of the SHA-256 hash of "account:MultiSigWallet".
var Discriminator = discriminator("MultiSigWallet")

func discriminator(name string) [DiscriminatorLength]byte {
	hash := sha256.Sum256([]byte("account:" + name))
	var disc [DiscriminatorLength]byte
	copy(disc[:], hash[:DiscriminatorLength])
	return disc
}

// Space returns the exact number of bytes needed to store an account bound to
// the given credential ID.
func Space(credentialID string) int {
	return DiscriminatorLength + HeaderLength + LengthPrefix + len(credentialID)
}

// Encode serializes the account into a buffer of exactly `space` bytes. An
// account that does not fill the reserved space exactly means the space was
// computed wrong, which is a bug, so it panics.
func Encode(account *Account, space int) []byte {
	buf := bytes.NewBuffer(make([]byte, 0, space))
	buf.Write(Discriminator[:])
	err := account.MarshalWithEncoder(bin.NewBorshEncoder(buf))
	if err != nil {
		panic(fmt.Sprintf("could not encode account: %s", err))
	}
	if buf.Len() != space {
		panic(fmt.Sprintf("account does not fit reserved space (have: %d, want: %d)", buf.Len(), space))
	}
	return buf.Bytes()
}

// Decode deserializes account data, checking the discriminator first.
func Decode(data []byte) (*Account, error) {
	if len(data) < DiscriminatorLength+HeaderLength+LengthPrefix {
		return nil, fmt.Errorf("data too short (have: %d): %w", len(data), ErrInvalidData)
	}
	if !bytes.Equal(data[:DiscriminatorLength], Discriminator[:]) {
		return nil, fmt.Errorf("unknown discriminator (%x): %w", data[:DiscriminatorLength], ErrInvalidData)
	}

	var account Account
	dec := bin.NewBorshDecoder(data[DiscriminatorLength:])
	err := account.UnmarshalWithDecoder(dec)
	if err != nil {
		return nil, fmt.Errorf("could not decode account: %w", err)
	}
	if dec.Remaining() != 0 {
		return nil, fmt.Errorf("trailing bytes after account (count: %d): %w", dec.Remaining(), ErrInvalidData)
	}

	return &account, nil
}

// MarshalWithEncoder writes the account fields in their persisted order.
func (a Account) MarshalWithEncoder(enc *bin.Encoder) error {
	err := enc.WriteUint8(a.Threshold)
	if err != nil {
		return err
	}
	err = enc.WriteUint8(a.GuardianCount)
	if err != nil {
		return err
	}
	err = enc.WriteUint64(a.RecoveryNonce, bin.LE)
	if err != nil {
		return err
	}
	err = enc.WriteUint8(a.Bump)
	if err != nil {
		return err
	}
	err = enc.WriteUint64(a.TransactionNonce, bin.LE)
	if err != nil {
		return err
	}
	err = enc.WriteInt64(a.LastTransactionTimestamp, bin.LE)
	if err != nil {
		return err
	}
	err = enc.WriteBytes(a.Owner[:], false)
	if err != nil {
		return err
	}
	err = enc.WriteUint32(uint32(len(a.CredentialID)), bin.LE)
	if err != nil {
		return err
	}
	return enc.WriteBytes([]byte(a.CredentialID), false)
}

// UnmarshalWithDecoder reads the account fields in their persisted order.
func (a *Account) UnmarshalWithDecoder(dec *bin.Decoder) error {
	var err error
	a.Threshold, err = dec.ReadUint8()
	if err != nil {
		return fmt.Errorf("could not read threshold: %w", err)
	}
	a.GuardianCount, err = dec.ReadUint8()
	if err != nil {
		return fmt.Errorf("could not read guardian count: %w", err)
	}
	a.RecoveryNonce, err = dec.ReadUint64(bin.LE)
	if err != nil {
		return fmt.Errorf("could not read recovery nonce: %w", err)
	}
	a.Bump, err = dec.ReadUint8()
	if err != nil {
		return fmt.Errorf("could not read bump: %w", err)
	}
	a.TransactionNonce, err = dec.ReadUint64(bin.LE)
	if err != nil {
		return fmt.Errorf("could not read transaction nonce: %w", err)
	}
	a.LastTransactionTimestamp, err = dec.ReadInt64(bin.LE)
	if err != nil {
		return fmt.Errorf("could not read last transaction timestamp: %w", err)
	}
	owner, err := dec.ReadNBytes(solana.PublicKeyLength)
	if err != nil {
		return fmt.Errorf("could not read owner: %w", err)
	}
	a.Owner = solana.PublicKeyFromBytes(owner)

	length, err := dec.ReadUint32(bin.LE)
	if err != nil {
		return fmt.Errorf("could not read credential ID length: %w", err)
	}
	if length > MaxCredentialIDLength || int(length) > dec.Remaining() {
		return fmt.Errorf("invalid credential ID length (%d): %w", length, ErrInvalidData)
	}
	credentialID, err := dec.ReadNBytes(int(length))
	if err != nil {
		return fmt.Errorf("could not read credential ID: %w", err)
	}
	a.CredentialID = string(credentialID)

	return nil
}
