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

package initializer

import (
	"fmt"

	"github.com/gagliardetto/solana-go"
	"github.com/rs/zerolog"

	"github.com/optakt/passkey-multisig/models/multisig"
	"github.com/optakt/passkey-multisig/service/address"
	"github.com/optakt/passkey-multisig/service/seed"
)

// Initializer creates multisig accounts bound to WebAuthn credential IDs and
// looks them up again.
type Initializer struct {
	log     zerolog.Logger
	host    multisig.Host
	seeds   *seed.Tracer
	deriver *address.Deriver
	cfg     Config
}

// New creates a new initializer that allocates accounts on the given host.
func New(log zerolog.Logger, host multisig.Host, options ...func(*Config)) *Initializer {

	cfg := DefaultConfig
	for _, option := range options {
		option(&cfg)
	}

	i := Initializer{
		log:     log.With().Str("component", "initializer").Logger(),
		host:    host,
		seeds:   seed.NewTracer(log),
		deriver: address.New(cfg.ProgramID),
		cfg:     cfg,
	}

	return &i
}

// Initialize creates the account for the given credential ID, funded by the
// payer, and returns its address. It can succeed only once per credential ID.
func (i *Initializer) Initialize(threshold uint8, credentialID string, payer solana.PublicKey) (solana.PublicKey, *multisig.Account, error) {

	err := validate(threshold, credentialID)
	if err != nil {
		return solana.PublicKey{}, nil, err
	}

	seed := i.seeds.Derive(credentialID)
	address, bump, err := i.deriver.Derive(seed)
	if err != nil {
		return solana.PublicKey{}, nil, fmt.Errorf("could not derive address: %w", err)
	}

	account := multisig.Account{
		Threshold:    threshold,
		Bump:         bump,
		Owner:        payer,
		CredentialID: credentialID,
	}

	space := multisig.Space(credentialID)
	record := multisig.Record{
		Lamports: i.cfg.Rent.MinimumBalance(space),
		Owner:    i.deriver.Program(),
		Data:     multisig.Encode(&account, space),
	}

	err = i.host.Create(address, payer, &record)
	if err != nil {
		return solana.PublicKey{}, nil, fmt.Errorf("could not create account: %w", err)
	}

	i.log.Info().
		Str("address", address.String()).
		Str("owner", payer.String()).
		Uint8("threshold", threshold).
		Uint8("bump", bump).
		Int("space", space).
		Uint64("rent", record.Lamports).
		Msg("multisig account initialized")

	return address, &account, nil
}

// Lookup returns the address and the account bound to the given credential ID.
func (i *Initializer) Lookup(credentialID string) (solana.PublicKey, *multisig.Account, error) {

	if credentialID == "" {
		return solana.PublicKey{}, nil, fmt.Errorf("credential ID must not be empty: %w", multisig.ErrInvalidConfig)
	}

	address, _, err := i.deriver.Derive(i.seeds.Derive(credentialID))
	if err != nil {
		return solana.PublicKey{}, nil, fmt.Errorf("could not derive address: %w", err)
	}

	record, err := i.host.Record(address)
	if err != nil {
		return solana.PublicKey{}, nil, fmt.Errorf("could not retrieve record: %w", err)
	}

	if !record.Owner.Equals(i.deriver.Program()) {
		return solana.PublicKey{}, nil, fmt.Errorf("record owned by another program (owner: %s): %w", record.Owner, multisig.ErrInvalidData)
	}

	account, err := multisig.Decode(record.Data)
	if err != nil {
		return solana.PublicKey{}, nil, fmt.Errorf("could not decode account: %w", err)
	}

	// A folded seed can map two credential IDs to the same address, so the
	// account only belongs to the caller if it stores the same ID.
	if account.CredentialID != credentialID {
		return solana.PublicKey{}, nil, fmt.Errorf("account at address bound to another credential ID (address: %s): %w", address, multisig.ErrCredentialMismatch)
	}

	err = i.deriver.Verify(account, address)
	if err != nil {
		return solana.PublicKey{}, nil, fmt.Errorf("could not verify account: %w", err)
	}

	return address, account, nil
}

// Preview computes the seed, address, space and rent for the given credential
// ID without touching the host.
func (i *Initializer) Preview(credentialID string) (*multisig.Preview, error) {

	if credentialID == "" {
		return nil, fmt.Errorf("credential ID must not be empty: %w", multisig.ErrInvalidConfig)
	}
	if len(credentialID) > multisig.MaxCredentialIDLength {
		return nil, fmt.Errorf("credential ID too long (length: %d, max: %d): %w", len(credentialID), multisig.MaxCredentialIDLength, multisig.ErrNameTooLong)
	}

	seed := i.seeds.Derive(credentialID)
	address, bump, err := i.deriver.Derive(seed)
	if err != nil {
		return nil, fmt.Errorf("could not derive address: %w", err)
	}

	space := multisig.Space(credentialID)
	preview := multisig.Preview{
		CredentialID: credentialID,
		Seed:         seed,
		Folded:       len(credentialID) > multisig.SeedLength,
		Address:      address,
		Bump:         bump,
		Space:        space,
		Rent:         i.cfg.Rent.MinimumBalance(space),
	}

	return &preview, nil
}

func validate(threshold uint8, credentialID string) error {
	if threshold == 0 {
		return fmt.Errorf("threshold must be at least one: %w", multisig.ErrInvalidConfig)
	}
	if credentialID == "" {
		return fmt.Errorf("credential ID must not be empty: %w", multisig.ErrInvalidConfig)
	}
	if len(credentialID) > multisig.MaxCredentialIDLength {
		return fmt.Errorf("credential ID too long (length: %d, max: %d): %w", len(credentialID), multisig.MaxCredentialIDLength, multisig.ErrNameTooLong)
	}
	return nil
}
