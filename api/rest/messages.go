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

package rest

import (
	"github.com/optakt/passkey-multisig/models/multisig"
)

// InitializeRequest is the body of a request to create a multisig account.
// Threshold and credential ID are checked by the initializer itself.
type InitializeRequest struct {
	Threshold    uint8  `json:"threshold"`
	CredentialID string `json:"credential_id"`
	Payer        string `json:"payer" validate:"required,pubkey"`
}

// InitializeResponse describes a newly created multisig account.
type InitializeResponse struct {
	Address string            `json:"address"`
	Bump    uint8             `json:"bump"`
	Seed    string            `json:"seed"`
	Account *multisig.Account `json:"account"`
}

// AccountResponse describes an existing multisig account.
type AccountResponse struct {
	Address string            `json:"address"`
	Account *multisig.Account `json:"account"`
}

// SeedResponse describes where the account for a credential ID lives and
// what it costs to create.
type SeedResponse struct {
	CredentialID string `json:"credential_id"`
	Seed         string `json:"seed"`
	Folded       bool   `json:"folded"`
	Address      string `json:"address"`
	Bump         uint8  `json:"bump"`
	Space        int    `json:"space"`
	Rent         uint64 `json:"rent"`
}

// FundRequest is the body of a request to credit lamports to an owner.
type FundRequest struct {
	Owner    string `json:"owner" validate:"required,pubkey"`
	Lamports uint64 `json:"lamports" validate:"required"`
}

// FundResponse holds the balance of an owner after funding.
type FundResponse struct {
	Owner   string `json:"owner"`
	Balance uint64 `json:"balance"`
}
