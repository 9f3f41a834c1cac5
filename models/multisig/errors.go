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
	"errors"
)

var (
	ErrInvalidConfig      = errors.New("invalid multisig configuration")
	ErrNameTooLong        = errors.New("credential ID too long")
	ErrAlreadyInitialized = errors.New("account already initialized")
	ErrNotFound           = errors.New("account not found")
	ErrInsufficientFunds  = errors.New("insufficient funds for rent")
	ErrAddressMismatch    = errors.New("account does not match its address")
	ErrInvalidData        = errors.New("invalid account data")
	ErrCredentialMismatch = errors.New("account bound to another credential ID")
)
