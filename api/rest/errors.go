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
	"errors"
	"net/http"

	"github.com/gagliardetto/solana-go"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/optakt/passkey-multisig/models/multisig"
)

const tagPublicKey = "pubkey"

// status maps the errors returned by the initializer and the host to the
// HTTP status code that describes them best.
func status(err error) int {
	switch {
	case errors.Is(err, multisig.ErrInvalidConfig), errors.Is(err, multisig.ErrNameTooLong):
		return http.StatusBadRequest
	case errors.Is(err, multisig.ErrAlreadyInitialized), errors.Is(err, multisig.ErrCredentialMismatch):
		return http.StatusConflict
	case errors.Is(err, multisig.ErrInsufficientFunds):
		return http.StatusPaymentRequired
	case errors.Is(err, multisig.ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func failure(err error) *echo.HTTPError {
	return echo.NewHTTPError(status(err), err.Error())
}

func publicKeyValidator(fl validator.FieldLevel) bool {
	_, err := solana.PublicKeyFromBase58(fl.Field().String())
	return err == nil
}
