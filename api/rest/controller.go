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
	"fmt"
	"net/http"
	"net/url"

	"github.com/gagliardetto/solana-go"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/optakt/passkey-multisig/models/multisig"
	"github.com/optakt/passkey-multisig/service/seed"
)

// Controller serves the REST API of the multisig service.
type Controller struct {
	accounts multisig.Initializer
	bank     multisig.Funder
	validate *validator.Validate
}

// NewController creates a controller that creates accounts with the given
// initializer and funds payers through the given funder.
func NewController(accounts multisig.Initializer, bank multisig.Funder) (*Controller, error) {

	validate := validator.New()
	err := validate.RegisterValidation(tagPublicKey, publicKeyValidator)
	if err != nil {
		return nil, fmt.Errorf("could not register public key validator: %w", err)
	}

	c := Controller{
		accounts: accounts,
		bank:     bank,
		validate: validate,
	}

	return &c, nil
}

// Register adds the routes of the controller to the given server.
func (c *Controller) Register(server *echo.Echo) {
	server.POST("/multisig", c.Initialize)
	server.GET("/multisig/:credential", c.Account)
	server.GET("/seed/:credential", c.Seed)
	server.POST("/fund", c.Fund)
}

// Initialize creates the multisig account for a credential ID.
func (c *Controller) Initialize(ctx echo.Context) error {

	var req InitializeRequest
	err := ctx.Bind(&req)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("could not decode request: %s", err))
	}
	err = c.validate.Struct(req)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("invalid request: %s", err))
	}

	payer := solana.MustPublicKeyFromBase58(req.Payer)
	address, account, err := c.accounts.Initialize(req.Threshold, req.CredentialID, payer)
	if err != nil {
		return failure(err)
	}

	res := InitializeResponse{
		Address: address.String(),
		Bump:    account.Bump,
		Seed:    seed.Derive([]byte(account.CredentialID)).Hex(),
		Account: account,
	}

	return ctx.JSON(http.StatusCreated, res)
}

// Account returns the multisig account bound to a credential ID.
func (c *Controller) Account(ctx echo.Context) error {

	credentialID, err := credential(ctx)
	if err != nil {
		return err
	}

	address, account, err := c.accounts.Lookup(credentialID)
	if err != nil {
		return failure(err)
	}

	res := AccountResponse{
		Address: address.String(),
		Account: account,
	}

	return ctx.JSON(http.StatusOK, res)
}

// Seed returns the seed, address and cost of the account for a credential ID
// without creating it.
func (c *Controller) Seed(ctx echo.Context) error {

	credentialID, err := credential(ctx)
	if err != nil {
		return err
	}

	preview, err := c.accounts.Preview(credentialID)
	if err != nil {
		return failure(err)
	}

	res := SeedResponse{
		CredentialID: preview.CredentialID,
		Seed:         preview.Seed.Hex(),
		Folded:       preview.Folded,
		Address:      preview.Address.String(),
		Bump:         preview.Bump,
		Space:        preview.Space,
		Rent:         preview.Rent,
	}

	return ctx.JSON(http.StatusOK, res)
}

// Fund credits lamports to an owner so it can pay for account creation.
func (c *Controller) Fund(ctx echo.Context) error {

	var req FundRequest
	err := ctx.Bind(&req)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("could not decode request: %s", err))
	}
	err = c.validate.Struct(req)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("invalid request: %s", err))
	}

	owner := solana.MustPublicKeyFromBase58(req.Owner)
	balance, err := c.bank.Fund(owner, req.Lamports)
	if err != nil {
		return failure(err)
	}

	res := FundResponse{
		Owner:   owner.String(),
		Balance: balance,
	}

	return ctx.JSON(http.StatusOK, res)
}

// credential returns the credential ID path parameter. The router matches on
// the raw path only when the request path holds escaped characters, so the
// parameter is unescaped in that case alone.
func credential(ctx echo.Context) (string, error) {
	param := ctx.Param("credential")
	if ctx.Request().URL.RawPath == "" {
		return param, nil
	}

	credentialID, err := url.PathUnescape(param)
	if err != nil {
		return "", echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("could not unescape credential ID: %s", err))
	}
	return credentialID, nil
}
