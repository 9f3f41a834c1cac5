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
	"errors"

	"github.com/gagliardetto/solana-go"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/optakt/passkey-multisig/models/multisig"
)

const (
	namespaceMultisig = "multisig"
	labelReason       = "reason"
)

// Reasons for which an initialization can be rejected.
const (
	ReasonInvalidConfig      = "invalid_config"
	ReasonNameTooLong        = "name_too_long"
	ReasonAlreadyInitialized = "already_initialized"
	ReasonInsufficientFunds  = "insufficient_funds"
	ReasonFailure            = "failure"
)

// MetricsInitializer wraps an initializer and records metrics for the
// accounts it creates and the requests it rejects.
type MetricsInitializer struct {
	accounts multisig.Initializer

	initialized prometheus.Counter
	folded      prometheus.Counter
	rejected    *prometheus.CounterVec
}

// NewMetricsInitializer creates a new initializer that registers its counters
// with the given registerer.
func NewMetricsInitializer(reg prometheus.Registerer, accounts multisig.Initializer) *MetricsInitializer {
	factory := promauto.With(reg)

	initializedOpts := prometheus.CounterOpts{
		Name:      "initialized_accounts",
		Namespace: namespaceMultisig,
		Help:      "number of initialized multisig accounts",
	}
	initialized := factory.NewCounter(initializedOpts)

	foldedOpts := prometheus.CounterOpts{
		Name:      "folded_seeds",
		Namespace: namespaceMultisig,
		Help:      "number of initialized accounts whose seed was folded from a long credential ID",
	}
	folded := factory.NewCounter(foldedOpts)

	rejectedOpts := prometheus.CounterOpts{
		Name:      "rejected_initializations",
		Namespace: namespaceMultisig,
		Help:      "number of rejected initializations by reason",
	}
	rejected := factory.NewCounterVec(rejectedOpts, []string{labelReason})

	m := MetricsInitializer{
		accounts: accounts,

		initialized: initialized,
		folded:      folded,
		rejected:    rejected,
	}

	return &m
}

// Initialize creates the account for the given credential ID.
func (m *MetricsInitializer) Initialize(threshold uint8, credentialID string, payer solana.PublicKey) (solana.PublicKey, *multisig.Account, error) {
	address, account, err := m.accounts.Initialize(threshold, credentialID, payer)
	if err != nil {
		m.rejected.With(prometheus.Labels{labelReason: reason(err)}).Inc()
		return solana.PublicKey{}, nil, err
	}

	m.initialized.Inc()
	if len(credentialID) > multisig.SeedLength {
		m.folded.Inc()
	}

	return address, account, nil
}

// Lookup returns the address and the account bound to the given credential ID.
func (m *MetricsInitializer) Lookup(credentialID string) (solana.PublicKey, *multisig.Account, error) {
	return m.accounts.Lookup(credentialID)
}

// Preview computes where the account for the given credential ID lives.
func (m *MetricsInitializer) Preview(credentialID string) (*multisig.Preview, error) {
	return m.accounts.Preview(credentialID)
}

func reason(err error) string {
	switch {
	case errors.Is(err, multisig.ErrInvalidConfig):
		return ReasonInvalidConfig
	case errors.Is(err, multisig.ErrNameTooLong):
		return ReasonNameTooLong
	case errors.Is(err, multisig.ErrAlreadyInitialized):
		return ReasonAlreadyInitialized
	case errors.Is(err, multisig.ErrInsufficientFunds):
		return ReasonInsufficientFunds
	default:
		return ReasonFailure
	}
}
