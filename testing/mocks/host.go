package mocks

import (
	"testing"

	"github.com/gagliardetto/solana-go"

	"github.com/optakt/passkey-multisig/models/multisig"
)

type Host struct {
	CreateFunc  func(address solana.PublicKey, payer solana.PublicKey, record *multisig.Record) error
	RecordFunc  func(address solana.PublicKey) (*multisig.Record, error)
	BalanceFunc func(owner solana.PublicKey) (uint64, error)
	FundFunc    func(owner solana.PublicKey, lamports uint64) (uint64, error)
}

func BaselineHost(t *testing.T) *Host {
	t.Helper()

	h := Host{
		CreateFunc: func(solana.PublicKey, solana.PublicKey, *multisig.Record) error {
			return nil
		},
		RecordFunc: func(solana.PublicKey) (*multisig.Record, error) {
			return GenericRecord(254), nil
		},
		BalanceFunc: func(solana.PublicKey) (uint64, error) {
			return 0, nil
		},
		FundFunc: func(_ solana.PublicKey, lamports uint64) (uint64, error) {
			return lamports, nil
		},
	}

	return &h
}

func (h *Host) Create(address solana.PublicKey, payer solana.PublicKey, record *multisig.Record) error {
	return h.CreateFunc(address, payer, record)
}

func (h *Host) Record(address solana.PublicKey) (*multisig.Record, error) {
	return h.RecordFunc(address)
}

func (h *Host) Balance(owner solana.PublicKey) (uint64, error) {
	return h.BalanceFunc(owner)
}

func (h *Host) Fund(owner solana.PublicKey, lamports uint64) (uint64, error) {
	return h.FundFunc(owner, lamports)
}
