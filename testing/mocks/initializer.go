package mocks

import (
	"testing"

	"github.com/gagliardetto/solana-go"

	"github.com/optakt/passkey-multisig/models/multisig"
)

type Initializer struct {
	InitializeFunc func(threshold uint8, credentialID string, payer solana.PublicKey) (solana.PublicKey, *multisig.Account, error)
	LookupFunc     func(credentialID string) (solana.PublicKey, *multisig.Account, error)
	PreviewFunc    func(credentialID string) (*multisig.Preview, error)
}

func BaselineInitializer(t *testing.T) *Initializer {
	t.Helper()

	i := Initializer{
		InitializeFunc: func(uint8, string, solana.PublicKey) (solana.PublicKey, *multisig.Account, error) {
			return GenericPublicKey(0), GenericAccount(254), nil
		},
		LookupFunc: func(string) (solana.PublicKey, *multisig.Account, error) {
			return GenericPublicKey(0), GenericAccount(254), nil
		},
		PreviewFunc: func(credentialID string) (*multisig.Preview, error) {
			preview := multisig.Preview{
				CredentialID: credentialID,
				Address:      GenericPublicKey(0),
				Bump:         254,
				Space:        multisig.Space(credentialID),
			}
			return &preview, nil
		},
	}

	return &i
}

func (i *Initializer) Initialize(threshold uint8, credentialID string, payer solana.PublicKey) (solana.PublicKey, *multisig.Account, error) {
	return i.InitializeFunc(threshold, credentialID, payer)
}

func (i *Initializer) Lookup(credentialID string) (solana.PublicKey, *multisig.Account, error) {
	return i.LookupFunc(credentialID)
}

func (i *Initializer) Preview(credentialID string) (*multisig.Preview, error) {
	return i.PreviewFunc(credentialID)
}
