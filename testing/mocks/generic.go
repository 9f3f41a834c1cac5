package mocks

import (
	"errors"
	"io"
	"math/rand"

	"github.com/gagliardetto/solana-go"
	"github.com/rs/zerolog"

	"github.com/optakt/passkey-multisig/models/multisig"
	"github.com/optakt/passkey-multisig/service/rent"
)

// Global variables that can be used for testing. They are non-nil valid values
// for the types commonly needed to test multisig components.
var (
	NoopLogger = zerolog.New(io.Discard)

	GenericError = errors.New("dummy error")

	GenericBytes = []byte(`test`)

	// GenericCredentialID is short enough to be copied into its seed.
	GenericCredentialID = "credential"

	// GenericLongCredentialID looks like a base64url WebAuthn credential ID
	// and is folded into its seed.
	GenericLongCredentialID = "AQIDBAUGBwgJCgsMDQ4PEBESExQVFhcYGRobHB0eHyA"

	GenericProgram = GenericPublicKey(100)

	GenericPayer = GenericPublicKey(101)
)

func GenericPublicKeys(number int) []solana.PublicKey {
	// Ensure consistent deterministic results.
	random := rand.New(rand.NewSource(0))

	var keys []solana.PublicKey
	for i := 0; i < number; i++ {
		var key solana.PublicKey
		_, _ = random.Read(key[:])

		keys = append(keys, key)
	}

	return keys
}

func GenericPublicKey(index int) solana.PublicKey {
	return GenericPublicKeys(index + 1)[index]
}

// GenericAccount returns a freshly initialized account bound to the generic
// credential ID.
func GenericAccount(bump uint8) *multisig.Account {
	account := multisig.Account{
		Threshold:    1,
		Bump:         bump,
		Owner:        GenericPayer,
		CredentialID: GenericCredentialID,
	}

	return &account
}

// GenericRecord returns the host record holding the generic account.
func GenericRecord(bump uint8) *multisig.Record {
	space := multisig.Space(GenericCredentialID)
	record := multisig.Record{
		Lamports: rent.Default().MinimumBalance(space),
		Owner:    GenericProgram,
		Data:     multisig.Encode(GenericAccount(bump), space),
	}

	return &record
}
