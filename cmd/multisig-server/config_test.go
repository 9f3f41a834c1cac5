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

package main

import (
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/hashicorp/go-multierror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/optakt/passkey-multisig/service/initializer"
	"github.com/optakt/passkey-multisig/testing/mocks"
)

func TestLoadConfig(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		cfg, err := LoadConfig()
		require.NoError(t, err)

		assert.Equal(t, "info", cfg.Level)
		assert.Equal(t, uint16(8080), cfg.Port)
		assert.Equal(t, uint16(9010), cfg.MetricsPort)
		assert.Equal(t, initializer.DefaultProgramID, cfg.Program)
		assert.NoError(t, cfg.Validate())
	})

	t.Run("from environment", func(t *testing.T) {
		t.Setenv("MULTISIG_PORT", "8888")
		t.Setenv("MULTISIG_MEMORY", "true")
		t.Setenv("MULTISIG_PROGRAM", mocks.GenericProgram.String())

		cfg, err := LoadConfig()
		require.NoError(t, err)

		assert.Equal(t, uint16(8888), cfg.Port)
		assert.True(t, cfg.Memory)
		assert.Equal(t, mocks.GenericProgram, cfg.Program)
	})

	t.Run("invalid program ID", func(t *testing.T) {
		t.Setenv("MULTISIG_PROGRAM", "not-base58-0OIl")

		_, err := LoadConfig()
		assert.Error(t, err)
	})
}

func TestConfig_Validate(t *testing.T) {
	cfg := Config{
		Level:       "verbose",
		Port:        8080,
		MetricsPort: 8080,
		Program:     solana.PublicKey{},
	}

	err := cfg.Validate()
	require.Error(t, err)

	var merr *multierror.Error
	require.ErrorAs(t, err, &merr)
	assert.Len(t, merr.Errors, 5)
}
