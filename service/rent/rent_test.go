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

package rent_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/optakt/passkey-multisig/service/rent"
)

func TestCalculator_MinimumBalance(t *testing.T) {
	tests := []struct {
		desc  string
		calc  rent.Calculator
		space int
		want  uint64
	}{
		{
			desc:  "empty account pays for overhead",
			calc:  rent.Default(),
			space: 0,
			want:  890880,
		},
		{
			desc:  "smallest multisig account",
			calc:  rent.Default(),
			space: 72,
			want:  1392000,
		},
		{
			desc:  "largest multisig account",
			calc:  rent.Default(),
			space: 135,
			want:  1830480,
		},
		{
			desc:  "free rent",
			calc:  rent.Calculator{},
			space: 135,
			want:  0,
		},
	}

	for _, test := range tests {
		test := test
		t.Run(test.desc, func(t *testing.T) {
			t.Parallel()

			got := test.calc.MinimumBalance(test.space)

			assert.Equal(t, test.want, got)
		})
	}
}
