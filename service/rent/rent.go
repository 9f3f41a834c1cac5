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

package rent

// Default rent parameters of the Solana runtime.
const (
	DefaultLamportsPerByteYear = 3480
	DefaultExemptionThreshold  = 2
	DefaultStorageOverhead     = 128
)

// Calculator computes the balance an account needs to be exempt from rent.
type Calculator struct {
	LamportsPerByteYear uint64
	ExemptionThreshold  uint64
	StorageOverhead     uint64
}

// Default returns a calculator using the default rent parameters.
func Default() Calculator {
	c := Calculator{
		LamportsPerByteYear: DefaultLamportsPerByteYear,
		ExemptionThreshold:  DefaultExemptionThreshold,
		StorageOverhead:     DefaultStorageOverhead,
	}

	return c
}

// MinimumBalance returns the lamports an account of the given data size has
// to hold to be exempt from rent.
func (c Calculator) MinimumBalance(space int) uint64 {
	return (c.StorageOverhead + uint64(space)) * c.LamportsPerByteYear * c.ExemptionThreshold
}
