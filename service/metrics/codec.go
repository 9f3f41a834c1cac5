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

package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/optakt/passkey-multisig/models/multisig"
)

const (
	namespaceMultisig = "multisig"
	labelType         = "type"
	labelStage        = "stage"
)

// Compressor is a codec that exposes its encoding and compression stages
// separately.
type Compressor interface {
	multisig.Codec
	Encode(value interface{}) ([]byte, error)
	Compress(data []byte) ([]byte, error)
}

// Codec wraps a compressor and records the size of every value it marshals,
// before and after compression.
type Codec struct {
	Compressor
	size *prometheus.HistogramVec
}

// NewCodec wraps the given compressor and registers its histogram with the
// given registerer.
func NewCodec(reg prometheus.Registerer, codec Compressor) *Codec {
	sizeOpts := prometheus.HistogramOpts{
		Name:      "stored_value_bytes",
		Namespace: namespaceMultisig,
		Help:      "size of values written to the host store",
		Buckets:   prometheus.ExponentialBuckets(8, 2, 10),
	}
	size := promauto.With(reg).NewHistogramVec(sizeOpts, []string{labelType, labelStage})

	c := Codec{
		Compressor: codec,
		size:       size,
	}

	return &c
}

// Marshal encodes and compresses the given value.
func (c *Codec) Marshal(value interface{}) ([]byte, error) {
	data, err := c.Encode(value)
	if err != nil {
		return nil, fmt.Errorf("could not encode value: %w", err)
	}
	compressed, err := c.Compress(data)
	if err != nil {
		return nil, fmt.Errorf("could not compress data: %w", err)
	}

	name := "unknown"
	switch value.(type) {
	case uint64:
		name = "balance"
	case *multisig.Record:
		name = "record"
	}
	c.size.With(prometheus.Labels{labelType: name, labelStage: "encoded"}).Observe(float64(len(data)))
	c.size.With(prometheus.Labels{labelType: name, labelStage: "compressed"}).Observe(float64(len(compressed)))

	return compressed, nil
}
