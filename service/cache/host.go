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

package cache

import (
	"fmt"

	"github.com/dgraph-io/ristretto"
	"github.com/gagliardetto/solana-go"

	"github.com/optakt/passkey-multisig/models/multisig"
)

const minCounters = 10

// Host wraps a host environment and keeps the records it returns in a cache.
// Records never change once created, so cached entries are never invalidated.
type Host struct {
	multisig.Host
	cache Cache
}

// New wraps the given host with a cache limited to the given size in bytes.
func New(host multisig.Host, size uint64) (*Host, error) {

	// Ristretto recommends keeping ten times as many counters as items in the
	// cache when full. Records are small, so we assume an average size of
	// one kilobyte including overhead. Caches smaller than that still get
	// the counters for a single item.
	counters := int64(size) / 1000 * 10
	if counters < minCounters {
		counters = minCounters
	}

	cache, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: counters,
		MaxCost:     int64(size),
		BufferItems: 64,
	})
	if err != nil {
		return nil, fmt.Errorf("could not initialize cache: %w", err)
	}

	return wrap(host, cache), nil
}

func wrap(host multisig.Host, cache Cache) *Host {

	h := Host{
		Host:  host,
		cache: cache,
	}

	return &h
}

// Record returns the record at the given address, from the cache if possible.
// Missing records are not cached, so a later creation is visible immediately.
func (h *Host) Record(address solana.PublicKey) (*multisig.Record, error) {

	key := address.String()
	cached, ok := h.cache.Get(key)
	if ok {
		return copyRecord(cached.(*multisig.Record)), nil
	}

	record, err := h.Host.Record(address)
	if err != nil {
		return nil, err
	}

	_ = h.cache.Set(key, copyRecord(record), int64(len(record.Data)))

	return record, nil
}

func copyRecord(record *multisig.Record) *multisig.Record {
	dup := *record
	dup.Data = append([]byte(nil), record.Data...)
	return &dup
}
