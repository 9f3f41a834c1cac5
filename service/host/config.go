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

package host

import (
	"time"
)

// DefaultConfig is the default configuration for the Badger host.
var DefaultConfig = Config{
	ConflictRetries: 8,
	RetryDelay:      10 * time.Millisecond,
}

// Config is the configuration of a Badger host.
type Config struct {
	ConflictRetries uint
	RetryDelay      time.Duration
}

// WithConflictRetries sets how many times a transaction that failed because
// of a concurrent write to the same keys is retried. A retried creation
// observes the concurrent write, so it never overwrites a record.
func WithConflictRetries(retries uint) func(*Config) {
	return func(cfg *Config) {
		cfg.ConflictRetries = retries
	}
}

// WithRetryDelay sets the base delay between two attempts of a conflicting
// transaction.
func WithRetryDelay(delay time.Duration) func(*Config) {
	return func(cfg *Config) {
		cfg.RetryDelay = delay
	}
}
