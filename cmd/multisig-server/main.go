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
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/dgraph-io/badger/v2"
	"github.com/gagliardetto/solana-go"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog"
	"github.com/spf13/pflag"
	"github.com/ziflex/lecho/v2"
	"golang.org/x/sync/errgroup"

	"github.com/optakt/passkey-multisig/api/rest"
	"github.com/optakt/passkey-multisig/codec/zbor"
	"github.com/optakt/passkey-multisig/models/multisig"
	"github.com/optakt/passkey-multisig/service/cache"
	"github.com/optakt/passkey-multisig/service/host"
	"github.com/optakt/passkey-multisig/service/initializer"
	"github.com/optakt/passkey-multisig/service/memory"
	"github.com/optakt/passkey-multisig/service/metrics"
	"github.com/optakt/passkey-multisig/service/storage"
)

const (
	success = 0
	failure = 1
)

func main() {
	os.Exit(run())
}

func run() int {

	// Signal catching for clean shutdown.
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt)

	// Configuration defaults come from the environment.
	cfg, err := LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "could not load configuration: %s\n", err)
		return failure
	}

	// Command line parameter initialization.
	var (
		flagProgram string
	)

	pflag.StringVarP(&cfg.Dir, "dir", "d", cfg.Dir, "directory for the host database")
	pflag.BoolVarP(&cfg.Memory, "memory", "m", cfg.Memory, "keep accounts in memory instead of a database")
	pflag.StringVarP(&cfg.Level, "level", "l", cfg.Level, "log output level")
	pflag.Uint16VarP(&cfg.Port, "port", "p", cfg.Port, "port to host the REST API on")
	pflag.Uint16Var(&cfg.MetricsPort, "metrics-port", cfg.MetricsPort, "port to expose metrics on")
	pflag.StringVar(&flagProgram, "program", cfg.Program.String(), "program ID under which account addresses are derived")
	pflag.Uint64VarP(&cfg.CacheSize, "cache", "e", cfg.CacheSize, "maximum cache size for account reads in bytes")
	pflag.UintVar(&cfg.ConflictRetries, "conflict-retries", cfg.ConflictRetries, "number of retries for conflicting database transactions")

	pflag.Parse()

	program, err := solana.PublicKeyFromBase58(flagProgram)
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid program ID (program: %s): %s\n", flagProgram, err)
		return failure
	}
	cfg.Program = program

	err = cfg.Validate()
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid configuration: %s\n", err)
		return failure
	}

	// Logger initialization.
	zerolog.TimestampFunc = func() time.Time { return time.Now().UTC() }
	log := zerolog.New(os.Stderr).With().Timestamp().Logger().Level(zerolog.DebugLevel)
	level, _ := zerolog.ParseLevel(cfg.Level)
	log = log.Level(level)
	elog := lecho.From(log)

	// Metrics registry shared by all components.
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	reg.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	// Host initialization, either on disk or in memory.
	var store multisig.Host
	if cfg.Memory {
		store = memory.New(log)
	} else {
		db, err := badger.Open(multisig.DefaultOptions(cfg.Dir))
		if err != nil {
			log.Error().Str("dir", cfg.Dir).Err(err).Msg("could not open host database")
			return failure
		}
		defer db.Close()

		err = metrics.RegisterBadgerMetrics(reg)
		if err != nil {
			log.Error().Err(err).Msg("could not register badger metrics")
			return failure
		}

		codec := metrics.NewCodec(reg, zbor.NewCodec())
		lib := storage.New(codec)
		store = host.New(log, db, lib, host.WithConflictRetries(cfg.ConflictRetries))
	}

	cached, err := cache.New(store, cfg.CacheSize)
	if err != nil {
		log.Error().Err(err).Msg("could not initialize record cache")
		return failure
	}

	accounts := initializer.NewMetricsInitializer(reg,
		initializer.New(log, cached, initializer.WithProgramID(cfg.Program)),
	)
	ctrl, err := rest.NewController(accounts, cached)
	if err != nil {
		log.Error().Err(err).Msg("could not initialize controller")
		return failure
	}

	server := echo.New()
	server.HideBanner = true
	server.HidePort = true
	server.Logger = elog
	server.Use(lecho.Middleware(lecho.Config{Logger: elog}))
	ctrl.Register(server)

	monitor := metrics.NewServer(log, fmt.Sprint(":", cfg.MetricsPort), reg)

	// This section launches the API and metrics servers in their own
	// goroutines. Afterwards, we wait for an interrupt signal or for one of
	// them to fail in order to proceed with the shutdown.
	group, ctx := errgroup.WithContext(context.Background())
	group.Go(func() error {
		log.Info().Uint16("port", cfg.Port).Str("program", cfg.Program.String()).Msg("Multisig Server starting")
		err := server.Start(fmt.Sprint(":", cfg.Port))
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("could not run API server: %w", err)
		}
		log.Info().Msg("Multisig Server stopped")
		return nil
	})
	group.Go(monitor.Start)

	select {
	case <-sig:
		log.Info().Msg("Multisig Server stopping")
	case <-ctx.Done():
		log.Warn().Msg("Multisig Server failed")
	}
	go func() {
		<-sig
		log.Warn().Msg("forcing exit")
		os.Exit(1)
	}()

	// The following code starts a shut down with a certain timeout and makes
	// sure that both servers are shutting down within the allocated shutdown
	// time. Otherwise, we will force the shutdown and log an error.
	shutdown, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	result := success
	err = server.Shutdown(shutdown)
	if err != nil {
		log.Error().Err(err).Msg("could not shut down API server")
		result = failure
	}
	err = monitor.Stop(shutdown)
	if err != nil {
		log.Error().Err(err).Msg("could not shut down metrics server")
		result = failure
	}

	err = group.Wait()
	if err != nil {
		log.Error().Err(err).Msg("server failed")
		return failure
	}

	return result
}
