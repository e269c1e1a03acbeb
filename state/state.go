// Copyright 2025 Blink Labs Software
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package state

import (
	"errors"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/blinklabs-io/cairn/database"
	"github.com/blinklabs-io/cairn/event"
	"github.com/prometheus/client_golang/prometheus"
)

// StateConfig contains the configuration for the tag store state
type StateConfig struct {
	Logger         *slog.Logger
	DataDir        string
	EventBus       *event.EventBus
	PromRegistry   prometheus.Registerer
	AgentResolver  AgentResolver
	NowFunc        func() time.Time
	BlobPlugin     string
	MetadataPlugin string
}

// State provides the tag store semantics on top of the database layer:
// schema-checked tag class registration, permissioned tag writes, and
// expiry-aware reads.
type State struct {
	sync.RWMutex
	config  StateConfig
	db      *database.Database
	metrics stateMetrics
}

func NewState(cfg StateConfig) (*State, error) {
	if cfg.Logger == nil {
		// Create logger to throw away logs
		// We do this so we don't have to add guards around every log operation
		cfg.Logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	if cfg.NowFunc == nil {
		cfg.NowFunc = time.Now
	}
	s := &State{
		config: cfg,
	}
	// Init metrics
	s.metrics.init(cfg.PromRegistry)
	// Load database
	db, err := database.New(
		database.Config{
			Logger:         cfg.Logger,
			PromRegistry:   cfg.PromRegistry,
			DataDir:        cfg.DataDir,
			BlobPlugin:     cfg.BlobPlugin,
			MetadataPlugin: cfg.MetadataPlugin,
		},
	)
	if db == nil {
		if err != nil {
			return nil, err
		}
		return nil, errors.New("empty database returned")
	}
	s.db = db
	if err != nil {
		var dbErr database.CommitTimestampError
		if !errors.As(err, &dbErr) {
			return nil, err
		}
		// A timestamp mismatch means the process died between the blob and
		// metadata commits. The blob store commits first, so at worst it
		// holds payloads with no metadata row, which are unreachable.
		s.config.Logger.Warn(
			"commit timestamp mismatch, continuing with orphaned blob data",
			"error", err,
			"component", "state",
		)
	}
	return s, nil
}

// Close shuts down the underlying database
func (s *State) Close() error {
	return s.db.Close()
}

// Database returns the underlying database instance
func (s *State) Database() *database.Database {
	return s.db
}

// now returns the current time via the configured clock
func (s *State) now() time.Time {
	return s.config.NowFunc()
}

func (s *State) countDenied(err error) {
	if errors.Is(err, ErrPermissionDenied) {
		s.metrics.permissionDenied.Inc()
	}
}
