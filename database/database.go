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

package database

import (
	"errors"
	"io"
	"log/slog"

	"github.com/blinklabs-io/cairn/database/plugin"
	"github.com/blinklabs-io/cairn/database/plugin/blob"
	"github.com/blinklabs-io/cairn/database/plugin/metadata"
	"github.com/prometheus/client_golang/prometheus"

	// Register store plugins
	_ "github.com/blinklabs-io/cairn/database/plugin/blob/badger"
	_ "github.com/blinklabs-io/cairn/database/plugin/metadata/sqlite"
)

const (
	DefaultBlobPlugin     = "badger"
	DefaultMetadataPlugin = "sqlite"
)

// Config contains the configuration for a Database
type Config struct {
	Logger         *slog.Logger
	PromRegistry   prometheus.Registerer
	DataDir        string
	BlobPlugin     string
	MetadataPlugin string
}

type Database struct {
	logger   *slog.Logger
	blob     blob.BlobStore
	metadata metadata.MetadataStore
	dataDir  string
}

// Blob returns the underlying blob store instance
func (d *Database) Blob() blob.BlobStore {
	return d.blob
}

// DataDir returns the path to the data directory used for storage
func (d *Database) DataDir() string {
	return d.dataDir
}

// Logger returns the logger instance
func (d *Database) Logger() *slog.Logger {
	return d.logger
}

// Metadata returns the underlying metadata store instance
func (d *Database) Metadata() metadata.MetadataStore {
	return d.metadata
}

// Transaction starts a new database transaction and returns a handle to it
func (d *Database) Transaction(readWrite bool) *Txn {
	return NewTxn(d, readWrite)
}

// Close cleans up the database connections
func (d *Database) Close() error {
	var err error
	// Close metadata
	metadataErr := d.Metadata().Close()
	err = errors.Join(err, metadataErr)
	// Close blob
	blobErr := d.Blob().Close()
	err = errors.Join(err, blobErr)
	return err
}

func (d *Database) init() error {
	if d.logger == nil {
		// Create logger to throw away logs
		// We do this so we don't have to add guards around every log operation
		d.logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	// Check commit timestamp
	if err := d.checkCommitTimestamp(); err != nil {
		return err
	}
	return nil
}

// New creates a new database instance with optional persistence using the
// provided data directory
func New(cfg Config) (*Database, error) {
	if cfg.BlobPlugin == "" {
		cfg.BlobPlugin = DefaultBlobPlugin
	}
	if cfg.MetadataPlugin == "" {
		cfg.MetadataPlugin = DefaultMetadataPlugin
	}
	pluginOpts := plugin.PluginOptions{
		Logger:       cfg.Logger,
		PromRegistry: cfg.PromRegistry,
		DataDir:      cfg.DataDir,
	}
	metadataDb, err := metadata.New(cfg.MetadataPlugin, pluginOpts)
	if err != nil {
		return nil, err
	}
	blobDb, err := blob.New(cfg.BlobPlugin, pluginOpts)
	if err != nil {
		// Don't leave the metadata store open on partial failure
		_ = metadataDb.Close()
		return nil, err
	}
	db := &Database{
		logger:   cfg.Logger,
		blob:     blobDb,
		metadata: metadataDb,
		dataDir:  cfg.DataDir,
	}
	if err := db.init(); err != nil {
		// Database is available for recovery, so return it with error
		return db, err
	}
	return db, nil
}
