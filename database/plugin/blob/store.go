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

package blob

import (
	"fmt"

	"github.com/blinklabs-io/cairn/database/plugin"
	"github.com/blinklabs-io/cairn/database/types"
)

// BlobStore is the interface for storing tag payload blobs
type BlobStore interface {
	plugin.Plugin
	Close() error

	// Transactions
	NewTransaction(bool) types.Txn

	// Payload data
	Get(types.Txn, []byte) ([]byte, error)
	Set(types.Txn, []byte, []byte) error
	Delete(types.Txn, []byte) error

	// Commit timestamp tracking
	GetCommitTimestamp() (int64, error)
	SetCommitTimestamp(types.Txn, int64) error
}

// New creates a new blob store using the requested plugin
func New(
	pluginName string,
	opts plugin.PluginOptions,
) (BlobStore, error) {
	p, err := plugin.StartPlugin(plugin.PluginTypeBlob, pluginName, opts)
	if err != nil {
		return nil, err
	}
	store, ok := p.(BlobStore)
	if !ok {
		return nil, fmt.Errorf(
			"plugin '%s' is not a blob store",
			pluginName,
		)
	}
	return store, nil
}
