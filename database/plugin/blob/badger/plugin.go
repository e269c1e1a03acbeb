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

package badger

import (
	"github.com/blinklabs-io/cairn/database/plugin"
)

// Default tuning values for BadgerDB (in bytes)
const (
	DefaultBlockCacheSize   = 805306368 // 768MB
	DefaultIndexCacheSize   = 268435456 // 256MB
	DefaultValueLogFileSize = 268435456 // 256MB
	DefaultMemTableSize     = 67108864  // 64MB
	DefaultValueThreshold   = 1048576   // 1MB
)

// Register plugin
func init() {
	plugin.Register(
		plugin.PluginEntry{
			Type:        plugin.PluginTypeBlob,
			Name:        "badger",
			Description: "BadgerDB local key-value store",
			NewFunc: func(opts plugin.PluginOptions) (plugin.Plugin, error) {
				return New(
					WithLogger(opts.Logger),
					WithPromRegistry(opts.PromRegistry),
					WithDataDir(opts.DataDir),
				)
			},
		},
	)
}
