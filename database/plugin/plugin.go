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

package plugin

import (
	"fmt"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
)

type PluginType int

const (
	PluginTypeBlob PluginType = iota
	PluginTypeMetadata
)

// PluginTypeName returns the human-readable name for a plugin type
func PluginTypeName(pluginType PluginType) string {
	switch pluginType {
	case PluginTypeBlob:
		return "blob"
	case PluginTypeMetadata:
		return "metadata"
	default:
		return "unknown"
	}
}

type Plugin interface {
	Start() error
	Stop() error
}

// PluginOptions carries the common configuration passed to every plugin
// constructor
type PluginOptions struct {
	Logger       *slog.Logger
	PromRegistry prometheus.Registerer
	DataDir      string
}

// PluginEntry describes a registered plugin implementation
type PluginEntry struct {
	NewFunc     func(PluginOptions) (Plugin, error)
	Name        string
	Description string
	Type        PluginType
}

var pluginEntries []PluginEntry

// Register adds a plugin to the registry. It's normally called from a
// plugin package's init().
func Register(entry PluginEntry) {
	pluginEntries = append(pluginEntries, entry)
}

// GetPlugins returns the registered plugins of the given type
func GetPlugins(pluginType PluginType) []PluginEntry {
	var ret []PluginEntry
	for _, entry := range pluginEntries {
		if entry.Type == pluginType {
			ret = append(ret, entry)
		}
	}
	return ret
}

// GetPlugin returns the registered plugin matching the given type and name
func GetPlugin(pluginType PluginType, name string) *PluginEntry {
	for _, entry := range pluginEntries {
		if entry.Type == pluginType && entry.Name == name {
			return &entry
		}
	}
	return nil
}

// StartPlugin instantiates and starts the named plugin
func StartPlugin(
	pluginType PluginType,
	pluginName string,
	opts PluginOptions,
) (Plugin, error) {
	entry := GetPlugin(pluginType, pluginName)
	if entry == nil {
		return nil, fmt.Errorf(
			"%s plugin '%s' not found",
			PluginTypeName(pluginType),
			pluginName,
		)
	}
	p, err := entry.NewFunc(opts)
	if err != nil {
		return nil, fmt.Errorf(
			"failed to create %s plugin '%s': %w",
			PluginTypeName(pluginType),
			pluginName,
			err,
		)
	}
	if err := p.Start(); err != nil {
		return nil, fmt.Errorf(
			"failed to start %s plugin '%s': %w",
			PluginTypeName(pluginType),
			pluginName,
			err,
		)
	}
	return p, nil
}
