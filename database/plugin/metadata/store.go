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

package metadata

import (
	"fmt"

	"github.com/blinklabs-io/cairn/database/models"
	"github.com/blinklabs-io/cairn/database/plugin"
	"github.com/blinklabs-io/cairn/tag"
	"gorm.io/gorm"
)

type MetadataStore interface {
	plugin.Plugin

	// Database
	Close() error
	DB() *gorm.DB
	GetCommitTimestamp() (int64, error)
	SetCommitTimestamp(*gorm.DB, int64) error
	Transaction() *gorm.DB

	// Tag classes
	GetTagClass(
		tag.ClassId,
		*gorm.DB,
	) (*models.TagClass, error)
	GetTagClassNonce(
		tag.Address, // owner
		string, // name
		*gorm.DB,
	) (uint64, error)
	SetTagClass(
		*models.TagClass,
		*gorm.DB,
	) error

	// Tags
	GetTag(
		tag.TagId,
		*gorm.DB,
	) (*models.Tag, error)
	SetTag(
		*models.Tag,
		*gorm.DB,
	) error
	DeleteTag(
		*models.Tag,
		*gorm.DB,
	) error
}

// New creates a new metadata store using the requested plugin
func New(
	pluginName string,
	opts plugin.PluginOptions,
) (MetadataStore, error) {
	p, err := plugin.StartPlugin(plugin.PluginTypeMetadata, pluginName, opts)
	if err != nil {
		return nil, err
	}
	store, ok := p.(MetadataStore)
	if !ok {
		return nil, fmt.Errorf(
			"plugin '%s' is not a metadata store",
			pluginName,
		)
	}
	return store, nil
}
