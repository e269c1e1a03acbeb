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

package sqlite

import (
	"errors"

	"github.com/blinklabs-io/cairn/database/models"
	"github.com/blinklabs-io/cairn/tag"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GetTag returns a tag metadata row by its tag ID. The tag payload data is
// not included, it lives in the blob store.
func (d *MetadataStoreSqlite) GetTag(
	tagId tag.TagId,
	txn *gorm.DB,
) (*models.Tag, error) {
	ret := &models.Tag{}
	if txn == nil {
		txn = d.DB()
	}
	result := txn.First(ret, "tag_id = ?", tagId.Bytes())
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return ret, nil
}

// SetTag saves a tag metadata row into the database, or updates it if it
// already exists
func (d *MetadataStoreSqlite) SetTag(
	tagItem *models.Tag,
	txn *gorm.DB,
) error {
	onConflict := clause.OnConflict{
		Columns:   []clause.Column{{Name: "tag_id"}},
		UpdateAll: true,
	}
	if txn == nil {
		txn = d.DB()
	}
	result := txn.Clauses(onConflict).Create(tagItem)
	if result.Error != nil {
		return result.Error
	}
	return nil
}

// DeleteTag removes a tag metadata row from the database
func (d *MetadataStoreSqlite) DeleteTag(
	tagItem *models.Tag,
	txn *gorm.DB,
) error {
	if txn == nil {
		txn = d.DB()
	}
	result := txn.Where("tag_id = ?", tagItem.TagId).
		Delete(&models.Tag{})
	if result.Error != nil {
		return result.Error
	}
	return nil
}
