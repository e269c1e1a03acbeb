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

// GetTagClass returns a tag class by its class ID
func (d *MetadataStoreSqlite) GetTagClass(
	classId tag.ClassId,
	txn *gorm.DB,
) (*models.TagClass, error) {
	ret := &models.TagClass{}
	if txn == nil {
		txn = d.DB()
	}
	result := txn.First(ret, "class_id = ?", classId.Bytes())
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return ret, nil
}

// GetTagClassNonce returns the number of existing tag classes with the given
// owner and name. The count seeds the nonce for the next class ID derivation.
func (d *MetadataStoreSqlite) GetTagClassNonce(
	owner tag.Address,
	name string,
	txn *gorm.DB,
) (uint64, error) {
	if txn == nil {
		txn = d.DB()
	}
	var count int64
	result := txn.Model(&models.TagClass{}).
		Where("owner = ? AND name = ?", []byte(owner), name).
		Count(&count)
	if result.Error != nil {
		return 0, result.Error
	}
	return uint64(count), nil //nolint:gosec // row counts are non-negative
}

// SetTagClass saves a tag class into the database, or updates it if it
// already exists
func (d *MetadataStoreSqlite) SetTagClass(
	tagClass *models.TagClass,
	txn *gorm.DB,
) error {
	onConflict := clause.OnConflict{
		Columns:   []clause.Column{{Name: "class_id"}},
		UpdateAll: true,
	}
	if txn == nil {
		txn = d.DB()
	}
	result := txn.Clauses(onConflict).Create(tagClass)
	if result.Error != nil {
		return result.Error
	}
	return nil
}
