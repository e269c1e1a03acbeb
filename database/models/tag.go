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

package models

import (
	"github.com/blinklabs-io/cairn/database/types"
	"github.com/blinklabs-io/cairn/tag"
)

// Tag is the metadata row for a tag record. The payload bytes live in the
// blob store under the tag id; this row carries identity, expiration, and
// flags so that existence checks never touch the blob store.
type Tag struct {
	ID          uint         `gorm:"primarykey"`
	TagId       []byte       `gorm:"index;not null;unique;size:32"`
	ClassId     []byte       `gorm:"index;not null;size:32"`
	Address     []byte       `gorm:"not null"`
	SubId       types.Uint64 `gorm:"not null"`
	ExpiredTime types.Uint64 `gorm:"not null"`
	Flags       types.Uint64 `gorm:"not null"`
	DataSize    uint32       `gorm:"not null"`
}

func (Tag) TableName() string {
	return "tag"
}

// Decode converts the row into its domain form. Data is left empty; the
// payload is fetched from the blob store separately.
func (t *Tag) Decode() *tag.Tag {
	return &tag.Tag{
		TagId:   tag.TagIdFromBytes(t.TagId),
		ClassId: tag.ClassIdFromBytes(t.ClassId),
		Object: tag.TagObject{
			Address: tag.Address(t.Address),
			SubId:   uint64(t.SubId),
		},
		ExpiredTime: uint64(t.ExpiredTime),
		Flags:       uint64(t.Flags),
	}
}

// TagFromDomain converts a domain tag into its row form
func TagFromDomain(t *tag.Tag) *Tag {
	return &Tag{
		TagId:       t.TagId.Bytes(),
		ClassId:     t.ClassId.Bytes(),
		Address:     t.Object.Address,
		SubId:       types.Uint64(t.Object.SubId),
		ExpiredTime: types.Uint64(t.ExpiredTime),
		Flags:       types.Uint64(t.Flags),
		DataSize:    uint32(len(t.Data)), //nolint:gosec
	}
}
