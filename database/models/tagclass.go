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

// TagClass is the metadata row for a registered tag class. FieldNames
// holds the delimiter-joined name list and FieldTypes the compact type
// code sequence; both are written once at creation and never updated.
type TagClass struct {
	ID          uint   `gorm:"primarykey"`
	ClassId     []byte `gorm:"index;not null;unique;size:32"`
	Name        string `gorm:"index;not null;size:255"`
	FieldNames  string `gorm:"not null"`
	FieldTypes  []byte `gorm:"not null"`
	Description string
	Flags       types.Uint64 `gorm:"not null"`
	Owner       []byte       `gorm:"index;not null"`
	Agent       []byte
	Nonce       types.Uint64 `gorm:"not null"`
}

func (TagClass) TableName() string {
	return "tag_class"
}

// Decode converts the row into its domain form
func (c *TagClass) Decode() (*tag.TagClass, error) {
	fieldDefs, err := tag.DecodeFieldDefs(c.FieldTypes)
	if err != nil {
		return nil, err
	}
	return &tag.TagClass{
		ClassId:     tag.ClassIdFromBytes(c.ClassId),
		Name:        c.Name,
		FieldNames:  tag.SplitFieldNames(c.FieldNames),
		FieldDefs:   fieldDefs,
		Description: c.Description,
		Flags:       uint64(c.Flags),
		Owner:       tag.Address(c.Owner),
		Agent:       tag.Address(c.Agent),
		Nonce:       uint64(c.Nonce),
	}, nil
}

// TagClassFromDomain converts a domain tag class into its row form
func TagClassFromDomain(c *tag.TagClass) (*TagClass, error) {
	fieldTypes, err := tag.EncodeFieldDefs(c.FieldDefs)
	if err != nil {
		return nil, err
	}
	return &TagClass{
		ClassId:     c.ClassId.Bytes(),
		Name:        c.Name,
		FieldNames:  tag.JoinFieldNames(c.FieldNames),
		FieldTypes:  fieldTypes,
		Description: c.Description,
		Flags:       types.Uint64(c.Flags),
		Owner:       c.Owner,
		Agent:       c.Agent,
		Nonce:       types.Uint64(c.Nonce),
	}, nil
}
