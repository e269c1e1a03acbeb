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
	"github.com/blinklabs-io/cairn/database/models"
	"github.com/blinklabs-io/cairn/database/types"
	"github.com/blinklabs-io/cairn/tag"
)

// TagClassByIdTxn returns the tag class with the given class ID within a
// transaction. Returns nil with no error when the class does not exist.
func TagClassByIdTxn(txn *Txn, classId tag.ClassId) (*tag.TagClass, error) {
	if txn == nil {
		return nil, types.ErrNilTxn
	}
	tmpClass, err := txn.DB().Metadata().GetTagClass(classId, txn.Metadata())
	if err != nil {
		return nil, err
	}
	if tmpClass == nil {
		return nil, nil
	}
	return tmpClass.Decode()
}

// TagClassById returns the tag class with the given class ID
func TagClassById(db *Database, classId tag.ClassId) (*tag.TagClass, error) {
	var ret *tag.TagClass
	txn := db.Transaction(false)
	err := txn.Do(func(txn *Txn) error {
		var err error
		ret, err = TagClassByIdTxn(txn, classId)
		return err
	})
	return ret, err
}

// TagClassNonceTxn returns the nonce to use when deriving a class ID for a
// new tag class with the given owner and name
func TagClassNonceTxn(txn *Txn, owner tag.Address, name string) (uint64, error) {
	if txn == nil {
		return 0, types.ErrNilTxn
	}
	return txn.DB().Metadata().GetTagClassNonce(owner, name, txn.Metadata())
}

// TagClassSetTxn saves a tag class within a transaction
func TagClassSetTxn(txn *Txn, tagClass *tag.TagClass) error {
	if txn == nil {
		return types.ErrNilTxn
	}
	tmpClass, err := models.TagClassFromDomain(tagClass)
	if err != nil {
		return err
	}
	return txn.DB().Metadata().SetTagClass(tmpClass, txn.Metadata())
}

// TagClassSet saves a tag class
func TagClassSet(db *Database, tagClass *tag.TagClass) error {
	txn := db.Transaction(true)
	return txn.Do(func(txn *Txn) error {
		return TagClassSetTxn(txn, tagClass)
	})
}
