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

	"github.com/blinklabs-io/cairn/database/models"
	"github.com/blinklabs-io/cairn/database/types"
	"github.com/blinklabs-io/cairn/tag"
)

// TagMetadataByIdTxn returns the tag metadata row with the given tag ID
// within a transaction. The returned tag has no payload data. Returns nil
// with no error when the tag does not exist.
func TagMetadataByIdTxn(txn *Txn, tagId tag.TagId) (*tag.Tag, error) {
	if txn == nil {
		return nil, types.ErrNilTxn
	}
	tmpTag, err := txn.DB().Metadata().GetTag(tagId, txn.Metadata())
	if err != nil {
		return nil, err
	}
	if tmpTag == nil {
		return nil, nil
	}
	return tmpTag.Decode(), nil
}

// TagDataByIdTxn returns the payload data for the given tag ID within a
// transaction. Returns nil with no error when no payload exists.
func TagDataByIdTxn(txn *Txn, tagId tag.TagId) ([]byte, error) {
	if txn == nil {
		return nil, types.ErrNilTxn
	}
	blobTxn := txn.Blob()
	if blobTxn == nil {
		return nil, types.ErrNilTxn
	}
	blob := txn.DB().Blob()
	if blob == nil {
		return nil, types.ErrBlobStoreUnavailable
	}
	data, err := blob.Get(blobTxn, types.TagDataBlobKey(tagId.Bytes()))
	if err != nil {
		if errors.Is(err, types.ErrBlobKeyNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return data, nil
}

// TagByIdTxn returns the tag with the given tag ID, including its payload
// data, within a transaction. Returns nil with no error when the tag does
// not exist.
func TagByIdTxn(txn *Txn, tagId tag.TagId) (*tag.Tag, error) {
	ret, err := TagMetadataByIdTxn(txn, tagId)
	if err != nil {
		return nil, err
	}
	if ret == nil {
		return nil, nil
	}
	data, err := TagDataByIdTxn(txn, tagId)
	if err != nil {
		return nil, err
	}
	ret.Data = data
	return ret, nil
}

// TagById returns the tag with the given tag ID, including its payload data
func TagById(db *Database, tagId tag.TagId) (*tag.Tag, error) {
	var ret *tag.Tag
	txn := db.Transaction(false)
	err := txn.Do(func(txn *Txn) error {
		var err error
		ret, err = TagByIdTxn(txn, tagId)
		return err
	})
	return ret, err
}

// TagSetTxn saves a tag within a transaction. The payload data goes to the
// blob store and the metadata row to the metadata store.
func TagSetTxn(txn *Txn, t *tag.Tag) error {
	if txn == nil {
		return types.ErrNilTxn
	}
	blobTxn := txn.Blob()
	if blobTxn == nil {
		return types.ErrNilTxn
	}
	blob := txn.DB().Blob()
	if blob == nil {
		return types.ErrBlobStoreUnavailable
	}
	key := types.TagDataBlobKey(t.TagId.Bytes())
	if err := blob.Set(blobTxn, key, t.Data); err != nil {
		return err
	}
	return txn.DB().Metadata().SetTag(models.TagFromDomain(t), txn.Metadata())
}

// TagSet saves a tag
func TagSet(db *Database, t *tag.Tag) error {
	txn := db.Transaction(true)
	return txn.Do(func(txn *Txn) error {
		return TagSetTxn(txn, t)
	})
}

// TagDeleteTxn removes a tag and its payload data within a transaction
func TagDeleteTxn(txn *Txn, t *tag.Tag) error {
	if txn == nil {
		return types.ErrNilTxn
	}
	blobTxn := txn.Blob()
	if blobTxn == nil {
		return types.ErrNilTxn
	}
	blob := txn.DB().Blob()
	if blob == nil {
		return types.ErrBlobStoreUnavailable
	}
	key := types.TagDataBlobKey(t.TagId.Bytes())
	if err := blob.Delete(blobTxn, key); err != nil {
		return err
	}
	return txn.DB().Metadata().DeleteTag(models.TagFromDomain(t), txn.Metadata())
}

// TagDelete removes a tag and its payload data
func TagDelete(db *Database, t *tag.Tag) error {
	txn := db.Transaction(true)
	return txn.Do(func(txn *Txn) error {
		return TagDeleteTxn(txn, t)
	})
}
