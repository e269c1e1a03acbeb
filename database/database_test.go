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

package database_test

import (
	"testing"

	"github.com/blinklabs-io/cairn/database"
	"github.com/blinklabs-io/cairn/tag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func newTestDatabase(t *testing.T) *database.Database {
	t.Helper()
	db, err := database.New(database.Config{})
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := db.Close(); err != nil {
			t.Errorf("failed to close database: %s", err)
		}
	})
	return db
}

func testTagClass(owner tag.Address, name string, nonce uint64) *tag.TagClass {
	return &tag.TagClass{
		ClassId:    tag.NewClassId(owner, name, nonce),
		Name:       name,
		FieldNames: []string{"score", "label"},
		FieldDefs: []tag.FieldDef{
			{Type: tag.FieldTypeUint64},
			{Type: tag.FieldTypeString},
		},
		Description: "test class",
		Owner:       owner,
		Nonce:       nonce,
	}
}

func TestDatabaseInMemory(t *testing.T) {
	db := newTestDatabase(t)
	assert.NotNil(t, db.Blob())
	assert.NotNil(t, db.Metadata())
	assert.Empty(t, db.DataDir())
}

func TestTagClassRoundTrip(t *testing.T) {
	db := newTestDatabase(t)
	owner := tag.Address{0x01, 0x02, 0x03}
	testClass := testTagClass(owner, "round-trip", 0)
	require.NoError(t, database.TagClassSet(db, testClass))
	ret, err := database.TagClassById(db, testClass.ClassId)
	require.NoError(t, err)
	require.NotNil(t, ret)
	assert.Equal(t, testClass.ClassId, ret.ClassId)
	assert.Equal(t, testClass.Name, ret.Name)
	assert.Equal(t, testClass.FieldNames, ret.FieldNames)
	assert.Equal(t, testClass.FieldDefs, ret.FieldDefs)
	assert.Equal(t, testClass.Description, ret.Description)
	assert.True(t, owner.Equal(ret.Owner))
	assert.Equal(t, uint64(0), ret.Nonce)
}

func TestTagClassByIdMissing(t *testing.T) {
	db := newTestDatabase(t)
	ret, err := database.TagClassById(
		db,
		tag.NewClassId(tag.Address{0xff}, "no-such-class", 0),
	)
	require.NoError(t, err)
	assert.Nil(t, ret)
}

func TestTagClassNonce(t *testing.T) {
	db := newTestDatabase(t)
	owner := tag.Address{0x0a, 0x0b}
	name := "nonce-count"
	txn := db.Transaction(false)
	err := txn.Do(func(txn *database.Txn) error {
		nonce, err := database.TagClassNonceTxn(txn, owner, name)
		if err != nil {
			return err
		}
		assert.Equal(t, uint64(0), nonce)
		return nil
	})
	require.NoError(t, err)
	require.NoError(t, database.TagClassSet(db, testTagClass(owner, name, 0)))
	require.NoError(t, database.TagClassSet(db, testTagClass(owner, name, 1)))
	txn = db.Transaction(false)
	err = txn.Do(func(txn *database.Txn) error {
		nonce, err := database.TagClassNonceTxn(txn, owner, name)
		if err != nil {
			return err
		}
		assert.Equal(t, uint64(2), nonce)
		// a different name starts its own sequence
		other, err := database.TagClassNonceTxn(txn, owner, "other-name")
		if err != nil {
			return err
		}
		assert.Equal(t, uint64(0), other)
		return nil
	})
	require.NoError(t, err)
}

func TestTagRoundTrip(t *testing.T) {
	db := newTestDatabase(t)
	owner := tag.Address{0x11, 0x22}
	testClass := testTagClass(owner, "tag-round-trip", 0)
	require.NoError(t, database.TagClassSet(db, testClass))
	object := tag.TagObject{Address: tag.Address{0xaa, 0xbb}, SubId: 7}
	testTag := &tag.Tag{
		TagId:       tag.NewTagId(testClass.ClassId, object),
		ClassId:     testClass.ClassId,
		Object:      object,
		Data:        []byte{0x01, 0x02, 0x03},
		ExpiredTime: 12345,
	}
	require.NoError(t, database.TagSet(db, testTag))
	ret, err := database.TagById(db, testTag.TagId)
	require.NoError(t, err)
	require.NotNil(t, ret)
	assert.Equal(t, testTag.TagId, ret.TagId)
	assert.Equal(t, testTag.ClassId, ret.ClassId)
	assert.True(t, object.Address.Equal(ret.Object.Address))
	assert.Equal(t, object.SubId, ret.Object.SubId)
	assert.Equal(t, testTag.Data, ret.Data)
	assert.Equal(t, testTag.ExpiredTime, ret.ExpiredTime)
}

func TestTagByIdMissing(t *testing.T) {
	db := newTestDatabase(t)
	ret, err := database.TagById(
		db,
		tag.NewTagId(
			tag.NewClassId(tag.Address{0xee}, "missing", 0),
			tag.TagObject{Address: tag.Address{0x01}},
		),
	)
	require.NoError(t, err)
	assert.Nil(t, ret)
}

func TestTagOverwrite(t *testing.T) {
	db := newTestDatabase(t)
	owner := tag.Address{0x33}
	testClass := testTagClass(owner, "tag-overwrite", 0)
	require.NoError(t, database.TagClassSet(db, testClass))
	object := tag.TagObject{Address: tag.Address{0xcc}}
	testTag := &tag.Tag{
		TagId:   tag.NewTagId(testClass.ClassId, object),
		ClassId: testClass.ClassId,
		Object:  object,
		Data:    []byte{0x01},
	}
	require.NoError(t, database.TagSet(db, testTag))
	testTag.Data = []byte{0x02, 0x03}
	testTag.ExpiredTime = 999
	require.NoError(t, database.TagSet(db, testTag))
	ret, err := database.TagById(db, testTag.TagId)
	require.NoError(t, err)
	require.NotNil(t, ret)
	assert.Equal(t, []byte{0x02, 0x03}, ret.Data)
	assert.Equal(t, uint64(999), ret.ExpiredTime)
}

func TestTagDelete(t *testing.T) {
	db := newTestDatabase(t)
	owner := tag.Address{0x44}
	testClass := testTagClass(owner, "tag-delete", 0)
	require.NoError(t, database.TagClassSet(db, testClass))
	object := tag.TagObject{Address: tag.Address{0xdd}, SubId: 1}
	testTag := &tag.Tag{
		TagId:   tag.NewTagId(testClass.ClassId, object),
		ClassId: testClass.ClassId,
		Object:  object,
		Data:    []byte{0x0f},
	}
	require.NoError(t, database.TagSet(db, testTag))
	require.NoError(t, database.TagDelete(db, testTag))
	ret, err := database.TagById(db, testTag.TagId)
	require.NoError(t, err)
	assert.Nil(t, ret)
}

func TestTxnRollback(t *testing.T) {
	db := newTestDatabase(t)
	owner := tag.Address{0x55}
	testClass := testTagClass(owner, "txn-rollback", 0)
	txn := db.Transaction(true)
	require.NoError(
		t,
		database.TagClassSetTxn(txn, testClass),
	)
	require.NoError(t, txn.Rollback())
	ret, err := database.TagClassById(db, testClass.ClassId)
	require.NoError(t, err)
	assert.Nil(t, ret)
}

func TestDatabaseCloseStopsBackground(t *testing.T) {
	defer goleak.VerifyNone(t)
	db, err := database.New(database.Config{})
	require.NoError(t, err)
	require.NoError(
		t,
		database.TagClassSet(db, testTagClass(tag.Address{0x77}, "close", 0)),
	)
	require.NoError(t, db.Close())
}

func TestCommitTimestampAdvances(t *testing.T) {
	db := newTestDatabase(t)
	owner := tag.Address{0x66}
	require.NoError(
		t,
		database.TagClassSet(db, testTagClass(owner, "commit-ts", 0)),
	)
	blobTimestamp, err := db.Blob().GetCommitTimestamp()
	require.NoError(t, err)
	metadataTimestamp, err := db.Metadata().GetCommitTimestamp()
	require.NoError(t, err)
	assert.NotEqual(t, int64(0), blobTimestamp)
	assert.Equal(t, blobTimestamp, metadataTimestamp)
}
