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

package tag_test

import (
	"testing"

	"github.com/blinklabs-io/cairn/tag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassIdDeterministic(t *testing.T) {
	testOwner := tag.Address{0x01, 0x02, 0x03}
	id1 := tag.NewClassId(testOwner, "reputation", 0)
	id2 := tag.NewClassId(testOwner, "reputation", 0)
	assert.Equal(t, id1, id2)
}

func TestClassIdDistinct(t *testing.T) {
	testOwner := tag.Address{0x01, 0x02, 0x03}
	otherOwner := tag.Address{0x04, 0x05, 0x06}
	baseId := tag.NewClassId(testOwner, "reputation", 0)
	assert.NotEqual(t, baseId, tag.NewClassId(testOwner, "reputation", 1))
	assert.NotEqual(t, baseId, tag.NewClassId(testOwner, "karma", 0))
	assert.NotEqual(t, baseId, tag.NewClassId(otherOwner, "reputation", 0))
}

func TestClassIdOwnerFraming(t *testing.T) {
	// shifting bytes between the owner and the name must never produce
	// the same identifier
	id1 := tag.NewClassId(tag.Address{0x01, 0x02}, "x", 0)
	id2 := tag.NewClassId(tag.Address{0x01}, "\x02x", 0)
	assert.NotEqual(t, id1, id2)
}

func TestTagIdDeterministic(t *testing.T) {
	testOwner := tag.Address{0x01, 0x02, 0x03}
	classId := tag.NewClassId(testOwner, "reputation", 0)
	testObject := tag.TagObject{
		Address: tag.Address{0xaa, 0xbb},
		SubId:   7,
	}
	id1 := tag.NewTagId(classId, testObject)
	id2 := tag.NewTagId(classId, testObject)
	assert.Equal(t, id1, id2)
}

func TestTagIdDistinctByObject(t *testing.T) {
	testOwner := tag.Address{0x01, 0x02, 0x03}
	classId := tag.NewClassId(testOwner, "reputation", 0)
	baseId := tag.NewTagId(
		classId,
		tag.TagObject{Address: tag.Address{0xaa, 0xbb}, SubId: 7},
	)
	assert.NotEqual(
		t,
		baseId,
		tag.NewTagId(
			classId,
			tag.TagObject{Address: tag.Address{0xaa, 0xbb}, SubId: 8},
		),
	)
	assert.NotEqual(
		t,
		baseId,
		tag.NewTagId(
			classId,
			tag.TagObject{Address: tag.Address{0xaa, 0xcc}, SubId: 7},
		),
	)
}

func TestClassIdFromBytes(t *testing.T) {
	testOwner := tag.Address{0x01}
	origId := tag.NewClassId(testOwner, "reputation", 0)
	decoded := tag.ClassIdFromBytes(origId.Bytes())
	assert.Equal(t, origId, decoded)
	require.Len(t, decoded.Bytes(), tag.IdSize)
}

func TestTagIdFromBytes(t *testing.T) {
	testOwner := tag.Address{0x01}
	classId := tag.NewClassId(testOwner, "reputation", 0)
	origId := tag.NewTagId(
		classId,
		tag.TagObject{Address: tag.Address{0xaa}, SubId: 1},
	)
	decoded := tag.TagIdFromBytes(origId.Bytes())
	assert.Equal(t, origId, decoded)
	require.Len(t, decoded.Bytes(), tag.IdSize)
}

func TestTagObjectBytes(t *testing.T) {
	testObject := tag.TagObject{
		Address: tag.Address{0xaa, 0xbb},
		SubId:   0x0102030405060708,
	}
	expected := []byte{
		0x00, 0x02, // address length
		0xaa, 0xbb, // address
		0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08, // sub ID
	}
	assert.Equal(t, expected, testObject.Bytes())
}
