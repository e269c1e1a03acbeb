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

package tag

import (
	"encoding/binary"
	"encoding/hex"

	lcommon "github.com/blinklabs-io/gouroboros/ledger/common"
)

// IdSize is the byte width of class and tag identifiers
const IdSize = 32

// ClassId identifies a tag class. It is derived deterministically from the
// creator, class name, and a disambiguating nonce, never assigned randomly,
// so auditors can recompute it offline.
type ClassId [IdSize]byte

func (c ClassId) Bytes() []byte {
	return c[:]
}

func (c ClassId) String() string {
	return hex.EncodeToString(c[:])
}

// ClassIdFromBytes builds a ClassId from its raw byte form
func ClassIdFromBytes(data []byte) ClassId {
	var ret ClassId
	copy(ret[:], data)
	return ret
}

// NewClassId derives the identifier for a class created by owner with the
// given name and nonce. The owner is length-prefixed in the hash preimage
// so that distinct (owner, name) pairs can never alias each other. The
// nonce disambiguates repeated (owner, name) pairs and is chosen
// monotonically at creation time.
func NewClassId(owner Address, name string, nonce uint64) ClassId {
	data := make([]byte, 0, 2+len(owner)+len(name)+8)
	data = binary.BigEndian.AppendUint16(data, uint16(len(owner))) //nolint:gosec
	data = append(data, owner...)
	data = append(data, []byte(name)...)
	data = binary.BigEndian.AppendUint64(data, nonce)
	return ClassId(lcommon.Blake2b256Hash(data))
}

// TagId identifies a tag record. It is derived deterministically from
// (class, object), so a repeated write to the same key overwrites the
// prior record, and a record re-created after deletion reuses its prior
// identifier.
type TagId [IdSize]byte

func (t TagId) Bytes() []byte {
	return t[:]
}

func (t TagId) String() string {
	return hex.EncodeToString(t[:])
}

// TagIdFromBytes builds a TagId from its raw byte form
func TagIdFromBytes(data []byte) TagId {
	var ret TagId
	copy(ret[:], data)
	return ret
}

// NewTagId derives the identifier for the tag under classId describing
// object
func NewTagId(classId ClassId, object TagObject) TagId {
	objectBytes := object.Bytes()
	data := make([]byte, 0, IdSize+len(objectBytes))
	data = append(data, classId[:]...)
	data = append(data, objectBytes...)
	return TagId(lcommon.Blake2b256Hash(data))
}
