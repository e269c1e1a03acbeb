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
	"bytes"
	"encoding/binary"
	"encoding/hex"
	"time"
)

// Address is an opaque account reference in the host ledger. It may name a
// plain account, a contract-like account, or the creator of another tag
// class
type Address []byte

func (a Address) String() string {
	return hex.EncodeToString(a)
}

// Equal compares two addresses by content
func (a Address) Equal(other Address) bool {
	return bytes.Equal(a, other)
}

// TagObject is the subject a tag describes: an account reference plus an
// optional sub-identifier. A SubId of zero addresses the account itself;
// a non-zero SubId addresses a sub-object of the account, such as an
// NFT-style (contract, token) pair
type TagObject struct {
	Address Address
	SubId   uint64
}

// Bytes returns a canonical byte form of the object for use in identifier
// derivation. The address is length-prefixed so that (address, subId)
// pairs can never alias each other.
func (o TagObject) Bytes() []byte {
	ret := make([]byte, 0, 2+len(o.Address)+8)
	ret = binary.BigEndian.AppendUint16(ret, uint16(len(o.Address))) //nolint:gosec
	ret = append(ret, o.Address...)
	ret = binary.BigEndian.AppendUint64(ret, o.SubId)
	return ret
}

func (o TagObject) String() string {
	if o.SubId == 0 {
		return o.Address.String()
	}
	ret := make([]byte, 8)
	binary.BigEndian.PutUint64(ret, o.SubId)
	return o.Address.String() + "#" + hex.EncodeToString(ret)
}

// TagClass flag bits
const (
	TagClassFlagDeprecated uint64 = 1 << 0
)

// TagClass is a registered record schema. FieldNames, FieldDefs, Nonce,
// and ClassId are immutable after creation; Name, Description, Owner,
// Agent, and Flags may be updated through the registry.
type TagClass struct {
	ClassId     ClassId
	Name        string
	FieldNames  []string
	FieldDefs   []FieldDef
	Description string
	Flags       uint64
	Owner       Address
	Agent       Address
	Nonce       uint64
}

// Deprecated returns true when the deprecated flag bit is set. A
// deprecated class rejects new tag writes and metadata updates while
// still allowing reads and deletes.
func (c *TagClass) Deprecated() bool {
	return c.Flags&TagClassFlagDeprecated != 0
}

// HasAgent returns true when a delegated authority is configured
func (c *TagClass) HasAgent() bool {
	return len(c.Agent) > 0
}

// Tag is a single record instance keyed by (class, object). A repeated
// write to the same key fully replaces the prior record.
type Tag struct {
	TagId       TagId
	ClassId     ClassId
	Object      TagObject
	Data        []byte
	ExpiredTime uint64
	Flags       uint64
}

// Expired returns true when the tag carries an expiration time at or
// before the given instant. An expired tag is logically absent to
// existence and data-read operations until explicitly deleted.
func (t *Tag) Expired(now time.Time) bool {
	if t.ExpiredTime == 0 {
		return false
	}
	return t.ExpiredTime <= uint64(now.Unix()) //nolint:gosec
}
