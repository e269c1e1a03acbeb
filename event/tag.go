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

package event

// TagSetEventType is the event type for tag writes, both creates and
// overwrites
const TagSetEventType = EventType("tag.set")

// TagDeletedEventType is the event type for tag deletions
const TagDeletedEventType = EventType("tag.deleted")

// TagSetEvent is emitted after a tag write has been committed to the store
type TagSetEvent struct {
	// TagId is the derived identity of the tag
	TagId []byte
	// ClassId is the identity of the tag's class
	ClassId []byte
	// Address is the tagged object's address
	Address []byte
	// SubId is the tagged object's sub-identifier
	SubId uint64
	// ExpiredTime is the expiry as a unix timestamp, zero for no expiry
	ExpiredTime uint64
	// Flags is the tag's flag bitmask
	Flags uint64
	// DataSize is the size of the encoded payload in bytes
	DataSize uint32
}

// TagDeletedEvent is emitted after a tag deletion has been committed to the
// store
type TagDeletedEvent struct {
	// TagId is the derived identity of the deleted tag
	TagId []byte
	// ClassId is the identity of the tag's class
	ClassId []byte
	// Address is the tagged object's address
	Address []byte
	// SubId is the tagged object's sub-identifier
	SubId uint64
}
