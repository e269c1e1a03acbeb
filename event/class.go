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

// TagClassCreatedEventType is the event type for newly registered tag classes
const TagClassCreatedEventType = EventType("tagclass.created")

// TagClassUpdatedEventType is the event type for tag class mutations, both
// informational updates and flag changes
const TagClassUpdatedEventType = EventType("tagclass.updated")

// TagClassCreatedEvent is emitted when a new tag class has been committed to
// the store
type TagClassCreatedEvent struct {
	// ClassId is the derived identity of the new class
	ClassId []byte
	// Name is the class name
	Name string
	// Owner is the address that registered the class
	Owner []byte
	// Nonce is the derivation nonce used for the class ID
	Nonce uint64
}

// TagClassUpdatedEvent is emitted after a tag class mutation has been
// committed to the store
type TagClassUpdatedEvent struct {
	// ClassId is the identity of the updated class
	ClassId []byte
	// Name is the class name
	Name string
	// Flags is the flag bitmask after the update
	Flags uint64
}
