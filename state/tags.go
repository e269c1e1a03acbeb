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

package state

import (
	"fmt"

	"github.com/blinklabs-io/cairn/database"
	"github.com/blinklabs-io/cairn/event"
	"github.com/blinklabs-io/cairn/fieldcodec"
	"github.com/blinklabs-io/cairn/tag"
)

// SetTag writes a tag on an object under an existing tag class. The
// payload is stored as opaque bytes with no validation against the class
// field layout; a malformed payload only surfaces when a reader decodes
// it. Writing the same class and object again overwrites the previous tag
// in full. An expiredTime of zero means the tag never expires.
func (s *State) SetTag(
	caller tag.Address,
	classId tag.ClassId,
	object tag.TagObject,
	data []byte,
	expiredTime uint64,
	flags uint64,
) (*tag.Tag, error) {
	s.Lock()
	defer s.Unlock()
	var ret *tag.Tag
	txn := s.db.Transaction(true)
	err := txn.Do(func(txn *database.Txn) error {
		tmpClass, err := database.TagClassByIdTxn(txn, classId)
		if err != nil {
			return err
		}
		if tmpClass == nil {
			return ErrNotFound
		}
		if tmpClass.Deprecated() {
			return ErrDeprecated
		}
		allowed, err := s.canWriteTag(caller, tmpClass, object)
		if err != nil {
			return err
		}
		if !allowed {
			return ErrPermissionDenied
		}
		tmpTag := &tag.Tag{
			TagId:       tag.NewTagId(classId, object),
			ClassId:     classId,
			Object:      object,
			Data:        data,
			ExpiredTime: expiredTime,
			Flags:       flags,
		}
		if err := database.TagSetTxn(txn, tmpTag); err != nil {
			return err
		}
		ret = tmpTag
		return nil
	})
	if err != nil {
		s.countDenied(err)
		return nil, err
	}
	s.metrics.tagsSet.Inc()
	if s.config.EventBus != nil {
		s.config.EventBus.Publish(
			event.TagSetEventType,
			event.NewEvent(
				event.TagSetEventType,
				event.TagSetEvent{
					TagId:       ret.TagId.Bytes(),
					ClassId:     ret.ClassId.Bytes(),
					Address:     ret.Object.Address,
					SubId:       ret.Object.SubId,
					ExpiredTime: ret.ExpiredTime,
					Flags:       ret.Flags,
					DataSize:    uint32(len(ret.Data)), //nolint:gosec // payload size fits well within uint32
				},
			),
		)
	}
	return ret, nil
}

// DeleteTag removes the tag for the given class and object. Anyone with
// write authority for the class may delete, and so may the tagged subject
// itself. Deleting works on deprecated classes and on expired tags.
func (s *State) DeleteTag(
	caller tag.Address,
	classId tag.ClassId,
	object tag.TagObject,
) error {
	s.Lock()
	defer s.Unlock()
	var deleted *tag.Tag
	txn := s.db.Transaction(true)
	err := txn.Do(func(txn *database.Txn) error {
		tmpClass, err := database.TagClassByIdTxn(txn, classId)
		if err != nil {
			return err
		}
		if tmpClass == nil {
			return ErrNotFound
		}
		tmpTag, err := database.TagMetadataByIdTxn(
			txn,
			tag.NewTagId(classId, object),
		)
		if err != nil {
			return err
		}
		if tmpTag == nil {
			return ErrNotFound
		}
		allowed, err := s.canDeleteTag(caller, tmpClass, object)
		if err != nil {
			return err
		}
		if !allowed {
			return ErrPermissionDenied
		}
		if err := database.TagDeleteTxn(txn, tmpTag); err != nil {
			return err
		}
		deleted = tmpTag
		return nil
	})
	if err != nil {
		s.countDenied(err)
		return err
	}
	s.metrics.tagsDeleted.Inc()
	if s.config.EventBus != nil {
		s.config.EventBus.Publish(
			event.TagDeletedEventType,
			event.NewEvent(
				event.TagDeletedEventType,
				event.TagDeletedEvent{
					TagId:   deleted.TagId.Bytes(),
					ClassId: deleted.ClassId.Bytes(),
					Address: deleted.Object.Address,
					SubId:   deleted.Object.SubId,
				},
			),
		)
	}
	return nil
}

// HasTag reports whether the given object currently carries a live tag
// under the given class. Expired tags count as absent.
func (s *State) HasTag(
	classId tag.ClassId,
	object tag.TagObject,
) (bool, error) {
	s.RLock()
	defer s.RUnlock()
	var ret bool
	txn := s.db.Transaction(false)
	err := txn.Do(func(txn *database.Txn) error {
		tmpTag, err := database.TagMetadataByIdTxn(
			txn,
			tag.NewTagId(classId, object),
		)
		if err != nil {
			return err
		}
		ret = tmpTag != nil && !tmpTag.Expired(s.now())
		return nil
	})
	if err != nil {
		return false, err
	}
	return ret, nil
}

// GetTagData returns the raw payload of the live tag for the given class
// and object. An absent or expired tag yields an empty payload with no
// error, indistinguishable from a tag written with empty data, so readers
// get a single short-circuit branch. Only an unknown class fails with
// ErrNotFound.
func (s *State) GetTagData(
	classId tag.ClassId,
	object tag.TagObject,
) ([]byte, error) {
	s.RLock()
	defer s.RUnlock()
	ret := []byte{}
	txn := s.db.Transaction(false)
	err := txn.Do(func(txn *database.Txn) error {
		tmpClass, err := database.TagClassByIdTxn(txn, classId)
		if err != nil {
			return err
		}
		if tmpClass == nil {
			return ErrNotFound
		}
		tmpTag, err := database.TagByIdTxn(
			txn,
			tag.NewTagId(classId, object),
		)
		if err != nil {
			return err
		}
		if tmpTag == nil || tmpTag.Expired(s.now()) {
			return nil
		}
		ret = tmpTag.Data
		return nil
	})
	if err != nil {
		return nil, err
	}
	return ret, nil
}

// GetTagByObject returns the stored tag for the given class and object,
// including its raw payload data. Unlike HasTag and GetTagData, this
// returns expired tags, so callers can inspect expiry metadata.
func (s *State) GetTagByObject(
	classId tag.ClassId,
	object tag.TagObject,
) (*tag.Tag, error) {
	s.RLock()
	defer s.RUnlock()
	var ret *tag.Tag
	txn := s.db.Transaction(false)
	err := txn.Do(func(txn *database.Txn) error {
		tmpTag, err := database.TagByIdTxn(
			txn,
			tag.NewTagId(classId, object),
		)
		if err != nil {
			return err
		}
		if tmpTag == nil {
			return ErrNotFound
		}
		ret = tmpTag
		return nil
	})
	if err != nil {
		return nil, err
	}
	return ret, nil
}

// SetTagValues encodes the given typed values against the class field
// layout and writes the result via SetTag. A value list that does not match
// the layout fails before anything is written. This is a convenience over
// the opaque-payload SetTag for callers that hold typed values.
func (s *State) SetTagValues(
	caller tag.Address,
	classId tag.ClassId,
	object tag.TagObject,
	values []any,
	expiredTime uint64,
	flags uint64,
) (*tag.Tag, error) {
	tmpClass, err := s.GetTagClass(classId)
	if err != nil {
		return nil, err
	}
	data, err := fieldcodec.Encode(values, tmpClass.FieldDefs)
	if err != nil {
		return nil, fmt.Errorf("encode tag data: %w", err)
	}
	return s.SetTag(caller, classId, object, data, expiredTime, flags)
}

// GetTagValues decodes the live tag payload for the given class and object
// against the class field layout. An absent or expired tag yields nil
// values with no error, matching GetTagData.
func (s *State) GetTagValues(
	classId tag.ClassId,
	object tag.TagObject,
) ([]any, error) {
	tmpClass, err := s.GetTagClass(classId)
	if err != nil {
		return nil, err
	}
	data, err := s.GetTagData(classId, object)
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, nil
	}
	values, err := fieldcodec.Decode(data, tmpClass.FieldDefs)
	if err != nil {
		return nil, fmt.Errorf("decode tag data: %w", err)
	}
	return values, nil
}
