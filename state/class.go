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
	"github.com/blinklabs-io/cairn/tag"
)

// NewTagClass registers a new tag class owned by the caller. The field
// layout is validated and then frozen for the lifetime of the class. The
// class ID is derived from the owner, name, and a nonce counting prior
// classes with the same owner and name, so re-registering a name yields a
// distinct class.
func (s *State) NewTagClass(
	caller tag.Address,
	name string,
	fieldNames []string,
	fieldDefs []tag.FieldDef,
	description string,
	flags uint64,
	agent tag.Address,
) (*tag.TagClass, error) {
	if err := tag.ValidateSchema(fieldNames, fieldDefs); err != nil {
		return nil, err
	}
	s.Lock()
	defer s.Unlock()
	var ret *tag.TagClass
	txn := s.db.Transaction(true)
	err := txn.Do(func(txn *database.Txn) error {
		nonce, err := database.TagClassNonceTxn(txn, caller, name)
		if err != nil {
			return err
		}
		// The counted nonce can collide with an existing class when a
		// prior class was renamed or transferred away, so probe upward
		// until the derived ID is free
		classId := tag.NewClassId(caller, name, nonce)
		for {
			existing, err := database.TagClassByIdTxn(txn, classId)
			if err != nil {
				return err
			}
			if existing == nil {
				break
			}
			nonce++
			classId = tag.NewClassId(caller, name, nonce)
		}
		tmpClass := &tag.TagClass{
			ClassId:     classId,
			Name:        name,
			FieldNames:  fieldNames,
			FieldDefs:   fieldDefs,
			Description: description,
			Flags:       flags,
			Owner:       caller,
			Agent:       agent,
			Nonce:       nonce,
		}
		if err := database.TagClassSetTxn(txn, tmpClass); err != nil {
			return err
		}
		ret = tmpClass
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("register tag class: %w", err)
	}
	s.metrics.tagClassesCreated.Inc()
	if s.config.EventBus != nil {
		s.config.EventBus.Publish(
			event.TagClassCreatedEventType,
			event.NewEvent(
				event.TagClassCreatedEventType,
				event.TagClassCreatedEvent{
					ClassId: ret.ClassId.Bytes(),
					Name:    ret.Name,
					Owner:   ret.Owner,
					Nonce:   ret.Nonce,
				},
			),
		)
	}
	return ret, nil
}

// GetTagClass returns the tag class with the given class ID
func (s *State) GetTagClass(classId tag.ClassId) (*tag.TagClass, error) {
	s.RLock()
	defer s.RUnlock()
	ret, err := database.TagClassById(s.db, classId)
	if err != nil {
		return nil, err
	}
	if ret == nil {
		return nil, ErrNotFound
	}
	return ret, nil
}

// UpdateTagClassInfo updates the descriptive attributes of a tag class:
// its display name and description. Only the class owner or its current
// agent may update, and a deprecated class rejects updates. The class ID
// keeps the name the class was created under, so renaming never changes
// identity. The field layout, owner, agent, and nonce are untouched here.
func (s *State) UpdateTagClassInfo(
	caller tag.Address,
	classId tag.ClassId,
	name string,
	description string,
) (*tag.TagClass, error) {
	s.Lock()
	defer s.Unlock()
	var ret *tag.TagClass
	txn := s.db.Transaction(true)
	err := txn.Do(func(txn *database.Txn) error {
		tmpClass, err := database.TagClassByIdTxn(txn, classId)
		if err != nil {
			return err
		}
		if tmpClass == nil {
			return ErrNotFound
		}
		if !caller.Equal(tmpClass.Owner) && !caller.Equal(tmpClass.Agent) {
			return ErrPermissionDenied
		}
		if tmpClass.Deprecated() {
			return ErrDeprecated
		}
		tmpClass.Name = name
		tmpClass.Description = description
		if err := database.TagClassSetTxn(txn, tmpClass); err != nil {
			return err
		}
		ret = tmpClass
		return nil
	})
	if err != nil {
		s.countDenied(err)
		return nil, err
	}
	s.metrics.tagClassesUpdated.Inc()
	s.publishClassUpdated(ret)
	return ret, nil
}

// UpdateTagClass replaces the owner, agent, and flag bitmask of a tag
// class. Only the current owner may call it: ownership transfer and
// delegation changes are owner-exclusive so an agent can never escalate
// itself or revoke the owner. This works on deprecated classes, since
// clearing the deprecated flag is itself a flag update.
func (s *State) UpdateTagClass(
	caller tag.Address,
	classId tag.ClassId,
	owner tag.Address,
	agent tag.Address,
	flags uint64,
) (*tag.TagClass, error) {
	s.Lock()
	defer s.Unlock()
	var ret *tag.TagClass
	txn := s.db.Transaction(true)
	err := txn.Do(func(txn *database.Txn) error {
		tmpClass, err := database.TagClassByIdTxn(txn, classId)
		if err != nil {
			return err
		}
		if tmpClass == nil {
			return ErrNotFound
		}
		if !caller.Equal(tmpClass.Owner) {
			return ErrPermissionDenied
		}
		tmpClass.Owner = owner
		tmpClass.Agent = agent
		tmpClass.Flags = flags
		if err := database.TagClassSetTxn(txn, tmpClass); err != nil {
			return err
		}
		ret = tmpClass
		return nil
	})
	if err != nil {
		s.countDenied(err)
		return nil, err
	}
	s.metrics.tagClassesUpdated.Inc()
	s.publishClassUpdated(ret)
	return ret, nil
}

func (s *State) publishClassUpdated(tagClass *tag.TagClass) {
	if s.config.EventBus == nil {
		return
	}
	s.config.EventBus.Publish(
		event.TagClassUpdatedEventType,
		event.NewEvent(
			event.TagClassUpdatedEventType,
			event.TagClassUpdatedEvent{
				ClassId: tagClass.ClassId.Bytes(),
				Name:    tagClass.Name,
				Flags:   tagClass.Flags,
			},
		),
	)
}
