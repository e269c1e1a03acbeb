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

	"github.com/blinklabs-io/cairn/tag"
)

// AgentChecker answers delegated permission queries for a tag class agent.
// HasPermission reports whether the caller may write tags for the given
// object under the given class.
type AgentChecker interface {
	HasPermission(
		caller tag.Address,
		classId tag.ClassId,
		object tag.TagObject,
	) (bool, error)
}

// AgentResolver resolves a tag class agent address to its permission
// checker. Resolving an unknown agent returns nil with no error, which
// denies all delegated writes for that class.
type AgentResolver interface {
	ResolveAgent(agent tag.Address) (AgentChecker, error)
}

// AgentCheckerFunc adapts a function to the AgentChecker interface
type AgentCheckerFunc func(
	caller tag.Address,
	classId tag.ClassId,
	object tag.TagObject,
) (bool, error)

func (f AgentCheckerFunc) HasPermission(
	caller tag.Address,
	classId tag.ClassId,
	object tag.TagObject,
) (bool, error) {
	return f(caller, classId, object)
}

// canWriteTag determines whether the caller may write tags under the given
// class for the given object. The class owner always may. Anyone else needs
// a delegated grant from the class agent.
func (s *State) canWriteTag(
	caller tag.Address,
	tagClass *tag.TagClass,
	object tag.TagObject,
) (bool, error) {
	if caller.Equal(tagClass.Owner) {
		return true, nil
	}
	if !tagClass.HasAgent() {
		return false, nil
	}
	if s.config.AgentResolver == nil {
		return false, nil
	}
	checker, err := s.config.AgentResolver.ResolveAgent(tagClass.Agent)
	if err != nil {
		return false, fmt.Errorf("resolve agent: %w", err)
	}
	if checker == nil {
		return false, nil
	}
	allowed, err := checker.HasPermission(caller, tagClass.ClassId, object)
	if err != nil {
		return false, fmt.Errorf("agent permission check: %w", err)
	}
	return allowed, nil
}

// canDeleteTag determines whether the caller may delete a tag. Anyone with
// write authority may, and so may the tagged subject itself.
func (s *State) canDeleteTag(
	caller tag.Address,
	tagClass *tag.TagClass,
	object tag.TagObject,
) (bool, error) {
	if caller.Equal(object.Address) {
		return true, nil
	}
	return s.canWriteTag(caller, tagClass, object)
}
