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

import "errors"

var (
	// ErrNotFound is returned when a tag class or tag does not exist, or
	// when a tag exists but has expired
	ErrNotFound = errors.New("not found")

	// ErrPermissionDenied is returned when the caller holds no write or
	// delete authority for the requested operation
	ErrPermissionDenied = errors.New("permission denied")

	// ErrDeprecated is returned when a mutation targets a deprecated tag
	// class
	ErrDeprecated = errors.New("tag class is deprecated")
)
