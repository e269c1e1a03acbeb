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
	"errors"
	"fmt"
	"strings"
)

// FieldType is a primitive value type in a tag class field schema. Type
// codes are additive: once assigned, a code is never reused or repurposed,
// so payloads written under an older deployment stay decodable by newer
// ones. New types must be appended with fresh codes.
type FieldType uint8

const (
	FieldTypeInvalid FieldType = 0
	FieldTypeBool    FieldType = 1
	FieldTypeUint8   FieldType = 2
	FieldTypeUint16  FieldType = 3
	FieldTypeUint32  FieldType = 4
	FieldTypeUint64  FieldType = 5
	FieldTypeInt8    FieldType = 6
	FieldTypeInt16   FieldType = 7
	FieldTypeInt32   FieldType = 8
	FieldTypeInt64   FieldType = 9
	FieldTypeAddress FieldType = 10
	FieldTypeBytes   FieldType = 11
	FieldTypeString  FieldType = 12
)

// FieldTypeArrayMarker precedes an element type code in the serialized
// field-type list to mark the field as an array of that element type.
const FieldTypeArrayMarker byte = 0x80

// FieldNameDelimiter joins field names in their serialized list form.
const FieldNameDelimiter = ","

// MaxFieldNameLength is the longest allowed field name
const MaxFieldNameLength = 64

// ErrSchemaMismatch is returned when a field schema is internally
// inconsistent: name/type list length mismatch, duplicate or invalid field
// names, or unknown type codes
var ErrSchemaMismatch = errors.New("schema mismatch")

var fieldTypeNames = map[FieldType]string{
	FieldTypeBool:    "bool",
	FieldTypeUint8:   "uint8",
	FieldTypeUint16:  "uint16",
	FieldTypeUint32:  "uint32",
	FieldTypeUint64:  "uint64",
	FieldTypeInt8:    "int8",
	FieldTypeInt16:   "int16",
	FieldTypeInt32:   "int32",
	FieldTypeInt64:   "int64",
	FieldTypeAddress: "address",
	FieldTypeBytes:   "bytes",
	FieldTypeString:  "string",
}

func (t FieldType) String() string {
	if name, ok := fieldTypeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("unknown(%d)", uint8(t))
}

// Valid returns true for a known primitive type code
func (t FieldType) Valid() bool {
	_, ok := fieldTypeNames[t]
	return ok
}

// FieldDef describes a single field in a tag class schema: a primitive
// type, optionally modified to an array of that type
type FieldDef struct {
	Type  FieldType
	Array bool
}

func (d FieldDef) String() string {
	if d.Array {
		return "[]" + d.Type.String()
	}
	return d.Type.String()
}

// EncodeFieldDefs serializes a field definition list as a compact sequence
// of type codes with no separators. An array field is encoded as the array
// marker code immediately followed by its element type code.
func EncodeFieldDefs(defs []FieldDef) ([]byte, error) {
	ret := make([]byte, 0, len(defs))
	for i, def := range defs {
		if !def.Type.Valid() {
			return nil, fmt.Errorf(
				"%w: field %d has invalid type code %d",
				ErrSchemaMismatch,
				i,
				uint8(def.Type),
			)
		}
		if def.Array {
			ret = append(ret, FieldTypeArrayMarker)
		}
		ret = append(ret, byte(def.Type))
	}
	return ret, nil
}

// DecodeFieldDefs parses the compact type code sequence produced by
// EncodeFieldDefs. Unknown type codes are rejected rather than skipped so
// that a newer layout is never silently misread by an older deployment.
func DecodeFieldDefs(data []byte) ([]FieldDef, error) {
	var ret []FieldDef
	for i := 0; i < len(data); i++ {
		var def FieldDef
		if data[i] == FieldTypeArrayMarker {
			def.Array = true
			i++
			if i >= len(data) {
				return nil, fmt.Errorf(
					"%w: array marker without element type code",
					ErrSchemaMismatch,
				)
			}
		}
		def.Type = FieldType(data[i])
		if !def.Type.Valid() {
			return nil, fmt.Errorf(
				"%w: unknown field type code %d at offset %d",
				ErrSchemaMismatch,
				data[i],
				i,
			)
		}
		ret = append(ret, def)
	}
	return ret, nil
}

// JoinFieldNames serializes a field name list into its delimiter-joined
// wire form
func JoinFieldNames(names []string) string {
	return strings.Join(names, FieldNameDelimiter)
}

// SplitFieldNames parses the delimiter-joined field name list
func SplitFieldNames(joined string) []string {
	if joined == "" {
		return nil
	}
	return strings.Split(joined, FieldNameDelimiter)
}

// ValidateSchema checks a field schema for use in a new tag class. Field
// names and types must have matching lengths, and each name must be
// non-empty, unique, delimiter-free, and within the length limit
func ValidateSchema(fieldNames []string, fieldDefs []FieldDef) error {
	if len(fieldNames) != len(fieldDefs) {
		return fmt.Errorf(
			"%w: %d field names but %d field types",
			ErrSchemaMismatch,
			len(fieldNames),
			len(fieldDefs),
		)
	}
	seen := make(map[string]struct{}, len(fieldNames))
	for i, name := range fieldNames {
		if name == "" {
			return fmt.Errorf(
				"%w: field %d has empty name",
				ErrSchemaMismatch,
				i,
			)
		}
		if len(name) > MaxFieldNameLength {
			return fmt.Errorf(
				"%w: field name %q exceeds %d characters",
				ErrSchemaMismatch,
				name,
				MaxFieldNameLength,
			)
		}
		if strings.Contains(name, FieldNameDelimiter) {
			return fmt.Errorf(
				"%w: field name %q contains delimiter",
				ErrSchemaMismatch,
				name,
			)
		}
		if _, ok := seen[name]; ok {
			return fmt.Errorf(
				"%w: duplicate field name %q",
				ErrSchemaMismatch,
				name,
			)
		}
		seen[name] = struct{}{}
	}
	for i, def := range fieldDefs {
		if !def.Type.Valid() {
			return fmt.Errorf(
				"%w: field %q (index %d) has invalid type",
				ErrSchemaMismatch,
				fieldNames[i],
				i,
			)
		}
	}
	return nil
}
