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

// Package fieldcodec implements the typed binary codec for tag payloads.
//
// The codec is sequential: values are written and read in the exact order
// given by the class field schema, with no per-field framing. Field names
// are metadata held by both sides independently and never appear in the
// payload. Fixed-width scalars are big-endian at their declared width;
// variable-length values carry an explicit 16-bit length (or element
// count) prefix.
package fieldcodec

import (
	"errors"
	"fmt"

	"github.com/blinklabs-io/cairn/tag"
)

var (
	// ErrBufferUnderrun is returned when a decode requires more bytes
	// than remain in the payload
	ErrBufferUnderrun = errors.New("buffer underrun")
	// ErrBufferOverrun is returned when an encode exceeds the encoder's
	// declared capacity
	ErrBufferOverrun = errors.New("buffer overrun")
	// ErrTrailingBytes is returned when payload bytes remain after the
	// final schema field has been decoded
	ErrTrailingBytes = errors.New("trailing bytes after final field")
	// ErrValueType is returned when a value does not match its declared
	// field type
	ErrValueType = errors.New("value does not match field type")
)

// maxVarLength is the largest encodable byte string, string, or array
// element count, bounded by the 16-bit length prefix
const maxVarLength = 0xFFFF

// Encode serializes values against the ordered field schema and returns
// the payload bytes. Values must conform to the schema in count, order,
// and type.
func Encode(values []any, defs []tag.FieldDef) ([]byte, error) {
	e := NewEncoder()
	if err := e.WriteValues(values, defs); err != nil {
		return nil, err
	}
	return e.Bytes(), nil
}

// Decode deserializes a payload against the ordered field schema. The
// whole payload must be consumed; leftover bytes indicate a payload
// written under a different schema.
func Decode(data []byte, defs []tag.FieldDef) ([]any, error) {
	d := NewDecoder(data)
	ret, err := d.ReadValues(defs)
	if err != nil {
		return nil, err
	}
	if d.Remaining() > 0 {
		return nil, fmt.Errorf(
			"%w: %d bytes remain",
			ErrTrailingBytes,
			d.Remaining(),
		)
	}
	return ret, nil
}

// EncoderOptionFunc modifies Encoder configuration
type EncoderOptionFunc func(*Encoder)

// WithMaxSize caps the encoder's output size in bytes. The default is to
// grow without bound.
func WithMaxSize(size int) EncoderOptionFunc {
	return func(e *Encoder) {
		e.maxSize = size
	}
}

// Encoder writes typed values into a growing byte buffer
type Encoder struct {
	buf     []byte
	maxSize int
}

// NewEncoder creates an Encoder with the given options
func NewEncoder(opts ...EncoderOptionFunc) *Encoder {
	e := &Encoder{}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Bytes returns the encoded payload
func (e *Encoder) Bytes() []byte {
	return e.buf
}

// Len returns the current payload size
func (e *Encoder) Len() int {
	return len(e.buf)
}

func (e *Encoder) write(p []byte) error {
	if e.maxSize > 0 && len(e.buf)+len(p) > e.maxSize {
		return fmt.Errorf(
			"%w: %d bytes exceeds capacity %d",
			ErrBufferOverrun,
			len(e.buf)+len(p),
			e.maxSize,
		)
	}
	e.buf = append(e.buf, p...)
	return nil
}

func (e *Encoder) writeByte(b byte) error {
	return e.write([]byte{b})
}

func (e *Encoder) writeUint(val uint64, width int) error {
	tmp := make([]byte, width)
	for i := width - 1; i >= 0; i-- {
		tmp[i] = byte(val)
		val >>= 8
	}
	return e.write(tmp)
}

// WriteBool writes a boolean as a single byte
func (e *Encoder) WriteBool(val bool) error {
	if val {
		return e.writeByte(1)
	}
	return e.writeByte(0)
}

// WriteUint8 writes an unsigned 8-bit integer
func (e *Encoder) WriteUint8(val uint8) error {
	return e.writeByte(val)
}

// WriteUint16 writes a big-endian unsigned 16-bit integer
func (e *Encoder) WriteUint16(val uint16) error {
	return e.writeUint(uint64(val), 2)
}

// WriteUint32 writes a big-endian unsigned 32-bit integer
func (e *Encoder) WriteUint32(val uint32) error {
	return e.writeUint(uint64(val), 4)
}

// WriteUint64 writes a big-endian unsigned 64-bit integer
func (e *Encoder) WriteUint64(val uint64) error {
	return e.writeUint(val, 8)
}

// WriteInt8 writes a signed 8-bit integer in two's complement
func (e *Encoder) WriteInt8(val int8) error {
	return e.writeByte(byte(val))
}

// WriteInt16 writes a big-endian signed 16-bit integer
func (e *Encoder) WriteInt16(val int16) error {
	return e.writeUint(uint64(uint16(val)), 2)
}

// WriteInt32 writes a big-endian signed 32-bit integer
func (e *Encoder) WriteInt32(val int32) error {
	return e.writeUint(uint64(uint32(val)), 4)
}

// WriteInt64 writes a big-endian signed 64-bit integer
func (e *Encoder) WriteInt64(val int64) error {
	return e.writeUint(uint64(val), 8) //nolint:gosec
}

// WriteBytes writes a length-prefixed byte string
func (e *Encoder) WriteBytes(val []byte) error {
	if len(val) > maxVarLength {
		return fmt.Errorf(
			"%w: byte string length %d exceeds %d",
			ErrValueType,
			len(val),
			maxVarLength,
		)
	}
	if err := e.writeUint(uint64(len(val)), 2); err != nil {
		return err
	}
	return e.write(val)
}

// WriteString writes a length-prefixed UTF-8 string
func (e *Encoder) WriteString(val string) error {
	return e.WriteBytes([]byte(val))
}

// WriteAddress writes a length-prefixed account reference
func (e *Encoder) WriteAddress(val tag.Address) error {
	return e.WriteBytes(val)
}

// WriteValues writes a full value sequence against the field schema
func (e *Encoder) WriteValues(values []any, defs []tag.FieldDef) error {
	if len(values) != len(defs) {
		return fmt.Errorf(
			"%w: %d values for %d fields",
			ErrValueType,
			len(values),
			len(defs),
		)
	}
	for i, val := range values {
		if err := e.WriteValue(val, defs[i]); err != nil {
			return fmt.Errorf("field %d: %w", i, err)
		}
	}
	return nil
}

// WriteValue writes a single value according to its field definition
func (e *Encoder) WriteValue(value any, def tag.FieldDef) error {
	if def.Array {
		return e.writeArray(value, def.Type)
	}
	return e.writeScalar(value, def.Type)
}

func (e *Encoder) writeScalar(value any, fieldType tag.FieldType) error {
	switch fieldType {
	case tag.FieldTypeBool:
		v, ok := value.(bool)
		if !ok {
			return typeErr(value, fieldType)
		}
		return e.WriteBool(v)
	case tag.FieldTypeUint8:
		v, ok := value.(uint8)
		if !ok {
			return typeErr(value, fieldType)
		}
		return e.WriteUint8(v)
	case tag.FieldTypeUint16:
		v, ok := value.(uint16)
		if !ok {
			return typeErr(value, fieldType)
		}
		return e.WriteUint16(v)
	case tag.FieldTypeUint32:
		v, ok := value.(uint32)
		if !ok {
			return typeErr(value, fieldType)
		}
		return e.WriteUint32(v)
	case tag.FieldTypeUint64:
		v, ok := value.(uint64)
		if !ok {
			return typeErr(value, fieldType)
		}
		return e.WriteUint64(v)
	case tag.FieldTypeInt8:
		v, ok := value.(int8)
		if !ok {
			return typeErr(value, fieldType)
		}
		return e.WriteInt8(v)
	case tag.FieldTypeInt16:
		v, ok := value.(int16)
		if !ok {
			return typeErr(value, fieldType)
		}
		return e.WriteInt16(v)
	case tag.FieldTypeInt32:
		v, ok := value.(int32)
		if !ok {
			return typeErr(value, fieldType)
		}
		return e.WriteInt32(v)
	case tag.FieldTypeInt64:
		v, ok := value.(int64)
		if !ok {
			return typeErr(value, fieldType)
		}
		return e.WriteInt64(v)
	case tag.FieldTypeAddress:
		v, ok := value.(tag.Address)
		if !ok {
			return typeErr(value, fieldType)
		}
		return e.WriteAddress(v)
	case tag.FieldTypeBytes:
		v, ok := value.([]byte)
		if !ok {
			return typeErr(value, fieldType)
		}
		return e.WriteBytes(v)
	case tag.FieldTypeString:
		v, ok := value.(string)
		if !ok {
			return typeErr(value, fieldType)
		}
		return e.WriteString(v)
	default:
		return fmt.Errorf(
			"%w: unsupported field type %s",
			ErrValueType,
			fieldType,
		)
	}
}

func (e *Encoder) writeArray(value any, elemType tag.FieldType) error {
	count, elems, err := arrayElements(value, elemType)
	if err != nil {
		return err
	}
	if count > maxVarLength {
		return fmt.Errorf(
			"%w: array length %d exceeds %d",
			ErrValueType,
			count,
			maxVarLength,
		)
	}
	if err := e.writeUint(uint64(count), 2); err != nil { //nolint:gosec
		return err
	}
	for _, elem := range elems {
		if err := e.writeScalar(elem, elemType); err != nil {
			return err
		}
	}
	return nil
}

// arrayElements converts a typed slice into its element sequence for
// sequential encoding
func arrayElements(
	value any,
	elemType tag.FieldType,
) (int, []any, error) {
	appendAll := func(n int, get func(int) any) (int, []any, error) {
		ret := make([]any, n)
		for i := range n {
			ret[i] = get(i)
		}
		return n, ret, nil
	}
	switch v := value.(type) {
	case []bool:
		if elemType != tag.FieldTypeBool {
			return 0, nil, typeErr(value, elemType)
		}
		return appendAll(len(v), func(i int) any { return v[i] })
	case []uint8:
		if elemType != tag.FieldTypeUint8 {
			return 0, nil, typeErr(value, elemType)
		}
		return appendAll(len(v), func(i int) any { return v[i] })
	case []uint16:
		if elemType != tag.FieldTypeUint16 {
			return 0, nil, typeErr(value, elemType)
		}
		return appendAll(len(v), func(i int) any { return v[i] })
	case []uint32:
		if elemType != tag.FieldTypeUint32 {
			return 0, nil, typeErr(value, elemType)
		}
		return appendAll(len(v), func(i int) any { return v[i] })
	case []uint64:
		if elemType != tag.FieldTypeUint64 {
			return 0, nil, typeErr(value, elemType)
		}
		return appendAll(len(v), func(i int) any { return v[i] })
	case []int8:
		if elemType != tag.FieldTypeInt8 {
			return 0, nil, typeErr(value, elemType)
		}
		return appendAll(len(v), func(i int) any { return v[i] })
	case []int16:
		if elemType != tag.FieldTypeInt16 {
			return 0, nil, typeErr(value, elemType)
		}
		return appendAll(len(v), func(i int) any { return v[i] })
	case []int32:
		if elemType != tag.FieldTypeInt32 {
			return 0, nil, typeErr(value, elemType)
		}
		return appendAll(len(v), func(i int) any { return v[i] })
	case []int64:
		if elemType != tag.FieldTypeInt64 {
			return 0, nil, typeErr(value, elemType)
		}
		return appendAll(len(v), func(i int) any { return v[i] })
	case []tag.Address:
		if elemType != tag.FieldTypeAddress {
			return 0, nil, typeErr(value, elemType)
		}
		return appendAll(len(v), func(i int) any { return v[i] })
	case [][]byte:
		if elemType != tag.FieldTypeBytes {
			return 0, nil, typeErr(value, elemType)
		}
		return appendAll(len(v), func(i int) any { return v[i] })
	case []string:
		if elemType != tag.FieldTypeString {
			return 0, nil, typeErr(value, elemType)
		}
		return appendAll(len(v), func(i int) any { return v[i] })
	default:
		return 0, nil, typeErr(value, elemType)
	}
}

func typeErr(value any, fieldType tag.FieldType) error {
	return fmt.Errorf(
		"%w: got %T for field type %s",
		ErrValueType,
		value,
		fieldType,
	)
}
