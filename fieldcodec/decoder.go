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

package fieldcodec

import (
	"fmt"

	"github.com/blinklabs-io/cairn/tag"
)

// Decoder reads typed values sequentially from a payload. Fields must be
// read in the exact order they were written; there is no random access.
type Decoder struct {
	data []byte
	pos  int
}

// NewDecoder creates a Decoder over the given payload
func NewDecoder(data []byte) *Decoder {
	return &Decoder{data: data}
}

// Remaining returns the number of unread bytes
func (d *Decoder) Remaining() int {
	return len(d.data) - d.pos
}

func (d *Decoder) take(n int) ([]byte, error) {
	if d.Remaining() < n {
		return nil, fmt.Errorf(
			"%w: need %d bytes, %d remaining",
			ErrBufferUnderrun,
			n,
			d.Remaining(),
		)
	}
	ret := d.data[d.pos : d.pos+n]
	d.pos += n
	return ret, nil
}

func (d *Decoder) readUint(width int) (uint64, error) {
	tmp, err := d.take(width)
	if err != nil {
		return 0, err
	}
	var ret uint64
	for _, b := range tmp {
		ret = ret<<8 | uint64(b)
	}
	return ret, nil
}

// ReadBool reads a boolean byte, rejecting values other than 0 and 1
func (d *Decoder) ReadBool() (bool, error) {
	tmp, err := d.take(1)
	if err != nil {
		return false, err
	}
	switch tmp[0] {
	case 0:
		return false, nil
	case 1:
		return true, nil
	default:
		return false, fmt.Errorf(
			"%w: invalid boolean byte 0x%02x",
			ErrValueType,
			tmp[0],
		)
	}
}

// ReadUint8 reads an unsigned 8-bit integer
func (d *Decoder) ReadUint8() (uint8, error) {
	val, err := d.readUint(1)
	return uint8(val), err //nolint:gosec
}

// ReadUint16 reads a big-endian unsigned 16-bit integer
func (d *Decoder) ReadUint16() (uint16, error) {
	val, err := d.readUint(2)
	return uint16(val), err //nolint:gosec
}

// ReadUint32 reads a big-endian unsigned 32-bit integer
func (d *Decoder) ReadUint32() (uint32, error) {
	val, err := d.readUint(4)
	return uint32(val), err //nolint:gosec
}

// ReadUint64 reads a big-endian unsigned 64-bit integer
func (d *Decoder) ReadUint64() (uint64, error) {
	return d.readUint(8)
}

// ReadInt8 reads a signed 8-bit integer
func (d *Decoder) ReadInt8() (int8, error) {
	val, err := d.readUint(1)
	return int8(uint8(val)), err //nolint:gosec
}

// ReadInt16 reads a big-endian signed 16-bit integer
func (d *Decoder) ReadInt16() (int16, error) {
	val, err := d.readUint(2)
	return int16(uint16(val)), err //nolint:gosec
}

// ReadInt32 reads a big-endian signed 32-bit integer
func (d *Decoder) ReadInt32() (int32, error) {
	val, err := d.readUint(4)
	return int32(uint32(val)), err //nolint:gosec
}

// ReadInt64 reads a big-endian signed 64-bit integer
func (d *Decoder) ReadInt64() (int64, error) {
	val, err := d.readUint(8)
	return int64(val), err //nolint:gosec
}

// ReadBytes reads a length-prefixed byte string. The returned slice is a
// copy and safe to retain.
func (d *Decoder) ReadBytes() ([]byte, error) {
	length, err := d.readUint(2)
	if err != nil {
		return nil, err
	}
	tmp, err := d.take(int(length)) //nolint:gosec
	if err != nil {
		return nil, err
	}
	ret := make([]byte, len(tmp))
	copy(ret, tmp)
	return ret, nil
}

// ReadString reads a length-prefixed UTF-8 string
func (d *Decoder) ReadString() (string, error) {
	tmp, err := d.ReadBytes()
	if err != nil {
		return "", err
	}
	return string(tmp), nil
}

// ReadAddress reads a length-prefixed account reference
func (d *Decoder) ReadAddress() (tag.Address, error) {
	tmp, err := d.ReadBytes()
	if err != nil {
		return nil, err
	}
	return tag.Address(tmp), nil
}

// ReadValues reads a full value sequence against the field schema
func (d *Decoder) ReadValues(defs []tag.FieldDef) ([]any, error) {
	ret := make([]any, 0, len(defs))
	for i, def := range defs {
		val, err := d.ReadValue(def)
		if err != nil {
			return nil, fmt.Errorf("field %d: %w", i, err)
		}
		ret = append(ret, val)
	}
	return ret, nil
}

// ReadValue reads a single value according to its field definition
func (d *Decoder) ReadValue(def tag.FieldDef) (any, error) {
	if def.Array {
		return d.readArray(def.Type)
	}
	return d.readScalar(def.Type)
}

func (d *Decoder) readScalar(fieldType tag.FieldType) (any, error) {
	switch fieldType {
	case tag.FieldTypeBool:
		return d.ReadBool()
	case tag.FieldTypeUint8:
		return d.ReadUint8()
	case tag.FieldTypeUint16:
		return d.ReadUint16()
	case tag.FieldTypeUint32:
		return d.ReadUint32()
	case tag.FieldTypeUint64:
		return d.ReadUint64()
	case tag.FieldTypeInt8:
		return d.ReadInt8()
	case tag.FieldTypeInt16:
		return d.ReadInt16()
	case tag.FieldTypeInt32:
		return d.ReadInt32()
	case tag.FieldTypeInt64:
		return d.ReadInt64()
	case tag.FieldTypeAddress:
		return d.ReadAddress()
	case tag.FieldTypeBytes:
		return d.ReadBytes()
	case tag.FieldTypeString:
		return d.ReadString()
	default:
		return nil, fmt.Errorf(
			"%w: unsupported field type %s",
			ErrValueType,
			fieldType,
		)
	}
}

//nolint:gocyclo
func (d *Decoder) readArray(elemType tag.FieldType) (any, error) {
	count, err := d.readUint(2)
	if err != nil {
		return nil, err
	}
	n := int(count) //nolint:gosec
	switch elemType {
	case tag.FieldTypeBool:
		ret := make([]bool, 0, n)
		for range n {
			val, err := d.ReadBool()
			if err != nil {
				return nil, err
			}
			ret = append(ret, val)
		}
		return ret, nil
	case tag.FieldTypeUint8:
		ret := make([]uint8, 0, n)
		for range n {
			val, err := d.ReadUint8()
			if err != nil {
				return nil, err
			}
			ret = append(ret, val)
		}
		return ret, nil
	case tag.FieldTypeUint16:
		ret := make([]uint16, 0, n)
		for range n {
			val, err := d.ReadUint16()
			if err != nil {
				return nil, err
			}
			ret = append(ret, val)
		}
		return ret, nil
	case tag.FieldTypeUint32:
		ret := make([]uint32, 0, n)
		for range n {
			val, err := d.ReadUint32()
			if err != nil {
				return nil, err
			}
			ret = append(ret, val)
		}
		return ret, nil
	case tag.FieldTypeUint64:
		ret := make([]uint64, 0, n)
		for range n {
			val, err := d.ReadUint64()
			if err != nil {
				return nil, err
			}
			ret = append(ret, val)
		}
		return ret, nil
	case tag.FieldTypeInt8:
		ret := make([]int8, 0, n)
		for range n {
			val, err := d.ReadInt8()
			if err != nil {
				return nil, err
			}
			ret = append(ret, val)
		}
		return ret, nil
	case tag.FieldTypeInt16:
		ret := make([]int16, 0, n)
		for range n {
			val, err := d.ReadInt16()
			if err != nil {
				return nil, err
			}
			ret = append(ret, val)
		}
		return ret, nil
	case tag.FieldTypeInt32:
		ret := make([]int32, 0, n)
		for range n {
			val, err := d.ReadInt32()
			if err != nil {
				return nil, err
			}
			ret = append(ret, val)
		}
		return ret, nil
	case tag.FieldTypeInt64:
		ret := make([]int64, 0, n)
		for range n {
			val, err := d.ReadInt64()
			if err != nil {
				return nil, err
			}
			ret = append(ret, val)
		}
		return ret, nil
	case tag.FieldTypeAddress:
		ret := make([]tag.Address, 0, n)
		for range n {
			val, err := d.ReadAddress()
			if err != nil {
				return nil, err
			}
			ret = append(ret, val)
		}
		return ret, nil
	case tag.FieldTypeBytes:
		ret := make([][]byte, 0, n)
		for range n {
			val, err := d.ReadBytes()
			if err != nil {
				return nil, err
			}
			ret = append(ret, val)
		}
		return ret, nil
	case tag.FieldTypeString:
		ret := make([]string, 0, n)
		for range n {
			val, err := d.ReadString()
			if err != nil {
				return nil, err
			}
			ret = append(ret, val)
		}
		return ret, nil
	default:
		return nil, fmt.Errorf(
			"%w: unsupported field type %s",
			ErrValueType,
			elemType,
		)
	}
}
