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

package tag_test

import (
	"strings"
	"testing"

	"github.com/blinklabs-io/cairn/tag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFieldDefsRoundTrip(t *testing.T) {
	testDefs := []tag.FieldDef{
		{Type: tag.FieldTypeBool},
		{Type: tag.FieldTypeUint16},
		{Type: tag.FieldTypeUint64, Array: true},
		{Type: tag.FieldTypeAddress},
		{Type: tag.FieldTypeString, Array: true},
		{Type: tag.FieldTypeBytes},
	}
	encoded, err := tag.EncodeFieldDefs(testDefs)
	require.NoError(t, err)
	decoded, err := tag.DecodeFieldDefs(encoded)
	require.NoError(t, err)
	assert.Equal(t, testDefs, decoded)
}

func TestFieldDefsEncodeInvalidType(t *testing.T) {
	_, err := tag.EncodeFieldDefs(
		[]tag.FieldDef{
			{Type: tag.FieldType(99)},
		},
	)
	require.ErrorIs(t, err, tag.ErrSchemaMismatch)
}

func TestFieldDefsDecodeUnknownCode(t *testing.T) {
	_, err := tag.DecodeFieldDefs([]byte{0x63})
	require.ErrorIs(t, err, tag.ErrSchemaMismatch)
}

func TestFieldDefsDecodeTrailingArrayMarker(t *testing.T) {
	_, err := tag.DecodeFieldDefs(
		[]byte{byte(tag.FieldTypeBool), tag.FieldTypeArrayMarker},
	)
	require.ErrorIs(t, err, tag.ErrSchemaMismatch)
}

func TestFieldNamesRoundTrip(t *testing.T) {
	testNames := []string{"score", "updated", "labels"}
	joined := tag.JoinFieldNames(testNames)
	assert.Equal(t, "score,updated,labels", joined)
	assert.Equal(t, testNames, tag.SplitFieldNames(joined))
}

func TestValidateSchema(t *testing.T) {
	testDefs := []tag.FieldDef{
		{Type: tag.FieldTypeUint16},
		{Type: tag.FieldTypeString},
	}
	testCases := []struct {
		name        string
		fieldNames  []string
		errExpected bool
	}{
		{
			name:       "valid",
			fieldNames: []string{"score", "comment"},
		},
		{
			name:        "length mismatch",
			fieldNames:  []string{"score"},
			errExpected: true,
		},
		{
			name:        "empty name",
			fieldNames:  []string{"score", ""},
			errExpected: true,
		},
		{
			name:        "duplicate name",
			fieldNames:  []string{"score", "score"},
			errExpected: true,
		},
		{
			name:        "name with delimiter",
			fieldNames:  []string{"score", "a,b"},
			errExpected: true,
		},
		{
			name: "name too long",
			fieldNames: []string{
				"score",
				strings.Repeat("x", tag.MaxFieldNameLength+1),
			},
			errExpected: true,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := tag.ValidateSchema(tc.fieldNames, testDefs)
			if tc.errExpected {
				require.ErrorIs(t, err, tag.ErrSchemaMismatch)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestValidateSchemaInvalidFieldType(t *testing.T) {
	err := tag.ValidateSchema(
		[]string{"score"},
		[]tag.FieldDef{
			{Type: tag.FieldType(200)},
		},
	)
	require.ErrorIs(t, err, tag.ErrSchemaMismatch)
}
