/*
 * Copyright 2025 codelayer.
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJsonObjectRoundTrip(t *testing.T) {
	obj := JsonObject{"theme": "dark", "page_size": float64(25)}

	value, err := obj.Value()
	require.NoError(t, err)

	var scanned JsonObject
	require.NoError(t, scanned.Scan(value))
	assert.Equal(t, obj, scanned)

	// Dialects returning TEXT hand the column back as a string.
	var fromString JsonObject
	require.NoError(t, fromString.Scan(`{"theme":"light"}`))
	assert.Equal(t, "light", fromString["theme"])
}

func TestJsonObjectNullAndErrors(t *testing.T) {
	var nilObj JsonObject
	value, err := nilObj.Value()
	require.NoError(t, err)
	assert.Nil(t, value)

	var scanned JsonObject
	require.NoError(t, scanned.Scan(nil))
	assert.NotNil(t, scanned)
	assert.Empty(t, scanned)

	assert.Error(t, scanned.Scan(42))
}

func TestJsonArrayRoundTrip(t *testing.T) {
	arr := JsonArray{{"id": float64(1)}, {"id": float64(2)}}

	value, err := arr.Value()
	require.NoError(t, err)

	var scanned JsonArray
	require.NoError(t, scanned.Scan(value))
	assert.Equal(t, arr, scanned)

	var null JsonArray
	require.NoError(t, null.Scan(nil))
	assert.NotNil(t, null)
	assert.Empty(t, null)
}

func TestJSONTypedColumn(t *testing.T) {
	type settings struct {
		Theme    string `json:"theme"`
		PageSize int    `json:"page_size"`
	}

	col := NewJSON(settings{Theme: "dark", PageSize: 25})
	value, err := col.Value()
	require.NoError(t, err)

	var scanned JSON[settings]
	require.NoError(t, scanned.Scan(value))
	assert.Equal(t, col.Data, scanned.Data)

	// NULL keeps the zero value.
	var null JSON[settings]
	require.NoError(t, null.Scan(nil))
	assert.Equal(t, settings{}, null.Data)

	data, err := json.Marshal(col)
	require.NoError(t, err)
	assert.JSONEq(t, `{"theme":"dark","page_size":25}`, string(data))

	var decoded JSON[settings]
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, col.Data, decoded.Data)
}
