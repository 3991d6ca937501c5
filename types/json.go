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
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// JSON wraps an arbitrary Go value as a JSON database column: the value is
// marshalled on write and unmarshalled on read, so a model field can be
// declared as JSON[Settings] without custom scanning code.
type JSON[T any] struct {
	Data T
}

// NewJSON wraps data as a JSON column value.
func NewJSON[T any](data T) JSON[T] { return JSON[T]{Data: data} }

func (j JSON[T]) Value() (driver.Value, error) {
	return json.Marshal(j.Data)
}

// Scan implements sql.Scanner. NULL leaves the wrapped value at its zero.
func (j *JSON[T]) Scan(value interface{}) error {
	return jsonColumnScan(value, &j.Data)
}

func (j JSON[T]) MarshalJSON() ([]byte, error) {
	return json.Marshal(j.Data)
}

func (j *JSON[T]) UnmarshalJSON(data []byte) error {
	return json.Unmarshal(data, &j.Data)
}

// JsonObject maps a JSON object column to a string-keyed map.
type JsonObject map[string]interface{}

// JsonArray maps a JSON array column to a slice of objects.
type JsonArray []JsonObject

// Value implements driver.Valuer; a nil map stores SQL NULL.
func (j JsonObject) Value() (driver.Value, error) {
	if j == nil {
		return nil, nil
	}
	return json.Marshal(j)
}

// Scan implements sql.Scanner. NULL scans to an empty object.
func (j *JsonObject) Scan(value interface{}) error {
	if value == nil {
		*j = make(JsonObject)
		return nil
	}
	return jsonColumnScan(value, j)
}

// Value implements driver.Valuer; a nil slice stores SQL NULL.
func (j JsonArray) Value() (driver.Value, error) {
	if j == nil {
		return nil, nil
	}
	return json.Marshal(j)
}

// Scan implements sql.Scanner. NULL scans to an empty array.
func (j *JsonArray) Scan(value interface{}) error {
	if value == nil {
		*j = make(JsonArray, 0)
		return nil
	}
	return jsonColumnScan(value, j)
}

// jsonColumnScan unmarshals a driver value into dst. Drivers hand JSON
// columns back as []byte or string depending on dialect.
func jsonColumnScan(value interface{}, dst interface{}) error {
	switch data := value.(type) {
	case nil:
		return nil
	case []byte:
		return json.Unmarshal(data, dst)
	case string:
		return json.Unmarshal([]byte(data), dst)
	default:
		return fmt.Errorf("cannot scan %T into a JSON column", value)
	}
}
