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

package repository

import (
	"fmt"
	"reflect"

	"github.com/uptrace/bun/schema"
)

// Table returns the Bun table metadata for the entity type.
func (r *baseRepositoryImpl[T]) Table() *schema.Table {
	return r.db.Table(reflect.TypeOf((*T)(nil)).Elem())
}

// ToMap converts an entity into a column-name keyed map using the Bun table
// schema, the counterpart of UpdateColumns. Relations are not included.
func (r *baseRepositoryImpl[T]) ToMap(entity *T) map[string]interface{} {
	if entity == nil {
		return nil
	}
	table := r.Table()
	strct := reflect.ValueOf(entity).Elem()

	out := make(map[string]interface{}, len(table.Fields))
	for _, field := range table.Fields {
		out[field.Name] = field.Value(strct).Interface()
	}
	return out
}

// pkField returns the single primary key field of the entity's table.
func (r *baseRepositoryImpl[T]) pkField() (*schema.Field, error) {
	table := r.Table()
	if len(table.PKs) != 1 {
		return nil, fmt.Errorf("table %s: expected a single primary key, found %d", table.Name, len(table.PKs))
	}
	return table.PKs[0], nil
}

// checkColumns verifies every key of values is a mapped column.
func (r *baseRepositoryImpl[T]) checkColumns(values map[string]interface{}) error {
	table := r.Table()
	for column := range values {
		if _, ok := table.FieldMap[column]; !ok {
			return fmt.Errorf("table %s has no column %q", table.Name, column)
		}
	}
	return nil
}

// hasZeroPK reports whether any primary key field of the entity is zero.
func (r *baseRepositoryImpl[T]) hasZeroPK(entity *T) bool {
	table := r.Table()
	strct := reflect.ValueOf(entity).Elem()
	for _, pk := range table.PKs {
		if pk.Value(strct).IsZero() {
			return true
		}
	}
	return len(table.PKs) == 0
}
