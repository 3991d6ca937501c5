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

package events

import (
	"context"
	"reflect"
	"sync"
)

// Kind identifies a model lifecycle event.
type Kind int

const (
	BeforeInsert Kind = iota
	AfterInsert
	BeforeUpdate
	AfterUpdate
	BeforeDelete
	AfterDelete
	AfterSelect
)

func (k Kind) String() string {
	switch k {
	case BeforeInsert:
		return "before_insert"
	case AfterInsert:
		return "after_insert"
	case BeforeUpdate:
		return "before_update"
	case AfterUpdate:
		return "after_update"
	case BeforeDelete:
		return "before_delete"
	case AfterDelete:
		return "after_delete"
	case AfterSelect:
		return "after_select"
	default:
		return "unknown"
	}
}

type listener func(ctx context.Context, model interface{}) error

var (
	registryMu sync.RWMutex
	registry   = make(map[Kind]map[reflect.Type][]listener)
)

// On registers fn as a lifecycle listener for model type T. Registration is
// meant to happen at init time, next to the model declaration. Listeners run
// in registration order; an error from a Before* listener aborts the
// operation before any SQL is issued.
func On[T any](kind Kind, fn func(ctx context.Context, model *T) error) {
	typ := reflect.TypeOf((*T)(nil)).Elem()

	wrapped := func(ctx context.Context, model interface{}) error {
		entity, ok := model.(*T)
		if !ok {
			return nil
		}
		return fn(ctx, entity)
	}

	registryMu.Lock()
	defer registryMu.Unlock()
	byType, ok := registry[kind]
	if !ok {
		byType = make(map[reflect.Type][]listener)
		registry[kind] = byType
	}
	byType[typ] = append(byType[typ], wrapped)
}

// HasListeners reports whether any listener is registered for the kind and
// the model's struct type.
func HasListeners(kind Kind, model interface{}) bool {
	typ := structType(reflect.TypeOf(model))
	if typ == nil {
		return false
	}
	registryMu.RLock()
	defer registryMu.RUnlock()
	return len(registry[kind][typ]) > 0
}

// Dispatch invokes listeners for the given model, which may be a struct
// pointer, a slice of struct pointers, or a pointer to such a slice. Slice
// models dispatch per element. Values with no registered listeners are a
// no-op.
func Dispatch(ctx context.Context, kind Kind, model interface{}) error {
	if model == nil {
		return nil
	}

	rv := reflect.ValueOf(model)
	if rv.Kind() == reflect.Ptr {
		if rv.IsNil() {
			return nil
		}
		if rv.Elem().Kind() == reflect.Slice {
			rv = rv.Elem()
		}
	}

	switch rv.Kind() {
	case reflect.Slice:
		for i := 0; i < rv.Len(); i++ {
			if err := dispatchOne(ctx, kind, rv.Index(i)); err != nil {
				return err
			}
		}
		return nil
	case reflect.Ptr:
		return dispatchOne(ctx, kind, rv)
	default:
		// Raw SQL and scalar models carry no lifecycle.
		return nil
	}
}

func dispatchOne(ctx context.Context, kind Kind, rv reflect.Value) error {
	if rv.Kind() != reflect.Ptr || rv.IsNil() || rv.Elem().Kind() != reflect.Struct {
		return nil
	}
	typ := rv.Type().Elem()

	registryMu.RLock()
	fns := registry[kind][typ]
	registryMu.RUnlock()

	for _, fn := range fns {
		if err := fn(ctx, rv.Interface()); err != nil {
			return err
		}
	}
	return nil
}

func structType(typ reflect.Type) reflect.Type {
	for typ != nil && (typ.Kind() == reflect.Ptr || typ.Kind() == reflect.Slice) {
		typ = typ.Elem()
	}
	if typ != nil && typ.Kind() == reflect.Struct {
		return typ
	}
	return nil
}

// Reset removes all registered listeners. Intended for tests.
func Reset() {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry = make(map[Kind]map[reflect.Type][]listener)
}
