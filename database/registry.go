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

package database

import (
	"sort"
	"sync"
)

var defaultRegistry = newModelRegistry()

// SchemaModel is a registered database model. Instance returns a struct
// pointer compatible with Bun; Priority controls table creation order
// (lower values first), so parents register before FK dependents.
type SchemaModel interface {
	Instance() interface{}
	Priority() int
}

// ModelRegistry stores schema models and exposes them in priority order.
type ModelRegistry interface {
	Register(model SchemaModel)
	Models() []SchemaModel
}

type modelRegistry struct {
	models []SchemaModel
	mutex  sync.RWMutex
}

func newModelRegistry() ModelRegistry {
	return &modelRegistry{
		models: make([]SchemaModel, 0),
	}
}

func (r *modelRegistry) Register(model SchemaModel) {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	r.models = append(r.models, model)
}

func (r *modelRegistry) Models() []SchemaModel {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	result := make([]SchemaModel, len(r.models))
	copy(result, r.models)
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Priority() < result[j].Priority()
	})
	return result
}

type modelAdapter struct {
	instance interface{}
	priority int
}

func (a *modelAdapter) Instance() interface{} { return a.instance }

func (a *modelAdapter) Priority() int { return a.priority }

// RegisterModel adds a model instance to the default registry. Typically
// called from init functions at model declaration sites.
func RegisterModel(instance interface{}, priority int) {
	defaultRegistry.Register(&modelAdapter{instance: instance, priority: priority})
}

// RegisteredModels returns all registered models sorted by ascending priority.
func RegisteredModels() []SchemaModel {
	return defaultRegistry.Models()
}

// RegisteredInstances returns the registered struct instances in priority
// order, suitable for bun.DB.RegisterModel and table creation.
func RegisteredInstances() []interface{} {
	models := RegisteredModels()
	instances := make([]interface{}, len(models))
	for i, model := range models {
		instances[i] = model.Instance()
	}
	return instances
}
