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
	"fmt"

	"github.com/go-playground/validator/v10"
)

var structValidator = validator.New()

// Validate registers BeforeInsert and BeforeUpdate listeners that run
// go-playground/validator over the model's `validate` struct tags. Invalid
// models abort the write with a validation error.
func Validate[T any]() {
	check := func(ctx context.Context, model *T) error {
		if err := structValidator.StructCtx(ctx, model); err != nil {
			return fmt.Errorf("model validation failed: %w", err)
		}
		return nil
	}
	On[T](BeforeInsert, check)
	On[T](BeforeUpdate, check)
}

// OnSave registers the same listener for BeforeInsert and BeforeUpdate.
func OnSave[T any](fn func(ctx context.Context, model *T) error) {
	On[T](BeforeInsert, fn)
	On[T](BeforeUpdate, fn)
}
