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
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type account struct {
	Name    string `validate:"required"`
	Balance int    `validate:"gte=0"`
}

type audit struct {
	Actor string
}

func TestDispatchSingle(t *testing.T) {
	defer Reset()

	var calls []string
	On[account](BeforeInsert, func(ctx context.Context, m *account) error {
		calls = append(calls, "first:"+m.Name)
		return nil
	})
	On[account](BeforeInsert, func(ctx context.Context, m *account) error {
		calls = append(calls, "second:"+m.Name)
		return nil
	})

	err := Dispatch(context.Background(), BeforeInsert, &account{Name: "ada"})
	require.NoError(t, err)
	assert.Equal(t, []string{"first:ada", "second:ada"}, calls)
}

func TestDispatchSlicePerElement(t *testing.T) {
	defer Reset()

	var names []string
	On[account](AfterInsert, func(ctx context.Context, m *account) error {
		names = append(names, m.Name)
		return nil
	})

	batch := []*account{{Name: "ada"}, {Name: "bob"}}
	require.NoError(t, Dispatch(context.Background(), AfterInsert, batch))
	assert.Equal(t, []string{"ada", "bob"}, names)

	// Pointer to slice dispatches the same way.
	names = nil
	require.NoError(t, Dispatch(context.Background(), AfterInsert, &batch))
	assert.Equal(t, []string{"ada", "bob"}, names)
}

func TestDispatchBeforeErrorAborts(t *testing.T) {
	defer Reset()

	boom := errors.New("rejected")
	var reached bool
	On[account](BeforeUpdate, func(ctx context.Context, m *account) error { return boom })
	On[account](BeforeUpdate, func(ctx context.Context, m *account) error {
		reached = true
		return nil
	})

	err := Dispatch(context.Background(), BeforeUpdate, &account{Name: "ada"})
	assert.ErrorIs(t, err, boom)
	assert.False(t, reached)
}

func TestDispatchUnregisteredTypeIsNoop(t *testing.T) {
	defer Reset()

	On[account](BeforeDelete, func(ctx context.Context, m *account) error {
		return errors.New("should not fire")
	})

	assert.NoError(t, Dispatch(context.Background(), BeforeDelete, &audit{Actor: "ada"}))
	assert.NoError(t, Dispatch(context.Background(), BeforeDelete, nil))
	assert.NoError(t, Dispatch(context.Background(), BeforeDelete, "raw sql result"))
	assert.NoError(t, Dispatch(context.Background(), BeforeDelete, (*account)(nil)))
}

func TestHasListeners(t *testing.T) {
	defer Reset()

	assert.False(t, HasListeners(AfterDelete, &account{}))
	On[account](AfterDelete, func(ctx context.Context, m *account) error { return nil })
	assert.True(t, HasListeners(AfterDelete, &account{}))
	assert.True(t, HasListeners(AfterDelete, []*account{}))
	assert.False(t, HasListeners(AfterDelete, &audit{}))
	assert.False(t, HasListeners(BeforeDelete, &account{}))
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "before_insert", BeforeInsert.String())
	assert.Equal(t, "after_select", AfterSelect.String())
	assert.Equal(t, "unknown", Kind(42).String())
}

func TestValidateSugar(t *testing.T) {
	defer Reset()

	Validate[account]()

	ok := &account{Name: "ada", Balance: 10}
	require.NoError(t, Dispatch(context.Background(), BeforeInsert, ok))

	bad := &account{Balance: -5}
	assert.Error(t, Dispatch(context.Background(), BeforeInsert, bad))
	assert.Error(t, Dispatch(context.Background(), BeforeUpdate, bad))
}

func TestOnSaveSugar(t *testing.T) {
	defer Reset()

	var count int
	OnSave[account](func(ctx context.Context, m *account) error {
		count++
		return nil
	})

	require.NoError(t, Dispatch(context.Background(), BeforeInsert, &account{Name: "a"}))
	require.NoError(t, Dispatch(context.Background(), BeforeUpdate, &account{Name: "a"}))
	assert.Equal(t, 2, count)
}
