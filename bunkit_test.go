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

package bunkit

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
)

type Account struct {
	bun.BaseModel `bun:"table:accounts,alias:a"`
	Model

	Email string `bun:"email"`
}

type APIToken struct {
	bun.BaseModel `bun:"table:api_tokens,alias:t"`
	UUIDModel

	Label string `bun:"label"`
}

func newMockService[T any](t *testing.T) (Service[T], sqlmock.Sqlmock, *bun.DB) {
	t.Helper()
	sqldb, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	db := bun.NewDB(sqldb, sqlitedialect.New())
	t.Cleanup(func() { _ = db.Close() })
	return NewServiceWithDB[T](db), mock, db
}

func TestServiceGet(t *testing.T) {
	svc, mock, _ := newMockService[Account](t)
	mock.ExpectQuery(`SELECT .+ FROM "accounts"`).
		WillReturnRows(sqlmock.
			NewRows([]string{"id", "created_at", "updated_at", "email"}).
			AddRow(1, time.Now(), time.Now(), "dev@example.com"))

	account, err := svc.Get(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), account.ID)
	assert.Equal(t, "dev@example.com", account.Email)
	assert.True(t, account.Persisted())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestServiceGetNotFound(t *testing.T) {
	svc, mock, _ := newMockService[Account](t)
	mock.ExpectQuery(`SELECT .+ FROM "accounts"`).WillReturnError(sql.ErrNoRows)

	_, err := svc.Get(context.Background(), 404)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestServiceSaveSetsTimestamps(t *testing.T) {
	svc, mock, _ := newMockService[Account](t)
	mock.ExpectExec(`INSERT INTO "accounts"`).
		WillReturnResult(sqlmock.NewResult(1, 1))

	account := &Account{Email: "dev@example.com"}
	account.ID = 1
	require.NoError(t, svc.Save(context.Background(), account))
	assert.False(t, account.CreatedAt.IsZero())
	assert.False(t, account.UpdatedAt.IsZero())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestServiceSaveGeneratesUUID(t *testing.T) {
	svc, mock, _ := newMockService[APIToken](t)
	mock.ExpectExec(`INSERT INTO "api_tokens"`).
		WillReturnResult(sqlmock.NewResult(1, 1))

	token := &APIToken{Label: "ci"}
	assert.False(t, token.Persisted())
	require.NoError(t, svc.Save(context.Background(), token))
	assert.Len(t, token.ID, 36)
	assert.True(t, token.Persisted())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestServiceSaveKeepsPresetUUID(t *testing.T) {
	svc, mock, _ := newMockService[APIToken](t)
	mock.ExpectExec(`INSERT INTO "api_tokens"`).
		WillReturnResult(sqlmock.NewResult(1, 1))

	token := &APIToken{Label: "ci"}
	token.ID = "00000000-0000-0000-0000-000000000001"
	require.NoError(t, svc.Save(context.Background(), token))
	assert.Equal(t, "00000000-0000-0000-0000-000000000001", token.ID)
}

func TestServiceUpdateTouchesUpdatedAt(t *testing.T) {
	svc, mock, _ := newMockService[Account](t)
	mock.ExpectExec(`UPDATE "accounts" SET .+`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	created := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	account := &Account{Email: "dev@example.com"}
	account.ID = 1
	account.CreatedAt = created
	account.UpdatedAt = created

	require.NoError(t, svc.Update(context.Background(), account))
	assert.Equal(t, created, account.CreatedAt)
	assert.True(t, account.UpdatedAt.After(created))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestServiceToMap(t *testing.T) {
	svc, _, _ := newMockService[Account](t)

	account := &Account{Email: "dev@example.com"}
	account.ID = 5
	m := svc.ToMap(account)

	assert.Equal(t, int64(5), m["id"])
	assert.Equal(t, "dev@example.com", m["email"])
	assert.Contains(t, m, "created_at")
	assert.Contains(t, m, "updated_at")
}

func TestServiceRefreshUnsaved(t *testing.T) {
	svc, _, _ := newMockService[Account](t)
	err := svc.Refresh(context.Background(), &Account{Email: "x"})
	assert.ErrorIs(t, err, ErrNotPersisted)
}

func TestServiceBuilders(t *testing.T) {
	svc, mock, _ := newMockService[Account](t)
	mock.ExpectQuery(`SELECT .+ FROM "accounts" .+ WHERE \(email = 'dev@example.com'\)`).
		WillReturnRows(sqlmock.
			NewRows([]string{"id", "created_at", "updated_at", "email"}).
			AddRow(1, time.Now(), time.Now(), "dev@example.com"))

	var accounts []*Account
	err := svc.SelectBuilder().
		Model(&accounts).
		Where("email = ?", "dev@example.com").
		Scan(context.Background())
	require.NoError(t, err)
	assert.Len(t, accounts, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestServiceDelete(t *testing.T) {
	svc, mock, _ := newMockService[Account](t)
	mock.ExpectExec(`DELETE FROM "accounts" .+ \(id = 3\)`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, svc.Delete(context.Background(), 3))
	assert.NoError(t, mock.ExpectationsWereMet())
}
