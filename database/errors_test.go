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
	"errors"
	"fmt"
	"testing"

	"github.com/go-sql-driver/mysql"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
)

func TestIsSQLErrorMySQL(t *testing.T) {
	cases := []struct {
		number uint16
		want   SQLError
	}{
		{1062, DuplicateKeyErr},
		{1146, NoTableErr},
		{1050, ExistTableErr},
		{1054, NoColumnErr},
		{1048, NotNullViolationErr},
		{1452, ForeignKeyViolationErr},
		{3819, CheckConstraintViolationErr},
		{1265, DataTruncatedErr},
		{9999, UnknownErr},
	}
	for _, tc := range cases {
		ok, kind := IsSQLError(&mysql.MySQLError{Number: tc.number})
		assert.True(t, ok, "number %d", tc.number)
		assert.Equal(t, tc.want, kind, "number %d", tc.number)
	}
}

func TestIsSQLErrorPostgres(t *testing.T) {
	cases := []struct {
		code string
		want SQLError
	}{
		{"23505", DuplicateKeyErr},
		{"42P01", NoTableErr},
		{"42P07", ExistTableErr},
		{"42703", NoColumnErr},
		{"23502", NotNullViolationErr},
		{"23503", ForeignKeyViolationErr},
		{"23514", CheckConstraintViolationErr},
		{"22001", DataTruncatedErr},
		{"42804", InvalidTypeCastErr},
		{"0A000", UnknownErr},
	}
	for _, tc := range cases {
		ok, kind := IsSQLError(&pq.Error{Code: pq.ErrorCode(tc.code)})
		assert.True(t, ok, "code %s", tc.code)
		assert.Equal(t, tc.want, kind, "code %s", tc.code)
	}
}

func TestIsSQLErrorSQLiteMessages(t *testing.T) {
	cases := []struct {
		message string
		want    SQLError
	}{
		{"constraint failed: UNIQUE constraint failed: users.email", DuplicateKeyErr},
		{"SQL logic error: no such table: users", NoTableErr},
		{"SQL logic error: table users already exists", ExistTableErr},
		{"SQL logic error: no such column: nickname", NoColumnErr},
		{"constraint failed: NOT NULL constraint failed: users.name", NotNullViolationErr},
		{"constraint failed: FOREIGN KEY constraint failed", ForeignKeyViolationErr},
		{"constraint failed: CHECK constraint failed: users", CheckConstraintViolationErr},
		{"SQL logic error: datatype mismatch", InvalidTypeCastErr},
	}
	for _, tc := range cases {
		ok, kind := IsSQLError(errors.New(tc.message))
		assert.True(t, ok, "message %q", tc.message)
		assert.Equal(t, tc.want, kind, "message %q", tc.message)
	}
}

func TestIsSQLErrorUnrecognized(t *testing.T) {
	ok, kind := IsSQLError(errors.New("dial tcp: connection refused"))
	assert.False(t, ok)
	assert.Equal(t, UnknownErr, kind)

	ok, _ = IsSQLError(nil)
	assert.False(t, ok)
}

func TestIsSQLErrorWrapped(t *testing.T) {
	err := fmt.Errorf("insert failed: %w", &mysql.MySQLError{Number: 1062})
	assert.True(t, IsDuplicateKey(err))
	assert.False(t, IsDuplicateKey(errors.New("timeout")))
}
