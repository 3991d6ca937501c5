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
	"strings"

	"github.com/go-sql-driver/mysql"
	"github.com/lib/pq"
)

// ErrNotConnected is returned by operations requiring an open connection.
var ErrNotConnected = errors.New("database not connected")

// SQLError classifies driver errors into portable categories so callers do
// not need to branch on mysql/postgres/sqlite specifics.
type SQLError int

const (
	UnknownErr SQLError = iota
	NoRowsErr
	NoTableErr
	ExistTableErr
	NoColumnErr
	DuplicateKeyErr
	NotNullViolationErr
	ForeignKeyViolationErr
	CheckConstraintViolationErr
	DataTruncatedErr
	InvalidTypeCastErr
)

// IsSQLError reports whether err originates from the database driver and
// classifies it. MySQL errors carry numeric codes, postgres errors carry
// SQLSTATE codes via lib/pq, and sqlite errors are matched by message.
func IsSQLError(err error) (bool, SQLError) {
	if err == nil {
		return false, UnknownErr
	}

	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) {
		return true, classifyMySQL(mysqlErr.Number)
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return true, classifySQLState(string(pqErr.Code))
	}

	return classifyMessage(strings.ToLower(err.Error()))
}

func classifyMySQL(number uint16) SQLError {
	switch number {
	case 1146:
		return NoTableErr
	case 1050:
		return ExistTableErr
	case 1054:
		return NoColumnErr
	case 1062:
		return DuplicateKeyErr
	case 1048:
		return NotNullViolationErr
	case 1216, 1217, 1451, 1452:
		return ForeignKeyViolationErr
	case 3819:
		return CheckConstraintViolationErr
	case 1265:
		return DataTruncatedErr
	default:
		return UnknownErr
	}
}

func classifySQLState(code string) SQLError {
	switch code {
	case "42P01":
		return NoTableErr
	case "42P07":
		return ExistTableErr
	case "42703":
		return NoColumnErr
	case "23505":
		return DuplicateKeyErr
	case "23502":
		return NotNullViolationErr
	case "23503":
		return ForeignKeyViolationErr
	case "23514":
		return CheckConstraintViolationErr
	case "22001":
		return DataTruncatedErr
	case "42804":
		return InvalidTypeCastErr
	default:
		return UnknownErr
	}
}

// classifyMessage covers sqlite and drivers that surface bare strings.
func classifyMessage(s string) (bool, SQLError) {
	switch {
	case strings.Contains(s, "no such table") ||
		strings.Contains(s, "undefined table"):
		return true, NoTableErr
	case strings.Contains(s, "table") && strings.Contains(s, "already exists"),
		strings.Contains(s, "relation") && strings.Contains(s, "already exists"):
		return true, ExistTableErr
	case strings.Contains(s, "no such column") ||
		strings.Contains(s, "undefined column"):
		return true, NoColumnErr
	case strings.Contains(s, "unique constraint failed") ||
		strings.Contains(s, "duplicate key value"):
		return true, DuplicateKeyErr
	case strings.Contains(s, "not null constraint failed") ||
		strings.Contains(s, "not-null constraint"):
		return true, NotNullViolationErr
	case strings.Contains(s, "foreign key constraint failed") ||
		strings.Contains(s, "foreign key violation"):
		return true, ForeignKeyViolationErr
	case strings.Contains(s, "check constraint"):
		return true, CheckConstraintViolationErr
	case strings.Contains(s, "data truncated") ||
		strings.Contains(s, "string data right truncation"):
		return true, DataTruncatedErr
	case strings.Contains(s, "datatype mismatch"):
		return true, InvalidTypeCastErr
	}
	return false, UnknownErr
}

// IsDuplicateKey reports whether err is a unique/duplicate key violation on
// any supported dialect.
func IsDuplicateKey(err error) bool {
	ok, kind := IsSQLError(err)
	return ok && kind == DuplicateKeyErr
}
