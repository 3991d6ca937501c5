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
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/codelayer/bunkit/events"
	"github.com/codelayer/bunkit/types"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/feature"
	"github.com/uptrace/bun/schema"
)

type baseRepositoryImpl[T any] struct {
	db *bun.DB
}

// NewRepository returns a generic repository backed by the provided Bun DB.
func NewRepository[T any](db *bun.DB) Repository[T] {
	return &baseRepositoryImpl[T]{db: db}
}

func (r *baseRepositoryImpl[T]) Dialect() schema.Dialect { return r.db.Dialect() }

func (r *baseRepositoryImpl[T]) NewSelect() *bun.SelectQuery { return r.db.NewSelect() }

func (r *baseRepositoryImpl[T]) NewInsert() *bun.InsertQuery { return r.db.NewInsert() }

func (r *baseRepositoryImpl[T]) NewUpdate() *bun.UpdateQuery { return r.db.NewUpdate() }

func (r *baseRepositoryImpl[T]) NewDelete() *bun.DeleteQuery { return r.db.NewDelete() }

func (r *baseRepositoryImpl[T]) valsToSlice(entity ...*T) []*T {
	entities := make([]*T, len(entity))
	copy(entities, entity)
	return entities
}

func (r *baseRepositoryImpl[T]) GetOne(ctx context.Context, id any) (*T, error) {
	entity, err := r.getByID(ctx, r.db, id)
	if err != nil {
		return nil, err
	}
	if err := events.Dispatch(ctx, events.AfterSelect, entity); err != nil {
		return nil, err
	}
	return entity, nil
}

func (r *baseRepositoryImpl[T]) getByID(ctx context.Context, idb bun.IDB, id any) (*T, error) {
	var entity T
	err := idb.NewSelect().Model(&entity).Where("id = ?", id).Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: id %v", ErrNotFound, id)
		}
		return nil, err
	}
	return &entity, nil
}

func (r *baseRepositoryImpl[T]) GetMany(ctx context.Context, ids ...any) ([]*T, error) {
	if len(ids) == 0 {
		return make([]*T, 0), nil
	}
	var entities []*T
	err := r.db.NewSelect().Model(&entities).Where("id IN (?)", bun.In(ids)).Scan(ctx)
	if err != nil {
		return nil, err
	}
	if err := events.Dispatch(ctx, events.AfterSelect, entities); err != nil {
		return nil, err
	}
	return entities, nil
}

func (r *baseRepositoryImpl[T]) GetAll(ctx context.Context) ([]*T, error) {
	var entities []*T
	err := r.db.NewSelect().Model(&entities).Scan(ctx)
	if err != nil {
		return nil, err
	}
	if err := events.Dispatch(ctx, events.AfterSelect, entities); err != nil {
		return nil, err
	}
	return entities, nil
}

func (r *baseRepositoryImpl[T]) List(ctx context.Context, filter *types.QueryFilter) ([]*T, error) {
	var entities []*T
	query := r.db.NewSelect().Model(&entities)
	if filter != nil {
		query = query.Where(filter.Schema, filter.Args...)
	}
	if err := query.Scan(ctx); err != nil {
		return nil, err
	}
	if err := events.Dispatch(ctx, events.AfterSelect, entities); err != nil {
		return nil, err
	}
	return entities, nil
}

func (r *baseRepositoryImpl[T]) Search(ctx context.Context, term string, columns ...string) ([]*T, error) {
	var entities []*T
	query := r.db.NewSelect().Model(&entities)
	query = applySearch(query, types.NewSearchFilter(term, columns...))
	if err := query.Scan(ctx); err != nil {
		return nil, err
	}
	if err := events.Dispatch(ctx, events.AfterSelect, entities); err != nil {
		return nil, err
	}
	return entities, nil
}

func (r *baseRepositoryImpl[T]) Query(ctx context.Context, query string, args ...interface{}) ([]*T, error) {
	var entities []*T
	err := r.db.NewSelect().Model(&entities).Where(query, args...).Scan(ctx)
	if err != nil {
		return nil, err
	}
	if err := events.Dispatch(ctx, events.AfterSelect, entities); err != nil {
		return nil, err
	}
	return entities, nil
}

// applySearch ORs a case-insensitive LIKE per column into one WHERE group.
func applySearch(query *bun.SelectQuery, search *types.SearchFilter) *bun.SelectQuery {
	if search == nil || search.Term == "" || len(search.Columns) == 0 {
		return query
	}
	pattern := "%" + search.Term + "%"
	return query.WhereGroup(" AND ", func(q *bun.SelectQuery) *bun.SelectQuery {
		for _, column := range search.Columns {
			q = q.WhereOr("lower(?) LIKE lower(?)", bun.Ident(column), pattern)
		}
		return q
	})
}

func (r *baseRepositoryImpl[T]) Page(ctx context.Context, pageRequest *types.PageRequest) (*types.Pagination[T], error) {
	var entities []*T
	query := r.db.NewSelect().Model(&entities)
	if filter := pageRequest.GetFilter(); filter != nil {
		query = query.Where(filter.Schema, filter.Args...)
	}
	query = applySearch(query, pageRequest.GetSearch())

	pagination := types.NewDefaultPagination[T](pageRequest.GetPage(), pageRequest.GetPageSize())
	total, err := query.Count(ctx)
	if err != nil || total == 0 {
		return pagination, err
	}

	if columns := pageRequest.GetColumns(); len(columns) > 0 {
		query = query.Column(columns...)
	}
	if excluded := pageRequest.GetExcludedColumns(); len(excluded) > 0 {
		query = query.ExcludeColumn(excluded...)
	}
	for _, relation := range pageRequest.GetRelations() {
		query = query.Relation(relation)
	}

	err = query.
		Offset(pageRequest.GetOffset()).
		Limit(pageRequest.GetPageSize()).
		Order(pageRequest.GetOrders()...).
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	if err := events.Dispatch(ctx, events.AfterSelect, entities); err != nil {
		return nil, err
	}
	pagination.Total = total
	pagination.Items = entities
	return pagination, nil
}

func (r *baseRepositoryImpl[T]) Create(ctx context.Context, entity ...*T) error {
	entities := r.valsToSlice(entity...)
	if err := events.Dispatch(ctx, events.BeforeInsert, entities); err != nil {
		return err
	}
	if _, err := r.db.NewInsert().Model(&entities).Exec(ctx); err != nil {
		return err
	}
	return events.Dispatch(ctx, events.AfterInsert, entities)
}

func (r *baseRepositoryImpl[T]) Upsert(ctx context.Context, fields []string, duplicateKeys []string, entity ...*T) error {
	return r.multipleUpsert(ctx, nil, fields, duplicateKeys, entity...)
}

func (r *baseRepositoryImpl[T]) Update(ctx context.Context, entity *T) error {
	if err := events.Dispatch(ctx, events.BeforeUpdate, entity); err != nil {
		return err
	}
	if _, err := r.db.NewUpdate().Model(entity).WherePK().Exec(ctx); err != nil {
		return err
	}
	return events.Dispatch(ctx, events.AfterUpdate, entity)
}

// UpdateColumns writes a column-name keyed map to the row with the given
// primary key. Keys are validated against the table schema before any SQL is
// issued; lifecycle listeners do not run because no model instance exists.
func (r *baseRepositoryImpl[T]) UpdateColumns(ctx context.Context, id any, values map[string]interface{}) error {
	if len(values) == 0 {
		return fmt.Errorf("values cannot be empty")
	}
	if err := r.checkColumns(values); err != nil {
		return err
	}
	pk, err := r.pkField()
	if err != nil {
		return err
	}

	_, err = r.db.NewUpdate().
		Model(&values).
		Table(r.Table().Name).
		Where("? = ?", bun.Ident(pk.Name), id).
		Exec(ctx)
	return err
}

func (r *baseRepositoryImpl[T]) Delete(ctx context.Context, id any) error {
	return r.deleteByID(ctx, r.db, id)
}

func (r *baseRepositoryImpl[T]) deleteByID(ctx context.Context, idb bun.IDB, id any) error {
	probe := new(T)
	wantsEvents := events.HasListeners(events.BeforeDelete, probe) ||
		events.HasListeners(events.AfterDelete, probe)

	var loaded *T
	if wantsEvents {
		// Best effort: deleting a missing row is not an error.
		loaded, _ = r.getByID(ctx, idb, id)
	}
	if loaded != nil {
		if err := events.Dispatch(ctx, events.BeforeDelete, loaded); err != nil {
			return err
		}
	}

	var entity T
	if _, err := idb.NewDelete().Model(&entity).Where("id = ?", id).Exec(ctx); err != nil {
		return err
	}

	if loaded != nil {
		return events.Dispatch(ctx, events.AfterDelete, loaded)
	}
	return nil
}

// Refresh re-selects the row identified by the entity's primary key into the
// same struct, discarding unsaved field changes.
func (r *baseRepositoryImpl[T]) Refresh(ctx context.Context, entity *T) error {
	if entity == nil {
		return fmt.Errorf("entity cannot be nil")
	}
	if r.hasZeroPK(entity) {
		return fmt.Errorf("%w: primary key is zero", ErrNotPersisted)
	}
	err := r.db.NewSelect().Model(entity).WherePK().Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: row no longer exists", ErrNotFound)
	}
	return err
}

func (r *baseRepositoryImpl[T]) CreateWithTx(ctx context.Context, tx *bun.Tx, entity ...*T) error {
	entities := r.valsToSlice(entity...)
	if err := events.Dispatch(ctx, events.BeforeInsert, entities); err != nil {
		return err
	}
	if _, err := tx.NewInsert().Model(&entities).Exec(ctx); err != nil {
		return err
	}
	return events.Dispatch(ctx, events.AfterInsert, entities)
}

func (r *baseRepositoryImpl[T]) UpsertWithTx(ctx context.Context, tx *bun.Tx, fields []string, duplicateKeys []string, entity ...*T) error {
	return r.multipleUpsert(ctx, tx, fields, duplicateKeys, entity...)
}

func (r *baseRepositoryImpl[T]) UpdateWithTx(ctx context.Context, tx *bun.Tx, entity *T) error {
	if err := events.Dispatch(ctx, events.BeforeUpdate, entity); err != nil {
		return err
	}
	if _, err := tx.NewUpdate().Model(entity).WherePK().Exec(ctx); err != nil {
		return err
	}
	return events.Dispatch(ctx, events.AfterUpdate, entity)
}

func (r *baseRepositoryImpl[T]) DeleteWithTx(ctx context.Context, tx *bun.Tx, id any) error {
	return r.deleteByID(ctx, *tx, id)
}

func (r *baseRepositoryImpl[T]) multipleUpsert(ctx context.Context, tx *bun.Tx, fields []string, duplicateKeys []string, entity ...*T) error {
	if len(fields) == 0 {
		return fmt.Errorf("fields cannot be empty")
	}

	var idb bun.IDB = r.db
	if tx != nil {
		idb = *tx
	}

	entities := r.valsToSlice(entity...)
	if err := events.Dispatch(ctx, events.BeforeInsert, entities); err != nil {
		return err
	}

	var err error
	switch {
	case r.db.HasFeature(feature.InsertOnConflict):
		err = r.upsertOnConflict(ctx, idb.NewInsert(), fields, duplicateKeys, entities)
	case r.db.HasFeature(feature.InsertOnDuplicateKey):
		err = r.upsertOnDuplicateKey(ctx, idb.NewInsert(), fields, entities)
	default:
		err = r.upsertFallback(ctx, idb, entities)
	}
	if err != nil {
		return err
	}
	return events.Dispatch(ctx, events.AfterInsert, entities)
}

func (r *baseRepositoryImpl[T]) upsertOnDuplicateKey(ctx context.Context, insertQuery *bun.InsertQuery, fields []string, entities []*T) error {
	var assignments []string
	for _, field := range fields {
		assignments = append(assignments, fmt.Sprintf("%s = VALUES(%s)", bun.Ident(field), bun.Ident(field)))
	}
	_, err := insertQuery.
		Model(&entities).
		On("DUPLICATE KEY UPDATE " + strings.Join(assignments, ", ")).
		Exec(ctx)
	return err
}

func (r *baseRepositoryImpl[T]) upsertOnConflict(ctx context.Context, insertQuery *bun.InsertQuery, fields []string, duplicateKeys []string, entities []*T) error {
	if len(duplicateKeys) == 0 {
		duplicateKeys = []string{"id"}
	}
	keyNames := strings.Join(duplicateKeys, ",")
	var assignments []string
	for _, field := range fields {
		assignments = append(assignments, fmt.Sprintf("%s = EXCLUDED.%s", bun.Ident(field), bun.Ident(field)))
	}
	_, err := insertQuery.
		Model(&entities).
		On("CONFLICT (" + keyNames + ") DO UPDATE").
		Set(strings.Join(assignments, ", ")).
		Exec(ctx)
	return err
}

func (r *baseRepositoryImpl[T]) upsertFallback(ctx context.Context, idb bun.IDB, entities []*T) error {
	for _, entity := range entities {
		_, err := idb.NewInsert().Model(entity).Exec(ctx)
		if err != nil {
			_, updateErr := idb.NewUpdate().Model(entity).WherePK().Exec(ctx)
			if updateErr != nil {
				return fmt.Errorf("upsert failed for entity: insert error: %v, update error: %v", err, updateErr)
			}
		}
	}
	return nil
}

// Pluck selects a single column of T's table into a slice of scalars.
func Pluck[T any, V any](ctx context.Context, r Repository[T], column string) ([]V, error) {
	var values []V
	err := r.NewSelect().
		Model((*T)(nil)).
		Column(column).
		Scan(ctx, &values)
	if err != nil {
		return nil, err
	}
	return values, nil
}
