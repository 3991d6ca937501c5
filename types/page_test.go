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
	"testing"

	"github.com/stretchr/testify/assert"
)

type article struct {
	ID    int64
	Title string
}

func TestPageRequestNormalization(t *testing.T) {
	req := NewDefaultPageRequest(0, 0)
	assert.Equal(t, 1, req.GetPage())
	assert.Equal(t, 10, req.GetPageSize())
	assert.Equal(t, 0, req.GetOffset())

	req = NewDefaultPageRequest(3, 25)
	assert.Equal(t, 50, req.GetOffset())
}

func TestPageRequestChaining(t *testing.T) {
	req := NewDefaultPageRequest(1, 20).
		WithFilter(NewQueryFilter("author = ?", "kim")).
		WithSearch("go", "title", "body").
		WithOrders("id DESC").
		WithColumns("id", "title").
		WithRelations("Comments")

	assert.Equal(t, "author = ?", req.GetFilter().Schema)
	assert.Equal(t, []interface{}{"kim"}, req.GetFilter().Args)
	assert.Equal(t, "go", req.GetSearch().Term)
	assert.Equal(t, []string{"title", "body"}, req.GetSearch().Columns)
	assert.Equal(t, []string{"id DESC"}, req.GetOrders())
	assert.Equal(t, []string{"id", "title"}, req.GetColumns())
	assert.Equal(t, []string{"Comments"}, req.GetRelations())
}

func TestPaginationMath(t *testing.T) {
	p := NewDefaultPagination[article](2, 10)
	p.Total = 45

	assert.Equal(t, 5, p.Pages())
	assert.True(t, p.HasNext())
	assert.True(t, p.HasPrev())
	assert.Equal(t, 3, p.NextPage())
	assert.Equal(t, 1, p.PrevPage())
}

func TestPaginationMathEdges(t *testing.T) {
	empty := NewDefaultPagination[article](1, 10)
	assert.Equal(t, 0, empty.Pages())
	assert.False(t, empty.HasNext())
	assert.False(t, empty.HasPrev())
	assert.Equal(t, 1, empty.NextPage())
	assert.Equal(t, 1, empty.PrevPage())

	last := NewDefaultPagination[article](3, 10)
	last.Total = 21
	assert.Equal(t, 3, last.Pages())
	assert.False(t, last.HasNext())
	assert.Equal(t, 3, last.NextPage())
	assert.Equal(t, 2, last.PrevPage())

	partial := NewDefaultPagination[article](1, 10)
	partial.Total = 9
	assert.Equal(t, 1, partial.Pages())
}

func TestPageNumbersWindow(t *testing.T) {
	p := NewDefaultPagination[article](10, 10)
	p.Total = 200 // 20 pages

	numbers := p.PageNumbers(2, 1, 2)
	// 1 2 ... 9 10 11 ... 19 20 with gaps as 0
	assert.Equal(t, []int{1, 2, 0, 9, 10, 11, 0, 19, 20}, numbers)

	small := NewDefaultPagination[article](1, 10)
	small.Total = 30
	assert.Equal(t, []int{1, 2, 3}, small.PageNumbers(2, 2, 2))

	assert.Nil(t, NewDefaultPagination[article](1, 10).PageNumbers(2, 2, 2))
}
