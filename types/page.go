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

// QueryFilter describes a WHERE clause schema and its argument values.
type QueryFilter struct {
	Schema string
	Args   []interface{}
}

// NewQueryFilter creates a new query filter with schema and args.
func NewQueryFilter(schema string, args ...interface{}) *QueryFilter {
	return &QueryFilter{schema, args}
}

// SearchFilter describes a case-insensitive keyword search across a set of
// columns. Columns are OR-combined into a single WHERE group.
type SearchFilter struct {
	Term    string
	Columns []string
}

// NewSearchFilter creates a search filter for term over the given columns.
func NewSearchFilter(term string, columns ...string) *SearchFilter {
	return &SearchFilter{Term: term, Columns: columns}
}

// PageRequest describes pagination, optional filtering, ordering, and
// column/relation load shortcuts for a single select.
type PageRequest struct {
	page      int
	pageSize  int
	filter    *QueryFilter
	search    *SearchFilter
	orders    []string // "id ASC", "name DESC"
	columns   []string
	excluded  []string
	relations []string
}

func (p *PageRequest) GetPageSize() int {
	if p.pageSize < 1 {
		p.pageSize = 10
	}
	return p.pageSize
}

func (p *PageRequest) GetPage() int {
	if p.page < 1 {
		p.page = 1
	}
	return p.page
}

func (p *PageRequest) GetOffset() int {
	return (p.GetPage() - 1) * p.GetPageSize()
}

func (p *PageRequest) GetFilter() *QueryFilter { return p.filter }

func (p *PageRequest) GetSearch() *SearchFilter { return p.search }

func (p *PageRequest) GetOrders() []string { return p.orders }

func (p *PageRequest) GetColumns() []string { return p.columns }

func (p *PageRequest) GetExcludedColumns() []string { return p.excluded }

func (p *PageRequest) GetRelations() []string { return p.relations }

// WithFilter sets the WHERE filter and returns the request for chaining.
func (p *PageRequest) WithFilter(filter *QueryFilter) *PageRequest {
	p.filter = filter
	return p
}

// WithSearch sets a keyword search over the given columns.
func (p *PageRequest) WithSearch(term string, columns ...string) *PageRequest {
	p.search = NewSearchFilter(term, columns...)
	return p
}

// WithOrders sets the ordering expressions, e.g. "id ASC".
func (p *PageRequest) WithOrders(orders ...string) *PageRequest {
	p.orders = orders
	return p
}

// WithColumns restricts the select to the given columns.
func (p *PageRequest) WithColumns(columns ...string) *PageRequest {
	p.columns = columns
	return p
}

// WithoutColumns excludes the given columns from the select.
func (p *PageRequest) WithoutColumns(columns ...string) *PageRequest {
	p.excluded = columns
	return p
}

// WithRelations eager-loads the named relations alongside the primary query.
func (p *PageRequest) WithRelations(relations ...string) *PageRequest {
	p.relations = relations
	return p
}

// NewPageRequest constructs a PageRequest with filter and order settings.
func NewPageRequest(page int, pageSize int, filter *QueryFilter, orders []string) *PageRequest {
	return &PageRequest{page: page, pageSize: pageSize, filter: filter, orders: orders}
}

// NewPageRequestWithFilter constructs a PageRequest with a filter only.
func NewPageRequestWithFilter(page int, pageSize int, filter *QueryFilter) *PageRequest {
	return NewPageRequest(page, pageSize, filter, make([]string, 0))
}

// NewPageRequestWithOrders constructs a PageRequest with ordering only.
func NewPageRequestWithOrders(page int, pageSize int, orders []string) *PageRequest {
	return NewPageRequest(page, pageSize, nil, orders)
}

// NewDefaultPageRequest constructs a PageRequest with no filter or ordering.
func NewDefaultPageRequest(page int, pageSize int) *PageRequest {
	return NewPageRequest(page, pageSize, nil, make([]string, 0))
}

// Pagination holds paged result items along with pagination metadata.
type Pagination[T any] struct {
	Page     int
	PageSize int
	Total    int
	Items    []*T
}

// NewDefaultPagination constructs an empty pagination container.
func NewDefaultPagination[T any](page int, pageSize int) *Pagination[T] {
	return &Pagination[T]{page, pageSize, 0, make([]*T, 0)}
}

// Pages returns the total number of pages.
func (p *Pagination[T]) Pages() int {
	if p.PageSize < 1 || p.Total < 1 {
		return 0
	}
	return (p.Total + p.PageSize - 1) / p.PageSize
}

// HasNext reports whether a page exists after the current one.
func (p *Pagination[T]) HasNext() bool { return p.Page < p.Pages() }

// HasPrev reports whether a page exists before the current one.
func (p *Pagination[T]) HasPrev() bool { return p.Page > 1 }

// NextPage returns the next page number, or the current page when on the last.
func (p *Pagination[T]) NextPage() int {
	if p.HasNext() {
		return p.Page + 1
	}
	return p.Page
}

// PrevPage returns the previous page number, or 1 when on the first page.
func (p *Pagination[T]) PrevPage() int {
	if p.HasPrev() {
		return p.Page - 1
	}
	return 1
}

// PageNumbers returns page numbers for rendering a pagination widget: the
// first left pages, a window of inner pages around the current one, and the
// last right pages. Gaps are represented by 0.
func (p *Pagination[T]) PageNumbers(left, inner, right int) []int {
	pages := p.Pages()
	if pages == 0 {
		return nil
	}
	var numbers []int
	last := 0
	for n := 1; n <= pages; n++ {
		if n <= left || n > pages-right ||
			(n >= p.Page-inner && n <= p.Page+inner) {
			if last+1 != n {
				numbers = append(numbers, 0)
			}
			numbers = append(numbers, n)
			last = n
		}
	}
	return numbers
}
