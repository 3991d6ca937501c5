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

// Functional helpers over result sets. These operate on slices as returned
// by the repository layer so callers can post-process without loops.

// Map transforms every element of items with fn.
func Map[T, R any](items []T, fn func(T) R) []R {
	out := make([]R, len(items))
	for i, item := range items {
		out[i] = fn(item)
	}
	return out
}

// Filter returns the elements of items for which keep returns true.
func Filter[T any](items []T, keep func(T) bool) []T {
	out := make([]T, 0, len(items))
	for _, item := range items {
		if keep(item) {
			out = append(out, item)
		}
	}
	return out
}

// Reduce folds items into a single value, starting from init.
func Reduce[T, R any](items []T, init R, fn func(R, T) R) R {
	acc := init
	for _, item := range items {
		acc = fn(acc, item)
	}
	return acc
}

// Each invokes fn for every element of items.
func Each[T any](items []T, fn func(T)) {
	for _, item := range items {
		fn(item)
	}
}

// Chunk splits items into consecutive slices of at most size elements.
// A size below 1 yields a single chunk with all items.
func Chunk[T any](items []T, size int) [][]T {
	if len(items) == 0 {
		return nil
	}
	if size < 1 {
		return [][]T{items}
	}
	chunks := make([][]T, 0, (len(items)+size-1)/size)
	for start := 0; start < len(items); start += size {
		end := start + size
		if end > len(items) {
			end = len(items)
		}
		chunks = append(chunks, items[start:end])
	}
	return chunks
}

// GroupBy buckets items by the key returned from fn, preserving order
// within each bucket.
func GroupBy[T any, K comparable](items []T, fn func(T) K) map[K][]T {
	out := make(map[K][]T)
	for _, item := range items {
		k := fn(item)
		out[k] = append(out[k], item)
	}
	return out
}
