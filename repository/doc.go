// Package repository provides a generic, event-aware repository over Bun
// with pagination, search, bulk load, and dialect-aware upserts.
package repository
