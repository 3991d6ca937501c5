// Package bunkit is a convenience layer over the Bun ORM: a connection
// manager, a generic event-aware repository and service with pagination,
// search, and bulk-load helpers, embeddable base models, declarative
// lifecycle listeners, and enum/JSON column types. All SQL generation,
// transaction handling, and scanning is delegated to Bun.
package bunkit
