// Package database manages the engine connection behind the convenience
// layer: dialect-aware connection setup, pooling, health checks, query
// hooks, the model registry, and table creation for registered models.
package database
