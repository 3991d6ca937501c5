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
	"context"
	"fmt"
	"sync"

	"github.com/uptrace/bun"
)

var (
	globalMu      sync.RWMutex
	globalManager Manager
	globalDB      *bun.DB
)

// GetDB returns the global Bun database instance, or nil before Init.
func GetDB() *bun.DB {
	globalMu.RLock()
	defer globalMu.RUnlock()
	return globalDB
}

// GetManager returns the global database manager, or nil before Init.
func GetManager() Manager {
	globalMu.RLock()
	defer globalMu.RUnlock()
	return globalManager
}

// Init connects the global database using the provided configuration,
// registers all models with Bun, and creates tables when CreateOnConnect
// is set.
func Init(cfg *Config) (*bun.DB, error) {
	if cfg == nil {
		return nil, fmt.Errorf("database configuration cannot be empty")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	cfg.Connection.OverrideFromEnv()

	manager := NewManager(&cfg.Connection)
	manager.SetLogger(GetLogger())

	ctx := context.Background()
	if err := manager.Connect(ctx); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	db := manager.DB()
	db.RegisterModel(RegisteredInstances()...)

	if cfg.Connection.CreateOnConnect {
		EnableQuerySilent(true)
		err := manager.CreateAll(ctx)
		EnableQuerySilent(false)
		if err != nil {
			_ = manager.Disconnect()
			return nil, fmt.Errorf("failed to create tables: %w", err)
		}
	}

	globalMu.Lock()
	globalManager = manager
	globalDB = db
	globalMu.Unlock()

	return db, nil
}

// Close closes the global database connection.
func Close() error {
	globalMu.Lock()
	manager := globalManager
	globalManager = nil
	globalDB = nil
	globalMu.Unlock()

	if manager != nil {
		return manager.Disconnect()
	}
	return nil
}

// CreateAll creates tables for all registered models on the global connection.
func CreateAll(ctx context.Context) error {
	manager := GetManager()
	if manager == nil {
		return ErrNotConnected
	}
	return manager.CreateAll(ctx)
}

// DropAll drops tables for all registered models on the global connection.
func DropAll(ctx context.Context) error {
	manager := GetManager()
	if manager == nil {
		return ErrNotConnected
	}
	return manager.DropAll(ctx)
}

// RunInTx runs fn in a transaction on the global connection.
func RunInTx(ctx context.Context, fn func(ctx context.Context, tx bun.Tx) error) error {
	manager := GetManager()
	if manager == nil {
		return ErrNotConnected
	}
	return manager.RunInTx(ctx, fn)
}

// GetHealthStatus returns the current database health status.
func GetHealthStatus(ctx context.Context) *HealthStatus {
	manager := GetManager()
	if manager == nil {
		return &HealthStatus{
			Healthy:   false,
			Connected: false,
			LastError: "Database not initialized",
		}
	}
	return manager.HealthCheck(ctx)
}

// GetStats returns pool statistics for the global connection.
func GetStats() *DBStats {
	manager := GetManager()
	if manager == nil {
		return &DBStats{}
	}
	return manager.Stats()
}
