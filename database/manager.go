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
	"database/sql"
	"fmt"
	"sync"
	"time"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/mysqldialect"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"
	"github.com/uptrace/bun/extra/bundebug"
)

// Manager owns the engine connection lifecycle: connecting, pooling, health
// checking, schema creation for registered models, and transactions.
type Manager interface {
	Connect(ctx context.Context) error
	Disconnect() error
	Reconnect(ctx context.Context) error
	Ping(ctx context.Context) error
	HealthCheck(ctx context.Context) *HealthStatus
	DB() *bun.DB
	SQLDB() *sql.DB
	CreateAll(ctx context.Context) error
	DropAll(ctx context.Context) error
	RunInTx(ctx context.Context, fn func(ctx context.Context, tx bun.Tx) error) error
	Stats() *DBStats
	SetLogger(logger Logger)
}

// HealthStatus holds the result of a health check against the database.
type HealthStatus struct {
	Healthy       bool          `json:"healthy"`
	Connected     bool          `json:"connected"`
	ResponseTime  time.Duration `json:"response_time"`
	ActiveConns   int           `json:"active_conns"`
	IdleConns     int           `json:"idle_conns"`
	MaxOpenConns  int           `json:"max_open_conns"`
	LastError     string        `json:"last_error,omitempty"`
	LastCheckTime time.Time     `json:"last_check_time"`
}

// DBStats mirrors database/sql pool statistics.
type DBStats struct {
	MaxOpenConns      int           `json:"max_open_conns"`
	OpenConns         int           `json:"open_conns"`
	InUse             int           `json:"in_use"`
	Idle              int           `json:"idle"`
	WaitCount         int64         `json:"wait_count"`
	WaitDuration      time.Duration `json:"wait_duration"`
	MaxIdleClosed     int64         `json:"max_idle_closed"`
	MaxIdleTimeClosed int64         `json:"max_idle_time_closed"`
	MaxLifetimeClosed int64         `json:"max_lifetime_closed"`
}

type sessionManager struct {
	config          *ConnectionConfig
	db              *bun.DB
	sqlDB           *sql.DB
	logger          Logger
	mu              sync.RWMutex
	connected       bool
	lastError       error
	lastHealthCheck time.Time
	healthStatus    *HealthStatus
	reconnectTries  int
	stopHealthCheck chan struct{}
}

// NewManager returns a Manager backed by Bun. A nil config selects the
// default configuration.
func NewManager(config *ConnectionConfig) Manager {
	if config == nil {
		config = DefaultConnectionConfig()
	}
	return &sessionManager{
		config:       config,
		healthStatus: &HealthStatus{},
	}
}

func (m *sessionManager) Connect(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.connected && m.db != nil {
		return nil
	}

	var err error
	m.sqlDB, m.db, err = m.openConnection()
	if err != nil {
		m.lastError = err
		return fmt.Errorf("failed to create database connection: %w", err)
	}

	m.configurePool()

	ctxTimeout, cancel := context.WithTimeout(ctx, m.config.ConnectTimeout)
	defer cancel()

	if err := m.db.PingContext(ctxTimeout); err != nil {
		m.lastError = err
		return fmt.Errorf("database connection test failed: %w", err)
	}

	m.connected = true
	m.lastError = nil
	m.reconnectTries = 0

	if m.config.HealthCheckInterval > 0 {
		// One loop per connection; Disconnect closes the channel.
		m.stopHealthCheck = make(chan struct{})
		m.startHealthCheck(m.stopHealthCheck)
	}

	if m.logger != nil {
		m.logger.Info("Database connected", "type", m.config.Type, "host", m.config.Host)
	}
	return nil
}

func (m *sessionManager) openConnection() (*sql.DB, *bun.DB, error) {
	var sqlDB *sql.DB
	var db *bun.DB
	var err error

	if m.config.ConnectTimeout.Seconds() <= 0 {
		m.config.ConnectTimeout = 30 * time.Second
	}

	switch m.config.Type {
	case "mysql":
		sqlDB, db, err = m.openMySQL()
	case "postgres", "postgresql":
		sqlDB, db, err = m.openPostgres()
	case "sqlite", "sqlite3":
		sqlDB, db, err = m.openSQLite()
	default:
		return nil, nil, fmt.Errorf("unsupported database type: %s", m.config.Type)
	}

	if err != nil {
		return nil, nil, err
	}

	db.AddQueryHook(bundebug.NewQueryHook(bundebug.FromEnv("BUNDEBUG")))

	if m.config.EnableQueryLog {
		db.AddQueryHook(NewQueryHook(nil, false))
	}

	if m.config.SlowQueryTime > 0 {
		db.AddQueryHook(NewSlowQueryHook(m.config.SlowQueryTime, m.logger))
	}

	return sqlDB, db, nil
}

func (m *sessionManager) openMySQL() (*sql.DB, *bun.DB, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=Local&timeout=%s&readTimeout=%s&writeTimeout=%s",
		m.config.Username,
		m.config.Password,
		m.config.Host,
		m.config.Port,
		m.config.DBName,
		m.config.ConnectTimeout,
		m.config.ReadTimeout,
		m.config.WriteTimeout,
	)

	sqlDB, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, nil, err
	}

	db := bun.NewDB(sqlDB, mysqldialect.New())
	return sqlDB, db, nil
}

func (m *sessionManager) openPostgres() (*sql.DB, *bun.DB, error) {
	sslMode := m.config.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}

	dsn := fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s&connect_timeout=%d",
		m.config.Username,
		m.config.Password,
		m.config.Host,
		m.config.Port,
		m.config.DBName,
		sslMode,
		int(m.config.ConnectTimeout.Seconds()),
	)

	sqlDB, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, nil, err
	}

	db := bun.NewDB(sqlDB, pgdialect.New())
	return sqlDB, db, nil
}

func (m *sessionManager) openSQLite() (*sql.DB, *bun.DB, error) {
	dsn := fmt.Sprintf("%s.db", m.config.DBName)

	sqlDB, err := sql.Open(sqliteshim.ShimName, dsn)
	if err != nil {
		return nil, nil, err
	}

	db := bun.NewDB(sqlDB, sqlitedialect.New())
	return sqlDB, db, nil
}

func (m *sessionManager) configurePool() {
	if m.sqlDB == nil {
		return
	}

	m.sqlDB.SetMaxIdleConns(m.config.MaxIdleConns)
	m.sqlDB.SetMaxOpenConns(m.config.MaxOpenConns)
	m.sqlDB.SetConnMaxLifetime(m.config.ConnMaxLifetime)
	m.sqlDB.SetConnMaxIdleTime(m.config.ConnMaxIdleTime)
}

func (m *sessionManager) Disconnect() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.stopHealthCheck != nil {
		close(m.stopHealthCheck)
		m.stopHealthCheck = nil
	}

	if m.db != nil {
		err := m.db.Close()
		m.db = nil
		m.sqlDB = nil
		m.connected = false

		if m.logger != nil {
			if err != nil {
				m.logger.Error("Failed to close database connection", "error", err)
			} else {
				m.logger.Info("Database connection closed")
			}
		}

		return err
	}

	return nil
}

func (m *sessionManager) Reconnect(ctx context.Context) error {
	if m.logger != nil {
		m.logger.Info("Attempting to reconnect to the database")
	}

	if err := m.Disconnect(); err != nil {
		if m.logger != nil {
			m.logger.Warn("Error disconnecting existing connection", "error", err)
		}
	}

	return m.Connect(ctx)
}

func (m *sessionManager) Ping(ctx context.Context) error {
	m.mu.RLock()
	db := m.db
	m.mu.RUnlock()

	if db == nil {
		return ErrNotConnected
	}

	return db.PingContext(ctx)
}

func (m *sessionManager) DB() *bun.DB {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.db
}

func (m *sessionManager) SQLDB() *sql.DB {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.sqlDB
}

// CreateAll creates tables for every registered model in priority order.
func (m *sessionManager) CreateAll(ctx context.Context) error {
	db := m.DB()
	if db == nil {
		return ErrNotConnected
	}

	for _, model := range RegisteredInstances() {
		_, err := db.NewCreateTable().
			Model(model).
			IfNotExists().
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("failed to create table for %T: %w", model, err)
		}
	}

	if m.logger != nil {
		m.logger.Info("Created tables for registered models", "models", len(RegisteredInstances()))
	}
	return nil
}

// DropAll drops tables for every registered model in reverse priority order,
// so FK dependents are dropped before the tables they reference.
func (m *sessionManager) DropAll(ctx context.Context) error {
	db := m.DB()
	if db == nil {
		return ErrNotConnected
	}

	instances := RegisteredInstances()
	for i := len(instances) - 1; i >= 0; i-- {
		_, err := db.NewDropTable().
			Model(instances[i]).
			IfExists().
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("failed to drop table for %T: %w", instances[i], err)
		}
	}

	if m.logger != nil {
		m.logger.Info("Dropped tables for registered models", "models", len(instances))
	}
	return nil
}

// RunInTx runs fn inside a transaction, committing on success and rolling
// back on error or panic.
func (m *sessionManager) RunInTx(ctx context.Context, fn func(ctx context.Context, tx bun.Tx) error) error {
	db := m.DB()
	if db == nil {
		return ErrNotConnected
	}
	return db.RunInTx(ctx, nil, fn)
}

func (m *sessionManager) HealthCheck(ctx context.Context) *HealthStatus {
	m.mu.Lock()
	defer m.mu.Unlock()

	start := time.Now()
	status := &HealthStatus{
		LastCheckTime: start,
		Connected:     m.connected,
	}

	if m.db == nil {
		status.Healthy = false
		status.LastError = "Database not initialized"
		return status
	}

	ctxTimeout, cancel := context.WithTimeout(ctx, time.Second*5)
	defer cancel()

	err := m.db.PingContext(ctxTimeout)
	status.ResponseTime = time.Since(start)

	if err != nil {
		status.Healthy = false
		status.Connected = false
		status.LastError = err.Error()
		m.lastError = err
	} else {
		status.Healthy = true
		status.Connected = true
		m.lastError = nil
	}

	if m.sqlDB != nil {
		stats := m.sqlDB.Stats()
		status.ActiveConns = stats.InUse
		status.IdleConns = stats.Idle
		status.MaxOpenConns = stats.MaxOpenConnections
	}

	m.healthStatus = status
	m.lastHealthCheck = start

	return status
}

func (m *sessionManager) startHealthCheck(stop <-chan struct{}) {
	go func() {
		ticker := time.NewTicker(m.config.HealthCheckInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
				status := m.HealthCheck(ctx)
				cancel()
				if !status.Healthy && m.config.EnableReconnect {
					// A disconnect may have raced the health check; never
					// reconnect a deliberately closed manager.
					select {
					case <-stop:
						return
					default:
					}
					m.handleReconnect()
				}

			case <-stop:
				return
			}
		}
	}()
}

func (m *sessionManager) handleReconnect() {
	if m.reconnectTries >= m.config.MaxReconnectTries {
		if m.logger != nil {
			m.logger.Error("Max reconnect attempts reached, stopping", "tries", m.reconnectTries)
		}
		return
	}

	m.reconnectTries++
	if m.logger != nil {
		m.logger.Info("Starting database reconnect", "try", m.reconnectTries)
	}

	time.Sleep(m.config.ReconnectInterval)

	ctx, cancel := context.WithTimeout(context.Background(), m.config.ConnectTimeout)
	defer cancel()

	if err := m.Reconnect(ctx); err != nil {
		if m.logger != nil {
			m.logger.Error("Reconnect failed", "error", err, "try", m.reconnectTries)
		}
	} else {
		m.reconnectTries = 0
		if m.logger != nil {
			m.logger.Info("Reconnect succeeded")
		}
	}
}

func (m *sessionManager) Stats() *DBStats {
	m.mu.RLock()
	sqlDB := m.sqlDB
	m.mu.RUnlock()

	if sqlDB == nil {
		return &DBStats{}
	}

	stats := sqlDB.Stats()
	return &DBStats{
		MaxOpenConns:      stats.MaxOpenConnections,
		OpenConns:         stats.OpenConnections,
		InUse:             stats.InUse,
		Idle:              stats.Idle,
		WaitCount:         stats.WaitCount,
		WaitDuration:      stats.WaitDuration,
		MaxIdleClosed:     stats.MaxIdleClosed,
		MaxIdleTimeClosed: stats.MaxIdleTimeClosed,
		MaxLifetimeClosed: stats.MaxLifetimeClosed,
	}
}

func (m *sessionManager) SetLogger(logger Logger) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.logger = logger
}
