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
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSQLiteManager(t *testing.T) Manager {
	t.Helper()
	cfg := DefaultConnectionConfig()
	cfg.Type = "sqlite"
	cfg.DBName = filepath.Join(t.TempDir(), "manager")
	cfg.HealthCheckInterval = time.Minute
	cfg.EnableReconnect = false
	return NewManager(cfg)
}

func TestManagerConnectAndPing(t *testing.T) {
	mgr := newSQLiteManager(t)
	ctx := context.Background()

	require.NoError(t, mgr.Connect(ctx))
	defer func() { _ = mgr.Disconnect() }()

	require.NoError(t, mgr.Ping(ctx))
	assert.NotNil(t, mgr.DB())
	assert.NotNil(t, mgr.SQLDB())

	status := mgr.HealthCheck(ctx)
	assert.True(t, status.Healthy)
	assert.True(t, status.Connected)
}

func TestManagerPingBeforeConnect(t *testing.T) {
	mgr := newSQLiteManager(t)
	assert.ErrorIs(t, mgr.Ping(context.Background()), ErrNotConnected)
}

func TestHealthCheckLoopPerConnection(t *testing.T) {
	mgr := newSQLiteManager(t)
	sm := mgr.(*sessionManager)
	ctx := context.Background()

	require.NoError(t, mgr.Connect(ctx))
	first := sm.stopHealthCheck
	require.NotNil(t, first)

	require.NoError(t, mgr.Disconnect())
	select {
	case <-first:
	default:
		t.Fatal("disconnect did not stop the health check loop")
	}
	assert.Nil(t, sm.stopHealthCheck)

	// A fresh connection gets a fresh loop.
	require.NoError(t, mgr.Connect(ctx))
	second := sm.stopHealthCheck
	require.NotNil(t, second)
	select {
	case <-second:
		t.Fatal("new health check loop is already stopped")
	default:
	}
	require.NoError(t, mgr.Disconnect())
}
