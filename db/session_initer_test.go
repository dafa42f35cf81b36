// SPDX-FileCopyrightText: 2025 Humaid Alqasimi
// SPDX-License-Identifier: Apache-2.0

package db

import (
	"errors"
	"testing"
	"time"
)

func TestPostgresSessionIniterDefaults(t *testing.T) {
	t.Parallel()

	store, err := PostgresSessionIniter()(testContext())
	if err != nil {
		t.Fatalf("PostgresSessionIniter failed: %v", err)
	}

	pgStore, ok := store.(*PostgresSessionStore)
	if !ok {
		t.Fatalf("expected PostgresSessionStore")
	}
	if pgStore.config.TableName != "flamego_sessions" {
		t.Fatalf("expected default table name, got %q", pgStore.config.TableName)
	}
	if pgStore.config.Lifetime != 12*time.Hour {
		t.Fatalf("expected default lifetime, got %v", pgStore.config.Lifetime)
	}
	if pgStore.encoder == nil || pgStore.decoder == nil {
		t.Fatalf("expected encoder and decoder to be set")
	}
	if got := pgStore.table(); got != `"flamego_sessions"` {
		t.Fatalf("expected quoted table name, got %q", got)
	}
}

func TestPostgresSessionIniterCustomConfig(t *testing.T) {
	t.Parallel()

	store, err := PostgresSessionIniter()(testContext(), PostgresSessionConfig{
		Lifetime:  time.Hour,
		TableName: "clinic_sessions",
	})
	if err != nil {
		t.Fatalf("PostgresSessionIniter failed: %v", err)
	}

	pgStore := store.(*PostgresSessionStore)
	if pgStore.config.Lifetime != time.Hour || pgStore.config.TableName != "clinic_sessions" {
		t.Fatalf("custom config not applied: %#v", pgStore.config)
	}
}

func TestPostgresSessionIniterInvalidConfig(t *testing.T) {
	t.Parallel()

	if _, err := PostgresSessionIniter()(testContext(), "invalid"); !errors.Is(err, ErrInvalidSessionConfig) {
		t.Fatalf("expected ErrInvalidSessionConfig, got %v", err)
	}
}
