// SPDX-FileCopyrightText: 2025 Humaid Alqasimi
// SPDX-License-Identifier: Apache-2.0

package db

import (
	"errors"
	"testing"
)

func TestInitRequiresDatabaseURL(t *testing.T) {
	t.Parallel()

	if err := Init(testContext(), Options{}); !errors.Is(err, ErrDatabaseURLRequired) {
		t.Fatalf("expected ErrDatabaseURLRequired, got %v", err)
	}
}

func TestInitRequiresDatabaseName(t *testing.T) {
	t.Setenv("PGDATABASE", "")

	err := Init(testContext(), Options{DatabaseURL: "postgres://localhost:5432"})
	if !errors.Is(err, ErrDatabaseNameNotSpecified) {
		t.Fatalf("expected ErrDatabaseNameNotSpecified, got %v", err)
	}
}

func TestOpenMigrationDBRequiresDatabaseURL(t *testing.T) {
	t.Parallel()

	if _, err := OpenMigrationDB(""); !errors.Is(err, ErrDatabaseURLRequired) {
		t.Fatalf("expected ErrDatabaseURLRequired, got %v", err)
	}
}

func TestEmbeddedMigrationsPresent(t *testing.T) {
	t.Parallel()

	entries, err := GetEmbeddedMigrations().ReadDir(MigrationsDir)
	if err != nil {
		t.Fatalf("failed to read embedded migrations: %v", err)
	}
	if len(entries) < 2 {
		t.Fatalf("expected at least two migrations, got %d", len(entries))
	}
}

//nolint:paralleltest // Swaps the package pool.
func TestQueriesWithoutPool(t *testing.T) {
	withoutPool(t, func() {
		if _, err := ACLCheck(testContext(), "u", ACLSectionPatients, ACLValueMedical); !errors.Is(err, ErrDatabaseConnectionNotInitialized) {
			t.Fatalf("ACLCheck: expected ErrDatabaseConnectionNotInitialized, got %v", err)
		}
		if _, err := GetHistoryData(testContext(), 7); !errors.Is(err, ErrDatabaseConnectionNotInitialized) {
			t.Fatalf("GetHistoryData: expected ErrDatabaseConnectionNotInitialized, got %v", err)
		}
		if _, err := NewHistoryData(testContext(), 7); !errors.Is(err, ErrDatabaseConnectionNotInitialized) {
			t.Fatalf("NewHistoryData: expected ErrDatabaseConnectionNotInitialized, got %v", err)
		}
		if _, err := ListLayoutOptions(testContext(), HistoryFormID); !errors.Is(err, ErrDatabaseConnectionNotInitialized) {
			t.Fatalf("ListLayoutOptions: expected ErrDatabaseConnectionNotInitialized, got %v", err)
		}
		if err := SyncSchema(testContext(), "postgres://localhost/x"); !errors.Is(err, ErrDatabaseConnectionNotInitialized) {
			t.Fatalf("SyncSchema: expected ErrDatabaseConnectionNotInitialized, got %v", err)
		}
	})
}
