// SPDX-FileCopyrightText: 2025 Humaid Alqasimi
// SPDX-License-Identifier: Apache-2.0

package db

import (
	"errors"
	"testing"
)

func TestPatientLifecycle(t *testing.T) {
	requireDB(t)

	ctx := testContext()
	plain := mustCreatePatient(t, "Barbara", "Liskov", nil)
	squadded := mustCreatePatient(t, "Ken", "Thompson", stringPtr("unix"))

	squad, err := GetPatientSquad(ctx, plain)
	if err != nil || squad != "" {
		t.Fatalf("expected empty squad, got %q, %v", squad, err)
	}

	squad, err = GetPatientSquad(ctx, squadded)
	if err != nil || squad != "unix" {
		t.Fatalf("expected squad unix, got %q, %v", squad, err)
	}

	patient, err := GetPatient(ctx, squadded)
	if err != nil {
		t.Fatalf("GetPatient failed: %v", err)
	}
	if patient.FullName() != "Ken Thompson" {
		t.Fatalf("unexpected patient: %#v", patient)
	}

	patients, err := ListPatients(ctx)
	if err != nil {
		t.Fatalf("ListPatients failed: %v", err)
	}
	if len(patients) != 2 || patients[0].LastName != "Liskov" {
		t.Fatalf("unexpected patient order: %#v", patients)
	}

	if _, err := GetPatient(ctx, 999999); !errors.Is(err, ErrPatientNotFound) {
		t.Fatalf("expected ErrPatientNotFound, got %v", err)
	}
	if _, err := GetPatientSquad(ctx, 999999); !errors.Is(err, ErrPatientNotFound) {
		t.Fatalf("expected ErrPatientNotFound, got %v", err)
	}
}

func TestCreatePatientRequiresName(t *testing.T) {
	requireDB(t)

	if _, err := CreatePatient(testContext(), CreatePatientInput{FirstName: "Only"}); !errors.Is(err, ErrPatientNameRequired) {
		t.Fatalf("expected ErrPatientNameRequired, got %v", err)
	}
}

func TestUserLookup(t *testing.T) {
	requireDB(t)

	ctx := testContext()
	created := mustCreateUser(t, "Reception", false)

	byName, err := GetUserByUsername(ctx, "  RECEPTION ")
	if err != nil {
		t.Fatalf("GetUserByUsername failed: %v", err)
	}
	if byName.ID != created.ID || byName.Username != "reception" {
		t.Fatalf("unexpected user: %#v", byName)
	}

	byID, err := GetUserByID(ctx, created.ID.String())
	if err != nil || byID.Username != "reception" {
		t.Fatalf("GetUserByID: %#v, %v", byID, err)
	}

	if _, err := GetUserByUsername(ctx, "ghost"); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}

	count, err := CountUsers(ctx)
	if err != nil || count != 1 {
		t.Fatalf("CountUsers = %d, %v", count, err)
	}
}
