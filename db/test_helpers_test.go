// SPDX-FileCopyrightText: 2025 Humaid Alqasimi
// SPDX-License-Identifier: Apache-2.0

package db

import (
	"context"
	"testing"
)

func testContext() context.Context {
	return context.Background()
}

func stringPtr(value string) *string {
	return &value
}

func mustCreateUser(t *testing.T, username string, isAdmin bool) *User {
	t.Helper()
	user, err := CreateUser(testContext(), CreateUserInput{
		Username:     username,
		DisplayName:  username,
		PasswordHash: []byte("not-a-real-hash"),
		IsAdmin:      isAdmin,
	})
	if err != nil {
		t.Fatalf("failed to create user: %v", err)
	}
	return user
}

func mustCreatePatient(t *testing.T, firstName, lastName string, squad *string) int64 {
	t.Helper()
	pid, err := CreatePatient(testContext(), CreatePatientInput{
		FirstName: firstName,
		LastName:  lastName,
		Squad:     squad,
	})
	if err != nil {
		t.Fatalf("failed to create patient: %v", err)
	}
	return pid
}

// withoutPool runs fn with the package pool unset.
func withoutPool(t *testing.T, fn func()) {
	t.Helper()

	saved := pool
	pool = nil

	t.Cleanup(func() {
		pool = saved
	})

	fn()
}
