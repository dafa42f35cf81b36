/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package db

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
)

// CreatePatientInput defines data for registering a patient.
type CreatePatientInput struct {
	FirstName string
	LastName  string
	DOB       *time.Time
	Sex       *string
	Squad     *string
}

const patientColumns = `pid, fname, lname, dob, sex, squad, created_at`

func scanPatient(row pgx.Row) (*Patient, error) {
	var patient Patient
	if err := row.Scan(
		&patient.PID,
		&patient.FirstName,
		&patient.LastName,
		&patient.DOB,
		&patient.Sex,
		&patient.Squad,
		&patient.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &patient, nil
}

// CreatePatient inserts a patient and returns the new pid.
func CreatePatient(ctx context.Context, input CreatePatientInput) (int64, error) {
	if pool == nil {
		return 0, ErrDatabaseConnectionNotInitialized
	}

	firstName := strings.TrimSpace(input.FirstName)
	lastName := strings.TrimSpace(input.LastName)
	if firstName == "" || lastName == "" {
		return 0, ErrPatientNameRequired
	}

	var pid int64
	err := pool.QueryRow(ctx, `
		INSERT INTO patients (fname, lname, dob, sex, squad)
		VALUES ($1, $2, $3, $4, NULLIF($5, ''))
		RETURNING pid
	`, firstName, lastName, input.DOB, input.Sex, input.Squad).Scan(&pid)
	if err != nil {
		return 0, fmt.Errorf("failed to create patient: %w", err)
	}

	return pid, nil
}

// GetPatient returns a patient by pid.
func GetPatient(ctx context.Context, pid int64) (*Patient, error) {
	if pool == nil {
		return nil, ErrDatabaseConnectionNotInitialized
	}

	patient, err := scanPatient(pool.QueryRow(ctx, `SELECT `+patientColumns+` FROM patients WHERE pid = $1`, pid))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrPatientNotFound
		}
		return nil, fmt.Errorf("failed to get patient: %w", err)
	}

	return patient, nil
}

// GetPatientSquad returns the squad of a patient, or an empty string.
func GetPatientSquad(ctx context.Context, pid int64) (string, error) {
	if pool == nil {
		return "", ErrDatabaseConnectionNotInitialized
	}

	var squad *string
	if err := pool.QueryRow(ctx, `SELECT squad FROM patients WHERE pid = $1`, pid).Scan(&squad); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", ErrPatientNotFound
		}
		return "", fmt.Errorf("failed to get patient squad: %w", err)
	}

	if squad == nil {
		return "", nil
	}

	return strings.TrimSpace(*squad), nil
}

// ListPatients returns all patients ordered by name.
func ListPatients(ctx context.Context) ([]Patient, error) {
	if pool == nil {
		return nil, ErrDatabaseConnectionNotInitialized
	}

	rows, err := pool.Query(ctx, `SELECT `+patientColumns+` FROM patients ORDER BY lname, fname, pid`)
	if err != nil {
		return nil, fmt.Errorf("failed to list patients: %w", err)
	}
	defer rows.Close()

	var patients []Patient
	for rows.Next() {
		patient, err := scanPatient(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan patient: %w", err)
		}
		patients = append(patients, *patient)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating patients: %w", err)
	}

	return patients, nil
}
