/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/clinicware/patienthistory/db"
)

var CmdPatient = &cli.Command{
	Name:  "patient",
	Usage: "Manage patients",
	Flags: []cli.Flag{databaseURLFlag},
	Commands: []*cli.Command{
		{
			Name:  "add",
			Usage: "Register a patient",
			Flags: []cli.Flag{
				&cli.StringFlag{Name: "fname", Required: true, Usage: "first name"},
				&cli.StringFlag{Name: "lname", Required: true, Usage: "last name"},
				&cli.StringFlag{Name: "dob", Usage: "date of birth (YYYY-MM-DD)"},
				&cli.StringFlag{Name: "sex", Usage: "sex"},
				&cli.StringFlag{Name: "squad", Usage: "squad restricting access to the patient"},
			},
			Action: patientAdd,
		},
		{
			Name:   "list",
			Usage:  "List patients",
			Action: patientList,
		},
	},
}

func optionalString(value string) *string {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	return &value
}

func parseDOB(raw string) (*time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}

	dob, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return nil, fmt.Errorf("invalid date of birth %q: %w", raw, err)
	}

	return &dob, nil
}

func patientAdd(ctx context.Context, cmd *cli.Command) error {
	dob, err := parseDOB(cmd.String("dob"))
	if err != nil {
		return err
	}

	return withDatabase(ctx, cmd, func(ctx context.Context) error {
		pid, err := db.CreatePatient(ctx, db.CreatePatientInput{
			FirstName: cmd.String("fname"),
			LastName:  cmd.String("lname"),
			DOB:       dob,
			Sex:       optionalString(cmd.String("sex")),
			Squad:     optionalString(cmd.String("squad")),
		})
		if err != nil {
			return err
		}

		cliLogger.Info("Created patient", "pid", pid)
		fmt.Printf("Created patient %d\n", pid)
		return nil
	})
}

func patientList(ctx context.Context, cmd *cli.Command) error {
	return withDatabase(ctx, cmd, func(ctx context.Context) error {
		patients, err := db.ListPatients(ctx)
		if err != nil {
			return err
		}

		printPatients(os.Stdout, patients)
		return nil
	})
}

func printPatients(w io.Writer, patients []db.Patient) {
	for _, patient := range patients {
		fmt.Fprintf(w, "%d\t%s\t%s\n", patient.PID, patient.FullName(), patient.SquadName())
	}
}
