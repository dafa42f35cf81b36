/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package routes

import (
	"context"
	"net/http"

	"github.com/flamego/flamego"
	"github.com/flamego/session"
	"github.com/flamego/template"

	"github.com/clinicware/patienthistory/db"
)

var listPatientsDBFn = db.ListPatients

// PatientListItem is one row of the patient list.
type PatientListItem struct {
	Patient    db.Patient
	SummaryURL string
	HistoryURL string
}

// visiblePatients keeps the patients the user may see demographics of.
// Squad checks are made once per squad.
func visiblePatients(ctx context.Context, userID string, patients []db.Patient) ([]PatientListItem, error) {
	level, err := aclCheckDBFn(ctx, userID, db.ACLSectionPatients, db.ACLValueDemo)
	if err != nil {
		return nil, err
	}

	items := []PatientListItem{}
	if level == db.AccessNone {
		return items, nil
	}

	squadLevels := make(map[string]db.AccessLevel)
	for _, patient := range patients {
		squad := patient.SquadName()
		if squad != "" {
			if _, ok := squadLevels[squad]; !ok {
				squadLevel, err := aclCheckDBFn(ctx, userID, db.ACLSectionSquads, squad)
				if err != nil {
					return nil, err
				}
				squadLevels[squad] = squadLevel
			}
		}

		if ResolveAccess(level, squad, squadLevels[squad]) == db.AccessNone {
			continue
		}

		items = append(items, PatientListItem{
			Patient:    patient,
			SummaryURL: patientSummaryURL(patient.PID),
			HistoryURL: historyViewURL(patient.PID),
		})
	}

	return items, nil
}

// PatientList renders the patients visible to the signed-in user.
func PatientList(c flamego.Context, s session.Session, t template.Template, data template.Data) {
	ctx := c.Request().Context()
	data["IsPatients"] = true

	userID, ok := getSessionUserID(s)
	if !ok {
		renderError(t, data, http.StatusForbidden, "Unable to resolve current user")
		return
	}

	patients, err := listPatientsDBFn(ctx)
	if err != nil {
		logger.Error("Failed to list patients", "error", err)
		renderError(t, data, http.StatusInternalServerError, "Failed to load patients")
		return
	}

	items, err := visiblePatients(ctx, userID, patients)
	if err != nil {
		logger.Error("Failed to check patient access", "error", err)
		renderError(t, data, http.StatusInternalServerError, "Failed to load patients")
		return
	}

	data["Patients"] = items
	t.HTML(http.StatusOK, "patients")
}

// PatientSummary renders the demographics page of a patient with links to
// the history pages the user may open.
func PatientSummary(c flamego.Context, s session.Session, t template.Template, data template.Data, access PatientAccess) {
	ctx := c.Request().Context()
	data["IsPatients"] = true

	patient, err := getPatientDBFn(ctx, access.PID)
	if err != nil {
		renderPatientError(t, data, access.PID, err)
		return
	}
	setPatientData(data, patient)

	userID, _ := getSessionUserID(s)
	medLevel, err := patientAccess(ctx, userID, access.PID, db.ACLValueMedical)
	if err != nil {
		logger.Error("Failed to resolve medical access", "pid", access.PID, "error", err)
		medLevel = db.AccessNone
	}
	data["CanViewHistory"] = medLevel.CanView()
	data["CanEditHistory"] = medLevel.CanEdit()

	t.HTML(http.StatusOK, "patient")
}
