/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package routes

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/flamego/flamego"
	"github.com/flamego/session"

	"github.com/clinicware/patienthistory/db"
)

const notAuthorizedBody = "Not authorized."

var (
	aclCheckDBFn        = db.ACLCheck
	getPatientSquadDBFn = db.GetPatientSquad
)

// PatientAccess is the resolved access of the session user to one patient.
// The access middlewares map it for the handlers that follow.
type PatientAccess struct {
	PID   int64
	Level db.AccessLevel
}

// ResolveAccess applies the squad restriction to a level granted on the
// patients section: a patient in a squad the user has no access to is not
// accessible at all.
func ResolveAccess(level db.AccessLevel, squad string, squadLevel db.AccessLevel) db.AccessLevel {
	if level != db.AccessNone && squad != "" && squadLevel == db.AccessNone {
		return db.AccessNone
	}
	return level
}

// patientAccess checks patients:<value> for the user, then the patient's
// squad. The squad is only looked up when the first check passes.
func patientAccess(ctx context.Context, userID string, pid int64, value string) (db.AccessLevel, error) {
	level, err := aclCheckDBFn(ctx, userID, db.ACLSectionPatients, value)
	if err != nil {
		return db.AccessNone, fmt.Errorf("failed to check %s:%s: %w", db.ACLSectionPatients, value, err)
	}
	if level == db.AccessNone {
		return db.AccessNone, nil
	}

	squad, err := getPatientSquadDBFn(ctx, pid)
	if err != nil {
		return db.AccessNone, err
	}
	if squad == "" {
		return level, nil
	}

	squadLevel, err := aclCheckDBFn(ctx, userID, db.ACLSectionSquads, squad)
	if err != nil {
		return db.AccessNone, fmt.Errorf("failed to check %s:%s: %w", db.ACLSectionSquads, squad, err)
	}

	return ResolveAccess(level, squad, squadLevel), nil
}

func parsePID(raw string) (int64, bool) {
	pid, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || pid <= 0 {
		return 0, false
	}
	return pid, true
}

func writePlainText(c flamego.Context, status int, body string) {
	w := c.ResponseWriter()
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(body))
}

// RequirePatientAccess gates a /patient/{pid} route on patients:<value> and
// the patient's squad. allowed decides which levels pass. Rejected requests
// get a bare 403 and no later handler runs.
func RequirePatientAccess(value string, allowed func(db.AccessLevel) bool) flamego.Handler {
	return func(c flamego.Context, s session.Session) {
		pid, ok := parsePID(c.Param("pid"))
		if !ok {
			writePlainText(c, http.StatusNotFound, "Patient not found.")
			return
		}

		userID, ok := getSessionUserID(s)
		if !ok {
			logAccessDenied(c, s, "session_user_missing", http.StatusForbidden, "")
			writePlainText(c, http.StatusForbidden, notAuthorizedBody)
			return
		}

		level, err := patientAccess(c.Request().Context(), userID, pid, value)
		if errors.Is(err, db.ErrPatientNotFound) {
			writePlainText(c, http.StatusNotFound, "Patient not found.")
			return
		}
		if err != nil {
			logger.Error("Failed to resolve patient access", "pid", pid, "error", err)
			writePlainText(c, http.StatusInternalServerError, "Unable to check access.")
			return
		}

		if !allowed(level) {
			logAccessDenied(c, s, "acl", http.StatusForbidden, "",
				"section", db.ACLSectionPatients, "value", value, "level", string(level))
			writePlainText(c, http.StatusForbidden, notAuthorizedBody)
			return
		}

		c.Map(PatientAccess{PID: pid, Level: level})
		c.Next()
	}
}

// RequireHistoryEdit admits write and addonly access to the medical record.
func RequireHistoryEdit() flamego.Handler {
	return RequirePatientAccess(db.ACLValueMedical, db.AccessLevel.CanEdit)
}

// RequireHistoryView admits any access to the medical record.
func RequireHistoryView() flamego.Handler {
	return RequirePatientAccess(db.ACLValueMedical, db.AccessLevel.CanView)
}

// RequireDemographicsView admits any access to patient demographics.
func RequireDemographicsView() flamego.Handler {
	return RequirePatientAccess(db.ACLValueDemo, db.AccessLevel.CanView)
}
