/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package routes

import (
	"errors"
	htmltemplate "html/template"
	"net/http"
	"time"

	"github.com/flamego/template"

	"github.com/clinicware/patienthistory/db"
	"github.com/clinicware/patienthistory/layout"
)

func renderError(t template.Template, data template.Data, status int, message string) {
	data["Error"] = message
	t.HTML(status, "error")
}

func renderPatientError(t template.Template, data template.Data, pid int64, err error) {
	if errors.Is(err, db.ErrPatientNotFound) {
		renderError(t, data, http.StatusNotFound, "Patient not found")
		return
	}

	logger.Error("Failed to load patient", "pid", pid, "error", err)
	renderError(t, data, http.StatusInternalServerError, "Failed to load patient")
}

func formatDate(value *time.Time) string {
	if value == nil || value.IsZero() {
		return ""
	}
	return value.Format(layout.DateLayout)
}

func formatTime(value time.Time) string {
	if value.IsZero() {
		return ""
	}
	return value.UTC().Format("2006-01-02 15:04 UTC")
}

// TemplateFuncs are the helpers available to every page template.
func TemplateFuncs() htmltemplate.FuncMap {
	return htmltemplate.FuncMap{
		"formatDate":  formatDate,
		"formatTime":  formatTime,
		"statusLabel": layout.StatusLabel,
		"statusInput": layout.StatusInputName,
		"dateInput":   layout.DateInputName,
	}
}
