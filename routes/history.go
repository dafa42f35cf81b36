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

	"github.com/flamego/flamego"
	"github.com/flamego/session"
	"github.com/flamego/template"

	"github.com/clinicware/patienthistory/db"
	"github.com/clinicware/patienthistory/layout"
)

const historyRevisionLimit = 10

var (
	getPatientDBFn           = db.GetPatient
	getHistoryDataDBFn       = db.GetHistoryData
	newHistoryDataDBFn       = db.NewHistoryData
	updateHistoryDataDBFn    = db.UpdateHistoryData
	listHistoryRevisionsDBFn = db.ListHistoryRevisions
	listLayoutOptionsDBFn    = db.ListLayoutOptions
	listListOptionsDBFn      = db.ListListOptions
)

func historyViewURL(pid int64) string {
	return fmt.Sprintf("/patient/%d/history", pid)
}

func historyEditURL(pid int64) string {
	return fmt.Sprintf("/patient/%d/history/edit", pid)
}

func patientSummaryURL(pid int64) string {
	return fmt.Sprintf("/patient/%d/summary", pid)
}

// loadOrCreateHistory returns the patient's history record, creating an
// empty one on first access.
//
// Fetch, create and re-fetch are separate statements. Two concurrent first
// requests for the same patient can both create a record; readers always
// take the newest one.
func loadOrCreateHistory(ctx context.Context, pid int64) (*db.HistoryRecord, error) {
	record, err := getHistoryDataDBFn(ctx, pid)
	if err != nil {
		return nil, err
	}
	if record != nil {
		return record, nil
	}

	id, err := newHistoryDataDBFn(ctx, pid)
	if err != nil {
		return nil, err
	}
	logger.Info("Created history record", "pid", pid, "history_id", id)

	record, err = getHistoryDataDBFn(ctx, pid)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, errHistoryNotCreated
	}

	return record, nil
}

// loadHistoryLayout returns the HIS layout and the list options it uses.
func loadHistoryLayout(ctx context.Context) ([]db.LayoutOption, map[string][]db.ListOption, error) {
	options, err := listLayoutOptionsDBFn(ctx, db.HistoryFormID)
	if err != nil {
		return nil, nil, err
	}

	lists, err := listListOptionsDBFn(ctx, layout.ListIDs(options))
	if err != nil {
		return nil, nil, err
	}

	return options, lists, nil
}

func setPatientData(data template.Data, patient *db.Patient) {
	data["Patient"] = patient
	data["SummaryURL"] = patientSummaryURL(patient.PID)
	data["HistoryURL"] = historyViewURL(patient.PID)
	data["HistoryEditURL"] = historyEditURL(patient.PID)
}

// HistoryFullForm renders the editable history/lifestyle form.
func HistoryFullForm(c flamego.Context, t template.Template, data template.Data, access PatientAccess) {
	ctx := c.Request().Context()
	data["IsHistory"] = true

	patient, err := getPatientDBFn(ctx, access.PID)
	if err != nil {
		renderPatientError(t, data, access.PID, err)
		return
	}
	setPatientData(data, patient)

	record, err := loadOrCreateHistory(ctx, access.PID)
	if err != nil {
		logger.Error("Failed to load history", "pid", access.PID, "error", err)
		renderError(t, data, http.StatusInternalServerError, "Failed to load history")
		return
	}

	options, lists, err := loadHistoryLayout(ctx)
	if err != nil {
		logger.Error("Failed to load history layout", "error", err)
		renderError(t, data, http.StatusInternalServerError, "Failed to load history layout")
		return
	}

	data["Record"] = record
	data["Tabs"] = layout.BuildTabs(options, record, lists)
	data["ValidationRules"] = layout.Rules(options)
	data["LifestyleStatuses"] = layout.LifestyleStatuses

	t.HTML(http.StatusOK, "history_full")
}

// SaveHistory stores a submitted history form and returns to the view page.
func SaveHistory(c flamego.Context, s session.Session, access PatientAccess) {
	editURL := historyEditURL(access.PID)

	if err := c.Request().ParseForm(); err != nil {
		SetErrorFlash(s, "Invalid form submission")
		c.Redirect(editURL, http.StatusSeeOther)
		return
	}

	form := c.Request().PostForm
	if form.Get("mode") != "save" {
		c.Redirect(editURL, http.StatusSeeOther)
		return
	}

	ctx := c.Request().Context()

	options, lists, err := loadHistoryLayout(ctx)
	if err != nil {
		logger.Error("Failed to load history layout", "error", err)
		SetErrorFlash(s, "Failed to save history")
		c.Redirect(editURL, http.StatusSeeOther)
		return
	}

	values := layout.FormValues(options, lists, form)
	if err := layout.Validate(options, values); err != nil {
		message := "Failed to save history"
		var failures layout.ValidationErrors
		if errors.As(err, &failures) && len(failures) > 0 {
			message = failures[0].Message
		}
		SetErrorFlash(s, message)
		c.Redirect(editURL, http.StatusSeeOther)
		return
	}

	if err := updateHistoryDataDBFn(ctx, access.PID, values, sessionChangedBy(s)); err != nil {
		logger.Error("Failed to save history", "pid", access.PID, "error", err)
		SetErrorFlash(s, "Failed to save history")
		c.Redirect(editURL, http.StatusSeeOther)
		return
	}

	logger.Info("Saved history", "pid", access.PID, "fields", len(values))
	SetSuccessFlash(s, "History saved")
	c.Redirect(historyViewURL(access.PID), http.StatusSeeOther)
}

// ViewHistory renders the read-only history page with recent changes.
func ViewHistory(c flamego.Context, t template.Template, data template.Data, access PatientAccess) {
	ctx := c.Request().Context()
	data["IsHistory"] = true

	patient, err := getPatientDBFn(ctx, access.PID)
	if err != nil {
		renderPatientError(t, data, access.PID, err)
		return
	}
	setPatientData(data, patient)
	data["CanEdit"] = access.Level.CanEdit()

	record, err := getHistoryDataDBFn(ctx, access.PID)
	if err != nil {
		logger.Error("Failed to load history", "pid", access.PID, "error", err)
		renderError(t, data, http.StatusInternalServerError, "Failed to load history")
		return
	}

	options, lists, err := loadHistoryLayout(ctx)
	if err != nil {
		logger.Error("Failed to load history layout", "error", err)
		renderError(t, data, http.StatusInternalServerError, "Failed to load history layout")
		return
	}

	data["Record"] = record
	data["Tabs"] = layout.BuildTabs(options, record, lists)

	revisions, err := listHistoryRevisionsDBFn(ctx, access.PID, historyRevisionLimit)
	if err != nil {
		logger.Error("Failed to load history revisions", "pid", access.PID, "error", err)
	} else {
		data["Revisions"] = revisions
		data["RevisionAuthors"] = revisionAuthors(ctx, revisions)
	}

	t.HTML(http.StatusOK, "history")
}

// revisionAuthors maps the user ids of revisions to display names.
func revisionAuthors(ctx context.Context, revisions []db.HistoryRevision) map[string]string {
	authors := make(map[string]string)
	for _, revision := range revisions {
		if revision.ChangedBy == nil {
			continue
		}

		id := revision.ChangedBy.String()
		if _, seen := authors[id]; seen {
			continue
		}

		user, err := getUserByIDDBFn(ctx, id)
		if err != nil {
			authors[id] = id
			continue
		}
		authors[id] = user.DisplayName
	}

	return authors
}
