/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package routes

import (
	"context"

	"github.com/flamego/flamego"
	"github.com/flamego/session"
	"github.com/flamego/template"
	"github.com/google/uuid"

	"github.com/clinicware/patienthistory/db"
)

var getUserByIDDBFn = db.GetUserByID

// UserContextInjector loads session user metadata into templates.
func UserContextInjector() flamego.Handler {
	return func(c flamego.Context, s session.Session, data template.Data) {
		authenticated, _ := s.Get("authenticated").(bool)
		data["IsAuthenticated"] = authenticated
		if !authenticated {
			return
		}

		user, err := resolveSessionUser(c.Request().Context(), s)
		if err != nil {
			logger.Error("Failed to resolve session user", "error", err)
			return
		}
		data["UserDisplayName"] = user.DisplayName
		data["IsAdmin"] = user.IsAdmin
	}
}

func getSessionUserID(s session.Session) (string, bool) {
	if val := s.Get("user_id"); val != nil {
		if userID, ok := val.(string); ok && userID != "" {
			return userID, true
		}
	}

	return "", false
}

// sessionChangedBy is the user id recorded against history revisions.
func sessionChangedBy(s session.Session) *uuid.UUID {
	userID, ok := getSessionUserID(s)
	if !ok {
		return nil
	}

	parsed, err := uuid.Parse(userID)
	if err != nil {
		return nil
	}

	return &parsed
}

func resolveSessionUser(ctx context.Context, s session.Session) (*db.User, error) {
	userID, ok := getSessionUserID(s)
	if !ok {
		return nil, errSessionUserMissing
	}

	isAdmin, hasAdmin := s.Get("user_is_admin").(bool)
	displayName, hasName := s.Get("user_display_name").(string)
	if hasAdmin && hasName {
		if parsedID, err := uuid.Parse(userID); err == nil {
			return &db.User{
				ID:          parsedID,
				DisplayName: displayName,
				IsAdmin:     isAdmin,
			}, nil
		}
	}

	user, err := getUserByIDDBFn(ctx, userID)
	if err != nil {
		return nil, err
	}
	s.Set("user_display_name", user.DisplayName)
	s.Set("user_is_admin", user.IsAdmin)

	return user, nil
}
