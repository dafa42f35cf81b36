/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package routes

import (
	"errors"
	"net/http"
	"strings"
	"sync"

	"github.com/flamego/flamego"
	"github.com/flamego/session"
	"github.com/flamego/template"
	"golang.org/x/crypto/bcrypt"

	"github.com/clinicware/patienthistory/db"
)

const invalidCredentialsMessage = "Invalid username or password"

var getUserByUsernameDBFn = db.GetUserByUsername

var (
	dummyHashOnce sync.Once
	dummyHash     []byte
)

// comparePassword always runs one bcrypt comparison, including for unknown
// users (empty hash).
func comparePassword(hash []byte, password string) bool {
	if len(hash) == 0 {
		dummyHashOnce.Do(func() {
			dummyHash, _ = bcrypt.GenerateFromPassword([]byte("unused"), bcrypt.DefaultCost)
		})
		_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
		return false
	}

	return bcrypt.CompareHashAndPassword(hash, []byte(password)) == nil
}

// LoginForm renders the login page
func LoginForm(c flamego.Context, s session.Session, t template.Template, data template.Data) {
	if authenticated, _ := s.Get("authenticated").(bool); authenticated {
		c.Redirect("/", http.StatusSeeOther)
		return
	}

	data["HeaderOnly"] = true
	t.HTML(http.StatusOK, "login")
}

// Login checks a username and password and starts an authenticated session.
func Login(c flamego.Context, s session.Session, t template.Template, data template.Data) {
	data["HeaderOnly"] = true

	username := strings.TrimSpace(c.Request().FormValue("username"))
	password := c.Request().FormValue("password")
	data["Username"] = username

	if username == "" || password == "" {
		data["Error"] = invalidCredentialsMessage
		t.HTML(http.StatusUnauthorized, "login")
		return
	}

	user, err := getUserByUsernameDBFn(c.Request().Context(), username)
	if err != nil && !errors.Is(err, db.ErrUserNotFound) {
		logger.Error("Failed to load user for login", "username", username, "error", err)
		data["Error"] = "Unable to sign in right now"
		t.HTML(http.StatusInternalServerError, "login")
		return
	}

	var hash []byte
	if user != nil {
		hash = user.PasswordHash
	}

	if !comparePassword(hash, password) {
		logAccessDenied(c, s, "invalid_credentials", http.StatusUnauthorized, "", "username", username)
		data["Error"] = invalidCredentialsMessage
		t.HTML(http.StatusUnauthorized, "login")
		return
	}

	if err := s.RegenerateID(c.ResponseWriter(), c.Request().Request); err != nil {
		logger.Error("Failed to regenerate session id", "error", err)
		data["Error"] = "Unable to sign in right now"
		t.HTML(http.StatusInternalServerError, "login")
		return
	}

	s.Set("authenticated", true)
	s.Set("user_id", user.ID.String())
	s.Set("user_display_name", user.DisplayName)
	s.Set("user_is_admin", user.IsAdmin)

	logger.Info("User signed in", "user_id", user.ID.String(), "username", user.Username)
	c.Redirect("/", http.StatusSeeOther)
}

// Logout handles logout request
func Logout(s session.Session, c flamego.Context) {
	s.Delete("authenticated")
	s.Delete("user_id")
	s.Delete("user_display_name")
	s.Delete("user_is_admin")
	c.Redirect("/login", http.StatusSeeOther)
}

// RequireAuth is a middleware that checks if user is authenticated
func RequireAuth(s session.Session, c flamego.Context) {
	authenticated, ok := s.Get("authenticated").(bool)
	if !ok || !authenticated {
		c.Redirect("/login", http.StatusSeeOther)
		return
	}
	c.Next()
}
