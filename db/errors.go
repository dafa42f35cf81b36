/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package db

import "errors"

var (
	ErrDatabaseURLRequired              = errors.New("database URL is required")
	ErrDatabaseNameNotSpecified         = errors.New("database name not specified in connection string")
	ErrDatabaseConnectionNotInitialized = errors.New("database connection not initialized")
	ErrInvalidSessionConfig             = errors.New("invalid PostgresSessionConfig")
	ErrUserNotFound                     = errors.New("user not found")
	ErrUsernameRequired                 = errors.New("username is required")
	ErrDisplayNameRequired              = errors.New("display name is required")
	ErrPatientNotFound                  = errors.New("patient not found")
	ErrPatientNameRequired              = errors.New("patient first and last name are required")
	ErrInvalidAccessLevel               = errors.New("invalid access level")
	ErrACLSectionRequired               = errors.New("acl section and value are required")
	ErrACLGrantNotFound                 = errors.New("acl grant not found")
)
