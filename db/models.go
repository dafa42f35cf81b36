/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package db

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// HistoryFormID is the layout form identifier of the history/lifestyle form.
const HistoryFormID = "HIS"

// ACL sections and values consulted by the patient pages.
const (
	ACLSectionPatients = "patients"
	ACLSectionSquads   = "squads"
	ACLValueMedical    = "med"
	ACLValueDemo       = "demo"
)

// AccessLevel is the result of an ACL check.
type AccessLevel string

// AccessLevel values, ordered from least to most privileged.
const (
	AccessNone    AccessLevel = ""
	AccessView    AccessLevel = "view"
	AccessAddOnly AccessLevel = "addonly"
	AccessWrite   AccessLevel = "write"
)

// ParseAccessLevel converts a stored or user supplied level name.
func ParseAccessLevel(raw string) (AccessLevel, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "none":
		return AccessNone, nil
	case "view", "read":
		return AccessView, nil
	case "addonly", "add-only", "add_only":
		return AccessAddOnly, nil
	case "write":
		return AccessWrite, nil
	default:
		return AccessNone, ErrInvalidAccessLevel
	}
}

// CanView reports whether the level grants any access at all.
func (l AccessLevel) CanView() bool {
	return l != AccessNone
}

// CanEdit reports whether the level allows editing forms.
func (l AccessLevel) CanEdit() bool {
	return l == AccessWrite || l == AccessAddOnly
}

// User represents an authenticated account.
type User struct {
	ID           uuid.UUID `db:"id"`
	Username     string    `db:"username"`
	DisplayName  string    `db:"display_name"`
	PasswordHash []byte    `db:"password_hash"`
	IsAdmin      bool      `db:"is_admin"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}

// ACLGrant gives a user a level on one section/value pair.
type ACLGrant struct {
	UserID    uuid.UUID   `db:"user_id"`
	Section   string      `db:"section"`
	Value     string      `db:"value"`
	Level     AccessLevel `db:"level"`
	CreatedAt time.Time   `db:"created_at"`
}

// Patient represents the demographic row of a patient.
type Patient struct {
	PID       int64      `db:"pid"`
	FirstName string     `db:"fname"`
	LastName  string     `db:"lname"`
	DOB       *time.Time `db:"dob"`
	Sex       *string    `db:"sex"`
	Squad     *string    `db:"squad"`
	CreatedAt time.Time  `db:"created_at"`
}

// FullName returns the display name used in page headers.
func (p Patient) FullName() string {
	return strings.TrimSpace(p.FirstName + " " + p.LastName)
}

// SquadName returns the squad or an empty string.
func (p Patient) SquadName() string {
	if p.Squad == nil {
		return ""
	}
	return strings.TrimSpace(*p.Squad)
}

// HistoryRecord is the history/lifestyle row of a patient. The set of keys in
// Fields is defined by the HIS layout, not by this type.
type HistoryRecord struct {
	ID     int64             `db:"id"`
	PID    int64             `db:"pid"`
	Date   time.Time         `db:"date"`
	Fields map[string]string `db:"fields"`
}

// Value returns the stored value of a layout field, or an empty string.
func (h *HistoryRecord) Value(fieldID string) string {
	if h == nil || h.Fields == nil {
		return ""
	}
	return h.Fields[fieldID]
}

// HistoryRevision keeps the field values a save replaced.
type HistoryRevision struct {
	ID        int64             `db:"id"`
	HistoryID int64             `db:"history_id"`
	PID       int64             `db:"pid"`
	ChangedBy *uuid.UUID        `db:"changed_by"`
	ChangedAt time.Time         `db:"changed_at"`
	Fields    map[string]string `db:"fields"`
}

// DataType is the layout data type code of a field.
type DataType int

// Supported layout data types.
const (
	DataTypeList            DataType = 1
	DataTypeText            DataType = 2
	DataTypeTextArea        DataType = 3
	DataTypeDate            DataType = 4
	DataTypeCheckboxList    DataType = 21
	DataTypeLifestyleStatus DataType = 28
)

// Usage values of layout_options.uor.
const (
	UsageUnused   = 0
	UsageOptional = 1
	UsageRequired = 2
)

// LayoutOption is one field definition of a layout form.
type LayoutOption struct {
	FormID      string   `db:"form_id"`
	FieldID     string   `db:"field_id"`
	GroupName   string   `db:"group_name"`
	Title       string   `db:"title"`
	Seq         int      `db:"seq"`
	DataType    DataType `db:"data_type"`
	UOR         int      `db:"uor"`
	FieldLength int      `db:"fld_length"`
	MaxLength   int      `db:"max_length"`
	ListID      string   `db:"list_id"`
	Description string   `db:"description"`
}

// Required reports whether the field must be filled in.
func (o LayoutOption) Required() bool {
	return o.UOR >= UsageRequired
}

// ListOption is one choice of a selectable list.
type ListOption struct {
	ListID    string `db:"list_id"`
	OptionID  string `db:"option_id"`
	Title     string `db:"title"`
	Seq       int    `db:"seq"`
	IsDefault bool   `db:"is_default"`
}
