/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */

// Package layout turns layout field definitions into tabbed form models,
// reads submitted values back out of a form and derives validation rules.
package layout

import (
	"fmt"
	"slices"
	"sort"
	"strings"

	"github.com/clinicware/patienthistory/db"
)

// Tab is one group of a layout form.
type Tab struct {
	ID     string
	Name   string
	Group  string
	Active bool
	Fields []Field
}

// Field is one rendered input of a layout form.
type Field struct {
	ID          string
	InputName   string
	Label       string
	Description string
	Type        db.DataType
	Required    bool
	Size        int
	MaxLength   int
	Value       string
	Choices     []Choice
	Lifestyle   LifestyleValue
}

// Choice is one selectable entry of a list or checkbox list field.
type Choice struct {
	ID       string
	Title    string
	Selected bool
}

// Type predicates used by templates.
func (f Field) IsList() bool            { return f.Type == db.DataTypeList }
func (f Field) IsText() bool            { return f.Type == db.DataTypeText }
func (f Field) IsTextArea() bool        { return f.Type == db.DataTypeTextArea }
func (f Field) IsDate() bool            { return f.Type == db.DataTypeDate }
func (f Field) IsCheckboxList() bool    { return f.Type == db.DataTypeCheckboxList }
func (f Field) IsLifestyleStatus() bool { return f.Type == db.DataTypeLifestyleStatus }

// DisplayValue is the read-only rendering of the stored value.
func (f Field) DisplayValue() string {
	switch f.Type {
	case db.DataTypeList, db.DataTypeCheckboxList:
		var titles []string
		for _, choice := range f.Choices {
			if choice.Selected {
				titles = append(titles, choice.Title)
			}
		}
		return strings.Join(titles, ", ")
	case db.DataTypeLifestyleStatus:
		return f.Lifestyle.Summary()
	default:
		return f.Value
	}
}

// Active drops definitions with a non-positive usage flag and orders the rest
// by group then sequence. The input slice is not modified.
func Active(options []db.LayoutOption) []db.LayoutOption {
	active := make([]db.LayoutOption, 0, len(options))
	for _, option := range options {
		if option.UOR > 0 {
			active = append(active, option)
		}
	}

	sort.SliceStable(active, func(i, j int) bool {
		if active[i].GroupName != active[j].GroupName {
			return active[i].GroupName < active[j].GroupName
		}
		return active[i].Seq < active[j].Seq
	})

	return active
}

// GroupDisplayName strips the leading ordering digits of a group name.
func GroupDisplayName(group string) string {
	trimmed := strings.TrimLeft(group, "0123456789")
	if trimmed == "" {
		return group
	}
	return trimmed
}

// ListIDs returns the distinct list ids referenced by selectable fields.
func ListIDs(options []db.LayoutOption) []string {
	var ids []string
	for _, option := range options {
		if option.ListID == "" {
			continue
		}
		if option.DataType != db.DataTypeList && option.DataType != db.DataTypeCheckboxList {
			continue
		}
		if !slices.Contains(ids, option.ListID) {
			ids = append(ids, option.ListID)
		}
	}
	return ids
}

// InputName is the form input name of a field's primary control.
func InputName(fieldID string) string {
	return "form_" + fieldID
}

// BuildTabs groups the active definitions into tabs and fills every field
// with its value from record. A nil record renders empty values.
func BuildTabs(options []db.LayoutOption, record *db.HistoryRecord, lists map[string][]db.ListOption) []Tab {
	var tabs []Tab

	for _, option := range Active(options) {
		if len(tabs) == 0 || tabs[len(tabs)-1].Group != option.GroupName {
			tabs = append(tabs, Tab{
				ID:     fmt.Sprintf("tab-%d", len(tabs)+1),
				Name:   GroupDisplayName(option.GroupName),
				Group:  option.GroupName,
				Active: len(tabs) == 0,
			})
		}

		current := &tabs[len(tabs)-1]
		current.Fields = append(current.Fields, buildField(option, record.Value(option.FieldID), lists[option.ListID]))
	}

	return tabs
}

func buildField(option db.LayoutOption, value string, choices []db.ListOption) Field {
	field := Field{
		ID:          option.FieldID,
		InputName:   InputName(option.FieldID),
		Label:       option.Title,
		Description: option.Description,
		Type:        option.DataType,
		Required:    option.Required(),
		Size:        option.FieldLength,
		MaxLength:   option.MaxLength,
		Value:       value,
	}

	switch option.DataType {
	case db.DataTypeList:
		for _, choice := range choices {
			field.Choices = append(field.Choices, Choice{
				ID:       choice.OptionID,
				Title:    choice.Title,
				Selected: choice.OptionID == value || (value == "" && choice.IsDefault),
			})
		}
	case db.DataTypeCheckboxList:
		selected := splitChecked(value)
		for _, choice := range choices {
			field.Choices = append(field.Choices, Choice{
				ID:       choice.OptionID,
				Title:    choice.Title,
				Selected: slices.Contains(selected, choice.OptionID),
			})
		}
	case db.DataTypeLifestyleStatus:
		field.Lifestyle = DecodeLifestyle(value)
	}

	return field
}
