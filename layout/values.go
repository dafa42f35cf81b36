/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package layout

import (
	"net/url"
	"slices"
	"strings"

	"github.com/clinicware/patienthistory/db"
)

// Lifestyle statuses of a lifestyle status field.
const (
	StatusCurrent       = "current"
	StatusQuit          = "quit"
	StatusNever         = "never"
	StatusNotApplicable = "not_applicable"
)

// LifestyleStatuses lists the statuses in display order.
var LifestyleStatuses = []string{StatusCurrent, StatusQuit, StatusNever, StatusNotApplicable}

var lifestyleStatusLabels = map[string]string{
	StatusCurrent:       "Current",
	StatusQuit:          "Quit",
	StatusNever:         "Never",
	StatusNotApplicable: "N/A",
}

// StatusLabel returns the display label of a lifestyle status.
func StatusLabel(status string) string {
	return lifestyleStatusLabels[status]
}

// LifestyleValue is a decoded lifestyle status field, stored as
// "note|status|date".
type LifestyleValue struct {
	Note   string
	Status string
	Date   string
}

// DecodeLifestyle parses a stored lifestyle value. Unknown statuses are
// dropped.
func DecodeLifestyle(raw string) LifestyleValue {
	parts := strings.SplitN(raw, "|", 3)
	for len(parts) < 3 {
		parts = append(parts, "")
	}

	value := LifestyleValue{
		Note: parts[0],
		Date: parts[2],
	}
	if slices.Contains(LifestyleStatuses, parts[1]) {
		value.Status = parts[1]
	}

	return value
}

// Encode returns the stored form of the value.
func (v LifestyleValue) Encode() string {
	if v.Note == "" && v.Status == "" && v.Date == "" {
		return ""
	}
	return strings.ReplaceAll(v.Note, "|", "/") + "|" + v.Status + "|" + v.Date
}

// Summary is a one-line read-only rendering.
func (v LifestyleValue) Summary() string {
	var parts []string
	if label := StatusLabel(v.Status); label != "" {
		parts = append(parts, label)
	}
	if v.Note != "" {
		parts = append(parts, v.Note)
	}
	if v.Date != "" {
		parts = append(parts, v.Date)
	}
	return strings.Join(parts, " · ")
}

// Is reports whether the value has the given status; used by templates.
func (v LifestyleValue) Is(status string) bool {
	return v.Status == status
}

func splitChecked(raw string) []string {
	if raw == "" {
		return nil
	}
	return strings.Split(raw, "|")
}

// StatusInputName is the radio group name of a lifestyle field.
func StatusInputName(fieldID string) string {
	return "radio_" + fieldID
}

// DateInputName is the date input name of a lifestyle field.
func DateInputName(fieldID string) string {
	return "date_" + fieldID
}

// FormValue reads the submitted value of one field and encodes it the way
// the field's data type is stored. Checkbox ids missing from choices are
// dropped.
func FormValue(option db.LayoutOption, choices []db.ListOption, form url.Values) string {
	switch option.DataType {
	case db.DataTypeCheckboxList:
		var checked []string
		for _, id := range form[InputName(option.FieldID)] {
			id = strings.TrimSpace(id)
			if !hasChoice(choices, id) || slices.Contains(checked, id) {
				continue
			}
			checked = append(checked, id)
		}
		return strings.Join(checked, "|")
	case db.DataTypeLifestyleStatus:
		value := LifestyleValue{
			Note: clip(strings.TrimSpace(form.Get(InputName(option.FieldID))), option.MaxLength),
			Date: strings.TrimSpace(form.Get(DateInputName(option.FieldID))),
		}
		if status := form.Get(StatusInputName(option.FieldID)); slices.Contains(LifestyleStatuses, status) {
			value.Status = status
		}
		return value.Encode()
	default:
		return clip(strings.TrimSpace(form.Get(InputName(option.FieldID))), option.MaxLength)
	}
}

// FormValues reads every active field of the layout out of a submitted form.
func FormValues(options []db.LayoutOption, lists map[string][]db.ListOption, form url.Values) map[string]string {
	active := Active(options)

	values := make(map[string]string, len(active))
	for _, option := range active {
		values[option.FieldID] = FormValue(option, lists[option.ListID], form)
	}

	return values
}

func hasChoice(choices []db.ListOption, id string) bool {
	if id == "" || strings.Contains(id, "|") {
		return false
	}

	return slices.ContainsFunc(choices, func(choice db.ListOption) bool {
		return choice.OptionID == id
	})
}

func clip(value string, maxLength int) string {
	if maxLength <= 0 {
		return value
	}

	runes := []rune(value)
	if len(runes) <= maxLength {
		return value
	}

	return string(runes[:maxLength])
}
