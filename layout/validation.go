/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package layout

import (
	"fmt"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/clinicware/patienthistory/db"
)

// DateLayout is the storage and input format of date fields.
const DateLayout = "2006-01-02"

// RuleKind names the check a rule performs in the browser.
type RuleKind string

// Rule kinds understood by static/history.js.
const (
	RuleRequiredText     RuleKind = "required_text"
	RuleRequiredSelect   RuleKind = "required_select"
	RuleRequiredCheckbox RuleKind = "required_checkbox"
	RuleRequiredStatus   RuleKind = "required_status"
	RuleDateFormat       RuleKind = "date_format"
)

// Rule is one client-side check, serialized into the page as JSON.
type Rule struct {
	Field   string   `json:"field"`
	Input   string   `json:"input"`
	Kind    RuleKind `json:"kind"`
	Label   string   `json:"label"`
	Message string   `json:"message"`
}

// Rules derives the client-side checks of a layout: one per required field
// plus a format check for every date input.
func Rules(options []db.LayoutOption) []Rule {
	rules := []Rule{}

	for _, option := range Active(options) {
		label := ruleLabel(option)

		if option.Required() {
			rule := Rule{
				Field:   option.FieldID,
				Input:   InputName(option.FieldID),
				Label:   label,
				Message: fmt.Sprintf("Please enter the %s", label),
			}

			switch option.DataType {
			case db.DataTypeList:
				rule.Kind = RuleRequiredSelect
				rule.Message = fmt.Sprintf("Please choose a value for %s", label)
			case db.DataTypeCheckboxList:
				rule.Kind = RuleRequiredCheckbox
				rule.Message = fmt.Sprintf("Please check at least one %s", label)
			case db.DataTypeLifestyleStatus:
				rule.Kind = RuleRequiredStatus
				rule.Input = StatusInputName(option.FieldID)
				rule.Message = fmt.Sprintf("Please choose a status for %s", label)
			default:
				rule.Kind = RuleRequiredText
			}

			rules = append(rules, rule)
		}

		switch option.DataType {
		case db.DataTypeDate:
			rules = append(rules, dateRule(option.FieldID, InputName(option.FieldID), label))
		case db.DataTypeLifestyleStatus:
			rules = append(rules, dateRule(option.FieldID, DateInputName(option.FieldID), label))
		}
	}

	return rules
}

func dateRule(fieldID, input, label string) Rule {
	return Rule{
		Field:   fieldID,
		Input:   input,
		Kind:    RuleDateFormat,
		Label:   label,
		Message: fmt.Sprintf("%s must be a date in YYYY-MM-DD format", label),
	}
}

func ruleLabel(option db.LayoutOption) string {
	if title := strings.TrimSpace(option.Title); title != "" {
		return title
	}
	if description := strings.TrimSpace(option.Description); description != "" {
		return description
	}
	return option.FieldID
}

// FieldError is a failed check of one field.
type FieldError struct {
	Field   string
	Message string
}

func (e FieldError) Error() string {
	return e.Message
}

// ValidationErrors collects every failed check of a submission.
type ValidationErrors []FieldError

func (e ValidationErrors) Error() string {
	messages := make([]string, 0, len(e))
	for _, fieldErr := range e {
		messages = append(messages, fieldErr.Message)
	}
	return strings.Join(messages, "; ")
}

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func getValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New()
	})
	return validate
}

// Validate runs the same checks as Rules against submitted values, as read
// by FormValues. It returns ValidationErrors or nil.
func Validate(options []db.LayoutOption, values map[string]string) error {
	v := getValidator()

	var failures ValidationErrors
	for _, rule := range Rules(options) {
		value := values[rule.Field]

		var target, tag string
		switch rule.Kind {
		case RuleRequiredStatus:
			target, tag = DecodeLifestyle(value).Status, "required"
		case RuleDateFormat:
			target, tag = value, "omitempty,datetime="+DateLayout
			if rule.Input == DateInputName(rule.Field) {
				target = DecodeLifestyle(value).Date
			}
		default:
			target, tag = strings.TrimSpace(value), "required"
		}

		if err := v.Var(target, tag); err != nil {
			failures = append(failures, FieldError{Field: rule.Field, Message: rule.Message})
		}
	}

	if len(failures) == 0 {
		return nil
	}

	return failures
}
