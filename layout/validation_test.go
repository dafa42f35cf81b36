// SPDX-FileCopyrightText: 2025 Humaid Alqasimi
// SPDX-License-Identifier: Apache-2.0

package layout

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/clinicware/patienthistory/db"
)

func TestRulesCoverRequiredAndDateFields(t *testing.T) {
	t.Parallel()

	options := append(historyOptions(),
		db.LayoutOption{FieldID: "exams", GroupName: "1General", Seq: 3, Title: "Exams/Tests", DataType: db.DataTypeTextArea, UOR: db.UsageRequired},
		db.LayoutOption{FieldID: "blood", GroupName: "1General", Seq: 4, Title: "Blood", DataType: db.DataTypeList, UOR: db.UsageRequired, ListID: "yesno"},
		db.LayoutOption{FieldID: "habits", GroupName: "1General", Seq: 5, Title: "Habits", DataType: db.DataTypeCheckboxList, UOR: db.UsageRequired, ListID: "riskfactors"},
		db.LayoutOption{FieldID: "hidden_required", GroupName: "1General", Seq: 6, Title: "Hidden", DataType: db.DataTypeText, UOR: 0},
	)

	rules := Rules(options)

	type key struct {
		input string
		kind  RuleKind
	}

	got := map[key]bool{}
	for _, rule := range rules {
		got[key{rule.Input, rule.Kind}] = true
		if rule.Field == "hidden_required" {
			t.Fatal("unused field produced a rule")
		}
	}

	want := []key{
		{"form_last_exam_date", RuleDateFormat},
		{"form_exams", RuleRequiredText},
		{"form_blood", RuleRequiredSelect},
		{"form_habits", RuleRequiredCheckbox},
		{"radio_tobacco", RuleRequiredStatus},
		{"date_tobacco", RuleDateFormat},
	}
	for _, k := range want {
		if !got[k] {
			t.Fatalf("missing rule %v in %#v", k, rules)
		}
	}
	if len(rules) != len(want) {
		t.Fatalf("expected %d rules, got %d", len(want), len(rules))
	}
}

func TestRulesSerializeForScript(t *testing.T) {
	t.Parallel()

	encoded, err := json.Marshal(Rules(nil))
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	if string(encoded) != "[]" {
		t.Fatalf("expected empty array for empty layout, got %s", encoded)
	}

	encoded, err = json.Marshal(Rules(historyOptions()))
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	if !strings.Contains(string(encoded), `"kind":"required_status"`) || !strings.Contains(string(encoded), `"input":"radio_tobacco"`) {
		t.Fatalf("unexpected rule JSON: %s", encoded)
	}
}

func TestValidateRejectsMissingRequired(t *testing.T) {
	t.Parallel()

	err := Validate(historyOptions(), map[string]string{"tobacco": "smokes||"})

	var failures ValidationErrors
	if !errors.As(err, &failures) {
		t.Fatalf("expected ValidationErrors, got %v", err)
	}
	if len(failures) != 1 || failures[0].Field != "tobacco" {
		t.Fatalf("unexpected failures: %#v", failures)
	}
	if failures[0].Message != "Please choose a status for Tobacco" {
		t.Fatalf("unexpected message: %q", failures[0].Message)
	}
}

func TestValidateRejectsBadDates(t *testing.T) {
	t.Parallel()

	values := map[string]string{
		"tobacco":        "|quit|2022-13-01",
		"last_exam_date": "01/02/2024",
	}

	var failures ValidationErrors
	if !errors.As(Validate(historyOptions(), values), &failures) {
		t.Fatal("expected validation failures")
	}
	if len(failures) != 2 {
		t.Fatalf("expected 2 failures, got %#v", failures)
	}
}

func TestValidateAcceptsCompleteSubmission(t *testing.T) {
	t.Parallel()

	values := map[string]string{
		"tobacco":        "|never|",
		"last_exam_date": "2024-02-29",
	}

	if err := Validate(historyOptions(), values); err != nil {
		t.Fatalf("unexpected validation error: %v", err)
	}
}

func TestValidationErrorsMessage(t *testing.T) {
	t.Parallel()

	err := ValidationErrors{{Field: "a", Message: "first"}, {Field: "b", Message: "second"}}
	if got := err.Error(); got != "first; second" {
		t.Fatalf("Error() = %q", got)
	}
}
