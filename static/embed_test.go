// SPDX-FileCopyrightText: 2025 Humaid Alqasimi
// SPDX-License-Identifier: Apache-2.0

package static_test

import (
	"strings"
	"testing"

	"github.com/clinicware/patienthistory/layout"
	"github.com/clinicware/patienthistory/static"
)

func readAsset(t *testing.T, name string) string {
	t.Helper()

	content, err := static.Static.ReadFile(name)
	if err != nil {
		t.Fatalf("failed to read %s: %v", name, err)
	}

	return string(content)
}

func TestHistoryScriptHandlesEveryRuleKind(t *testing.T) {
	t.Parallel()

	script := readAsset(t, "history.js")

	kinds := []layout.RuleKind{
		layout.RuleRequiredText,
		layout.RuleRequiredSelect,
		layout.RuleRequiredCheckbox,
		layout.RuleRequiredStatus,
		layout.RuleDateFormat,
	}

	for _, kind := range kinds {
		if !strings.Contains(script, `case "`+string(kind)+`":`) {
			t.Fatalf("history.js has no case for rule kind %q", kind)
		}
	}
}

func TestHistoryScriptBlocksInvalidSubmit(t *testing.T) {
	t.Parallel()

	script := readAsset(t, "history.js")

	for _, want := range []string{
		`getElementById("history-rules")`,
		`getElementById("history_form")`,
		`if (!validate(form, rules)) {`,
		`event.preventDefault();`,
		`window.alert(rules[i].message);`,
	} {
		if !strings.Contains(script, want) {
			t.Fatalf("history.js is missing %q", want)
		}
	}
}

func TestStaticServesStylesheet(t *testing.T) {
	t.Parallel()

	if css := readAsset(t, "style.css"); !strings.Contains(css, ".tabNav") {
		t.Fatal("expected tab styles in style.css")
	}
}
