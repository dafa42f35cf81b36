// SPDX-FileCopyrightText: 2025 Humaid Alqasimi
// SPDX-License-Identifier: Apache-2.0

package layout

import (
	"net/url"
	"testing"

	"github.com/clinicware/patienthistory/db"
)

func TestDecodeLifestyle(t *testing.T) {
	t.Parallel()

	tests := []struct {
		raw  string
		want LifestyleValue
	}{
		{raw: "", want: LifestyleValue{}},
		{raw: "2 cups", want: LifestyleValue{Note: "2 cups"}},
		{raw: "2 cups|current|", want: LifestyleValue{Note: "2 cups", Status: StatusCurrent}},
		{raw: "|quit|2019-05-01", want: LifestyleValue{Status: StatusQuit, Date: "2019-05-01"}},
		{raw: "x|currenttobacco|", want: LifestyleValue{Note: "x"}},
	}

	for _, tt := range tests {
		if got := DecodeLifestyle(tt.raw); got != tt.want {
			t.Fatalf("DecodeLifestyle(%q) = %#v, want %#v", tt.raw, got, tt.want)
		}
	}
}

func TestLifestyleEncodeAndSummary(t *testing.T) {
	t.Parallel()

	if got := (LifestyleValue{}).Encode(); got != "" {
		t.Fatalf("empty Encode() = %q", got)
	}

	value := LifestyleValue{Note: "beer|wine", Status: StatusCurrent, Date: "2021-02-03"}
	if got := value.Encode(); got != "beer/wine|current|2021-02-03" {
		t.Fatalf("Encode() = %q", got)
	}
	if got := value.Summary(); got != "Current · beer|wine · 2021-02-03" {
		t.Fatalf("Summary() = %q", got)
	}
}

func TestFormValuesReadsEveryType(t *testing.T) {
	t.Parallel()

	form := url.Values{
		"form_usertext11":     {"ht", "db", "ht", "bad|id", " "},
		"form_history_father": {"  Hypertension  "},
		"form_last_exam_date": {"2024-03-01"},
		"form_tobacco":        {"half a pack"},
		"radio_tobacco":       {"quit"},
		"date_tobacco":        {"2022-06-30"},
		"form_seatbelt_use":   {"NO"},
		"form_userarea11":     {"should be ignored"},
	}

	values := FormValues(historyOptions(), historyLists(), form)

	want := map[string]string{
		"usertext11":     "ht|db",
		"history_father": "Hypertension",
		"history_mother": "",
		"last_exam_date": "2024-03-01",
		"tobacco":        "half a pack|quit|2022-06-30",
		"seatbelt_use":   "NO",
	}

	if len(values) != len(want) {
		t.Fatalf("expected %d values, got %d: %v", len(want), len(values), values)
	}
	for key, wantValue := range want {
		if got := values[key]; got != wantValue {
			t.Fatalf("values[%q] = %q, want %q", key, got, wantValue)
		}
	}
}

func TestFormValueDropsUnknownStatusAndClips(t *testing.T) {
	t.Parallel()

	lifestyle := db.LayoutOption{FieldID: "coffee", DataType: db.DataTypeLifestyleStatus, UOR: 1, MaxLength: 4}
	form := url.Values{
		"form_coffee":  {"lots of coffee"},
		"radio_coffee": {"sometimes"},
	}

	if got := FormValue(lifestyle, nil, form); got != "lots||" {
		t.Fatalf("FormValue() = %q", got)
	}

	text := db.LayoutOption{FieldID: "name_1", DataType: db.DataTypeText, UOR: 1, MaxLength: 3}
	if got := FormValue(text, nil, url.Values{"form_name_1": {"ünïcode"}}); got != "ünï" {
		t.Fatalf("FormValue() = %q", got)
	}
}

func TestFormValueDropsUnlistedCheckboxIDs(t *testing.T) {
	t.Parallel()

	riskFactors := db.LayoutOption{FieldID: "usertext11", DataType: db.DataTypeCheckboxList, UOR: 1, ListID: "riskfactors"}
	form := url.Values{"form_usertext11": {"vv", "forged", "db", "<script>"}}

	if got := FormValue(riskFactors, historyLists()["riskfactors"], form); got != "vv|db" {
		t.Fatalf("FormValue() = %q, want %q", got, "vv|db")
	}

	if got := FormValue(riskFactors, nil, form); got != "" {
		t.Fatalf("expected no ids without list options, got %q", got)
	}
}
