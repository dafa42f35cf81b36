// SPDX-FileCopyrightText: 2025 Humaid Alqasimi
// SPDX-License-Identifier: Apache-2.0

package routes

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/flamego/csrf"
	"github.com/flamego/flamego"
	"github.com/flamego/session"
	"github.com/flamego/template"

	"github.com/clinicware/patienthistory/i18n"
)

type testSession struct {
	id    string
	data  map[interface{}]interface{}
	flash interface{}
}

func newTestSession() *testSession {
	return &testSession{
		id:   "test-session",
		data: make(map[interface{}]interface{}),
	}
}

func (s *testSession) ID() string {
	return s.id
}

func (s *testSession) RegenerateID(http.ResponseWriter, *http.Request) error {
	s.id = "regenerated-session"
	return nil
}

func (s *testSession) Get(key interface{}) interface{} {
	return s.data[key]
}

func (s *testSession) Set(key, val interface{}) {
	s.data[key] = val
}

func (s *testSession) SetFlash(val interface{}) {
	s.flash = val
}

func (s *testSession) Delete(key interface{}) {
	delete(s.data, key)
}

func (s *testSession) Flush() {
	s.data = make(map[interface{}]interface{})
}

func (s *testSession) Encode() ([]byte, error) {
	return nil, nil
}

func (s *testSession) HasChanged() bool {
	return true
}

type testCSRF struct {
	token string
}

func (c testCSRF) Token() string {
	return c.token
}

func (c testCSRF) ValidToken(string) bool {
	return true
}

func (c testCSRF) Error(http.ResponseWriter) {}

func (c testCSRF) Validate(flamego.Context) {}

func TestSetFlashHelpers(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		set     func(session.Session, string)
		wantTyp FlashType
	}{
		{name: "error", set: SetErrorFlash, wantTyp: FlashError},
		{name: "success", set: SetSuccessFlash, wantTyp: FlashSuccess},
		{name: "info", set: SetInfoFlash, wantTyp: FlashInfo},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			s := newTestSession()
			tt.set(s, "hello")

			msg, ok := s.flash.(FlashMessage)
			if !ok {
				t.Fatalf("flash has unexpected type: %T", s.flash)
			}

			if msg.Type != tt.wantTyp || msg.Message != "hello" {
				t.Fatalf("unexpected flash message: %#v", msg)
			}
		})
	}
}

func TestFlashInjector(t *testing.T) {
	t.Parallel()

	handler, ok := FlashInjector().(func(session.Flash, template.Data))
	if !ok {
		t.Fatalf("unexpected FlashInjector handler type")
	}

	data := template.Data{}
	handler(FlashMessage{Type: FlashSuccess, Message: "History saved"}, data)

	msg, ok := data["Flash"].(FlashMessage)
	if !ok || msg.Message != "History saved" {
		t.Fatalf("unexpected Flash value: %#v", data["Flash"])
	}

	empty := template.Data{}
	handler(nil, empty)
	handler("not a flash message", empty)

	if _, ok := empty["Flash"]; ok {
		t.Fatalf("expected no Flash for foreign values, got %#v", empty["Flash"])
	}
}

func TestCSRFInjector(t *testing.T) {
	t.Parallel()

	handler, ok := CSRFInjector().(func(csrf.CSRF, template.Data))
	if !ok {
		t.Fatalf("unexpected CSRFInjector handler type")
	}

	data := template.Data{}
	handler(testCSRF{token: "csrf-123"}, data)

	if got, ok := data["csrf_token"].(string); !ok || got != "csrf-123" {
		t.Fatalf("unexpected csrf_token value: %#v", data["csrf_token"])
	}
}

func TestNoCacheHeaders(t *testing.T) {
	t.Parallel()

	f := flamego.New()
	f.Use(NoCacheHeaders())
	f.Get("/", func(c flamego.Context) {
		c.ResponseWriter().WriteHeader(http.StatusNoContent)
	})
	f.Post("/", func(c flamego.Context) {
		c.ResponseWriter().WriteHeader(http.StatusNoContent)
	})

	getReq := httptest.NewRequest(http.MethodGet, "/", nil)
	getRec := httptest.NewRecorder()
	f.ServeHTTP(getRec, getReq)

	if got := getRec.Header().Get("Cache-Control"); got != "no-store, max-age=0" {
		t.Fatalf("unexpected Cache-Control for GET: %q", got)
	}

	if got := getRec.Header().Get("X-Robots-Tag"); got == "" {
		t.Fatal("expected X-Robots-Tag for GET")
	}

	postReq := httptest.NewRequest(http.MethodPost, "/", nil)
	postRec := httptest.NewRecorder()
	f.ServeHTTP(postRec, postReq)

	if got := postRec.Header().Get("Cache-Control"); got != "" {
		t.Fatalf("expected no Cache-Control for POST, got %q", got)
	}
}

func TestLocalizerPicksAcceptLanguage(t *testing.T) {
	t.Parallel()

	var mapped *i18n.Translator

	f := flamego.New()
	f.Use(func(c flamego.Context) {
		c.Map(template.Data{})
		c.Next()
	})
	f.Use(Localizer())
	f.Get("/", func(c flamego.Context, tr *i18n.Translator, data template.Data) {
		mapped = tr
		if data["Tr"] != tr {
			t.Errorf("expected template data to carry the mapped translator")
		}
		c.ResponseWriter().WriteHeader(http.StatusNoContent)
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Accept-Language", "es-ES,es;q=0.9")
	rec := httptest.NewRecorder()
	f.ServeHTTP(rec, req)

	if mapped == nil || mapped.Lang() != "es" {
		t.Fatalf("expected Spanish translator, got %#v", mapped)
	}
}

func TestLocalizerQueryOverridesAcceptLanguage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		query string
		want  string
	}{
		{query: "?lang=fr", want: "fr"},
		{query: "?lang=fr-CA", want: "fr"},
		{query: "?lang=de", want: "en"},
		{query: "?lang=", want: "es"},
		{query: "", want: "es"},
	}

	for _, tt := range tests {
		var mapped *i18n.Translator

		f := flamego.New()
		f.Use(func(c flamego.Context) {
			c.Map(template.Data{})
			c.Next()
		})
		f.Use(Localizer())
		f.Get("/", func(c flamego.Context, tr *i18n.Translator) {
			mapped = tr
			c.ResponseWriter().WriteHeader(http.StatusNoContent)
		})

		req := httptest.NewRequest(http.MethodGet, "/"+tt.query, nil)
		req.Header.Set("Accept-Language", "es")
		f.ServeHTTP(httptest.NewRecorder(), req)

		if mapped == nil || mapped.Lang() != tt.want {
			t.Fatalf("query %q: expected %q translator, got %#v", tt.query, tt.want, mapped)
		}
	}
}

func TestParsePID(t *testing.T) {
	t.Parallel()

	tests := []struct {
		raw    string
		want   int64
		wantOK bool
	}{
		{raw: "7", want: 7, wantOK: true},
		{raw: "0", wantOK: false},
		{raw: "-3", wantOK: false},
		{raw: "abc", wantOK: false},
		{raw: "", wantOK: false},
		{raw: "99999999999999999999", wantOK: false},
	}

	for _, tt := range tests {
		got, ok := parsePID(tt.raw)
		if ok != tt.wantOK || got != tt.want {
			t.Fatalf("parsePID(%q) = %d, %v; want %d, %v", tt.raw, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestClientIPPrefersForwardedFor(t *testing.T) {
	t.Parallel()

	var got string

	f := flamego.New()
	f.Get("/", func(c flamego.Context) {
		got = clientIP(c)
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Forwarded-For", " 203.0.113.9 , 10.0.0.1")
	f.ServeHTTP(httptest.NewRecorder(), req)

	if got != "203.0.113.9" {
		t.Fatalf("unexpected client ip: %q", got)
	}
}

func TestFormatHelpers(t *testing.T) {
	t.Parallel()

	if got := formatDate(nil); got != "" {
		t.Fatalf("formatDate(nil) = %q", got)
	}

	dob := time.Date(1980, time.March, 4, 0, 0, 0, 0, time.UTC)
	if got := formatDate(&dob); got != "1980-03-04" {
		t.Fatalf("formatDate() = %q", got)
	}

	stamp := time.Date(2024, time.May, 6, 7, 8, 9, 0, time.FixedZone("GST", 4*60*60))
	if got := formatTime(stamp); got != "2024-05-06 03:08 UTC" {
		t.Fatalf("formatTime() = %q", got)
	}

	if got := formatTime(time.Time{}); got != "" {
		t.Fatalf("formatTime(zero) = %q", got)
	}
}

func TestSessionChangedBy(t *testing.T) {
	t.Parallel()

	s := newTestSession()
	if got := sessionChangedBy(s); got != nil {
		t.Fatalf("expected nil without user, got %v", got)
	}

	s.Set("user_id", "not-a-uuid")
	if got := sessionChangedBy(s); got != nil {
		t.Fatalf("expected nil for invalid id, got %v", got)
	}

	s.Set("user_id", "7f1c1c8e-8e0b-4a8e-9a55-7c8d1f7d2f10")
	if got := sessionChangedBy(s); got == nil || got.String() != "7f1c1c8e-8e0b-4a8e-9a55-7c8d1f7d2f10" {
		t.Fatalf("unexpected changed by: %v", got)
	}
}
