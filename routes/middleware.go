/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package routes

import (
	"net/http"

	"github.com/flamego/csrf"
	"github.com/flamego/flamego"
	"github.com/flamego/template"
	"golang.org/x/text/language"

	"github.com/clinicware/patienthistory/i18n"
)

// CSRFInjector automatically injects CSRF token into template data for all routes
func CSRFInjector() flamego.Handler {
	return func(x csrf.CSRF, data template.Data) {
		data["csrf_token"] = x.Token()
	}
}

// NoCacheHeaders disables caching of patient pages and blocks indexing.
func NoCacheHeaders() flamego.Handler {
	return func(c flamego.Context) {
		header := c.ResponseWriter().Header()
		header.Set("X-Robots-Tag", "noindex, nofollow, noarchive, nosnippet")

		if c.Request().Method == http.MethodGet || c.Request().Method == http.MethodHead {
			header.Set("Cache-Control", "no-store, max-age=0")
			header.Set("Pragma", "no-cache")
			header.Set("Expires", "0")
		}

		c.Next()
	}
}

// Localizer maps a translator for the request's Accept-Language header and
// exposes it to templates as Tr. A valid lang query parameter takes
// precedence over the header.
func Localizer() flamego.Handler {
	return func(c flamego.Context, data template.Data) {
		var tr *i18n.Translator
		if tag, err := language.Parse(c.Query("lang")); err == nil {
			tr = i18n.New(tag)
		} else {
			tr = i18n.FromAcceptLanguage(c.Request().Header.Get("Accept-Language"))
		}

		c.Map(tr)
		data["Tr"] = tr
		data["Lang"] = tr.Lang()
	}
}
