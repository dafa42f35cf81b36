/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */

// Package i18n translates the page chrome of the patient pages.
package i18n

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

// Supported lists the languages with a catalog, default first.
var Supported = []language.Tag{
	language.English,
	language.Spanish,
	language.French,
}

var (
	matcher = language.NewMatcher(Supported)
	builder = newCatalog()
)

func newCatalog() *catalog.Builder {
	b := catalog.NewBuilder(catalog.Fallback(language.English))

	for key, byLang := range translations {
		if err := b.SetString(language.English, key, key); err != nil {
			panic(err)
		}
		for tag, msg := range byLang {
			if err := b.SetString(tag, key, msg); err != nil {
				panic(err)
			}
		}
	}

	return b
}

// Translator renders catalog strings for one language.
type Translator struct {
	tag     language.Tag
	printer *message.Printer
}

// New returns a translator for tag, matched against the supported languages.
func New(tag language.Tag) *Translator {
	_, idx, _ := matcher.Match(tag)
	return newTranslator(Supported[idx])
}

// FromAcceptLanguage picks the best supported language of an
// Accept-Language header. Malformed headers fall back to English.
func FromAcceptLanguage(header string) *Translator {
	tags, _, err := language.ParseAcceptLanguage(header)
	if err != nil || len(tags) == 0 {
		return newTranslator(language.English)
	}

	_, idx, _ := matcher.Match(tags...)
	return newTranslator(Supported[idx])
}

func newTranslator(tag language.Tag) *Translator {
	return &Translator{
		tag:     tag,
		printer: message.NewPrinter(tag, message.Catalog(builder)),
	}
}

// Lang is the BCP 47 tag of the translator, for the html lang attribute.
func (t *Translator) Lang() string {
	return t.tag.String()
}

// T translates key. Strings outside the catalog, such as layout titles
// loaded from the database, are returned unchanged.
func (t *Translator) T(key string, args ...interface{}) string {
	if _, ok := translations[key]; !ok && len(args) == 0 {
		return key
	}
	return t.printer.Sprintf(key, args...)
}
