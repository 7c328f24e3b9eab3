// Package i18n renders user-facing messages for engine error codes.
package i18n

import (
	"bytes"
	"text/template"
)

// Code is a machine-readable error code (duplicated from errors package to avoid cycle).
type Code = string

// Catalog maps error codes to message templates for a locale.
type Catalog struct {
	locale   string
	messages map[Code]string
}

// NewCatalog creates a catalog for a locale with the given message templates.
func NewCatalog(locale string, messages map[Code]string) *Catalog {
	if messages == nil {
		messages = map[Code]string{}
	}
	return &Catalog{locale: locale, messages: messages}
}

// Default returns the en-US catalog.
func Default() *Catalog {
	return enUS
}

// Locale returns the locale of this catalog.
func (c *Catalog) Locale() string {
	return c.locale
}

// Format renders the message template with the given metadata.
// Falls back to the error code itself if no template is found.
func (c *Catalog) Format(code Code, metadata map[string]string) string {
	tmpl, ok := c.messages[code]
	if !ok {
		return code
	}
	if metadata == nil {
		metadata = map[string]string{}
	}

	t, err := template.New("msg").Parse(tmpl)
	if err != nil {
		return tmpl
	}

	var buf bytes.Buffer
	if err := t.Execute(&buf, metadata); err != nil {
		return tmpl
	}
	return buf.String()
}
