package email

import (
	"fmt"
	"html/template"
	"strings"
)

// Шаблоны писем; имя шаблона = тип письма
var templates = template.Must(template.New("offer_received").Parse(
	`<p>Hi {{.RequesterName}},</p>
<p>{{.Message}}.</p>
<p>Log in to WhatYaNeed to see who is ready to help with "{{.RequestTitle}}".</p>`,
))

const templateOfferReceived = "offer_received"

func render(name string, data any) (string, error) {
	var buf strings.Builder
	if err := templates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("render %s email: %w", name, err)
	}
	return buf.String(), nil
}
