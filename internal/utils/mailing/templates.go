package mailing

import (
	"bytes"
	"html/template"
)

const ExpiryAlertSubject = "Kitchen alert: ingredients expiring soon"

var expiryAlertTemplate = template.Must(template.New("expiry").Parse(`<p>Hello{{if .Name}} {{.Name}}{{end}},</p>
<p>These ingredients in your kitchen are expired or expire within three days:</p>
<ul>{{range .Items}}<li>{{.}}</li>{{end}}</ul>
{{if .AppURL}}<p>See today's safe recipes at <a href="{{.AppURL}}">{{.AppURL}}</a>.</p>{{end}}`))

// ExpiryAlertBody renders the HTML body of the expiry alert mail.
func ExpiryAlertBody(name string, items []string, appURL string) (string, error) {
	var buf bytes.Buffer
	err := expiryAlertTemplate.Execute(&buf, struct {
		Name   string
		Items  []string
		AppURL string
	}{name, items, appURL})
	if err != nil {
		return "", err
	}
	return buf.String(), nil
}
