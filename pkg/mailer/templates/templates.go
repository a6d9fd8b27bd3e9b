package templates

import (
	"bytes"
	"embed"
	htmpl "html/template"
)

//go:embed *.tmpl
var fs embed.FS

// Template names known to the email worker.
const (
	Welcome = "welcome"
)

var parsed = htmpl.Must(htmpl.ParseFS(fs, "*.tmpl"))

// RenderHTML renders the named template with data.
func RenderHTML(name string, data map[string]any) (string, error) {
	var buf bytes.Buffer
	if err := parsed.ExecuteTemplate(&buf, name+".tmpl", data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// SubjectFor returns the subject line for a template.
func SubjectFor(name string) string {
	switch name {
	case Welcome:
		return "Welcome to Our Platform!"
	default:
		return "Notification"
	}
}
