package ui

import (
	"bytes"
	"fmt"
	"html/template"
	"io"

	"github.com/dustin/go-humanize"
)

func templateFuncs() template.FuncMap {
	return template.FuncMap{
		// Metric values are undefined for an empty view and show a dash
		"dollars": func(defined bool, v float64) string {
			if !defined {
				return "—"
			}
			return fmt.Sprintf("$%.0f", v)
		},
		"comma": func(n int) string { return humanize.Comma(int64(n)) },
		"exportURL": func(query string) template.URL {
			return template.URL(exportPath + "?" + query)
		},
		"first": func(i int) bool { return i == 0 },
	}
}

// executeTemplate renders into a buffer first so a failing template never leaves a half-written page
func executeTemplate(t *template.Template, w io.Writer, name string, data interface{}) error {
	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, name, data); err != nil {
		return err
	}
	_, err := buf.WriteTo(w)
	return err
}
