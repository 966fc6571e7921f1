package web

import (
	"embed"
	"html/template"
)

//go:embed templates/*.html
var files embed.FS

// Templates parses the embedded page templates.
func Templates() *template.Template {
	return template.Must(template.ParseFS(files, "templates/*.html"))
}

// PageData is rendered into index.html.
type PageData struct {
	Title            string
	DefaultThreshold int
	DefaultMaxPages  int
	MinThreshold     int
	MaxThreshold     int
	MinPages         int
	MaxPages         int
	ExportFilename   string
}
