package view

import (
	"embed"
	"html/template"

	"todoweb/internal/core/model/response"
)

//go:embed templates/*.html
var templates embed.FS

var funcs = template.FuncMap{
	"fieldError": fieldError,
}

// Templates parses every page; each is addressed by its file name.
func Templates() (*template.Template, error) {
	return template.New("").Funcs(funcs).ParseFS(templates, "templates/*.html")
}

func fieldError(errs []response.ValidationError, field string) string {
	for _, err := range errs {
		if err.Field == field {
			return err.Message
		}
	}

	return ""
}
