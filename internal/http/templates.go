package http

import (
	"embed"
	"html/template"
	"strconv"
)

//go:embed templates/*.html
var embeddedTemplates embed.FS

// templateFuncs are the custom functions available to every page.
var templateFuncs = template.FuncMap{
	"formatRating": func(rating float64) string {
		return strconv.FormatFloat(rating, 'f', -1, 64)
	},
}

// loadTemplates parses the page templates from dir, or from the copies
// embedded in the binary when dir is empty.
func loadTemplates(dir string) (*template.Template, error) {
	tmpl := template.New("").Funcs(templateFuncs)
	if dir == "" {
		return tmpl.ParseFS(embeddedTemplates, "templates/*.html")
	}
	return tmpl.ParseGlob(dir + "/*.html")
}
