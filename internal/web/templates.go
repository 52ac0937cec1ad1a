package web

import (
	"encoding/json"
	"fmt"
	"html/template"
	"net/http"
	"strconv"

	"github.com/rs/zerolog/log"

	"github.com/medstock/medstock/internal/stock"
	webembed "github.com/medstock/medstock/web"
)

// funcs are the helpers available inside every page template.
var funcs = template.FuncMap{
	// days renders a day count, with the infinity sign for items that have
	// no measurable consumption.
	"days": func(d int) string {
		if d == stock.DaysInfinite {
			return "∞"
		}
		return strconv.Itoa(d)
	},
	"money": func(v float64) string {
		return fmt.Sprintf("$ %.2f", v)
	},
	// json injects a value as a JavaScript literal for the chart scripts.
	"json": func(v any) (template.JS, error) {
		data, err := json.Marshal(v)
		return template.JS(data), err
	},
}

// Templates holds the parsed page templates, each paired with the layout.
type Templates struct {
	pages map[string]*template.Template
}

// LoadTemplates parses all page templates from the embedded filesystem.
func LoadTemplates() (*Templates, error) {
	pages := make(map[string]*template.Template)
	for _, name := range []string{"dashboard.html", "inventory.html", "register.html"} {
		tmpl, err := template.New("layout.html").Funcs(funcs).
			ParseFS(webembed.TemplatesFS(), "layout.html", name)
		if err != nil {
			return nil, fmt.Errorf("parsing template %s: %w", name, err)
		}
		pages[name] = tmpl
	}
	return &Templates{pages: pages}, nil
}

// Render writes the named page. Render errors are logged, not surfaced:
// by the time execution fails, part of the response is usually written.
func (t *Templates) Render(w http.ResponseWriter, name string, data any) {
	tmpl, ok := t.pages[name]
	if !ok {
		http.Error(w, "page not found", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := tmpl.ExecuteTemplate(w, "layout.html", data); err != nil {
		log.Error().Err(err).Str("template", name).Msg("rendering page failed")
	}
}
