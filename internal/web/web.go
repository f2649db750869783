// Package web holds the html pages of the back office, embedded in the binary.
package web

import (
	"embed"
	"fmt"
	"html/template"
	"time"

	"github.com/shopspring/decimal"

	apdomain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-scheduler/internal/money"
)

//go:embed templates/*.html
var files embed.FS

var funcs = template.FuncMap{
	"money": func(v decimal.Decimal) string { return money.Format(v, 0) },
	"hour":  func(t time.Time) string { return t.Format("15:04") },
	"day":   func(t time.Time) string { return t.Format("02/01/2006") },
	"statusLabel": func(s any) string {
		return apdomain.Status(fmt.Sprint(s)).Label()
	},
}

// Templates parses every page. Each page is a named template
// ("login", "agenda", "clientes", "servicios") sharing "header" and "footer".
func Templates() (*template.Template, error) {
	return template.New("").Funcs(funcs).ParseFS(files, "templates/*.html")
}
