// Package view renders the analyzer page: the URL form, the inline error,
// the radial score gauge and one card per raw metric.
package view

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"math"
	"strconv"

	"speedx/internal/model"
)

// ErrorMessage is the only failure text shown to users.
const ErrorMessage = "Failed to analyze website. Please try again."

//go:embed templates/*.html
var templateFS embed.FS

// Gauge geometry in SVG user units.
const (
	gaugeSize        = 200
	gaugeInnerRadius = 60
	gaugeOuterRadius = 80
	gaugeBarSize     = 10
)

// Page is everything the template needs for one render.
type Page struct {
	URL    string
	Error  string
	Busy   bool
	Report *model.Report
}

// Renderer executes the page template.
type Renderer struct {
	tmpl *template.Template
}

func NewRenderer() (*Renderer, error) {
	tmpl, err := template.New("page.html").Funcs(template.FuncMap{
		"number":  FormatNumber,
		"percent": formatPercent,
		"gauge":   newGauge,
		"deref":   func(v *float64) float64 { return *v },
	}).ParseFS(templateFS, "templates/page.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}
	return &Renderer{tmpl: tmpl}, nil
}

func (r *Renderer) Render(w io.Writer, p Page) error {
	return r.tmpl.Execute(w, p)
}

// FormatNumber prints v in its shortest exact decimal form: 1, 4.5, 1000.01.
func FormatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func formatPercent(v float64) string {
	return fmt.Sprintf("%.2f%%", v)
}

type gauge struct {
	Size          int
	Center        float64
	Radius        float64
	BarSize       int
	Circumference float64
	Filled        float64
	Color         string
}

// newGauge lays out a ring whose filled arc starts at twelve o'clock and
// runs clockwise in proportion to score.
func newGauge(score float64, color string) gauge {
	radius := float64(gaugeInnerRadius+gaugeOuterRadius) / 2
	circumference := 2 * math.Pi * radius
	fraction := math.Max(0, math.Min(100, score)) / 100
	return gauge{
		Size:          gaugeSize,
		Center:        gaugeSize / 2,
		Radius:        radius,
		BarSize:       gaugeBarSize,
		Circumference: circumference,
		Filled:        circumference * fraction,
		Color:         color,
	}
}
