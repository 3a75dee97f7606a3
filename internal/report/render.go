package report

import (
	"embed"
	"html/template"
	"strconv"
	"strings"
)

//go:embed templates/email.html.tmpl
var templateFS embed.FS

var emailTmpl = template.Must(
	template.New("email.html.tmpl").
		Funcs(template.FuncMap{"gbp": formatGBP}).
		ParseFS(templateFS, "templates/email.html.tmpl"),
)

// Render produces the HTML report body, one table per stay.
func Render(stays []StayRates) (string, error) {
	var b strings.Builder
	if err := emailTmpl.Execute(&b, struct{ Stays []StayRates }{Stays: stays}); err != nil {
		return "", err
	}
	return b.String(), nil
}

// formatGBP prints a total without trailing zeros: booking.com totals are
// integer-valued, hotels.com totals may carry decimals.
func formatGBP(v float64) string {
	return "£" + strconv.FormatFloat(v, 'f', -1, 64)
}
