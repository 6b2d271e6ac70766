package mail

import (
	"embed"
	"fmt"
	"html"
	"strings"
)

//go:embed templates/*.html
var templateFS embed.FS

const verificationSubject = "Activate your Birthday Reminder account"

// render loads an embedded template and replaces {KEY} placeholders.
// Values are HTML-escaped.
func render(name string, values map[string]string) (string, error) {
	raw, err := templateFS.ReadFile("templates/" + name + ".html")
	if err != nil {
		return "", fmt.Errorf("loading template %s: %w", name, err)
	}

	pairs := make([]string, 0, len(values)*2)
	for key, value := range values {
		pairs = append(pairs, "{"+key+"}", html.EscapeString(value))
	}

	return strings.NewReplacer(pairs...).Replace(string(raw)), nil
}

func verificationEmail(name, transaction, webURL string) (subject, body string, err error) {
	body, err = render("verification", map[string]string{
		"USERNAME":    name,
		"TRANSACTION": transaction,
		"WEBURL":      strings.TrimRight(webURL, "/"),
	})
	return verificationSubject, body, err
}
