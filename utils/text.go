package utils

import (
	"html/template"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var sanitizer = bluemonday.UGCPolicy()

// Sanitize cleans user supplied HTML to prevent XSS attacks.
func Sanitize(input string) string {
	return sanitizer.Sanitize(input)
}

// Linebreaks sanitizes text and turns newlines into <br> for display.
func Linebreaks(text string) template.HTML {
	clean := Sanitize(strings.ReplaceAll(text, "\r\n", "\n"))
	return template.HTML(strings.ReplaceAll(clean, "\n", "<br>\n"))
}
