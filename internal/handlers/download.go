// download.go builds safe attachment names for converted workbooks.
package handlers

import (
	"fmt"
	"net/url"
	"strings"
	"unicode/utf8"

	"github.com/Shimizu-Technology/pdfhustle-api/internal/services/converter"
)

// maxFilenameRunes bounds the name offered to the browser, extension excluded.
const maxFilenameRunes = 100

// downloadName turns an uploaded "Q3 report.pdf" into "Q3 report.xlsx",
// stripping anything unsafe for a Content-Disposition header.
func downloadName(original string) string {
	stem := strings.TrimSuffix(converter.OutputFilename(original), ".xlsx")
	stem = sanitizeFilename(stem)
	if stem == "" {
		stem = "converted"
	}
	return stem + ".xlsx"
}

// contentDisposition renders an attachment header with an ASCII fallback
// name plus the RFC 5987 filename* form for non-ASCII names.
func contentDisposition(name string) string {
	ascii := strings.Map(func(r rune) rune {
		if r > 0x7e || r < 0x20 {
			return '_'
		}
		return r
	}, name)
	if ascii == name {
		return fmt.Sprintf(`attachment; filename="%s"`, name)
	}
	return fmt.Sprintf(`attachment; filename="%s"; filename*=UTF-8''%s`, ascii, url.PathEscape(name))
}

// sanitizeFilename makes a string safe for use as a download filename.
func sanitizeFilename(name string) string {
	replacer := strings.NewReplacer(
		"/", "-", "\\", "-", ":", "-", "*", "-",
		"?", "-", "\"", "-", "<", "-", ">", "-",
		"|", "-", "\n", " ", "\r", "", "\t", " ",
	)
	name = replacer.Replace(name)

	for strings.Contains(name, "  ") {
		name = strings.ReplaceAll(name, "  ", " ")
	}
	for strings.Contains(name, "--") {
		name = strings.ReplaceAll(name, "--", "-")
	}

	name = strings.TrimSpace(name)

	// Truncate on a rune boundary
	if utf8.RuneCountInString(name) > maxFilenameRunes {
		name = string([]rune(name)[:maxFilenameRunes])
	}
	return name
}
