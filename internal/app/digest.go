package app

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/jung-kurt/gofpdf"
	"golang.org/x/net/html"

	"github.com/hyperifyio/parlvotes/internal/vote"
)

var unsafeFileChars = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// digestPath maps a session date to <dir>/<date>.pdf with unsafe characters
// replaced.
func digestPath(dir, date string) string {
	name := strings.Trim(unsafeFileChars.ReplaceAllString(date, "_"), "_")
	if name == "" {
		name = "session"
	}
	return filepath.Join(dir, name+".pdf")
}

// writeDigest renders a one-document summary of a session's votes with a
// clickable link to each detail page.
func writeDigest(dir, date string, records []vote.Record) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create digest dir: %w", err)
	}
	pdf := gofpdf.New("P", "mm", "A4", "")
	// Core fonts are cp1252; translate accented Portuguese text.
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetFont("Helvetica", "B", 14)
	pdf.AddPage()
	pdf.CellFormat(0, 8, tr("Votações de "+date), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	for _, rec := range records {
		pdf.SetFont("Helvetica", "B", 11)
		pdf.MultiCell(0, 6, tr(orNA(rec.Title)), "", "L", false)
		pdf.SetFont("Helvetica", "", 10)
		pdf.MultiCell(0, 5, tr("ID: "+orNA(rec.ID)), "", "L", false)
		pdf.MultiCell(0, 5, tr("Autor: "+orNA(strings.Join(rec.Authors, ", "))), "", "L", false)
		pdf.MultiCell(0, 5, tr("Resultado: "+orNA(rec.Result)), "", "L", false)
		for _, v := range rec.Votes {
			pdf.MultiCell(0, 5, tr("  - "+html.UnescapeString(v)), "", "L", false)
		}
		pdf.WriteLinkString(5, tr("Ver detalhes da votação"), rec.URL)
		pdf.Ln(8)
	}

	path := digestPath(dir, date)
	if err := pdf.OutputFileAndClose(path); err != nil {
		return "", fmt.Errorf("write digest: %w", err)
	}
	return path, nil
}
