package notify

import (
	"fmt"
	"strings"

	"github.com/hyperifyio/parlvotes/internal/vote"
)

const (
	missingValue    = "N/A"
	noDetailsText   = "Não foram encontrados detalhes da votação."
	detailsLinkText = "Ver detalhes da votação »"
)

// Scraped text goes into Telegram HTML mode. Vote lines come from serialized
// markup and are already escaped.
var escapeText = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")

// FormatMessage renders one vote as a Telegram HTML message. A nil or zero
// record produces the fixed "no details" text.
func FormatMessage(rec *vote.Record) string {
	if isEmpty(rec) {
		return noDetailsText
	}

	authors := missingValue
	if len(rec.Authors) > 0 {
		authors = strings.Join(rec.Authors, ", ")
	}
	url := rec.URL
	if url == "" {
		url = "#"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "🗳️ <b>%s</b>\n\n", orMissing(rec.Title))
	fmt.Fprintf(&b, "<b>Data:</b> %s\n", orMissing(rec.Date))
	fmt.Fprintf(&b, "<b>ID:</b> %s\n", orMissing(rec.ID))
	fmt.Fprintf(&b, "<b>Autor:</b> %s\n", escapeText.Replace(authors))
	fmt.Fprintf(&b, "<b>Resultado:</b> %s\n", orMissing(rec.Result))

	if len(rec.Votes) > 0 {
		b.WriteString("\n")
		for i, v := range rec.Votes {
			if i > 0 {
				b.WriteString("\n")
			}
			b.WriteString("• " + v)
		}
	}

	fmt.Fprintf(&b, "\n\n<a href='%s'>%s</a>", url, detailsLinkText)
	return b.String()
}

func orMissing(s string) string {
	if s == "" {
		return missingValue
	}
	return escapeText.Replace(s)
}

func isEmpty(rec *vote.Record) bool {
	return rec == nil || (rec.URL == "" && rec.Date == "" && rec.ID == "" &&
		rec.Title == "" && rec.Link == "" && rec.Result == "" &&
		len(rec.Authors) == 0 && len(rec.Votes) == 0)
}
