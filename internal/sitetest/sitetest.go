// Package sitetest serves a miniature copy of the parliament archive for
// tests: an index page, a results PDF with link annotations and detail pages.
package sitetest

import (
	"bytes"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sort"
	"sync"

	"github.com/jung-kurt/gofpdf"
)

// Site is an httptest server with mutable archive state.
type Site struct {
	*httptest.Server

	mu      sync.Mutex
	date    string
	details map[string]string
	missing []string
	hits    map[string]int
}

// New starts a site whose latest session is date. details maps detail ids to
// page HTML; missing lists ids that appear in the PDF but return 404.
func New(date string, details map[string]string, missing ...string) *Site {
	s := &Site{date: date, details: details, missing: missing, hits: map[string]int{}}
	mux := http.NewServeMux()
	mux.HandleFunc("GET /archive", s.count(s.serveArchive))
	mux.HandleFunc("GET /results.pdf", s.count(s.servePDF))
	mux.HandleFunc("GET /Detalhe/{id}", s.count(s.serveDetail))
	s.Server = httptest.NewServer(mux)
	return s
}

func (s *Site) ArchiveURL() string { return s.URL + "/archive" }

func (s *Site) DetailURL(id string) string { return s.URL + "/Detalhe/" + id }

// SetDate changes the date of the latest session.
func (s *Site) SetDate(date string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.date = date
}

// Hits reports how many requests reached path.
func (s *Site) Hits(path string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hits[path]
}

func (s *Site) count(h http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		s.hits[r.URL.Path]++
		s.mu.Unlock()
		h(w, r)
	}
}

func (s *Site) serveArchive(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	date := s.date
	s.mu.Unlock()
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprintf(w, `<html><body>
<div class="home_calendar"><div class="title">Reunião Plenária Suplementar</div>
<div class="date">%s-sup</div><a href="%s/supplementary.pdf">ver</a></div>
<div class="home_calendar"><div class="title">Reunião Plenária</div>
<div class="date">%s</div><a href="%s/results.pdf">ver</a></div>
</body></html>`, date, s.URL, date, s.URL)
}

func (s *Site) servePDF(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	links := []string{s.URL + "/Paginas/Inicio.aspx"}
	for id := range s.details {
		links = append(links, s.DetailURL(id))
	}
	for _, id := range s.missing {
		links = append(links, s.DetailURL(id))
	}
	s.mu.Unlock()
	sort.Strings(links)

	body, err := ResultsPDF(links)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	_, _ = w.Write(body)
}

func (s *Site) serveDetail(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	page, ok := s.details[r.PathValue("id")]
	s.mu.Unlock()
	if !ok {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(page))
}

// ResultsPDF renders a one-page PDF with a link annotation per URL.
func ResultsPDF(links []string) ([]byte, error) {
	doc := gofpdf.New("P", "mm", "A4", "")
	doc.SetFont("Helvetica", "", 11)
	doc.AddPage()
	for i, l := range links {
		y := float64(10 + i*8)
		doc.SetXY(10, y)
		doc.Cell(80, 6, fmt.Sprintf("Votacao %d", i+1))
		doc.LinkString(10, y, 80, 6, l)
	}
	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// DetailPage returns a minimal detail page with a party breakdown.
func DetailPage(id, title, result string) string {
	return fmt.Sprintf(`<html><body><div class="ar-no-padding">
<span id="ctl00_Titulo">%s</span>
<span id="ctl00_Assunto">%s</span>
<div id="ctl00_Autores_GPs">PS
PSD</div>
<span id="ctl00_Votacoes_Resultado">%s</span>
<div id="ctl00_Votacoes_Detalhes">Favor: PS<br>Contra: PSD</div>
</div></body></html>`, id, title, result)
}
