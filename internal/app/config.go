package app

import "time"

// DefaultArchiveURL is the parliament's voting archive index.
const DefaultArchiveURL = "https://www.parlamento.pt/ArquivoDocumentacao/Paginas/Arquivodevotacoes.aspx"

// DefaultUserAgent identifies the scraper to the archive.
const DefaultUserAgent = "parlvotes/1.0 (+https://github.com/hyperifyio/parlvotes)"

// Config holds runtime configuration for the application. It is built once
// in main and passed down.
type Config struct {
	// Archive
	ArchiveURL string
	UserAgent  string
	// HTTPTimeout bounds each request; zero keeps the client default.
	HTTPTimeout time.Duration

	// Telegram
	BotToken    string
	ChatID      string
	TelegramAPI string

	// Tracking
	TrackerPath     string
	TrackerRedisURL string
	TrackerRedisKey string

	// Optional outputs
	PushgatewayURL string
	DigestDir      string

	// Behavior
	DryRun  bool
	Verbose bool
}

// WithDefaults fills unset fields with their defaults.
func (c Config) WithDefaults() Config {
	if c.ArchiveURL == "" {
		c.ArchiveURL = DefaultArchiveURL
	}
	if c.UserAgent == "" {
		c.UserAgent = DefaultUserAgent
	}
	return c
}
