package notify

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog/log"
)

// DefaultAPIURL is the public Telegram Bot API endpoint.
const DefaultAPIURL = "https://api.telegram.org"

// ErrMissingCredentials is reported when the bot token or chat id is unset.
var ErrMissingCredentials = errors.New("telegram bot token or chat id not set")

// Telegram posts messages to one chat through the Bot API.
type Telegram struct {
	Token  string
	ChatID string
	// APIURL overrides DefaultAPIURL, mainly for tests.
	APIURL string
	Client *resty.Client
}

type sendMessageRequest struct {
	ChatID                string `json:"chat_id"`
	Text                  string `json:"text"`
	ParseMode             string `json:"parse_mode"`
	DisableWebPagePreview bool   `json:"disable_web_page_preview"`
}

// Send posts text in HTML mode with link previews disabled. Failures are
// logged and reported as false; they never abort the caller.
func (t *Telegram) Send(ctx context.Context, text string) bool {
	if err := t.send(ctx, text); err != nil {
		log.Error().Err(err).Msg("failed to send message to telegram")
		return false
	}
	log.Info().Msg("sent message to telegram")
	return true
}

func (t *Telegram) send(ctx context.Context, text string) error {
	if strings.TrimSpace(t.Token) == "" || strings.TrimSpace(t.ChatID) == "" {
		return ErrMissingCredentials
	}
	client := t.Client
	if client == nil {
		client = resty.New()
	}
	base := t.APIURL
	if base == "" {
		base = DefaultAPIURL
	}

	resp, err := client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(sendMessageRequest{
			ChatID:                t.ChatID,
			Text:                  text,
			ParseMode:             "HTML",
			DisableWebPagePreview: true,
		}).
		Post(strings.TrimRight(base, "/") + "/bot" + t.Token + "/sendMessage")
	if err != nil {
		// resty includes the request URL, which carries the token.
		return errors.New("post sendMessage: " + redact(err.Error(), t.Token))
	}
	if resp.IsError() {
		return fmt.Errorf("sendMessage status %d: %s", resp.StatusCode(), strings.TrimSpace(resp.String()))
	}
	return nil
}

func redact(s, secret string) string {
	if secret == "" {
		return s
	}
	return strings.ReplaceAll(s, secret, "<redacted>")
}
