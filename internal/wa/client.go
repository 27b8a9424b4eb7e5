// Package wa is the outbound WhatsApp Cloud API client.
package wa

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/demorestaurant/wa-bridge/internal/bot"
)

const defaultBaseURL = "https://graph.facebook.com/v19.0"

// StatusError is a non-2xx response from the Graph API.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("wa: graph api status %d: %s", e.StatusCode, e.Body)
}

func (e *StatusError) HTTPStatusCode() int {
	return e.StatusCode
}

type Client struct {
	baseURL string
	token   string
	phoneID string
	client  *http.Client
}

var (
	_ bot.Outbound = (*Client)(nil)
	_ bot.Outbound = Disabled{}
)

type Option func(*Client)

func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	}
}

func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.client = httpClient
	}
}

func NewClient(token, phoneID string, opts ...Option) (*Client, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, errors.New("wa: access token must not be empty")
	}
	phoneID = strings.TrimSpace(phoneID)
	if phoneID == "" {
		return nil, errors.New("wa: phone number id must not be empty")
	}
	c := &Client{
		baseURL: defaultBaseURL,
		token:   token,
		phoneID: phoneID,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.baseURL == "" {
		c.baseURL = defaultBaseURL
	}
	return c, nil
}

func (c *Client) SendText(ctx context.Context, to, text string) error {
	return c.send(ctx, map[string]any{
		"messaging_product": "whatsapp",
		"to":                to,
		"text":              map[string]any{"body": text},
	})
}

func (c *Client) SendButtons(ctx context.Context, to string, prompt bot.ButtonPrompt) error {
	buttons := make([]map[string]any, 0, len(prompt.Buttons))
	for _, b := range prompt.Buttons {
		buttons = append(buttons, map[string]any{
			"type":  "reply",
			"reply": map[string]any{"id": b.ID, "title": b.Title},
		})
	}
	return c.send(ctx, map[string]any{
		"messaging_product": "whatsapp",
		"to":                to,
		"type":              "interactive",
		"interactive": map[string]any{
			"type":   "button",
			"body":   map[string]any{"text": prompt.Body},
			"action": map[string]any{"buttons": buttons},
		},
	})
}

func (c *Client) SendList(ctx context.Context, to string, prompt bot.ListPrompt) error {
	sections := make([]map[string]any, 0, len(prompt.Sections))
	for _, s := range prompt.Sections {
		rows := make([]map[string]any, 0, len(s.Rows))
		for _, row := range s.Rows {
			rows = append(rows, map[string]any{
				"id":          row.ID,
				"title":       row.Title,
				"description": row.Description,
			})
		}
		sections = append(sections, map[string]any{
			"title": s.Title,
			"rows":  rows,
		})
	}
	return c.send(ctx, map[string]any{
		"messaging_product": "whatsapp",
		"to":                to,
		"type":              "interactive",
		"interactive": map[string]any{
			"type":   "list",
			"body":   map[string]any{"text": prompt.Body},
			"action": map[string]any{"button": prompt.ButtonLabel, "sections": sections},
		},
	})
}

func (c *Client) SendMedia(ctx context.Context, to string, kind bot.MediaKind, url string) error {
	return c.send(ctx, map[string]any{
		"messaging_product": "whatsapp",
		"to":                to,
		"type":              string(kind),
		string(kind):        map[string]any{"link": url},
	})
}

func (c *Client) SendLocation(ctx context.Context, to string, loc bot.Location) error {
	return c.send(ctx, map[string]any{
		"messaging_product": "whatsapp",
		"to":                to,
		"type":              "location",
		"location": map[string]any{
			"latitude":  loc.Latitude,
			"longitude": loc.Longitude,
			"name":      loc.Name,
			"address":   loc.Address,
		},
	})
}

func (c *Client) SendContact(ctx context.Context, to string, card bot.ContactCard) error {
	return c.send(ctx, map[string]any{
		"messaging_product": "whatsapp",
		"to":                to,
		"type":              "contacts",
		"contacts": []map[string]any{
			{
				"name": map[string]any{
					"formatted_name": card.FormattedName,
					"first_name":     card.FirstName,
					"last_name":      card.LastName,
				},
				"phones": []map[string]any{{"phone": card.Phone, "type": "WORK"}},
				"emails": []map[string]any{{"email": card.Email, "type": "WORK"}},
			},
		},
	})
}

func (c *Client) SendReaction(ctx context.Context, to, messageID, emoji string) error {
	return c.send(ctx, map[string]any{
		"messaging_product": "whatsapp",
		"recipient_type":    "individual",
		"to":                to,
		"type":              "reaction",
		"reaction":          map[string]any{"message_id": messageID, "emoji": emoji},
	})
}

func (c *Client) SendTemplate(ctx context.Context, to, name, lang string) error {
	return c.send(ctx, map[string]any{
		"messaging_product": "whatsapp",
		"to":                to,
		"type":              "template",
		"template": map[string]any{
			"name":     name,
			"language": map[string]any{"code": lang},
		},
	})
}

func (c *Client) send(ctx context.Context, body map[string]any) error {
	b, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("wa: marshal payload: %w", err)
	}

	url := c.baseURL + "/" + c.phoneID + "/messages"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(b))
	if err != nil {
		return fmt.Errorf("wa: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("wa: send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return &StatusError{StatusCode: resp.StatusCode, Body: string(respBody)}
	}
	return nil
}
