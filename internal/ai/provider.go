package ai

import (
	"context"
	"errors"
	"log"
	"strings"

	"github.com/demorestaurant/wa-bridge/internal/bot"
)

const (
	historyCap = 10

	// FallbackUnavailable is returned when the generation call itself fails.
	// The bot always has to reply with something.
	FallbackUnavailable = "Sorry, I could not process that right now. Type 'hi' to see the main menu."

	// FallbackUnconfigured is returned by the null-object provider.
	FallbackUnconfigured = "Sorry, I can't answer free-text questions right now. Type 'hi' to see the main menu."
)

// Provider answers free-text questions through a Generator, constrained to
// the restaurant menu handed in at construction.
type Provider struct {
	gen  Generator
	menu string
}

func NewProvider(gen Generator, menu string) (*Provider, error) {
	if gen == nil {
		return nil, errors.New("ai: generator must not be nil")
	}
	return &Provider{gen: gen, menu: menu}, nil
}

// Compose builds the menu-restricted prompt from the capped history plus the
// new query and returns the model output verbatim. It never returns an error:
// failures degrade to FallbackUnavailable.
func (p *Provider) Compose(ctx context.Context, userID, query string, history []bot.Turn) string {
	msgs := make([]Message, 0, historyCap+2)
	msgs = append(msgs, Message{Role: "system", Text: p.systemPrompt()})

	if len(history) > historyCap {
		history = history[len(history)-historyCap:]
	}
	for _, t := range history {
		text := strings.TrimSpace(t.Text)
		if text == "" {
			continue
		}
		role := "user"
		if t.Sender != bot.SenderUser {
			role = "assistant"
		}
		msgs = append(msgs, Message{
			Role: role,
			Text: string(t.Sender) + ": " + text,
		})
	}
	msgs = append(msgs, Message{Role: "user", Text: query})

	reply, err := p.gen.Generate(ctx, msgs)
	if err != nil {
		log.Printf("[ai] generate failed for user=%s: %v", userID, err)
		return FallbackUnavailable
	}
	reply = strings.TrimSpace(reply)
	if reply == "" {
		log.Printf("[ai] empty reply for user=%s", userID)
		return FallbackUnavailable
	}
	return reply
}

func (p *Provider) systemPrompt() string {
	return strings.Join([]string{
		"You are the assistant for Demo Restaurant on WhatsApp.",
		"",
		p.menu,
		"",
		"Rules:",
		"1) Answer only from the menu above.",
		"2) If asked about anything not on the menu, say it is unavailable and list the menu categories.",
		"3) Refuse questions unrelated to the restaurant.",
		"4) Keep responses short, two sentences at most.",
	}, "\n")
}

// Unconfigured is the Provider used when no generation backend is set up. It
// returns a fixed apology without attempting any call.
type Unconfigured struct{}

func (Unconfigured) Compose(context.Context, string, string, []bot.Turn) string {
	return FallbackUnconfigured
}
