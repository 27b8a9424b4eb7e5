package wa

import (
	"context"
	"log"

	"github.com/demorestaurant/wa-bridge/internal/bot"
)

// Disabled is the outbound channel used when no WhatsApp credentials are
// configured. Every send is dropped with a log line so the rest of the
// pipeline (routing, persistence, dashboard) still works.
type Disabled struct{}

func (Disabled) SendText(_ context.Context, to, text string) error {
	return drop("text", to)
}

func (Disabled) SendButtons(_ context.Context, to string, _ bot.ButtonPrompt) error {
	return drop("buttons", to)
}

func (Disabled) SendList(_ context.Context, to string, _ bot.ListPrompt) error {
	return drop("list", to)
}

func (Disabled) SendMedia(_ context.Context, to string, kind bot.MediaKind, _ string) error {
	return drop(string(kind), to)
}

func (Disabled) SendLocation(_ context.Context, to string, _ bot.Location) error {
	return drop("location", to)
}

func (Disabled) SendContact(_ context.Context, to string, _ bot.ContactCard) error {
	return drop("contact", to)
}

func (Disabled) SendReaction(_ context.Context, to, _, _ string) error {
	return drop("reaction", to)
}

func (Disabled) SendTemplate(_ context.Context, to, _, _ string) error {
	return drop("template", to)
}

func drop(what, to string) error {
	log.Printf("[wa] outbound disabled, dropping %s to %s", what, to)
	return nil
}
