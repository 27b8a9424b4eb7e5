package ai

import "context"

// Generator is the external text-generation capability. It knows nothing
// about WhatsApp or the store.
type Generator interface {
	Generate(ctx context.Context, messages []Message) (string, error)
}

// Message is the provider-neutral dialogue format handed to a Generator.
type Message struct {
	Role string // "user" | "assistant" | "system"
	Text string
}
