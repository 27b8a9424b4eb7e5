package bot

import (
	"context"
	"time"
)

type Sender string

const (
	SenderUser  Sender = "user"
	SenderBot   Sender = "bot"
	SenderAdmin Sender = "admin"
)

type Kind string

const (
	KindText        Kind = "text"
	KindButtonReply Kind = "button_reply"
	KindListReply   Kind = "list_reply"
	KindOther       Kind = "other"
)

type MediaKind string

const (
	MediaImage    MediaKind = "image"
	MediaVideo    MediaKind = "video"
	MediaAudio    MediaKind = "audio"
	MediaDocument MediaKind = "document"
	MediaSticker  MediaKind = "sticker"
)

// Turn is one message event in a conversation. Immutable once appended;
// CreatedAt is assigned by the store.
type Turn struct {
	ID          int64
	UserID      string
	Sender      Sender
	Kind        Kind
	Text        string
	SelectionID string
	MessageID   string
	CreatedAt   time.Time
}

// Interactive prompt specs, mirroring the WhatsApp payload shapes without
// tying the domain to the wire format.

type Button struct {
	ID    string
	Title string
}

type ButtonPrompt struct {
	Body    string
	Buttons []Button
}

type ListRow struct {
	ID          string
	Title       string
	Description string
}

type ListSection struct {
	Title string
	Rows  []ListRow
}

type ListPrompt struct {
	Body        string
	ButtonLabel string
	Sections    []ListSection
}

type Location struct {
	Latitude  string
	Longitude string
	Name      string
	Address   string
}

type ContactCard struct {
	FormattedName string
	FirstName     string
	LastName      string
	Phone         string
	Email         string
}

// Store — append-only conversation log.
type Store interface {
	Append(ctx context.Context, turn *Turn) error
	// ListByUser returns a user's turns in chronological order. limit > 0
	// keeps only the most recent entries (still returned oldest first).
	ListByUser(ctx context.Context, userID string, limit int) ([]Turn, error)
	ListRecent(ctx context.Context, limit int) ([]Turn, error)
	ListUsers(ctx context.Context) ([]string, error)
}

// Outbound — delivery to the messaging platform.
type Outbound interface {
	SendText(ctx context.Context, to, text string) error
	SendButtons(ctx context.Context, to string, prompt ButtonPrompt) error
	SendList(ctx context.Context, to string, prompt ListPrompt) error
	SendMedia(ctx context.Context, to string, kind MediaKind, url string) error
	SendLocation(ctx context.Context, to string, loc Location) error
	SendContact(ctx context.Context, to string, card ContactCard) error
	SendReaction(ctx context.Context, to, messageID, emoji string) error
	SendTemplate(ctx context.Context, to, name, lang string) error
}

// ReplyProvider composes a reply for free text the keyword ladder did not
// match. It never fails: an unconfigured or erroring backend degrades to a
// fixed fallback string.
type ReplyProvider interface {
	Compose(ctx context.Context, userID, query string, history []Turn) string
}

// Service — orchestration entry points used by the HTTP layer.
type Service interface {
	HandleTurn(ctx context.Context, turn *Turn) error
	AdminReply(ctx context.Context, userID, text string) error
}
