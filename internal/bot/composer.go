package bot

import "strings"

type DecisionKind string

const (
	DecideShowMenu     DecisionKind = "show_menu"
	DecideAcknowledge  DecisionKind = "acknowledge"
	DecideNavigate     DecisionKind = "navigate"
	DecideDelegate     DecisionKind = "delegate"
	DecideShowMedia    DecisionKind = "show_media"
	DecideShowTemplate DecisionKind = "show_template"
)

// Decision is the routing outcome for one inbound turn, computed before any
// I/O happens.
type Decision struct {
	Kind        DecisionKind
	Text        string    // fixed reply for DecideAcknowledge
	SelectionID string    // for DecideNavigate
	Media       MediaKind // for DecideShowMedia
}

var greetings = map[string]bool{
	"hi":    true,
	"hello": true,
	"hey":   true,
	"menu":  true,
	"start": true,
	"ok":    true,
}

var mediaKeywords = []struct {
	word string
	kind MediaKind
}{
	{"video", MediaVideo},
	{"audio", MediaAudio},
	{"sticker", MediaSticker},
}

// Decide maps an inbound turn to a reply decision. Pure function, no I/O.
func Decide(turn Turn) Decision {
	if turn.Kind == KindButtonReply || turn.Kind == KindListReply {
		return Decision{Kind: DecideNavigate, SelectionID: turn.SelectionID}
	}

	text := normalize(turn.Text)

	if greetings[text] {
		return Decision{Kind: DecideShowMenu}
	}
	if strings.Contains(text, "thank") {
		return Decision{Kind: DecideAcknowledge, Text: thankYouReply}
	}
	for _, kw := range mediaKeywords {
		if strings.Contains(text, kw.word) {
			return Decision{Kind: DecideShowMedia, Media: kw.kind}
		}
	}
	if strings.Contains(text, "template") {
		return Decision{Kind: DecideShowTemplate}
	}
	return Decision{Kind: DecideDelegate}
}

// normalize lower-cases and drops everything outside a-z, so punctuation,
// emoji and whitespace never affect keyword matching.
func normalize(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range strings.ToLower(s) {
		if r >= 'a' && r <= 'z' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
