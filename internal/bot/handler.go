package bot

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/google/uuid"
)

type Handler struct {
	svc         Service
	verifyToken string
}

func NewHandler(svc Service, verifyToken string) *Handler {
	return &Handler{svc: svc, verifyToken: verifyToken}
}

// webhookEnvelope is the slice of the WhatsApp Cloud API event payload we
// care about. Anything else in the envelope is ignored.
type webhookEnvelope struct {
	Entry []struct {
		Changes []struct {
			Value struct {
				Messages []inboundMessage  `json:"messages"`
				Statuses []json.RawMessage `json:"statuses"`
			} `json:"value"`
		} `json:"changes"`
	} `json:"entry"`
}

type inboundMessage struct {
	From string `json:"from"`
	ID   string `json:"id"`
	Type string `json:"type"`
	Text struct {
		Body string `json:"body"`
	} `json:"text"`
	Interactive struct {
		Type        string `json:"type"`
		ButtonReply struct {
			ID    string `json:"id"`
			Title string `json:"title"`
		} `json:"button_reply"`
		ListReply struct {
			ID    string `json:"id"`
			Title string `json:"title"`
		} `json:"list_reply"`
	} `json:"interactive"`
}

// VerifyWebhook handles the platform's GET handshake: echo the challenge when
// the verify token matches, reject otherwise.
func (h *Handler) VerifyWebhook(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	mode := q.Get("hub.mode")
	token := q.Get("hub.verify_token")
	challenge := q.Get("hub.challenge")

	if mode != "" && token == h.verifyToken {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(challenge))
		return
	}
	http.Error(w, "forbidden", http.StatusForbidden)
}

// HandleWebhook processes event delivery. The platform retries on non-2xx, so
// this always acknowledges with 200 no matter what went wrong inside.
func (h *Handler) HandleWebhook(w http.ResponseWriter, r *http.Request) {
	corrID := uuid.NewString()

	var payload webhookEnvelope
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		log.Printf("[webhook] corr=%s invalid json: %v", corrID, err)
		ack(w)
		return
	}

	msg, ok := firstMessage(payload)
	if !ok {
		// Delivery-status callbacks and empty envelopes land here. They are
		// acknowledged no-ops.
		if n := statusCount(payload); n > 0 {
			log.Printf("[webhook] corr=%s %d status callback(s), ignoring", corrID, n)
		} else {
			log.Printf("[webhook] corr=%s no message in envelope, ignoring", corrID)
		}
		ack(w)
		return
	}

	turn := turnFromMessage(msg)
	if turn.UserID == "" {
		log.Printf("[webhook] corr=%s message missing sender, ignoring", corrID)
		ack(w)
		return
	}

	if err := h.svc.HandleTurn(r.Context(), &turn); err != nil {
		log.Printf("[webhook] corr=%s handle error: %v", corrID, err)
	}
	ack(w)
}

func ack(w http.ResponseWriter) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func firstMessage(payload webhookEnvelope) (inboundMessage, bool) {
	for _, e := range payload.Entry {
		for _, c := range e.Changes {
			if len(c.Value.Messages) > 0 {
				return c.Value.Messages[0], true
			}
		}
	}
	return inboundMessage{}, false
}

func statusCount(payload webhookEnvelope) int {
	n := 0
	for _, e := range payload.Entry {
		for _, c := range e.Changes {
			n += len(c.Value.Statuses)
		}
	}
	return n
}

func turnFromMessage(msg inboundMessage) Turn {
	turn := Turn{
		UserID:    msg.From,
		MessageID: msg.ID,
		Sender:    SenderUser,
	}

	switch msg.Type {
	case "text":
		turn.Kind = KindText
		turn.Text = msg.Text.Body
	case "interactive":
		switch msg.Interactive.Type {
		case "button_reply":
			turn.Kind = KindButtonReply
			turn.SelectionID = msg.Interactive.ButtonReply.ID
			turn.Text = msg.Interactive.ButtonReply.Title
		case "list_reply":
			turn.Kind = KindListReply
			turn.SelectionID = msg.Interactive.ListReply.ID
			turn.Text = msg.Interactive.ListReply.Title
		default:
			turn.Kind = KindOther
		}
	default:
		turn.Kind = KindOther
	}
	return turn
}
