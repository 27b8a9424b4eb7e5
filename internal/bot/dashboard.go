package bot

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
)

const defaultRecentLimit = 50

// Dashboard is the operator-facing JSON surface: browse conversations and
// push manual replies into them.
type Dashboard struct {
	store Store
	svc   Service
}

func NewDashboard(store Store, svc Service) *Dashboard {
	return &Dashboard{store: store, svc: svc}
}

type turnView struct {
	ID          int64  `json:"id"`
	UserID      string `json:"user_id"`
	Sender      string `json:"sender"`
	Kind        string `json:"kind"`
	Text        string `json:"text"`
	SelectionID string `json:"selection_id,omitempty"`
	CreatedAt   string `json:"created_at"`
}

func toViews(turns []Turn) []turnView {
	out := make([]turnView, 0, len(turns))
	for _, t := range turns {
		out = append(out, turnView{
			ID:          t.ID,
			UserID:      t.UserID,
			Sender:      string(t.Sender),
			Kind:        string(t.Kind),
			Text:        t.Text,
			SelectionID: t.SelectionID,
			CreatedAt:   t.CreatedAt.UTC().Format(time.RFC3339),
		})
	}
	return out
}

func (d *Dashboard) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := d.store.ListUsers(r.Context())
	if err != nil {
		log.Printf("[dash] list users: %v", err)
		http.Error(w, "storage error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, map[string]any{"users": users})
}

func (d *Dashboard) ListMessages(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")
	if userID == "" {
		http.Error(w, "missing user id", http.StatusBadRequest)
		return
	}
	turns, err := d.store.ListByUser(r.Context(), userID, 0)
	if err != nil {
		log.Printf("[dash] list messages user=%s: %v", userID, err)
		http.Error(w, "storage error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, map[string]any{"messages": toViews(turns)})
}

func (d *Dashboard) ListRecent(w http.ResponseWriter, r *http.Request) {
	limit := defaultRecentLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			limit = n
		}
	}
	turns, err := d.store.ListRecent(r.Context(), limit)
	if err != nil {
		log.Printf("[dash] list recent: %v", err)
		http.Error(w, "storage error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, map[string]any{"messages": toViews(turns)})
}

func (d *Dashboard) PostReply(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		UserID string `json:"user_id"`
		Text   string `json:"text"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return
	}
	if payload.UserID == "" || payload.Text == "" {
		http.Error(w, "missing user_id or text", http.StatusBadRequest)
		return
	}

	if err := d.svc.AdminReply(r.Context(), payload.UserID, payload.Text); err != nil {
		log.Printf("[dash] admin reply user=%s: %v", payload.UserID, err)
		http.Error(w, "delivery error", http.StatusBadGateway)
		return
	}
	writeJSON(w, map[string]any{"status": "sent"})
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("[dash] encode response: %v", err)
	}
}
