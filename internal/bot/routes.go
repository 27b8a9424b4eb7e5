package bot

import "github.com/go-chi/chi/v5"

func RegisterRoutes(r chi.Router, h *Handler, d *Dashboard) {
	r.Get("/webhook", h.VerifyWebhook)
	r.Post("/webhook", h.HandleWebhook)

	r.Get("/dashboard/users", d.ListUsers)
	r.Get("/dashboard/users/{userID}/messages", d.ListMessages)
	r.Get("/dashboard/recent", d.ListRecent)
	r.Post("/dashboard/reply", d.PostReply)
}
