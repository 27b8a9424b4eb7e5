package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"github.com/demorestaurant/wa-bridge/internal/ai"
	"github.com/demorestaurant/wa-bridge/internal/bot"
	"github.com/demorestaurant/wa-bridge/internal/config"
	"github.com/demorestaurant/wa-bridge/internal/wa"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()

	// --- Store ---
	var store bot.Store
	if cfg.DatabaseURL != "" {
		db, err := sql.Open("postgres", cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("db open error: %v", err)
		}
		defer db.Close()

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := db.PingContext(ctx); err != nil {
			log.Fatalf("db ping error: %v", err)
		}
		store = bot.NewStore(db)
	} else {
		log.Println("[main] DATABASE_URL not set, using in-memory store")
		store = bot.NewMemStore()
	}

	// --- Outbound channel ---
	var outbound bot.Outbound = wa.Disabled{}
	if cfg.WhatsAppToken != "" && cfg.WhatsAppPhoneID != "" {
		var opts []wa.Option
		if cfg.GraphBaseURL != "" {
			opts = append(opts, wa.WithBaseURL(cfg.GraphBaseURL))
		}
		client, err := wa.NewClient(cfg.WhatsAppToken, cfg.WhatsAppPhoneID, opts...)
		if err != nil {
			log.Fatalf("whatsapp client error: %v", err)
		}
		outbound = client
	} else {
		log.Println("[main] WHATSAPP_TOKEN/WHATSAPP_PHONE_ID not set, outbound disabled")
	}

	// --- Reply provider ---
	var provider bot.ReplyProvider = ai.Unconfigured{}
	if cfg.OpenAIKey != "" {
		gen, err := ai.NewOpenAIClient(cfg.OpenAIKey, cfg.OpenAIModel)
		if err != nil {
			log.Fatalf("openai client error: %v", err)
		}
		p, err := ai.NewProvider(gen, bot.MenuText)
		if err != nil {
			log.Fatalf("reply provider error: %v", err)
		}
		provider = p
	} else {
		log.Println("[main] OPENAI_API_KEY not set, free-text replies disabled")
	}

	// --- Bot module wiring ---
	svc, err := bot.NewTurnRouter(store, outbound, provider)
	if err != nil {
		log.Fatalf("router error: %v", err)
	}
	handler := bot.NewHandler(svc, cfg.VerifyToken)
	dashboard := bot.NewDashboard(store, svc)

	// --- Router ---
	r := chi.NewRouter()
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
	}))

	bot.RegisterRoutes(r, handler, dashboard)

	// --- health ---
	r.Get("/ping", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("pong"))
	})

	log.Printf("listening on :%s", cfg.Port)
	if err := http.ListenAndServe(":"+cfg.Port, r); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
