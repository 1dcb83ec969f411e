package main

import (
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tradestack/tradestack-api/internal/config"
	"github.com/tradestack/tradestack-api/internal/infra/database"
	"github.com/tradestack/tradestack-api/internal/infra/http/handlers"
	"github.com/tradestack/tradestack-api/internal/infra/http/middleware"
	"github.com/tradestack/tradestack-api/internal/infra/integration/gemini"
	"github.com/tradestack/tradestack-api/internal/infra/integration/openai"
	"github.com/tradestack/tradestack-api/internal/infra/integration/plaid"
	"github.com/tradestack/tradestack-api/internal/infra/integration/stripe"
	"github.com/tradestack/tradestack-api/internal/infra/integration/supabase"
	"github.com/tradestack/tradestack-api/internal/infra/mail"
	"github.com/tradestack/tradestack-api/internal/infra/queue"
	"github.com/tradestack/tradestack-api/internal/infra/textgen"
	"github.com/tradestack/tradestack-api/internal/infra/website"
	"github.com/tradestack/tradestack-api/internal/usecase"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	db, err := database.NewConnection(cfg.DatabaseURL)
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	rabbitMQ, err := queue.NewRabbitMQ(cfg.RabbitMQURL)
	if err != nil {
		log.Fatal(err)
	}
	defer rabbitMQ.Conn.Close()
	defer rabbitMQ.Ch.Close()

	// Repositories
	profileRepo := database.NewProfileRepository(db)
	serviceRepo := database.NewServiceRepository(db)
	leadRepo := database.NewLeadRepository(db)
	leadMessageRepo := database.NewLeadMessageRepository(db)
	settingsRepo := database.NewSettingsRepository(db)
	templateRepo := database.NewAdTemplateRepository(db)
	outreachRepo := database.NewOutreachRepository(db)
	invoiceRepo := database.NewInvoiceRepository(db)
	paymentRepo := database.NewPaymentRepository(db)
	websiteRepo := database.NewWebsiteRepository(db)

	// Gateways and adapters
	stripeClient := stripe.NewClient(cfg.StripeSecretKey)
	plaidClient := plaid.NewClient(cfg.PlaidClientID, cfg.PlaidSecret, cfg.PlaidBaseURL())
	supabaseClient := supabase.NewClient(cfg.SupabaseURL, cfg.SupabaseAnonKey)
	geminiClient := gemini.NewClient(cfg.GeminiAPIKey)
	openaiClient := openai.NewClient(cfg.OpenAIAPIKey)
	generator := textgen.NewChain(geminiClient, openaiClient)

	producer := queue.NewProducer(rabbitMQ.Ch)
	mailSender := mail.NewEmailSender(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass)

	// Use cases
	generateAdUC := usecase.NewGenerateAdUseCase(templateRepo, generator)
	generateMessageUC := usecase.NewGenerateMessageUseCase(leadRepo, leadMessageRepo, profileRepo, settingsRepo, generator)
	generateOutreachUC := usecase.NewGenerateOutreachUseCase(outreachRepo, profileRepo, generator)
	createPaymentUC := usecase.NewCreatePaymentUseCase(invoiceRepo, paymentRepo, profileRepo, stripeClient, cfg.AppURL)
	reconcilePaymentUC := usecase.NewReconcilePaymentUseCase(paymentRepo, invoiceRepo)
	linkBankUC := usecase.NewLinkBankUseCase(profileRepo, plaidClient)

	// Worker: consumes captured leads, generates the first AI reply and
	// notifies the owner by email.
	worker := queue.NewWorker(rabbitMQ.Ch, generateMessageUC, profileRepo, mailSender)
	go worker.Start(queue.QueueName)

	renderer, err := website.NewRenderer(websiteRepo)
	if err != nil {
		log.Fatal(err)
	}

	// Handlers
	handlers.SetVerboseErrors(cfg.IsDevelopment())
	profileHandler := handlers.NewProfileHandler(profileRepo)
	serviceHandler := handlers.NewServiceHandler(serviceRepo)
	leadHandler := handlers.NewLeadHandler(leadRepo, leadMessageRepo, websiteRepo, profileRepo, producer)
	settingsHandler := handlers.NewSettingsHandler(settingsRepo)
	templateHandler := handlers.NewTemplateHandler(templateRepo)
	outreachHandler := handlers.NewOutreachHandler(outreachRepo)
	aiHandler := handlers.NewAIHandler(generateAdUC, generateMessageUC, generateOutreachUC)
	invoiceHandler := handlers.NewInvoiceHandler(invoiceRepo, profileRepo, createPaymentUC)
	webhookHandler := handlers.NewWebhookHandler(reconcilePaymentUC, profileRepo, cfg.StripeWebhookSecret)
	bankHandler := handlers.NewBankHandler(profileRepo, plaidClient, linkBankUC)
	connectHandler := handlers.NewConnectHandler(profileRepo, stripeClient, cfg.AppURL)
	websiteHandler := handlers.NewWebsiteHandler(websiteRepo)
	siteHandler := handlers.NewSiteHandler(renderer)
	healthHandler := handlers.NewHealthHandler(db, rabbitMQ.Conn, geminiClient, openaiClient)

	// Router
	r := chi.NewRouter()
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.Metrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{cfg.AppURL, "http://localhost:5173"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
	}))

	r.Get("/health", healthHandler.Handle)
	r.Handle("/metrics", promhttp.Handler())

	// Public surface: published sites, contact forms, invoice pay links,
	// provider webhooks. No session required.
	r.Get("/site/{siteSlug}", siteHandler.Homepage)
	r.Get("/site/{siteSlug}/{pageSlug}", siteHandler.Page)
	r.Post("/api/leads", leadHandler.Capture)
	r.Post("/api/public/sites/{siteSlug}/leads", leadHandler.CaptureFromSite)
	r.Get("/api/public/invoices/{id}", invoiceHandler.GetPublic)
	r.Post("/api/public/invoices/{id}/pay", invoiceHandler.CreatePayment)
	r.Post("/api/webhooks/stripe", webhookHandler.Handle)

	// Authenticated API. A group rather than a mount so /api/leads can carry
	// the public capture POST above and the authenticated GET below.
	r.Group(func(r chi.Router) {
		r.Use(middleware.Auth(supabaseClient))

		r.Get("/api/profile", profileHandler.Get)
		r.Put("/api/profile", profileHandler.Update)

		r.Post("/api/services", serviceHandler.Create)
		r.Get("/api/services", serviceHandler.List)
		r.Put("/api/services/{id}", serviceHandler.Update)
		r.Delete("/api/services/{id}", serviceHandler.Deactivate)

		r.Get("/api/leads", leadHandler.List)
		r.Put("/api/leads/{id}/status", leadHandler.UpdateStatus)
		r.Get("/api/leads/{id}/messages", leadHandler.ListMessages)
		r.Post("/api/leads/{id}/messages", leadHandler.AddMessage)

		r.Get("/api/settings/prompts", settingsHandler.Get)
		r.Put("/api/settings/prompts", settingsHandler.Update)

		r.Post("/api/ai/generate-ad", aiHandler.GenerateAd)
		r.Post("/api/ai/generate-message", aiHandler.GenerateMessage)
		r.Post("/api/ai/generate-outreach", aiHandler.GenerateOutreach)
		r.Get("/api/ad-templates", templateHandler.List)

		r.Post("/api/outreach/targets", outreachHandler.CreateTarget)
		r.Get("/api/outreach/targets", outreachHandler.ListTargets)

		r.Post("/api/invoices", invoiceHandler.Create)
		r.Get("/api/invoices", invoiceHandler.List)
		r.Get("/api/invoices/{id}", invoiceHandler.Get)

		r.Post("/api/bank/link-token", bankHandler.CreateLinkToken)
		r.Post("/api/bank/exchange", bankHandler.ExchangeToken)
		r.Get("/api/bank/status", bankHandler.Status)

		r.Post("/api/connect/onboard", connectHandler.Onboard)
		r.Get("/api/connect/status", connectHandler.Status)

		r.Get("/api/website/settings", websiteHandler.GetSettings)
		r.Put("/api/website/settings", websiteHandler.UpdateSettings)
		r.Get("/api/website/pages", websiteHandler.ListPages)
		r.Put("/api/website/pages", websiteHandler.UpsertPage)
	})

	addr := ":" + cfg.Port
	log.Printf("TradeStack API listening on %s", addr)
	if err := http.ListenAndServe(addr, r); err != nil {
		log.Fatal(err)
	}
}
