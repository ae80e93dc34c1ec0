package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"coverapi/internal/http/middleware"
	"coverapi/internal/service"
)

// Deps are the collaborators the routes dispatch to.
type Deps struct {
	DB       Pinger
	Tokens   middleware.TokenVerifier
	Gatherer prometheus.Gatherer

	Auth         service.AuthService
	CoverLetters service.CoverLetterService
	CVs          service.CVService
	Files        service.FileService
	Generation   service.GenerationService
	Chat         service.ChatService
	Headshots    service.HeadshotService
	Insights     service.InsightService
	Analytics    service.AnalyticsService
	Reports      service.ReportService
}

// RegisterRoutes attaches HTTP routes to the provided Fiber app.
func RegisterRoutes(app *fiber.App, d Deps) {
	app.Get("/health", HealthCheck(d.DB))
	app.Get("/healthz", LivenessProbe())
	if d.Gatherer != nil {
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(d.Gatherer, promhttp.HandlerOpts{})))
	}

	app.Post("/ai-chat", Chat(d.Chat))
	app.Get("/analytics/realtime", RealtimeAnalytics(d.Analytics))

	authGroup := app.Group("/auth")
	authGroup.Post("/login", Login(d.Auth))
	authGroup.Post("/register", Register(d.Auth))
	authGroup.Get("/supabase", VerifySession(d.Auth))
	authGroup.Post("/supabase", ProviderAuth(d.Auth))
	authGroup.Post("/logout", middleware.Bearer(d.Tokens), Logout(d.Auth))
	authGroup.Get("/me", middleware.Bearer(d.Tokens), Me(d.Auth))

	app.Get("/cover-letters", ListCoverLetters(d.CoverLetters))
	app.Delete("/cover-letters", DeleteCoverLetter(d.CoverLetters))

	app.Get("/cv", GetCV(d.CVs))
	app.Post("/cv", SaveCV(d.CVs))

	app.Post("/generate-headshot", GenerateHeadshot(d.Headshots))
	app.Post("/groq/generate", Generate(d.Generation))
	app.Post("/predictive-analytics", PredictInsights(d.Insights))
	app.Post("/reports/generate", GenerateReport(d.Reports))

	app.Post("/upload", UploadFile(d.Files))
	app.Delete("/upload", DeleteFile(d.Files))
	app.Get("/upload", ListFiles(d.Files))
}
