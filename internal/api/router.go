package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/fintrackhq/fintrack-backend/internal/api/handlers"
	"github.com/fintrackhq/fintrack-backend/internal/api/httpx"
	"github.com/fintrackhq/fintrack-backend/internal/config"
	"github.com/fintrackhq/fintrack-backend/internal/metrics"
	"github.com/fintrackhq/fintrack-backend/internal/middleware"
	"github.com/fintrackhq/fintrack-backend/internal/models"
	"github.com/fintrackhq/fintrack-backend/internal/services"
)

type Deps struct {
	Cfg       config.Config
	AuthMW    *middleware.AuthMiddleware
	Auth      *services.AuthService
	Ledger    *services.LedgerService
	Analytics *services.AnalyticsService
	Goals     *services.GoalService
	Category  *services.CategoryService
	Glossary  *services.GlossaryService
}

func NewRouter(d Deps) http.Handler {
	authH := handlers.NewAuthHandler(d.Auth)
	incomeH := handlers.NewLedgerHandler(d.Ledger, models.KindIncome)
	expenseH := handlers.NewLedgerHandler(d.Ledger, models.KindExpense)
	financialH := handlers.NewFinancialHandler(d.Ledger)
	analyticsH := handlers.NewAnalyticsHandler(d.Analytics)
	goalsH := handlers.NewGoalsHandler(d.Goals)
	categoriesH := handlers.NewCategoriesHandler(d.Category)
	glossaryH := handlers.NewGlossaryHandler(d.Glossary)

	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.Recover, middleware.HTTPMetrics, middleware.RateLimit(d.Cfg.RateRPS))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"*"},
	}))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) { _, _ = w.Write([]byte("ok")) })
	r.Handle("/metrics", metrics.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Get("/", func(w http.ResponseWriter, _ *http.Request) {
			httpx.WriteData(w, http.StatusOK, map[string]string{
				"name":    "fintrack-backend",
				"version": "1.0",
			})
		})

		r.Route("/auth", func(r chi.Router) {
			r.Post("/signup", authH.Signup)
			r.Post("/login", authH.Login)
			r.Post("/refresh-token", authH.Refresh)
			r.Post("/logout", authH.Logout)
			r.Post("/check-email", authH.CheckEmail)

			r.Group(func(r chi.Router) {
				r.Use(d.AuthMW.Auth)
				r.Get("/me", authH.Me)
				r.Put("/me", authH.UpdateMe)
			})
		})

		// everything below requires a bearer access token
		r.Group(func(r chi.Router) {
			r.Use(d.AuthMW.Auth)

			r.Route("/income", func(r chi.Router) {
				r.Post("/add", incomeH.Add)
				r.Get("/{user_id}", incomeH.List)
				r.Put("/update/{entry_id}", incomeH.Update)
				r.Delete("/delete/{entry_id}", incomeH.Delete)
			})

			r.Route("/expenses", func(r chi.Router) {
				r.Post("/add", expenseH.Add)
				r.Get("/{user_id}", expenseH.List)
				r.Put("/update/{entry_id}", expenseH.Update)
				r.Delete("/delete/{entry_id}", expenseH.Delete)
			})

			r.Route("/financial", func(r chi.Router) {
				r.Get("/summary/{user_id}", financialH.Summary)
				r.Get("/history/{user_id}", financialH.History)
			})

			r.Route("/analytics", func(r chi.Router) {
				r.Get("/expenses/{user_id}", analyticsH.ExpensesByCategory)
				r.Get("/income/{user_id}", analyticsH.IncomeByCategory)
				r.Get("/trends/{user_id}", analyticsH.Trends)
				r.Get("/savings/{user_id}", analyticsH.Savings)
				r.Get("/budget/{user_id}", analyticsH.Budget)
				r.Get("/tags/{user_id}", analyticsH.Tags)
			})

			r.Route("/goals", func(r chi.Router) {
				r.Post("/create", goalsH.Create)
				r.Get("/{user_id}", goalsH.List)
				r.Post("/contribute", goalsH.Contribute)
				r.Put("/update/{goal_id}", goalsH.Update)
				r.Delete("/delete/{goal_id}", goalsH.Delete)
			})

			r.Route("/categories", func(r chi.Router) {
				r.Get("/", categoriesH.List)
				r.Post("/", categoriesH.Create)
				r.Get("/{id}", categoriesH.Get)
				r.Put("/{id}", categoriesH.Update)
				r.Delete("/{id}", categoriesH.Delete)
			})

			r.Route("/glossary", func(r chi.Router) {
				r.Get("/", glossaryH.List)
				r.Get("/{id}", glossaryH.Get)
			})
		})
	})

	return r
}
