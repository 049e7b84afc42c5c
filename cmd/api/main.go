// @title           Splitwise API
// @version         1.0
// @description     Shared expense tracking with flexible splitting and debt simplification.
// @BasePath        /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
package main

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/ymansouri/splitwise/docs"
	"github.com/ymansouri/splitwise/internal/auth"
	"github.com/ymansouri/splitwise/internal/balance"
	"github.com/ymansouri/splitwise/internal/config"
	"github.com/ymansouri/splitwise/internal/database"
	"github.com/ymansouri/splitwise/internal/expense"
	"github.com/ymansouri/splitwise/internal/expense/split"
	"github.com/ymansouri/splitwise/internal/group"
	"github.com/ymansouri/splitwise/internal/settlement"
	"github.com/ymansouri/splitwise/internal/user"
	"github.com/ymansouri/splitwise/pkg/logging"
	mw "github.com/ymansouri/splitwise/pkg/middleware"
)

func main() {
	// .env is optional; real deployments set the environment directly
	_ = godotenv.Load()

	logging.Setup()
	cfg := config.Load()

	db, err := database.NewPostgresConnection(cfg.DatabaseURL)
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.TokenTTL)
	splitFactory := split.NewFactory()

	// Repositories
	userRepo := user.NewRepository(db)
	groupRepo := group.NewRepository(db)
	expenseRepo := expense.NewRepository(db)
	settlementRepo := settlement.NewRepository(db)
	balanceRepo := balance.NewRepository(db)

	// Services
	balanceService := balance.NewService(balanceRepo)
	userService := user.NewService(userRepo, jwtManager)
	groupService := group.NewService(groupRepo, userRepo, balanceService)
	expenseService := expense.NewService(expenseRepo, groupRepo, splitFactory)
	settlementService := settlement.NewService(settlementRepo, groupRepo)

	// Handlers
	userHandler := user.NewHandler(userService)
	groupHandler := group.NewHandler(groupService)
	expenseHandler := expense.NewHandler(expenseService)
	settlementHandler := settlement.NewHandler(settlementService)
	balanceHandler := balance.NewHandler(balanceService)

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	r.Route("/api/v1", func(r chi.Router) {
		r.Mount("/auth", userHandler.AuthRoutes())

		r.Group(func(r chi.Router) {
			r.Use(mw.RequireAuth(jwtManager))

			r.Mount("/users", userHandler.Routes())
			r.Mount("/groups", groupHandler.Routes())
			r.Mount("/expenses", expenseHandler.Routes())
			r.Mount("/settlements", settlementHandler.Routes())
			r.Mount("/balances", balanceHandler.Routes())
		})
	})

	addr := ":" + cfg.Port
	slog.Info("starting server", "addr", addr)
	if err := http.ListenAndServe(addr, r); err != nil {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
}
