package app

import (
	"context"

	"cryptopulse-backend/internal/auth"
	"cryptopulse-backend/internal/coins"
	"cryptopulse-backend/internal/config"
	"cryptopulse-backend/internal/constants"
	"cryptopulse-backend/internal/database"
	"cryptopulse-backend/internal/health"
	"cryptopulse-backend/internal/ledger"
	"cryptopulse-backend/internal/market"
	"cryptopulse-backend/internal/middleware"
	"cryptopulse-backend/internal/reports"
	"cryptopulse-backend/internal/users"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type gormDBPinger struct {
	db *gorm.DB
}

func (g *gormDBPinger) Ping() error {
	if g == nil || g.db == nil {
		return nil
	}
	sqlDB, err := g.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}

// CreateApp builds the Fiber app with all middleware and routes wired.
// Returns the app plus the DB and Redis handles for startup checks.
func CreateApp(cfg *config.Config) (*fiber.App, *gorm.DB, *redis.Client, error) {
	app := fiber.New(fiber.Config{
		DisableStartupMessage:   true,
		ErrorHandler:            middleware.ErrorHandler,
		EnableTrustedProxyCheck: true,
	})

	app.Use(middleware.CORS(middleware.CORSConfig{
		AllowedSuffix: cfg.FrontendURLEndsWith,
		DevPassword:   cfg.DevPassword,
	}))

	sessionHandler, rdb, err := middleware.Session(middleware.SessionConfig{
		Secret:            cfg.SessionSecret,
		RedisURL:          cfg.RedisURL,
		AllowCrossSiteDev: cfg.AllowCrossSiteDev,
		IsProduction:      cfg.Env == "production",
	})
	if err != nil {
		return nil, nil, nil, err
	}
	app.Use(sessionHandler)
	app.Use(middleware.Tracing())
	app.Use(middleware.RouteLogger())

	hh := &health.Handlers{Rdb: rdb}
	app.Get("/health/json", hh.JSON)

	var db *gorm.DB
	if cfg.DatabaseURL != "" {
		db, err = database.Open(cfg.DatabaseURL)
		if err != nil {
			return nil, nil, nil, err
		}
		if err := database.AutoMigrate(db); err != nil {
			return nil, nil, nil, err
		}
		hh.DB = &gormDBPinger{db: db}
	}

	sessionCfg := middleware.SessionConfig{
		Secret:            cfg.SessionSecret,
		RedisURL:          cfg.RedisURL,
		AllowCrossSiteDev: cfg.AllowCrossSiteDev,
		IsProduction:      cfg.Env == "production",
	}

	var userFinder auth.UserFinder
	if db != nil {
		userFinder = &auth.GormUserFinder{DB: db}
	}
	ah := &auth.Handlers{
		UserFinder: userFinder,
		DB:         db,
		Rdb:        rdb,
		Config:     sessionCfg,
	}
	authGroup := app.Group("/api/v1/auth")
	authGroup.Post("/login", ah.Login)
	authGroup.Post("/signup", ah.Signup)
	authGroup.Get("/me", ah.Me)
	authGroup.Delete("/logout", ah.Logout)

	if db != nil && rdb != nil {
		coinSvc := &coins.Service{DB: db}
		if err := coinSvc.Seed(context.Background()); err != nil {
			return nil, nil, nil, err
		}

		marketSvc := &market.Service{
			Client:   market.NewClient(cfg.CoinGeckoBaseURL, cfg.UpstreamTimeout),
			Tracked:  coinSvc,
			CacheTTL: cfg.PriceCacheTTL,
		}
		ledgerSvc := &ledger.Service{DB: db, Quotes: marketSvc}
		userSvc := &users.Service{DB: db}
		reportSvc := &reports.Service{DB: db, Market: marketSvc, Coins: coinSvc}

		mh := &market.Handlers{Service: marketSvc, Coins: coinSvc}
		lh := &ledger.Handlers{Service: ledgerSvc}
		ch := &coins.Handlers{Service: coinSvc}
		uh := &users.Handlers{Service: userSvc}
		rh := &reports.Handlers{Service: reportSvc}

		api := app.Group("/api/v1", middleware.RequireAuth())

		api.Get("/prices", middleware.AuthorizePermission(constants.ViewPrices), mh.GetPrices)
		api.Get("/historical/:coin_id", middleware.AuthorizePermission(constants.ViewPrices), mh.GetHistorical)
		api.Get("/currencies", middleware.AuthorizePermission(constants.ViewPrices), mh.GetCurrencies)
		api.Post("/currency", middleware.AuthorizePermission(constants.ViewPrices), mh.SetCurrency)

		api.Post("/buy", middleware.AuthorizePermission(constants.TradeCoins), lh.Buy)
		api.Post("/sell", middleware.AuthorizePermission(constants.TradeCoins), lh.Sell)
		api.Get("/portfolio", middleware.AuthorizePermission(constants.ViewPortfolio), lh.Portfolio)
		api.Get("/transactions", middleware.AuthorizePermission(constants.ViewPortfolio), lh.Transactions)

		api.Get("/coins", middleware.AuthorizePermission(constants.ViewPrices), ch.List)
		api.Post("/coins/add", middleware.AuthorizePermission(constants.ManageCoins), ch.Add)
		api.Post("/coins/remove", middleware.AuthorizePermission(constants.ManageCoins), ch.Remove)

		api.Post("/users", middleware.AuthorizePermission(constants.ManageUsers), uh.Create)
		api.Get("/users", middleware.AuthorizePermission(constants.ManageUsers), uh.List)

		api.Get("/admin/stats", middleware.AuthorizePermission(constants.ViewAdminStats), rh.AdminStats)
		api.Get("/analyst/stats", middleware.AuthorizePermission(constants.ViewMarketStats), rh.AnalystStats)
		api.Get("/moderator/feed", middleware.AuthorizePermission(constants.ViewActivityFeed), rh.ModeratorFeed)
	}

	return app, db, rdb, nil
}
