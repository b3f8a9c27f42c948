package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/citelab/bibcat/modules/account"
	"github.com/citelab/bibcat/modules/admin"
	"github.com/citelab/bibcat/pkg/config"
	"github.com/citelab/bibcat/pkg/email"
	"github.com/citelab/bibcat/pkg/httpserver"
	"github.com/citelab/bibcat/pkg/i18n"
	"github.com/citelab/bibcat/pkg/logger"
	mongodb "github.com/citelab/bibcat/pkg/mongo"
	redisdb "github.com/citelab/bibcat/pkg/redis"
	"github.com/citelab/bibcat/pkg/session"
	"github.com/citelab/bibcat/svc/auth"
	"github.com/citelab/bibcat/svc/catalog"
	"github.com/citelab/bibcat/svc/notify"
)

type appConfig struct {
	Env          string        `env:"APP_ENV" envDefault:"development"`
	AppName      string        `env:"APP_NAME" envDefault:"Bibcat"`
	SecretKey    string        `env:"APP_SECRET_KEY,required"`
	BaseURL      string        `env:"BASE_URL" envDefault:"http://localhost:8080"`
	TokenMaxAge  time.Duration `env:"TOKEN_MAX_AGE" envDefault:"24h"`
	Locale       string        `env:"APP_LOCALE" envDefault:"es"`
	SeedCatalogs bool          `env:"SEED_CATALOGS" envDefault:"true"`

	HTTP    httpserver.Config
	Mongo   mongodb.Config
	Redis   redisdb.Config
	Email   email.Config
	Session session.Config
}

func main() {
	var cfg appConfig
	config.MustLoad(&cfg)

	log := logger.New(logger.WithEnvironment(cfg.Env, "bibcat"))
	logger.SetAsDefault(log)

	ctx := context.Background()

	mongoClient, err := mongodb.New(ctx, cfg.Mongo)
	if err != nil {
		log.Error("Failed to connect to MongoDB", logger.Error(err))
		os.Exit(1)
	}
	defer func() { _ = mongoClient.Disconnect(context.Background()) }()
	db := mongoClient.Database(cfg.Mongo.Database)

	redisClient, err := redisdb.Connect(ctx, cfg.Redis)
	if err != nil {
		log.Error("Failed to connect to Redis", logger.Error(err))
		os.Exit(1)
	}
	defer func() { _ = redisClient.Close() }()

	// Postmark in production; without a server token emails land in a
	// local directory for inspection.
	var sender email.EmailSender
	if cfg.Email.PostmarkServerToken != "" {
		sender = email.MustNewPostmarkClient(cfg.Email)
	} else {
		sender = email.NewDevSender(cfg.Email.DevSenderDir)
		log.Info("Using filesystem email sender", slog.String("dir", cfg.Email.DevSenderDir))
	}

	storage, err := auth.NewMongoStorage(ctx, db)
	if err != nil {
		log.Error("Failed to init user storage", logger.Error(err))
		os.Exit(1)
	}

	dispatcher := notify.NewDispatcher(sender,
		notify.WithLocale(cfg.Locale),
		notify.WithAppName(cfg.AppName),
		notify.WithLogger(log),
	)

	authSvc := auth.NewService(storage, dispatcher, cfg.SecretKey,
		auth.WithBaseURL(cfg.BaseURL+"/account"),
		auth.WithTokenMaxAge(cfg.TokenMaxAge),
		auth.WithLogger(log),
	)

	store := catalog.NewStore(db)
	if cfg.SeedCatalogs {
		if err := catalog.SeedDefaults(ctx, store); err != nil {
			log.Error("Failed to seed catalogs", logger.Error(err))
			os.Exit(1)
		}
	}

	sessions := session.NewManager(session.NewRedisStore(redisClient), cfg.Session)

	tr := i18n.NewTranslator(cfg.Locale)
	if err := account.LoadLocales(tr); err != nil {
		log.Error("Failed to load account locales", logger.Error(err))
		os.Exit(1)
	}
	if err := admin.LoadLocales(tr); err != nil {
		log.Error("Failed to load admin locales", logger.Error(err))
		os.Exit(1)
	}

	accountHandler := account.NewHandler(authSvc, sessions, tr, account.WithLogger(log))
	adminHandler := admin.NewHandler(admin.NewRepos(store), sessions, tr, admin.WithLogger(log))

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", httpserver.HealthCheckHandler(ctx, log))
	r.Get("/readyz", httpserver.HealthCheckHandler(ctx, log,
		mongodb.Healthcheck(mongoClient),
		redisdb.Healthcheck(redisClient),
	))

	r.Mount("/account", accountHandler.Router())
	r.Mount("/admin", adminHandler.Router())
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/admin", http.StatusSeeOther)
	})

	srv := httpserver.NewFromConfig(cfg.HTTP,
		httpserver.WithLogger(log),
		httpserver.WithStartHook(func(l *slog.Logger) {
			l.Info("HTTP server listening", slog.String("addr", cfg.HTTP.Addr))
		}),
		httpserver.WithStopHook(func(l *slog.Logger) {
			l.Info("HTTP server stopped")
		}),
	)

	if err := srv.Run(ctx, r); err != nil {
		log.Error("HTTP server failed", logger.Error(err))
		os.Exit(1)
	}
}
