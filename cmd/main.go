package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/segmentio/kafka-go"

	"github.com/strategy-canvas/auth-service/internal/gate"
	"github.com/strategy-canvas/auth-service/internal/handlers"
	"github.com/strategy-canvas/auth-service/internal/jwt"
	"github.com/strategy-canvas/auth-service/internal/logger"
	"github.com/strategy-canvas/auth-service/internal/middlewares"
	"github.com/strategy-canvas/auth-service/internal/repositories"
	"github.com/strategy-canvas/auth-service/internal/services"

	_ "github.com/jackc/pgx/v5/stdlib"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/strategy-canvas/auth-service/docs"
)

// Build info variables, set via ldflags at build time.
var (
	buildVersion = "N/A" // Version of the service
	buildDate    = "N/A" // Build date
	buildCommit  = "N/A" // Git commit hash
)

// @title strategy-canvas auth API
// @version 1.0.0
// @description Authentication and credential lifecycle service for the strategy canvas application
// @host localhost:8080
// @BasePath /
// @schemes http
func main() {
	printBuildInfo()
	configPath := parseFlags()

	appHost, appPort, logLevel,
		storageDriver, storageFilePath,
		pgHost, pgPort, pgUser, pgPassword, pgDB,
		pgMaxOpenConns, pgMaxIdleConns,
		redisAddr, redisPassword, redisDB,
		rateLimit, rateWindowSecond,
		kafkaBrokers, kafkaTopic,
		jwtSecret, jwtExpSecond,
		resetBaseURL, cookieSecure,
		err := parseConfig(configPath)
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}

	if err := run(context.Background(),
		appHost, appPort, logLevel,
		storageDriver, storageFilePath,
		pgHost, pgPort, pgUser, pgPassword, pgDB,
		pgMaxOpenConns, pgMaxIdleConns,
		redisAddr, redisPassword, redisDB,
		rateLimit, rateWindowSecond,
		kafkaBrokers, kafkaTopic,
		jwtSecret, jwtExpSecond,
		resetBaseURL, cookieSecure,
	); err != nil {
		log.Fatalf("application stopped with error: %v", err)
	}
}

// printBuildInfo prints the build version, commit hash, and build date.
func printBuildInfo() {
	fmt.Printf("Starting service version %s, commit %s, build %s\n", buildVersion, buildCommit, buildDate)
}

// parseFlags parses command-line flags and returns the config file path.
func parseFlags() string {
	c := flag.String("c", "config.env", "Path to configuration file")
	flag.Parse()
	return *c
}

// parseConfig loads environment variables from a file and returns all
// application, storage, Redis, Kafka, JWT, and cookie configuration.
func parseConfig(path string) (
	appHost, appPort, logLevel string,
	storageDriver, storageFilePath string,
	pgHost string, pgPort int, pgUser, pgPassword, pgDB string,
	pgMaxOpenConns, pgMaxIdleConns int,
	redisAddr, redisPassword string, redisDB int,
	rateLimit, rateWindowSecond int,
	kafkaBrokers, kafkaTopic string,
	jwtSecretKey string, jwtExpSecond int,
	resetBaseURL string, cookieSecure bool,
	err error,
) {
	_ = godotenv.Load(path)

	getEnv := func(key, defaultValue string) string {
		if val, ok := os.LookupEnv(key); ok && val != "" {
			return val
		}
		return defaultValue
	}

	// Application config
	appHost = getEnv("APP_HOST", "localhost")
	appPort = getEnv("APP_PORT", "8080")
	logLevel = getEnv("APP_LOG_LEVEL", "info")

	// Storage config
	storageDriver = getEnv("STORAGE_DRIVER", "file")
	storageFilePath = getEnv("STORAGE_FILE_PATH", "data/users.json")

	// PostgreSQL config, used when STORAGE_DRIVER=postgres
	pgHost = getEnv("POSTGRES_HOST", "localhost")
	pgUser = getEnv("POSTGRES_USER", "user")
	pgPassword = getEnv("POSTGRES_PASSWORD", "password")
	pgDB = getEnv("POSTGRES_DB", "database")
	if pgPort, err = strconv.Atoi(getEnv("POSTGRES_PORT", "5432")); err != nil {
		return
	}
	if pgMaxOpenConns, err = strconv.Atoi(getEnv("POSTGRES_MAX_OPEN_CONNS", "16")); err != nil {
		return
	}
	if pgMaxIdleConns, err = strconv.Atoi(getEnv("POSTGRES_MAX_IDLE_CONNS", "8")); err != nil {
		return
	}

	// Redis config, empty address disables rate limiting
	redisAddr = getEnv("REDIS_ADDR", "")
	redisPassword = getEnv("REDIS_PASSWORD", "")
	if redisDB, err = strconv.Atoi(getEnv("REDIS_DB", "0")); err != nil {
		return
	}
	if rateLimit, err = strconv.Atoi(getEnv("RATE_LIMIT", "10")); err != nil {
		return
	}
	if rateWindowSecond, err = strconv.Atoi(getEnv("RATE_WINDOW_SECOND", "60")); err != nil {
		return
	}

	// Kafka config, empty broker list disables reset notifications
	kafkaBrokers = getEnv("KAFKA_BROKERS", "")
	kafkaTopic = getEnv("KAFKA_TOPIC", "auth.password-reset")

	// JWT config
	jwtSecretKey = getEnv("JWT_SECRET_KEY", "my_super_secret_key")
	if jwtExpSecond, err = strconv.Atoi(getEnv("JWT_EXP_SECOND", "604800")); err != nil {
		return
	}

	// Reset link and cookie config
	resetBaseURL = getEnv("RESET_BASE_URL", fmt.Sprintf("http://%s:%s", appHost, appPort))
	cookieSecure, err = strconv.ParseBool(getEnv("COOKIE_SECURE", "false"))
	return
}

// run initializes the logger, user store, Redis, Kafka, and HTTP server.
// It sets up routes, applies middleware, and handles graceful shutdown.
func run(ctx context.Context,
	appHost, appPort, logLevel string,
	storageDriver, storageFilePath string,
	pgHost string, pgPort int, pgUser, pgPassword, pgDB string,
	pgMaxOpenConns, pgMaxIdleConns int,
	redisAddr, redisPassword string, redisDB int,
	rateLimit, rateWindowSecond int,
	kafkaBrokers, kafkaTopic string,
	jwtSecretKey string, jwtExpSecond int,
	resetBaseURL string, cookieSecure bool,
) error {
	// Initialize logger
	if err := logger.Initialize(logLevel); err != nil {
		fmt.Println("failed to initialize logger:", err)
		return err
	}
	defer logger.Sync()
	log := logger.Log
	log.Infof("Logger initialized with level %s", logLevel)

	// Initialize user store
	var (
		reader services.UserReader
		writer services.UserWriter
	)
	switch storageDriver {
	case "file":
		log.Infof("Using file store at %s", storageFilePath)
		repo := repositories.NewFileUserRepository(storageFilePath)
		reader, writer = repo, repo
	case "postgres":
		dsn := fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
			pgUser, pgPassword, pgHost, pgPort, pgDB)
		log.Infof("Connecting to PostgreSQL: %s", dsn)

		db, err := sqlx.ConnectContext(ctx, "pgx", dsn)
		if err != nil {
			log.Fatal("PostgreSQL connection error:", err)
		}
		defer db.Close()
		db.SetMaxOpenConns(pgMaxOpenConns)
		db.SetMaxIdleConns(pgMaxIdleConns)
		if err := db.PingContext(ctx); err != nil {
			log.Fatal("PostgreSQL ping failed:", err)
		}

		repo := repositories.NewPostgresUserRepository(db)
		reader, writer = repo, repo
	default:
		return fmt.Errorf("unknown storage driver %q", storageDriver)
	}

	// Connect to Redis for login rate limiting
	var limiter *middlewares.RateLimiter
	if redisAddr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     redisAddr,
			Password: redisPassword,
			DB:       redisDB,
		})
		if err := rdb.Ping(ctx).Err(); err != nil {
			log.Fatal("Redis connection error:", err)
		}
		defer rdb.Close()
		limiter = middlewares.NewRateLimiter(rdb, "auth", rateLimit, time.Duration(rateWindowSecond)*time.Second)
		log.Infof("Rate limiting enabled: %d requests per %ds", rateLimit, rateWindowSecond)
	}

	// Connect to Kafka for reset notifications
	var authOpts []services.AuthOption
	authOpts = append(authOpts, services.WithResetBaseURL(resetBaseURL))
	if kafkaBrokers != "" {
		writerKafka := &kafka.Writer{
			Addr:     kafka.TCP(strings.Split(kafkaBrokers, ",")...),
			Topic:    kafkaTopic,
			Balancer: &kafka.LeastBytes{},
		}
		defer writerKafka.Close()
		authOpts = append(authOpts, services.WithKafkaWriter(writerKafka))
		log.Infof("Publishing reset notifications to %s", kafkaTopic)
	}

	// Initialize JWT service
	tokenTTL := time.Duration(jwtExpSecond) * time.Second
	jwtSvc := jwt.New(
		jwt.WithSecretKey(jwtSecretKey),
		jwt.WithExpiration(tokenTTL),
	)

	// Initialize services
	authService := services.NewAuthService(reader, writer, jwtSvc, authOpts...)

	// Initialize handlers
	cookieCfg := handlers.CookieConfig{MaxAge: tokenTTL, Secure: cookieSecure}
	registerHandler := handlers.NewRegisterHandler(authService)
	loginHandler := handlers.NewLoginHandler(authService, cookieCfg)
	logoutHandler := handlers.NewLogoutHandler(cookieCfg)
	meHandler := handlers.NewMeHandler(authService)
	forgotPasswordHandler := handlers.NewForgotPasswordHandler(authService)
	resetPasswordHandler := handlers.NewResetPasswordHandler(authService)

	// Setup router
	r := chi.NewRouter()
	r.Use(chimiddleware.Recoverer)
	r.Use(middlewares.LoggingMiddleware(log))

	r.Route("/api/auth", func(r chi.Router) {
		r.Post("/register", registerHandler)
		r.With(middlewares.RateLimitMiddleware(limiter, "login")).
			Post("/login", loginHandler)
		r.Post("/logout", logoutHandler)
		r.Get("/me", meHandler)
		r.With(middlewares.RateLimitMiddleware(limiter, "forgot-password")).
			Post("/forgot-password", forgotPasswordHandler)
		r.Post("/reset-password", resetPasswordHandler)
	})

	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL(fmt.Sprintf("http://%s:%s/swagger/doc.json", appHost, appPort)),
	))

	// Page routes behind the access gate. The service only hosts the
	// API; page requests that pass the gate are answered with a stub
	// so navigation semantics stay testable without a frontend.
	pageGate := gate.New(jwtSvc)
	r.Group(func(r chi.Router) {
		r.Use(middlewares.GateMiddleware(pageGate))
		page := func(w http.ResponseWriter, req *http.Request) {
			w.Header().Set("Content-Type", "text/plain; charset=utf-8")
			fmt.Fprintln(w, req.URL.Path)
		}
		r.Get("/", page)
		for _, p := range append(gate.DefaultPublicPaths, gate.DefaultProtectedPaths...) {
			r.Get(p, page)
			r.Get(p+"/*", page)
		}
	})

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%s", appHost, appPort),
		Handler: r,
	}

	// Graceful shutdown
	errChan := make(chan error, 1)
	ctxShutdown, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	go func() {
		log.Infof("HTTP server listening on %s:%s", appHost, appPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- fmt.Errorf("HTTP server failed: %w", err)
		}
	}()

	select {
	case <-ctxShutdown.Done():
		log.Info("Shutdown signal received, stopping HTTP server...")
	case serveErr := <-errChan:
		return serveErr
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Errorw("HTTP server shutdown error", "error", err)
	}

	log.Info("HTTP server stopped gracefully")
	return nil
}
