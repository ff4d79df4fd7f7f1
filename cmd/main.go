package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	gorillahandlers "github.com/gorilla/handlers"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/segmentio/kafka-go"

	_ "github.com/sbilibin2017/tapin/docs"
	"github.com/sbilibin2017/tapin/internal/facades"
	"github.com/sbilibin2017/tapin/internal/handlers"
	"github.com/sbilibin2017/tapin/internal/jwt"
	"github.com/sbilibin2017/tapin/internal/logger"
	"github.com/sbilibin2017/tapin/internal/mailer"
	"github.com/sbilibin2017/tapin/internal/middlewares"
	"github.com/sbilibin2017/tapin/internal/repositories"
	"github.com/sbilibin2017/tapin/internal/services"

	_ "github.com/jackc/pgx/v5/stdlib"
	httpSwagger "github.com/swaggo/http-swagger"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	"google.golang.org/grpc/health/grpc_health_v1"
)

// Build info variables, set via ldflags at build time.
var (
	buildVersion = "N/A" // Version of the service
	buildDate    = "N/A" // Build date
	buildCommit  = "N/A" // Git commit hash
)

const defaultJWTSecret = "my_super_secret_key"

// config is the full process configuration read from the environment.
type config struct {
	AppHost     string
	AppPort     string
	LogLevel    string
	BaseURL     string
	CORSOrigins []string

	PGHost         string
	PGPort         int
	PGUser         string
	PGPassword     string
	PGDB           string
	PGMaxOpenConns int
	PGMaxIdleConns int

	RedisHost         string
	RedisPort         int
	RedisDB           int
	RedisPassword     string
	RedisPoolSize     int
	RedisMinIdleConns int
	RedisExpSecond    int

	KafkaBrokers       []string
	KafkaListingsTopic string

	GRPCHealthPort string

	JWTSecretKey     string
	JWTExpSecond     int
	JWTRefreshSecond int
	JWTResetSecond   int

	SMTPHost   string
	SMTPPort   int
	SMTPUser   string
	SMTPPass   string
	SMTPFrom   string
	SMTPUseTLS bool

	TicketmasterAPIKey string
	SeatGeekClientID   string
	SerpAPIKey         string
}

// @title Tapin API
// @version 1.0.0
// @description Volunteer matching service: listings, sign-ups, reviews and external event discovery
// @host localhost:8080
// @BasePath /
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	printBuildInfo()
	configPath := parseFlags()

	cfg, err := parseConfig(configPath)
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}

	if err := run(context.Background(), cfg); err != nil {
		log.Fatalf("application stopped with error: %v", err)
	}
}

// printBuildInfo prints the build version, commit hash, and build date.
func printBuildInfo() {
	fmt.Printf("Version: %s\nCommit: %s\nBuild: %s\n", buildVersion, buildCommit, buildDate)
}

// parseFlags parses command-line flags and returns the config file path.
func parseFlags() string {
	c := flag.String("c", "config.env", "Path to configuration file")
	flag.Parse()
	return *c
}

// splitList splits a comma separated value, dropping blanks.
func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// parseConfig loads environment variables from a file and returns
// the application configuration. Real environment variables win over the file.
func parseConfig(path string) (cfg config, err error) {
	_ = godotenv.Load(path)

	getEnv := func(key, defaultValue string) string {
		if val, ok := os.LookupEnv(key); ok && val != "" {
			return val
		}
		return defaultValue
	}
	getInt := func(key, defaultValue string) (int, error) {
		v, err := strconv.Atoi(getEnv(key, defaultValue))
		if err != nil {
			return 0, fmt.Errorf("%s: %w", key, err)
		}
		return v, nil
	}

	// Application config
	cfg.AppHost = getEnv("APP_HOST", "localhost")
	cfg.AppPort = getEnv("APP_PORT", "8080")
	cfg.LogLevel = getEnv("APP_LOG_LEVEL", "info")
	cfg.BaseURL = strings.TrimRight(getEnv("APP_BASE_URL", "http://localhost:8080"), "/")
	cfg.CORSOrigins = splitList(getEnv("CORS_ALLOWED_ORIGINS", "*"))

	// PostgreSQL config
	cfg.PGHost = getEnv("POSTGRES_HOST", "localhost")
	cfg.PGUser = getEnv("POSTGRES_USER", "user")
	cfg.PGPassword = getEnv("POSTGRES_PASSWORD", "password")
	cfg.PGDB = getEnv("POSTGRES_DB", "tapin")
	if cfg.PGPort, err = getInt("POSTGRES_PORT", "5432"); err != nil {
		return
	}
	if cfg.PGMaxOpenConns, err = getInt("POSTGRES_MAX_OPEN_CONNS", "16"); err != nil {
		return
	}
	if cfg.PGMaxIdleConns, err = getInt("POSTGRES_MAX_IDLE_CONNS", "8"); err != nil {
		return
	}

	// Redis config
	cfg.RedisHost = getEnv("REDIS_HOST", "localhost")
	cfg.RedisPassword = getEnv("REDIS_PASSWORD", "")
	if cfg.RedisPort, err = getInt("REDIS_PORT", "6379"); err != nil {
		return
	}
	if cfg.RedisDB, err = getInt("REDIS_DB", "0"); err != nil {
		return
	}
	if cfg.RedisPoolSize, err = getInt("REDIS_POOL_SIZE", "10"); err != nil {
		return
	}
	if cfg.RedisMinIdleConns, err = getInt("REDIS_MIN_IDLE_CONNS", "2"); err != nil {
		return
	}
	if cfg.RedisExpSecond, err = getInt("REDIS_EXP_SECOND", "600"); err != nil {
		return
	}

	// Kafka config
	cfg.KafkaBrokers = splitList(getEnv("KAFKA_BROKERS", ""))
	cfg.KafkaListingsTopic = getEnv("KAFKA_LISTINGS_TOPIC", "listings")

	// gRPC config
	cfg.GRPCHealthPort = getEnv("GRPC_HEALTH_PORT", "50051")

	// JWT config
	cfg.JWTSecretKey = getEnv("JWT_SECRET_KEY", defaultJWTSecret)
	if cfg.JWTExpSecond, err = getInt("JWT_EXP_SECOND", "900"); err != nil {
		return
	}
	if cfg.JWTRefreshSecond, err = getInt("JWT_REFRESH_EXP_SECOND", "2592000"); err != nil {
		return
	}
	if cfg.JWTResetSecond, err = getInt("JWT_RESET_EXP_SECOND", "3600"); err != nil {
		return
	}

	// SMTP config
	cfg.SMTPHost = getEnv("SMTP_HOST", "")
	cfg.SMTPUser = getEnv("SMTP_USER", "")
	cfg.SMTPPass = getEnv("SMTP_PASS", "")
	cfg.SMTPFrom = getEnv("SMTP_FROM", "")
	if cfg.SMTPPort, err = getInt("SMTP_PORT", "587"); err != nil {
		return
	}
	switch strings.ToLower(getEnv("SMTP_USE_TLS", "true")) {
	case "1", "true", "yes":
		cfg.SMTPUseTLS = true
	}

	// Event providers
	cfg.TicketmasterAPIKey = getEnv("TICKETMASTER_API_KEY", "")
	cfg.SeatGeekClientID = getEnv("SEATGEEK_CLIENT_ID", "")
	cfg.SerpAPIKey = getEnv("SERPAPI_API_KEY", "")

	return
}

// eventProviders builds the providers that have credentials configured.
func eventProviders(cfg config) []services.EventProvider {
	var providers []services.EventProvider
	if cfg.TicketmasterAPIKey != "" {
		providers = append(providers, facades.NewTicketmasterFacade(cfg.TicketmasterAPIKey))
	}
	if cfg.SeatGeekClientID != "" {
		providers = append(providers, facades.NewSeatGeekFacade(cfg.SeatGeekClientID))
	}
	if cfg.SerpAPIKey != "" {
		providers = append(providers, facades.NewSerpAPIFacade(cfg.SerpAPIKey))
	}
	return providers
}

// newRouter mounts every HTTP route on a chi router.
func newRouter(cfg config, db *sqlx.DB, tokens *jwt.JWT,
	authService *services.AuthService,
	listingService *services.ListingService,
	signUpService *services.SignUpService,
	reviewService *services.ReviewService,
	eventService *services.EventService,
) http.Handler {
	authMiddleware := middlewares.AuthMiddleware(tokens)
	txMiddleware := middlewares.TxMiddleware(db)

	r := chi.NewRouter()
	r.Use(chimiddleware.Recoverer)
	r.Use(middlewares.LoggingMiddleware)

	// Public routes
	r.Get("/", handlers.NewIndexHandler())
	r.Get("/api/health", handlers.NewHealthHandler(db))
	r.Post("/login", handlers.NewLoginHandler(authService))
	r.Post("/refresh", handlers.NewRefreshHandler(authService, tokens))
	r.Post("/reset-password", handlers.NewPasswordResetHandler(authService))
	r.Get("/listings", handlers.NewListListingsHandler(listingService))
	r.Get("/listings/{id}", handlers.NewGetListingHandler(listingService))
	r.Get("/listings/{id}/reviews", handlers.NewListReviewsHandler(reviewService))
	r.Get("/listings/{id}/average-rating", handlers.NewAverageRatingHandler(reviewService))
	r.Get("/events", handlers.NewSearchEventsHandler(eventService))

	// Public routes that write
	r.Group(func(r chi.Router) {
		r.Use(txMiddleware)
		r.Post("/register", handlers.NewRegisterHandler(authService))
		r.Post("/reset-password/confirm/{token}", handlers.NewPasswordResetConfirmHandler(authService))
	})

	// Protected routes
	r.Group(func(r chi.Router) {
		r.Use(authMiddleware)
		r.Get("/me", handlers.NewMeHandler(authService))
		r.Get("/listings/{id}/signups", handlers.NewListSignUpsHandler(signUpService))

		r.Group(func(r chi.Router) {
			r.Use(txMiddleware)
			r.Post("/listings", handlers.NewCreateListingHandler(listingService))
			r.Put("/listings/{id}", handlers.NewUpdateListingHandler(listingService))
			r.Delete("/listings/{id}", handlers.NewDeleteListingHandler(listingService))
			r.Post("/listings/{id}/signup", handlers.NewCreateSignUpHandler(signUpService))
			r.Put("/signups/{id}", handlers.NewUpdateSignUpStatusHandler(signUpService))
			r.Post("/listings/{id}/reviews", handlers.NewCreateReviewHandler(reviewService))
		})
	})

	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL(fmt.Sprintf("http://%s:%s/swagger/doc.json", cfg.AppHost, cfg.AppPort)),
	))

	cors := gorillahandlers.CORS(
		gorillahandlers.AllowedOrigins(cfg.CORSOrigins),
		gorillahandlers.AllowedMethods([]string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions}),
		gorillahandlers.AllowedHeaders([]string{"Content-Type", "Authorization"}),
	)
	return cors(r)
}

// run initializes the logger, database, Redis, Kafka, gRPC health and HTTP servers.
// It sets up routes, applies middleware, and handles graceful shutdown.
func run(ctx context.Context, cfg config) error {
	// Initialize logger
	if err := logger.Initialize(cfg.LogLevel); err != nil {
		fmt.Println("failed to initialize logger:", err)
		return err
	}
	defer logger.Sync()
	logger.Log.Infof("Logger initialized with level %s", cfg.LogLevel)

	if cfg.JWTSecretKey == defaultJWTSecret {
		logger.Log.Warn("JWT_SECRET_KEY is the development default, set a real secret in production")
	}

	// Connect to PostgreSQL
	dsn := fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		cfg.PGUser, cfg.PGPassword, cfg.PGHost, cfg.PGPort, cfg.PGDB)
	logger.Log.Infof("Connecting to PostgreSQL at %s:%d/%s", cfg.PGHost, cfg.PGPort, cfg.PGDB)

	db, err := sqlx.ConnectContext(ctx, "pgx", dsn)
	if err != nil {
		return fmt.Errorf("PostgreSQL connection error: %w", err)
	}
	defer db.Close()
	db.SetMaxOpenConns(cfg.PGMaxOpenConns)
	db.SetMaxIdleConns(cfg.PGMaxIdleConns)
	if err := repositories.EnsureSchema(ctx, db); err != nil {
		return fmt.Errorf("schema setup failed: %w", err)
	}

	// Connect to Redis; the event cache is optional
	var eventCache services.EventCache
	rdb := redis.NewClient(&redis.Options{
		Addr:         fmt.Sprintf("%s:%d", cfg.RedisHost, cfg.RedisPort),
		Password:     cfg.RedisPassword,
		DB:           cfg.RedisDB,
		PoolSize:     cfg.RedisPoolSize,
		MinIdleConns: cfg.RedisMinIdleConns,
	})
	defer rdb.Close()
	if err := rdb.Ping(ctx).Err(); err != nil {
		logger.Log.Warnw("Redis unavailable, event search runs uncached", "error", err)
	} else {
		eventCache = repositories.NewEventCacheRepository(rdb, time.Duration(cfg.RedisExpSecond)*time.Second)
	}

	// Kafka writer for listing changes; disabled without brokers
	var kafkaWriter services.KafkaWriter
	if len(cfg.KafkaBrokers) > 0 {
		w := &kafka.Writer{
			Addr:                   kafka.TCP(cfg.KafkaBrokers...),
			Topic:                  cfg.KafkaListingsTopic,
			Balancer:               &kafka.Hash{},
			AllowAutoTopicCreation: true,
		}
		defer w.Close()
		kafkaWriter = w
		logger.Log.Infow("Publishing listing changes", "brokers", cfg.KafkaBrokers, "topic", cfg.KafkaListingsTopic)
	}

	// SMTP mailer; without a host the reset link is returned to the caller
	var resetMailer services.Mailer
	if cfg.SMTPHost != "" {
		resetMailer = mailer.NewSMTPMailer(mailer.Config{
			Host:   cfg.SMTPHost,
			Port:   cfg.SMTPPort,
			User:   cfg.SMTPUser,
			Pass:   cfg.SMTPPass,
			From:   cfg.SMTPFrom,
			UseTLS: cfg.SMTPUseTLS,
		})
	}

	// Initialize JWT service
	tokens := jwt.New(
		jwt.WithSecretKey(cfg.JWTSecretKey),
		jwt.WithExpiration(time.Duration(cfg.JWTExpSecond)*time.Second),
		jwt.WithRefreshExpiration(time.Duration(cfg.JWTRefreshSecond)*time.Second),
		jwt.WithResetExpiration(time.Duration(cfg.JWTResetSecond)*time.Second),
	)

	// Initialize repositories
	txGetter := repositories.TxGetter(middlewares.GetTxFromContext)
	userReadRepo := repositories.NewUserReadRepository(db, txGetter)
	userWriteRepo := repositories.NewUserWriteRepository(db, txGetter)
	listingReadRepo := repositories.NewListingReadRepository(db, txGetter)
	listingWriteRepo := repositories.NewListingWriteRepository(db, txGetter)
	signUpReadRepo := repositories.NewSignUpReadRepository(db, txGetter)
	signUpWriteRepo := repositories.NewSignUpWriteRepository(db, txGetter)
	reviewReadRepo := repositories.NewReviewReadRepository(db, txGetter)
	reviewWriteRepo := repositories.NewReviewWriteRepository(db, txGetter)

	// Initialize services
	authService := services.NewAuthService(userReadRepo, userWriteRepo, tokens, resetMailer, cfg.BaseURL)
	listingService := services.NewListingService(listingReadRepo, listingWriteRepo, kafkaWriter,
		services.WithAfterCommit(middlewares.AfterCommit))
	signUpService := services.NewSignUpService(listingReadRepo, signUpReadRepo, signUpWriteRepo)
	reviewService := services.NewReviewService(listingReadRepo, reviewReadRepo, reviewWriteRepo)
	eventService := services.NewEventService(eventCache, eventProviders(cfg)...)

	router := newRouter(cfg, db, tokens, authService, listingService, signUpService, reviewService, eventService)

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%s", cfg.AppHost, cfg.AppPort),
		Handler: router,
	}

	// gRPC health server
	grpcLis, err := net.Listen("tcp", fmt.Sprintf("%s:%s", cfg.AppHost, cfg.GRPCHealthPort))
	if err != nil {
		return fmt.Errorf("gRPC health listener failed: %w", err)
	}
	grpcServer := grpc.NewServer()
	healthServer := health.NewServer()
	grpc_health_v1.RegisterHealthServer(grpcServer, healthServer)
	healthServer.SetServingStatus("", grpc_health_v1.HealthCheckResponse_SERVING)

	// Graceful shutdown
	errChan := make(chan error, 2)
	ctxShutdown, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	go func() {
		logger.Log.Infof("gRPC health server listening on %s", grpcLis.Addr())
		if err := grpcServer.Serve(grpcLis); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
			errChan <- fmt.Errorf("gRPC health server failed: %w", err)
		}
	}()

	go func() {
		logger.Log.Infof("HTTP server listening on %s:%s", cfg.AppHost, cfg.AppPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- fmt.Errorf("HTTP server failed: %w", err)
		}
	}()

	var serveErr error
	select {
	case <-ctxShutdown.Done():
		logger.Log.Info("Shutdown signal received, stopping servers...")
	case serveErr = <-errChan:
	}

	healthServer.Shutdown()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.Errorw("HTTP server shutdown error", "error", err)
	}
	grpcServer.GracefulStop()

	if serveErr != nil {
		return serveErr
	}
	logger.Log.Info("Servers stopped gracefully")
	return nil
}
