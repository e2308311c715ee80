package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"bookreview/internal/handlers"
	"bookreview/internal/logger"
	"bookreview/internal/mailer"
	"bookreview/internal/repository"
	"bookreview/internal/repository/db"
	"bookreview/internal/server"
	"bookreview/internal/service"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/viper"
)

func main() {
	// secrets come from the environment; .env is optional in development
	_ = godotenv.Load()

	// load config.yml
	if err := loadConfig(); err != nil {
		logger.Get(logger.InfoLevel).Fatalw("error reading config", "err", err)
	}

	// init logger with the configured level
	log := logger.Get(viper.GetString("log_level"))

	// open DB
	sqlDB, err := openDB(log)
	if err != nil {
		log.Fatalw("failed to init sqlite", "err", err)
	}
	defer func() {
		if cerr := sqlDB.Close(); cerr != nil {
			log.Fatalw("failed to close sqlite", "err", cerr)
		}
	}()

	// redis backs sign-out revocation
	rdb, err := openRedis()
	if err != nil {
		log.Fatalw("failed to connect to redis", "err", err)
	}
	defer func() { _ = rdb.Close() }()

	// wire dependencies
	repos := repository.NewRepository(sqlDB, rdb)
	services := service.NewService(repos, newMailer(log), log, service.Options{
		Auth: service.AuthOptions{
			SigningKey: os.Getenv("JWT_SECRET"),
			TokenTTL:   viper.GetDuration("auth.token_ttl"),
		},
		DefaultPageSize: viper.GetInt("pagination.default_page_size"),
	})
	apiHandler := handlers.NewHandler(services, log)

	// start HTTP server
	srv := &server.Server{}
	runHTTPServer(srv, viper.GetString("port"), apiHandler, log)

	// graceful shutdown
	waitForShutdown(srv, log)
}

func loadConfig() error {
	viper.AddConfigPath("configs") // configs/config.yml
	viper.SetConfigName("config")
	viper.AutomaticEnv()
	return viper.ReadInConfig()
}

// openDB initializes the SQLite database using configuration.
func openDB(log *logger.Logger) (*sql.DB, error) {
	dbPath := viper.GetString("db.path")
	if dbPath == "" {
		log.Infow("db.path not set in config; using default file", "default", "bookreview.db")
		dbPath = "bookreview.db"
	}
	return db.InitDB(dbPath)
}

// openRedis connects the revocation store and fails fast when unreachable.
func openRedis() (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     viper.GetString("redis.addr"),
		Password: os.Getenv("REDIS_PASS"),
		DB:       viper.GetInt("redis.db"),
	})
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, err
	}
	return rdb, nil
}

// newMailer builds the welcome mailer; without an SMTP host mail is dropped.
func newMailer(log *logger.Logger) mailer.Mailer {
	host := viper.GetString("smtp.host")
	if host == "" {
		log.Infow("smtp.host not set; welcome emails disabled")
		return mailer.Noop{}
	}
	return mailer.NewSMTP(mailer.Config{
		Host:     host,
		Port:     viper.GetString("smtp.port"),
		From:     viper.GetString("smtp.from"),
		Username: os.Getenv("SMTP_USER"),
		Password: os.Getenv("SMTP_PASS"),
	})
}

// runHTTPServer runs the HTTP server in a separate goroutine.
func runHTTPServer(srv *server.Server, port string, handler *handlers.Handler, log *logger.Logger) {
	go func() {
		if port == "" {
			port = "8080"
		}
		if err := srv.Run(port, handler.InitRoutes()); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalw("error starting server", "err", err)
		}
	}()
}

// waitForShutdown listens for termination signals and performs graceful shutdown.
func waitForShutdown(srv *server.Server, log *logger.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Infow("shutting down server...")

	// allow in-flight requests to complete
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalw("server forced to shutdown", "err", err)
	}
}
