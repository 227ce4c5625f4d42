package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/mc-parking-api/internal/application/otp"
	"github.com/mc-parking-api/internal/config"
	"github.com/mc-parking-api/internal/infrastructure/dynamo"
	"github.com/mc-parking-api/internal/infrastructure/gateway"
	"github.com/mc-parking-api/internal/infrastructure/google"
	jwtinfra "github.com/mc-parking-api/internal/infrastructure/jwt"
	"github.com/mc-parking-api/internal/infrastructure/memstore"
	redisinfra "github.com/mc-parking-api/internal/infrastructure/redis"
	s3infra "github.com/mc-parking-api/internal/infrastructure/s3"
	"github.com/mc-parking-api/internal/infrastructure/sns"
	transporthttp "github.com/mc-parking-api/internal/transport/http"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, reading from environment")
	}

	cfg := config.Load()
	ctx := context.Background()
	keys := dynamo.KeySchema(cfg.DynamoTables)

	store, err := newItemStore(ctx, cfg, keys)
	if err != nil {
		log.Fatalf("item store: %v", err)
	}

	// JWT provider (optional: graceful fallback if keys are missing).
	var jwtProvider *jwtinfra.Provider
	if p, err := jwtinfra.NewProvider(cfg); err == nil {
		jwtProvider = p
	} else {
		log.Printf("WARN: JWT provider not available: %v", err)
	}

	var googleVerifier *google.Verifier
	if cfg.GoogleClientID != "" {
		googleVerifier = google.NewVerifier(cfg.GoogleClientID)
	}

	var documents *s3infra.Store
	if cfg.S3BucketName != "" {
		if client, err := s3infra.NewClient(cfg); err == nil {
			documents = s3infra.NewStore(client, cfg.S3BucketName)
		} else {
			log.Printf("WARN: S3 not available, NIC document upload disabled: %v", err)
		}
	}

	var otpStore otp.TransactionStore = otp.NewMemoryStore()
	if cfg.OTPStore == "redis" {
		client, err := redisinfra.NewClient(ctx, cfg)
		if err != nil {
			log.Fatalf("otp store: %v", err)
		}
		defer client.Close()
		otpStore = redisinfra.NewOTPStore(client, cfg.OTPTTL)
	}

	var smsSender sns.SMSSender = sns.LogSender{}
	if cfg.SMSProvider == "sns" {
		if sender, err := sns.NewSender(cfg); err == nil {
			smsSender = sender
		} else {
			log.Printf("WARN: SNS sender not available, logging OTPs instead: %v", err)
		}
	}

	router := transporthttp.NewRouter(cfg, &transporthttp.Deps{
		Store:       store,
		KeySchema:   keys,
		OTPStore:    otpStore,
		SMSSender:   smsSender,
		JWTProvider: jwtProvider,
		Google:      googleVerifier,
		Documents:   documents,
	})

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.AppPort),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Server starting on :%s (env=%s, store=%s)", cfg.AppPort, cfg.AppEnv, cfg.StoreBackend)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("forced shutdown: %v", err)
	}
	log.Println("Server stopped")
}

// newItemStore picks the backend named by STORE_BACKEND.
func newItemStore(ctx context.Context, cfg *config.Config, keys map[string]string) (transporthttp.ItemStore, error) {
	switch cfg.StoreBackend {
	case config.StoreDynamo:
		client, err := dynamo.NewClient(ctx, cfg)
		if err != nil {
			return nil, err
		}
		if cfg.BootstrapTables {
			dynamo.Bootstrap(ctx, client, cfg.DynamoTables)
		}
		return dynamo.NewStore(client), nil
	case config.StoreGateway:
		if cfg.APIGatewayURL == "" {
			return nil, fmt.Errorf("STORE_BACKEND=gateway requires API_GATEWAY_URL")
		}
		return gateway.NewClient(cfg.APIGatewayURL, cfg.APIGatewayAPIKey, cfg.APIGatewayTimeout), nil
	case config.StoreMemory:
		log.Println("WARN: using in-memory store; data is lost on restart")
		return memstore.New(keys)
	default:
		return nil, fmt.Errorf("unknown STORE_BACKEND %q", cfg.StoreBackend)
	}
}
