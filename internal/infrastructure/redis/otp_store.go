package redisinfra

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/mc-parking-api/internal/config"
	"github.com/mc-parking-api/internal/domain"
	"github.com/redis/go-redis/v9"
)

const otpKeyPrefix = "otp:txn:"

// NewClient creates a Redis client and checks connectivity.
func NewClient(ctx context.Context, cfg *config.Config) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return client, nil
}

// OTPStore keeps OTP transactions in Redis so every replica can verify them.
// Keys outlive ExpiresAt by retention, so a late verify still reports
// "expired" instead of "not found".
type OTPStore struct {
	client    *redis.Client
	retention time.Duration
}

func NewOTPStore(client *redis.Client, retention time.Duration) *OTPStore {
	return &OTPStore{client: client, retention: retention}
}

func (s *OTPStore) Put(ctx context.Context, tx *domain.OTPTransaction) error {
	b, err := json.Marshal(tx)
	if err != nil {
		return fmt.Errorf("marshal otp transaction: %w", err)
	}
	ttl := time.Until(tx.ExpiresAt) + s.retention
	if ttl <= 0 {
		ttl = s.retention
	}
	return s.client.Set(ctx, otpKeyPrefix+tx.TransactionID, b, ttl).Err()
}

func (s *OTPStore) Get(ctx context.Context, transactionID string) (*domain.OTPTransaction, error) {
	b, err := s.client.Get(ctx, otpKeyPrefix+transactionID).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, fmt.Errorf("transaction %s: %w", transactionID, domain.ErrNotFound)
		}
		return nil, err
	}
	var tx domain.OTPTransaction
	if err := json.Unmarshal(b, &tx); err != nil {
		return nil, fmt.Errorf("unmarshal otp transaction: %w", err)
	}
	return &tx, nil
}

// Consume deletes the key. DEL is atomic, so of several concurrent callers
// only one sees a removed count of 1.
func (s *OTPStore) Consume(ctx context.Context, transactionID string) (bool, error) {
	n, err := s.client.Del(ctx, otpKeyPrefix+transactionID).Result()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}

func (s *OTPStore) Delete(ctx context.Context, transactionID string) error {
	return s.client.Del(ctx, otpKeyPrefix+transactionID).Err()
}
