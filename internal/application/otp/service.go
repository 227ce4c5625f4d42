package otp

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/mc-parking-api/internal/domain"
	"github.com/mc-parking-api/internal/pkg/id"
)

// Verification outcomes. Each wraps a domain error for HTTP mapping.
var (
	ErrTransactionNotFound = fmt.Errorf("otp transaction not found: %w", domain.ErrNotFound)
	ErrExpired             = fmt.Errorf("otp expired: %w", domain.ErrUnauthorized)
	ErrMismatch            = fmt.Errorf("otp mismatch: %w", domain.ErrUnauthorized)
)

// TransactionStore holds pending transactions. Get must return an error
// wrapping domain.ErrNotFound when the id is unknown. Consume removes the
// transaction and reports whether this call was the one that removed it.
type TransactionStore interface {
	Put(ctx context.Context, tx *domain.OTPTransaction) error
	Get(ctx context.Context, transactionID string) (*domain.OTPTransaction, error)
	Consume(ctx context.Context, transactionID string) (bool, error)
	Delete(ctx context.Context, transactionID string) error
}

type smsSender interface {
	SendSMS(ctx context.Context, to, message string) error
}

type Service interface {
	// RequestOTP issues the fixed code for identifier and returns the transaction id.
	RequestOTP(ctx context.Context, identifier, mobile string) (string, error)
	// Check runs the same checks as VerifyOTP but leaves a matching
	// transaction in place.
	Check(ctx context.Context, transactionID, code string) (*domain.OTPTransaction, error)
	// VerifyOTP consumes the transaction when code matches and it has not expired.
	VerifyOTP(ctx context.Context, transactionID, code string) (*domain.OTPTransaction, error)
}

type service struct {
	store  TransactionStore
	sender smsSender
	code   string
	ttl    time.Duration
	now    func() time.Time
}

type Option func(*service)

// WithClock replaces time.Now, for expiry tests.
func WithClock(now func() time.Time) Option {
	return func(s *service) { s.now = now }
}

func NewService(store TransactionStore, sender smsSender, code string, ttl time.Duration, opts ...Option) Service {
	s := &service{
		store:  store,
		sender: sender,
		code:   code,
		ttl:    ttl,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *service) RequestOTP(ctx context.Context, identifier, mobile string) (string, error) {
	if identifier == "" {
		return "", fmt.Errorf("identifier required: %w", domain.ErrBadRequest)
	}
	tx := &domain.OTPTransaction{
		TransactionID: id.New(id.PrefixTransaction),
		OTP:           s.code,
		Identifier:    identifier,
		Mobile:        mobile,
		ExpiresAt:     s.now().Add(s.ttl),
	}
	if err := s.store.Put(ctx, tx); err != nil {
		return "", fmt.Errorf("store otp transaction: %w", err)
	}
	slog.Info("otp issued", "transaction_id", tx.TransactionID, "identifier", identifier, "mobile", maskMobile(mobile))

	if mobile != "" && s.sender != nil {
		msg := fmt.Sprintf("Your verification code is %s. It expires in %d minutes.", tx.OTP, int(s.ttl.Minutes()))
		if err := s.sender.SendSMS(ctx, mobile, msg); err != nil {
			slog.Warn("otp sms delivery failed", "transaction_id", tx.TransactionID, "err", err)
		}
	}
	return tx.TransactionID, nil
}

func (s *service) Check(ctx context.Context, transactionID, code string) (*domain.OTPTransaction, error) {
	tx, err := s.store.Get(ctx, transactionID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, ErrTransactionNotFound
		}
		return nil, err
	}
	if s.now().After(tx.ExpiresAt) {
		if err := s.store.Delete(ctx, transactionID); err != nil {
			slog.Warn("failed to delete expired otp transaction", "transaction_id", transactionID, "err", err)
		}
		return nil, ErrExpired
	}
	if tx.OTP != code {
		return nil, ErrMismatch
	}
	return tx, nil
}

func (s *service) VerifyOTP(ctx context.Context, transactionID, code string) (*domain.OTPTransaction, error) {
	tx, err := s.Check(ctx, transactionID, code)
	if err != nil {
		return nil, err
	}
	// Concurrent verifies of one transaction race here; only the caller that
	// removes the entry succeeds.
	consumed, err := s.store.Consume(ctx, transactionID)
	if err != nil {
		return nil, fmt.Errorf("consume otp transaction: %w", err)
	}
	if !consumed {
		return nil, ErrTransactionNotFound
	}
	return tx, nil
}

func maskMobile(m string) string {
	if len(m) <= 4 {
		return m
	}
	return "****" + m[len(m)-4:]
}
