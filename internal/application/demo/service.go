package demo

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/mc-parking-api/internal/domain"
	"github.com/mc-parking-api/internal/pkg/record"
)

const (
	keyNIC           = "nic"
	fieldDocumentKey = "document_key"

	documentPrefix = "nic-documents"
	documentURLTTL = 15 * time.Minute
)

type Service interface {
	LookupNIC(ctx context.Context, nic string) (*domain.DemoUserData, error)
	RequestOTP(ctx context.Context, req domain.RequestOTPRequest) (string, error)
	VerifyOTP(ctx context.Context, req domain.VerifyOTPRequest) (*domain.OTPVerification, error)
	ListVerified(ctx context.Context) ([]domain.DemoUserData, error)
	DeleteVerified(ctx context.Context, nic string) error
	UploadDocument(ctx context.Context, nic, filename, contentType string, r io.Reader) (*domain.DemoUserData, error)
	DocumentURL(ctx context.Context, nic string) (string, error)
}

type itemStore interface {
	Scan(ctx context.Context, table string, filter domain.Filter) ([]domain.Item, error)
	GetItem(ctx context.Context, table string, key domain.Item) (domain.Item, error)
	PutItem(ctx context.Context, table string, item domain.Item) error
	UpdateItem(ctx context.Context, table string, key domain.Item, updates map[string]interface{}) (domain.Item, error)
	DeleteItem(ctx context.Context, table string, key domain.Item) error
}

type otpIssuer interface {
	RequestOTP(ctx context.Context, identifier, mobile string) (string, error)
	Check(ctx context.Context, transactionID, code string) (*domain.OTPTransaction, error)
	VerifyOTP(ctx context.Context, transactionID, code string) (*domain.OTPTransaction, error)
}

type documentStore interface {
	Upload(ctx context.Context, key string, r io.Reader, contentType string) error
	PresignedURL(ctx context.Context, key string, ttl time.Duration) (string, error)
	Delete(ctx context.Context, key string) error
}

type service struct {
	store itemStore
	table string
	otp   otpIssuer
	docs  documentStore
	now   func() time.Time
}

type ServiceDeps struct {
	Store     itemStore
	Table     string
	OTP       otpIssuer
	Documents documentStore // optional; uploads fail with ErrBadRequest when nil
}

func NewService(deps ServiceDeps) Service {
	return &service{
		store: deps.Store,
		table: deps.Table,
		otp:   deps.OTP,
		docs:  deps.Documents,
		now:   time.Now,
	}
}

func (s *service) LookupNIC(_ context.Context, nic string) (*domain.DemoUserData, error) {
	u, ok := lookup(nic)
	if !ok {
		return nil, fmt.Errorf("NIC %q not in registry: %w", nic, domain.ErrNotFound)
	}
	return &u, nil
}

// RequestOTP sends the code to req.Mobile, or to the registry's mobile
// number when the identifier is a known NIC and no number was given.
func (s *service) RequestOTP(ctx context.Context, req domain.RequestOTPRequest) (string, error) {
	identifier := strings.TrimSpace(req.Identifier)
	mobile := strings.TrimSpace(req.Mobile)
	if u, ok := lookup(identifier); ok {
		identifier = u.NIC
		if mobile == "" {
			mobile = u.Mobile
		}
	}
	return s.otp.RequestOTP(ctx, identifier, mobile)
}

// VerifyOTP checks the code and, for a registered NIC, stores a verified
// copy of the identity record. The record is written before the transaction
// is consumed, so a failed write leaves the code usable for a retry.
func (s *service) VerifyOTP(ctx context.Context, req domain.VerifyOTPRequest) (*domain.OTPVerification, error) {
	tx, err := s.otp.Check(ctx, req.TransactionID, req.OTP)
	if err != nil {
		return nil, err
	}
	res := &domain.OTPVerification{Verified: true, Identifier: tx.Identifier}
	u, registered := lookup(tx.Identifier)
	if registered {
		at := s.now().UTC()
		u.Verified = true
		u.VerifiedAt = &at
		if tx.Mobile != "" {
			u.Mobile = tx.Mobile
		}
		item, err := record.ToItem(u)
		if err != nil {
			return nil, err
		}
		if err := s.store.PutItem(ctx, s.table, item); err != nil {
			return nil, fmt.Errorf("save verified user %s: %w", u.NIC, err)
		}
	}
	if _, err := s.otp.VerifyOTP(ctx, req.TransactionID, req.OTP); err != nil {
		return nil, err
	}
	if registered {
		res.User = &u
	}
	return res, nil
}

func (s *service) ListVerified(ctx context.Context) ([]domain.DemoUserData, error) {
	items, err := s.store.Scan(ctx, s.table, nil)
	if err != nil {
		return nil, fmt.Errorf("list verified users: %w", err)
	}
	return record.FromItems[domain.DemoUserData](items)
}

func (s *service) DeleteVerified(ctx context.Context, nic string) error {
	u, err := s.get(ctx, nic)
	if err != nil {
		return err
	}
	if err := s.store.DeleteItem(ctx, s.table, domain.Item{keyNIC: u.NIC}); err != nil {
		return fmt.Errorf("delete verified user %s: %w", u.NIC, err)
	}
	if u.DocumentKey != "" && s.docs != nil {
		if err := s.docs.Delete(ctx, u.DocumentKey); err != nil {
			slog.Warn("failed to delete NIC document", "nic", u.NIC, "key", u.DocumentKey, "err", err)
		}
	}
	return nil
}

// UploadDocument stores a scan of the NIC for an already verified user and
// replaces any earlier upload.
func (s *service) UploadDocument(ctx context.Context, nic, filename, contentType string, r io.Reader) (*domain.DemoUserData, error) {
	if s.docs == nil {
		return nil, fmt.Errorf("document storage not configured: %w", domain.ErrBadRequest)
	}
	u, err := s.get(ctx, nic)
	if err != nil {
		return nil, err
	}
	key := fmt.Sprintf("%s/%s/%s%s", documentPrefix, u.NIC, uuid.NewString(), strings.ToLower(path.Ext(filename)))
	if err := s.docs.Upload(ctx, key, r, contentType); err != nil {
		return nil, err
	}
	item, err := s.store.UpdateItem(ctx, s.table, domain.Item{keyNIC: u.NIC}, map[string]interface{}{fieldDocumentKey: key})
	if err != nil {
		return nil, fmt.Errorf("record document for %s: %w", u.NIC, err)
	}
	if u.DocumentKey != "" {
		if err := s.docs.Delete(ctx, u.DocumentKey); err != nil {
			slog.Warn("failed to delete replaced NIC document", "nic", u.NIC, "key", u.DocumentKey, "err", err)
		}
	}
	return decode(item)
}

func (s *service) DocumentURL(ctx context.Context, nic string) (string, error) {
	if s.docs == nil {
		return "", fmt.Errorf("document storage not configured: %w", domain.ErrBadRequest)
	}
	u, err := s.get(ctx, nic)
	if err != nil {
		return "", err
	}
	if u.DocumentKey == "" {
		return "", fmt.Errorf("no document uploaded for %s: %w", u.NIC, domain.ErrNotFound)
	}
	return s.docs.PresignedURL(ctx, u.DocumentKey, documentURLTTL)
}

func (s *service) get(ctx context.Context, nic string) (*domain.DemoUserData, error) {
	item, err := s.store.GetItem(ctx, s.table, domain.Item{keyNIC: normalizeNIC(nic)})
	if err != nil {
		return nil, fmt.Errorf("get verified user %s: %w", nic, err)
	}
	return decode(item)
}

func decode(item domain.Item) (*domain.DemoUserData, error) {
	var u domain.DemoUserData
	if err := record.FromItem(item, &u); err != nil {
		return nil, err
	}
	return &u, nil
}
