package auth

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/mc-parking-api/internal/domain"
	"github.com/mc-parking-api/internal/infrastructure/google"
	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidCredentials hides whether the username or the password was wrong.
var ErrInvalidCredentials = fmt.Errorf("invalid credentials: %w", domain.ErrUnauthorized)

type Service interface {
	Login(ctx context.Context, req domain.LoginRequest) (*domain.AuthResult, error)
	GoogleLogin(ctx context.Context, idToken string) (*domain.AuthResult, error)
}

type checkerLookup interface {
	GetByUsername(ctx context.Context, username string) (*domain.FineChecker, error)
}

type officerLookup interface {
	GetByUsername(ctx context.Context, username string) (*domain.MCOfficer, error)
}

type ownerLookup interface {
	GetByEmail(ctx context.Context, email string) (*domain.VehicleOwner, error)
}

type tokenSigner interface {
	Sign(userID, role, councilID string) (string, error)
}

type googleVerifier interface {
	Verify(ctx context.Context, token string) (*google.Payload, error)
}

type service struct {
	checkers          checkerLookup
	officers          officerLookup
	owners            ownerLookup
	signer            tokenSigner
	google            googleVerifier
	adminUsername     string
	adminPasswordHash string
}

type ServiceDeps struct {
	FineCheckers      checkerLookup
	Officers          officerLookup
	VehicleOwners     ownerLookup
	Signer            tokenSigner
	Google            googleVerifier // optional; Google sign-in is rejected when nil
	AdminUsername     string
	AdminPasswordHash string // bcrypt; admin login is disabled when empty
}

func NewService(deps ServiceDeps) Service {
	return &service{
		checkers:          deps.FineCheckers,
		officers:          deps.Officers,
		owners:            deps.VehicleOwners,
		signer:            deps.Signer,
		google:            deps.Google,
		adminUsername:     deps.AdminUsername,
		adminPasswordHash: deps.AdminPasswordHash,
	}
}

func (s *service) Login(ctx context.Context, req domain.LoginRequest) (*domain.AuthResult, error) {
	// Staff usernames are stored trimmed.
	req.Username = strings.TrimSpace(req.Username)
	switch req.Role {
	case domain.RoleAdmin:
		return s.loginAdmin(req.Username, req.Password)
	case domain.RoleFineChecker:
		fc, err := s.checkers.GetByUsername(ctx, req.Username)
		if err != nil {
			return nil, credentialsError(err)
		}
		if err := checkPassword(fc.PasswordHash, req.Password); err != nil {
			return nil, err
		}
		return s.issue(fc.CheckerID, domain.RoleFineChecker, fc.CouncilID, fc)
	case domain.RoleMCOfficer:
		o, err := s.officers.GetByUsername(ctx, req.Username)
		if err != nil {
			return nil, credentialsError(err)
		}
		if err := checkPassword(o.PasswordHash, req.Password); err != nil {
			return nil, err
		}
		return s.issue(o.OfficerID, domain.RoleMCOfficer, o.CouncilID, o)
	default:
		return nil, fmt.Errorf("unsupported role %q: %w", req.Role, domain.ErrBadRequest)
	}
}

// GoogleLogin signs in a registered vehicle owner whose e-mail matches the
// verified Google account.
func (s *service) GoogleLogin(ctx context.Context, idToken string) (*domain.AuthResult, error) {
	if s.google == nil {
		return nil, fmt.Errorf("google sign-in not configured: %w", domain.ErrUnauthorized)
	}
	p, err := s.google.Verify(ctx, idToken)
	if err != nil {
		return nil, err
	}
	if p.Email == "" || !p.EmailVerified {
		return nil, fmt.Errorf("google account e-mail not verified: %w", domain.ErrUnauthorized)
	}
	vo, err := s.owners.GetByEmail(ctx, p.Email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("no vehicle owner registered for %s: %w", p.Email, domain.ErrNotFound)
		}
		return nil, err
	}
	return s.issue(vo.OwnerID, domain.RoleVehicleOwner, "", vo)
}

func (s *service) loginAdmin(username, password string) (*domain.AuthResult, error) {
	if s.adminPasswordHash == "" {
		slog.Warn("admin login attempted but ADMIN_PASSWORD_HASH is not set")
		return nil, ErrInvalidCredentials
	}
	if subtle.ConstantTimeCompare([]byte(username), []byte(s.adminUsername)) != 1 {
		return nil, ErrInvalidCredentials
	}
	if err := checkPassword(s.adminPasswordHash, password); err != nil {
		return nil, err
	}
	return s.issue(s.adminUsername, domain.RoleAdmin, "", nil)
}

func (s *service) issue(userID, role, councilID string, profile interface{}) (*domain.AuthResult, error) {
	if s.signer == nil {
		return nil, errors.New("token signing not configured")
	}
	token, err := s.signer.Sign(userID, role, councilID)
	if err != nil {
		return nil, fmt.Errorf("sign token: %w", err)
	}
	return &domain.AuthResult{
		Token:     token,
		UserID:    userID,
		Role:      role,
		CouncilID: councilID,
		Profile:   profile,
	}, nil
}

func checkPassword(hash, password string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		return ErrInvalidCredentials
	}
	return nil
}

func credentialsError(err error) error {
	if errors.Is(err, domain.ErrNotFound) {
		return ErrInvalidCredentials
	}
	return err
}
