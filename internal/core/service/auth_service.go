package service

import (
	"context"
	"crypto/subtle"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/luminett/booking-api/internal/core/domain"
	"github.com/luminett/booking-api/internal/core/ports"
)

const (
	adminTokenTTL  = 24 * time.Hour
	clientTokenTTL = 7 * 24 * time.Hour

	minPasswordLen = 6
)

// AuthService implements the two login flows and client self-registration.
// The administrator is a single static credential pair from configuration;
// clients are registered accounts with bcrypt-hashed passwords.
type AuthService struct {
	clients       ports.ClientRepository
	limiter       ports.LoginLimiter
	jwtSecret     string
	adminEmail    string
	adminPassword string
	log           zerolog.Logger
}

func NewAuthService(clients ports.ClientRepository, limiter ports.LoginLimiter, jwtSecret, adminEmail, adminPassword string, log zerolog.Logger) *AuthService {
	return &AuthService{
		clients:       clients,
		limiter:       limiter,
		jwtSecret:     jwtSecret,
		adminEmail:    domain.NormalizeEmail(adminEmail),
		adminPassword: adminPassword,
		log:           log,
	}
}

// AdminLogin checks the static administrator credentials. Failures count
// toward the per-address lockout.
func (s *AuthService) AdminLogin(ctx context.Context, email, password, remoteIP string) (string, error) {
	if err := s.limiter.Check(ctx, remoteIP); err != nil {
		return "", err
	}

	emailOK := domain.NormalizeEmail(email) == s.adminEmail
	passwordOK := subtle.ConstantTimeCompare([]byte(password), []byte(s.adminPassword)) == 1
	if !emailOK || !passwordOK {
		s.recordFailure(ctx, remoteIP)
		return "", domain.ErrInvalidCredentials
	}

	s.clearFailures(ctx, remoteIP)

	token, err := s.signToken(jwt.MapClaims{
		"role": domain.RoleAdmin,
		"exp":  time.Now().Add(adminTokenTTL).Unix(),
	})
	if err != nil {
		return "", err
	}

	s.log.Info().Str("remote_ip", remoteIP).Msg("admin logged in")
	return token, nil
}

// ClientLogin authenticates a registered account.
func (s *AuthService) ClientLogin(ctx context.Context, email, password, remoteIP string) (string, *domain.Client, error) {
	if err := s.limiter.Check(ctx, remoteIP); err != nil {
		return "", nil, err
	}

	client, err := s.clients.FindByEmail(ctx, domain.NormalizeEmail(email))
	if err != nil {
		s.recordFailure(ctx, remoteIP)
		return "", nil, domain.ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(client.PasswordHash), []byte(password)) != nil {
		s.recordFailure(ctx, remoteIP)
		return "", nil, domain.ErrInvalidCredentials
	}

	s.clearFailures(ctx, remoteIP)

	token, err := s.clientToken(client)
	if err != nil {
		return "", nil, err
	}

	s.log.Info().Int64("client_id", client.ID).Msg("client logged in")
	return token, client, nil
}

// RegisterClient creates an account and returns a session token immediately.
func (s *AuthService) RegisterClient(ctx context.Context, input ports.RegisterClientInput) (string, *domain.Client, error) {
	if input.Name == "" || input.Email == "" || input.Password == "" {
		return "", nil, domain.ErrMissingFields
	}
	if len(input.Password) < minPasswordLen {
		return "", nil, domain.ErrWeakPassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return "", nil, err
	}

	client := &domain.Client{
		Name:         input.Name,
		Email:        domain.NormalizeEmail(input.Email),
		Phone:        input.Phone,
		PasswordHash: string(hash),
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.clients.Insert(ctx, client); err != nil {
		return "", nil, err
	}

	token, err := s.clientToken(client)
	if err != nil {
		return "", nil, err
	}

	s.log.Info().Int64("client_id", client.ID).Msg("client registered")
	return token, client, nil
}

func (s *AuthService) clientToken(client *domain.Client) (string, error) {
	return s.signToken(jwt.MapClaims{
		"role":  domain.RoleClient,
		"id":    client.ID,
		"email": client.Email,
		"name":  client.Name,
		"exp":   time.Now().Add(clientTokenTTL).Unix(),
	})
}

func (s *AuthService) signToken(claims jwt.MapClaims) (string, error) {
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}

// Limiter failures are advisory: a broken limiter store must not block logins.
func (s *AuthService) recordFailure(ctx context.Context, key string) {
	if err := s.limiter.RecordFailure(ctx, key); err != nil {
		s.log.Warn().Err(err).Msg("failed to record login failure")
	}
}

func (s *AuthService) clearFailures(ctx context.Context, key string) {
	if err := s.limiter.Clear(ctx, key); err != nil {
		s.log.Warn().Err(err).Msg("failed to clear login failures")
	}
}
