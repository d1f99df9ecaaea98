package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/frahmantamala/hospital-careers/internal"
	"github.com/frahmantamala/hospital-careers/internal/core/common/validation"
	"github.com/frahmantamala/hospital-careers/internal/core/lifecycle"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

const issuer = "hospital-careers"

// Service authenticates staff accounts and verifies identity tokens.
type Service struct {
	repo           RepositoryAPI
	tokenGenerator TokenGenerator
	bcryptCost     int
	logger         *slog.Logger
}

func NewService(repo RepositoryAPI, tokenGen TokenGenerator, bcryptCost int, logger *slog.Logger) *Service {
	if bcryptCost == 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	return &Service{
		repo:           repo,
		tokenGenerator: tokenGen,
		bcryptCost:     bcryptCost,
		logger:         logger,
	}
}

func NewJWTTokenGenerator(secret string, accessTTL time.Duration) *JWTTokenGenerator {
	return &JWTTokenGenerator{
		Secret:         []byte(secret),
		AccessTokenTTL: accessTTL,
		Issuer:         issuer,
		now:            time.Now,
	}
}

// Authenticate checks a staff email and password and issues a token.
// Applicants sign in through the identity provider and never have a password.
func (s *Service) Authenticate(ctx context.Context, dto LoginDTO) (*AuthTokens, error) {
	dto.Email = strings.ToLower(strings.TrimSpace(dto.Email))
	if appErr := validation.Struct(&dto); appErr != nil {
		return nil, appErr
	}

	u, err := s.repo.GetByEmail(ctx, dto.Email)
	if err != nil {
		s.logger.Error("failed to load user for login", "error", err)
		return nil, internal.ErrInvalidCredentials
	}
	if u == nil || u.PasswordHash == nil {
		return nil, internal.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(*u.PasswordHash), []byte(dto.Password)); err != nil {
		return nil, internal.ErrInvalidCredentials
	}

	identity := &internal.Identity{UserID: u.ID, Email: u.Email, Role: u.Role}
	if u.LineID != nil {
		identity.LineID = *u.LineID
	}
	if !identity.IsStaff() {
		return nil, internal.ErrInvalidCredentials
	}
	if u.Status != string(lifecycle.UserActive) {
		return nil, internal.ErrUserInactive
	}

	token, expiresAt, err := s.tokenGenerator.GenerateAccessToken(identity)
	if err != nil {
		s.logger.Error("failed to sign token", "error", err, "user_id", u.ID)
		return nil, internal.NewInternalError("failed to issue token", err)
	}
	if err := s.repo.TouchLastLogin(ctx, u.ID, time.Now().UTC()); err != nil {
		s.logger.Warn("failed to record last login", "error", err, "user_id", u.ID)
	}
	s.logger.Info("staff logged in", "user_id", u.ID, "role", u.Role)

	return &AuthTokens{AccessToken: token, TokenType: "Bearer", ExpiresAt: expiresAt, Identity: identity}, nil
}

func (s *Service) Verify(tokenString string) (*internal.Identity, error) {
	claims, err := s.tokenGenerator.ValidateToken(tokenString)
	if err != nil {
		return nil, err
	}
	return claims.Identity(), nil
}

// HashPassword creates a bcrypt hash of the password
func (s *Service) HashPassword(password string) (string, error) {
	return HashPassword(password, s.bcryptCost)
}

// Staff password bounds. bcrypt reads at most 72 bytes.
const (
	MinPasswordLength = 8
	MaxPasswordBytes  = 72
)

// HashPassword hashes with the given cost; 0 means bcrypt.DefaultCost.
func HashPassword(password string, cost int) (string, error) {
	v := validation.NewValidator()
	v.Field("password", password).Required().MinLength(MinPasswordLength).Custom(maxBytes("password", MaxPasswordBytes))
	if appErr := v.Validate(); appErr != nil {
		return "", appErr
	}
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func maxBytes(field string, limit int) func(interface{}) *internal.AppError {
	return func(value interface{}) *internal.AppError {
		if s, ok := value.(string); ok && len(s) > limit {
			return internal.NewValidationFieldError(field, fmt.Sprintf("%s must not exceed %d bytes", field, limit), internal.ErrCodeValidationFailed)
		}
		return nil
	}
}

func (j *JWTTokenGenerator) GenerateAccessToken(identity *internal.Identity) (string, time.Time, error) {
	now := j.now()
	expiresAt := now.Add(j.AccessTokenTTL)

	claims := &Claims{
		UserID: identity.UserID,
		Email:  identity.Email,
		Role:   identity.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    j.Issuer,
			Subject:   identity.LineID,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(j.Secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return tokenString, expiresAt, nil
}

// ValidateToken validates a JWT token and returns claims. A token must name
// either a LINE subject or a user id, and carry a known role.
func (j *JWTTokenGenerator) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return j.Secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(j.now))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, internal.ErrTokenExpired
		}
		return nil, internal.ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, internal.ErrInvalidToken
	}
	if claims.Subject == "" && claims.UserID <= 0 {
		return nil, internal.ErrInvalidToken
	}
	role, err := lifecycle.ParseUserRole(claims.Role)
	if err != nil {
		return nil, internal.ErrInvalidToken
	}
	claims.Role = string(role)
	return claims, nil
}
