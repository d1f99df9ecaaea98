package auth

import (
	"context"
	"time"

	"github.com/frahmantamala/hospital-careers/internal"
	userDatamodel "github.com/frahmantamala/hospital-careers/internal/core/datamodel/user"
	"github.com/golang-jwt/jwt/v5"
)

type ServiceAPI interface {
	Authenticate(ctx context.Context, dto LoginDTO) (*AuthTokens, error)
	Verify(tokenString string) (*internal.Identity, error)
}

type RepositoryAPI interface {
	GetByEmail(ctx context.Context, email string) (*userDatamodel.User, error)
	TouchLastLogin(ctx context.Context, userID int64, at time.Time) error
}

// TokenGenerator mints and verifies identity tokens.
type TokenGenerator interface {
	GenerateAccessToken(identity *internal.Identity) (token string, expiresAt time.Time, err error)
	ValidateToken(tokenString string) (*Claims, error)
}

type AuthTokens struct {
	AccessToken string             `json:"access_token"`
	TokenType   string             `json:"token_type"`
	ExpiresAt   time.Time          `json:"expires_at"`
	Identity    *internal.Identity `json:"identity"`
}

// Claims is the identity token payload. The subject is the LINE user id and
// is empty for staff accounts that log in with a password.
type Claims struct {
	UserID int64  `json:"user_id,omitempty"`
	Email  string `json:"email,omitempty"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

func (c *Claims) Identity() *internal.Identity {
	return &internal.Identity{
		UserID: c.UserID,
		LineID: c.Subject,
		Email:  c.Email,
		Role:   c.Role,
	}
}

type JWTTokenGenerator struct {
	Secret         []byte
	AccessTokenTTL time.Duration
	Issuer         string
	now            func() time.Time
}
