package profileform

import (
	"context"
	"strings"

	"github.com/frahmantamala/hospital-careers/internal"
)

// UserLookup finds a registered user by lower-cased email.
type UserLookup interface {
	FindUserIDByEmail(ctx context.Context, email string) (*int64, error)
}

// LinkUser picks the account a submitted form belongs to. A signed-in
// applicant owns what they submit; otherwise the form email is matched
// against registered users. Staff submitting on someone's behalf never
// become the owner.
func LinkUser(ctx context.Context, users UserLookup, identity *internal.Identity, email string) (*int64, error) {
	if identity != nil && identity.UserID > 0 && !identity.IsStaff() {
		id := identity.UserID
		return &id, nil
	}
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil, nil
	}
	return users.FindUserIDByEmail(ctx, email)
}
