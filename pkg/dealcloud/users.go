package dealcloud

import (
	"context"
	"fmt"
	"net/url"

	"go.uber.org/zap"
)

// User is a CRM user-directory record.
type User struct {
	ID    int    `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// UserDirectory resolves email addresses to numeric user ids for User-kind
// fields.
type UserDirectory struct {
	transport Transport
	logger    *zap.Logger
}

// NewUserDirectory creates a user directory client over the given transport.
func NewUserDirectory(transport Transport, logger *zap.Logger) *UserDirectory {
	return &UserDirectory{
		transport: transport,
		logger:    logger.Named("users"),
	}
}

// UsersByEmail fetches directory entries matching an email address.
func (u *UserDirectory) UsersByEmail(ctx context.Context, email string) ([]User, error) {
	params := url.Values{}
	params.Set("email", email)

	var users []User
	if err := u.transport.Get(ctx, "/api/rest/v1/management/user", params, &users); err != nil {
		return nil, fmt.Errorf("look up user by email: %w", err)
	}

	return users, nil
}

// UserIDsByEmail resolves each email to the first matching user id.
// Best-effort: misses and per-email lookup failures are logged and skipped,
// never fatal.
func (u *UserDirectory) UserIDsByEmail(ctx context.Context, emails []string) []int {
	ids := make([]int, 0, len(emails))
	for _, email := range emails {
		users, err := u.UsersByEmail(ctx, email)
		if err != nil {
			u.logger.Warn("User lookup failed, skipping",
				zap.String("email", email),
				zap.Error(err))
			continue
		}
		if len(users) == 0 {
			u.logger.Warn("No CRM user for email, skipping", zap.String("email", email))
			continue
		}
		ids = append(ids, users[0].ID)
	}
	return ids
}
