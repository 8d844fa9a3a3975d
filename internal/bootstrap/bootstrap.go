// Package bootstrap seeds the shared dev/test accounts on a local ClassQuiz
// instance so every teammate's stack ends up with the same users.
package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/DiversioTeam/ClassQuiz/internal/domain"
)

// SharedPassword is the password every dev account uses.
const SharedPassword = "DevPass123!"

// UserCreator is the slice of the API client the bootstrap needs.
type UserCreator interface {
	CreateUser(ctx context.Context, user domain.DevUser) error
}

// DefaultUsers returns the shared dev accounts, all with the same password.
func DefaultUsers(password string) []domain.DevUser {
	names := []string{"Amal", "Ashish", "Monty", "Umanga", "Muhammad"}
	users := make([]domain.DevUser, 0, len(names))
	for _, name := range names {
		users = append(users, domain.DevUser{
			Username: name,
			Email:    strings.ToLower(name) + ".classquiz@gmail.com",
			Password: password,
		})
	}
	return users
}

// EnsureUsers creates each account, treating "already exists" as success so
// reruns against the same database are safe. Any other failure aborts.
func EnsureUsers(ctx context.Context, api UserCreator, users []domain.DevUser, out io.Writer) error {
	for _, user := range users {
		err := api.CreateUser(ctx, user)
		switch {
		case err == nil:
			fmt.Fprintf(out, "Created dev user: %s <%s>\n", user.Username, user.Email)
		case errors.Is(err, domain.ErrUserExists):
			fmt.Fprintf(out, "User already exists, leaving as-is: %s <%s>\n", user.Username, user.Email)
		default:
			return fmt.Errorf("creating user %s (%s): %w", user.Username, user.Email, err)
		}
	}
	return nil
}
