package bootstrap

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/DiversioTeam/ClassQuiz/internal/domain"
)

type fakeCreator struct {
	existing map[string]bool
	failOn   string
	created  []string
}

func (f *fakeCreator) CreateUser(_ context.Context, user domain.DevUser) error {
	if user.Username == f.failOn {
		return errors.New("service unavailable")
	}
	if f.existing[user.Username] {
		return domain.ErrUserExists
	}
	f.created = append(f.created, user.Username)
	return nil
}

func TestEnsureUsersIsIdempotent(t *testing.T) {
	creator := &fakeCreator{existing: map[string]bool{"Amal": true}}
	var out strings.Builder

	err := EnsureUsers(context.Background(), creator, DefaultUsers(SharedPassword), &out)
	if err != nil {
		t.Fatalf("ensure: %v", err)
	}
	if len(creator.created) != 4 {
		t.Fatalf("expected 4 new users, got %v", creator.created)
	}
	if !strings.Contains(out.String(), "User already exists, leaving as-is: Amal") {
		t.Fatalf("existing user should be reported:\n%s", out.String())
	}
	if !strings.Contains(out.String(), "Created dev user: Monty <monty.classquiz@gmail.com>") {
		t.Fatalf("created user should be reported:\n%s", out.String())
	}
}

func TestEnsureUsersAbortsOnUnexpectedError(t *testing.T) {
	creator := &fakeCreator{failOn: "Monty"}
	var out strings.Builder

	err := EnsureUsers(context.Background(), creator, DefaultUsers(SharedPassword), &out)
	if err == nil || !strings.Contains(err.Error(), "Monty") {
		t.Fatalf("expected failure naming the user, got %v", err)
	}
	// Amal and Ashish come before Monty, the rest must not be attempted.
	if len(creator.created) != 2 {
		t.Fatalf("expected to stop after the failure, created %v", creator.created)
	}
}

func TestDefaultUsers(t *testing.T) {
	users := DefaultUsers(SharedPassword)
	if len(users) != 5 {
		t.Fatalf("expected 5 shared accounts, got %d", len(users))
	}
	for _, user := range users {
		if user.Password != SharedPassword {
			t.Fatalf("all accounts share one password, got %+v", user)
		}
		if !strings.HasSuffix(user.Email, ".classquiz@gmail.com") {
			t.Fatalf("unexpected email %q", user.Email)
		}
	}
}
