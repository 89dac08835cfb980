package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/joystick-informer/backend/internal/domain"
	"golang.org/x/crypto/bcrypt"
)

type fakeUserRepo struct {
	users     map[string]*domain.User
	createErr error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*domain.User)}
}

func (f *fakeUserRepo) Create(ctx context.Context, user *domain.User) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.users[user.Username] = user
	return nil
}

func (f *fakeUserRepo) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	user, ok := f.users[username]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return user, nil
}

type fakeWatchlistRepo struct {
	lists   map[string]*domain.Watchlist
	saveErr error
	saves   int
}

func newFakeWatchlistRepo() *fakeWatchlistRepo {
	return &fakeWatchlistRepo{lists: make(map[string]*domain.Watchlist)}
}

func (f *fakeWatchlistRepo) Get(ctx context.Context, userID string) (*domain.Watchlist, error) {
	list, ok := f.lists[userID]
	if !ok {
		return &domain.Watchlist{UserID: userID, GameIDs: []int{}, RelatedIDs: []int{}}, nil
	}
	return list, nil
}

func (f *fakeWatchlistRepo) Save(ctx context.Context, list *domain.Watchlist) error {
	f.saves++
	if f.saveErr != nil {
		return f.saveErr
	}
	f.lists[list.UserID] = list
	return nil
}

func newTestAuthService(users *fakeUserRepo, lists *fakeWatchlistRepo) *AuthService {
	return NewAuthService(users, lists, "test-secret", time.Hour)
}

func TestRegister(t *testing.T) {
	ctx := context.Background()

	t.Run("valid registration creates account and empty watchlist", func(t *testing.T) {
		users := newFakeUserRepo()
		lists := newFakeWatchlistRepo()
		svc := newTestAuthService(users, lists)

		user, err := svc.Register(ctx, "player1", "hunter22", "player1@example.com")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if user.ID == "" {
			t.Error("user id is empty")
		}
		if user.PasswordHash == "hunter22" {
			t.Error("password stored in plaintext")
		}
		if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("hunter22")); err != nil {
			t.Errorf("stored hash does not verify: %v", err)
		}

		list, _ := lists.Get(ctx, user.ID)
		if len(list.GameIDs) != 0 || len(list.RelatedIDs) != 0 {
			t.Errorf("initial watchlist = %+v, want empty", list)
		}
		if lists.saves != 1 {
			t.Errorf("watchlist saves = %d, want 1", lists.saves)
		}
	})

	t.Run("duplicate username is rejected", func(t *testing.T) {
		users := newFakeUserRepo()
		svc := newTestAuthService(users, newFakeWatchlistRepo())

		if _, err := svc.Register(ctx, "player1", "hunter22", "a@example.com"); err != nil {
			t.Fatalf("first registration failed: %v", err)
		}
		_, err := svc.Register(ctx, "player1", "hunter33", "b@example.com")
		var verr *ValidationError
		if !errors.As(err, &verr) {
			t.Fatalf("error = %v, want *ValidationError", err)
		}
		if verr.Location != "username" || verr.Message != "Username already taken" {
			t.Errorf("validation error = %+v", verr)
		}
	})

	t.Run("field validation", func(t *testing.T) {
		svc := newTestAuthService(newFakeUserRepo(), newFakeWatchlistRepo())

		tests := []struct {
			name     string
			username string
			password string
			email    string
			location string
			message  string
		}{
			{"missing username", "", "hunter22", "a@example.com", "username", "Missing field"},
			{"missing password", "player1", "", "a@example.com", "password", "Missing field"},
			{"missing email", "player1", "hunter22", "", "email", "Missing field"},
			{"padded username", " player1", "hunter22", "a@example.com", "username", "Cannot start or end with whitespace"},
			{"padded password", "player1", "hunter22 ", "a@example.com", "password", "Cannot start or end with whitespace"},
			{"short password", "player1", "abc12", "a@example.com", "password", "Must be at least 6 characters long"},
			{"overlong password", "player1", strings.Repeat("x", 73), "a@example.com", "password", "Must be at most 72 characters long"},
			{"implausible email", "player1", "hunter22", "not-an-email", "email", "Must be a valid email address"},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				_, err := svc.Register(ctx, tt.username, tt.password, tt.email)
				var verr *ValidationError
				if !errors.As(err, &verr) {
					t.Fatalf("error = %v, want *ValidationError", err)
				}
				if verr.Location != tt.location || verr.Message != tt.message {
					t.Errorf("got {%s, %s}, want {%s, %s}", verr.Location, verr.Message, tt.location, tt.message)
				}
				if verr.Code != 422 || verr.Reason != "ValidationError" {
					t.Errorf("envelope = %+v, want code 422 reason ValidationError", verr)
				}
			})
		}
	})
}

func TestLogin(t *testing.T) {
	ctx := context.Background()
	users := newFakeUserRepo()
	svc := newTestAuthService(users, newFakeWatchlistRepo())

	registered, err := svc.Register(ctx, "player1", "hunter22", "player1@example.com")
	if err != nil {
		t.Fatalf("registration failed: %v", err)
	}

	t.Run("valid credentials issue a verifiable token", func(t *testing.T) {
		token, err := svc.Login(ctx, "player1", "hunter22")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		claims, err := svc.ValidateToken(token)
		if err != nil {
			t.Fatalf("issued token does not validate: %v", err)
		}
		if claims.UserID != registered.ID || claims.Username != "player1" {
			t.Errorf("claims = %+v, want registered identity", claims)
		}
		if claims.Subject != "player1" {
			t.Errorf("subject = %q, want username", claims.Subject)
		}
	})

	t.Run("wrong password is rejected", func(t *testing.T) {
		_, err := svc.Login(ctx, "player1", "wrong-password")
		if !errors.Is(err, domain.ErrInvalidCredentials) {
			t.Errorf("error = %v, want ErrInvalidCredentials", err)
		}
	})

	t.Run("unknown user is rejected identically", func(t *testing.T) {
		_, err := svc.Login(ctx, "nobody", "hunter22")
		if !errors.Is(err, domain.ErrInvalidCredentials) {
			t.Errorf("error = %v, want ErrInvalidCredentials", err)
		}
	})
}

func TestValidateToken(t *testing.T) {
	ctx := context.Background()

	t.Run("garbage token is rejected", func(t *testing.T) {
		svc := newTestAuthService(newFakeUserRepo(), newFakeWatchlistRepo())
		_, err := svc.ValidateToken("not.a.token")
		if !errors.Is(err, domain.ErrInvalidToken) {
			t.Errorf("error = %v, want ErrInvalidToken", err)
		}
	})

	t.Run("token signed with a different secret is rejected", func(t *testing.T) {
		users := newFakeUserRepo()
		lists := newFakeWatchlistRepo()
		issuer := NewAuthService(users, lists, "other-secret", time.Hour)
		verifier := newTestAuthService(users, lists)

		if _, err := issuer.Register(ctx, "player1", "hunter22", "a@example.com"); err != nil {
			t.Fatalf("registration failed: %v", err)
		}
		token, err := issuer.Login(ctx, "player1", "hunter22")
		if err != nil {
			t.Fatalf("login failed: %v", err)
		}

		if _, err := verifier.ValidateToken(token); !errors.Is(err, domain.ErrInvalidToken) {
			t.Errorf("error = %v, want ErrInvalidToken", err)
		}
	})

	t.Run("expired token is rejected", func(t *testing.T) {
		users := newFakeUserRepo()
		lists := newFakeWatchlistRepo()
		svc := NewAuthService(users, lists, "test-secret", -time.Hour)

		if _, err := svc.Register(ctx, "player1", "hunter22", "a@example.com"); err != nil {
			t.Fatalf("registration failed: %v", err)
		}
		token, err := svc.Login(ctx, "player1", "hunter22")
		if err != nil {
			t.Fatalf("login failed: %v", err)
		}

		if _, err := svc.ValidateToken(token); !errors.Is(err, domain.ErrInvalidToken) {
			t.Errorf("error = %v, want ErrInvalidToken", err)
		}
	})
}

func TestRefresh(t *testing.T) {
	ctx := context.Background()
	svc := newTestAuthService(newFakeUserRepo(), newFakeWatchlistRepo())

	registered, err := svc.Register(ctx, "player1", "hunter22", "player1@example.com")
	if err != nil {
		t.Fatalf("registration failed: %v", err)
	}
	token, err := svc.Login(ctx, "player1", "hunter22")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	claims, err := svc.ValidateToken(token)
	if err != nil {
		t.Fatalf("token validation failed: %v", err)
	}

	refreshed, err := svc.Refresh(claims)
	if err != nil {
		t.Fatalf("refresh failed: %v", err)
	}
	newClaims, err := svc.ValidateToken(refreshed)
	if err != nil {
		t.Fatalf("refreshed token does not validate: %v", err)
	}
	if newClaims.UserID != registered.ID || newClaims.Username != "player1" {
		t.Errorf("refreshed claims = %+v, want original identity", newClaims)
	}
}
