package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	domain "github.com/example/taskboard/domain/user"
)

func setupService(t *testing.T) *AuthService {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := db.AutoMigrate(&domain.User{}); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return NewAuthService(
		NewUserRepository(db),
		NewPasswordHasher(),
		NewJWTManager(testJWTConfig()),
		NewMemoryDenylist(),
	)
}

func TestAuthService_RegisterAndLogin(t *testing.T) {
	s := setupService(t)
	ctx := context.Background()

	user, err := s.Register(ctx, "alice@example.com", "Alice", "password123")
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	if user.ID == "" {
		t.Error("registered user should have an id")
	}
	if user.PasswordHash == "password123" {
		t.Error("password must not be stored in plaintext")
	}

	loggedIn, tokens, err := s.Login(ctx, "alice@example.com", "password123")
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if loggedIn.ID != user.ID {
		t.Errorf("login returned user %q, expected %q", loggedIn.ID, user.ID)
	}
	if tokens.AccessToken == "" || tokens.RefreshToken == "" {
		t.Error("login should return both tokens")
	}
	if tokens.TokenType != "Bearer" {
		t.Errorf("expected Bearer token type, got %q", tokens.TokenType)
	}
}

func TestAuthService_RegisterValidation(t *testing.T) {
	s := setupService(t)
	ctx := context.Background()

	tests := []struct {
		name     string
		email    string
		password string
		wantErr  error
	}{
		{"bad email", "not-an-email", "password123", ErrInvalidEmail},
		{"short password", "bob@example.com", "short", ErrWeakPassword},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.Register(ctx, tt.email, "Bob", tt.password)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Register() error = %v, want %v", err, tt.wantErr)
			}
		})
	}

	t.Run("duplicate email", func(t *testing.T) {
		if _, err := s.Register(ctx, "dup@example.com", "First", "password123"); err != nil {
			t.Fatalf("first Register() error = %v", err)
		}
		if _, err := s.Register(ctx, "dup@example.com", "Second", "password123"); !errors.Is(err, ErrUserExists) {
			t.Errorf("Register() error = %v, want ErrUserExists", err)
		}
	})
}

func TestAuthService_LoginRejectsBadCredentials(t *testing.T) {
	s := setupService(t)
	ctx := context.Background()

	if _, err := s.Register(ctx, "carol@example.com", "Carol", "password123"); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	if _, _, err := s.Login(ctx, "carol@example.com", "wrongpassword"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("wrong password: error = %v, want ErrInvalidCredentials", err)
	}
	if _, _, err := s.Login(ctx, "nobody@example.com", "password123"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("unknown user: error = %v, want ErrInvalidCredentials", err)
	}
}

func TestAuthService_RefreshTokens(t *testing.T) {
	s := setupService(t)
	ctx := context.Background()

	if _, err := s.Register(ctx, "dave@example.com", "Dave", "password123"); err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	_, tokens, err := s.Login(ctx, "dave@example.com", "password123")
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}

	refreshed, err := s.RefreshTokens(ctx, tokens.RefreshToken)
	if err != nil {
		t.Fatalf("RefreshTokens() error = %v", err)
	}
	if refreshed.AccessToken == "" {
		t.Error("refresh should produce a new access token")
	}

	if _, err := s.RefreshTokens(ctx, tokens.AccessToken); err == nil {
		t.Error("an access token must not be usable for refresh")
	}
}

func TestAuthService_LogoutRevokesToken(t *testing.T) {
	s := setupService(t)
	ctx := context.Background()

	if _, err := s.Register(ctx, "erin@example.com", "Erin", "password123"); err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	_, tokens, err := s.Login(ctx, "erin@example.com", "password123")
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}

	if _, err := s.ValidateToken(ctx, tokens.AccessToken); err != nil {
		t.Fatalf("token should validate before logout: %v", err)
	}

	if err := s.Logout(ctx, tokens.AccessToken); err != nil {
		t.Fatalf("Logout() error = %v", err)
	}

	if _, err := s.ValidateToken(ctx, tokens.AccessToken); !errors.Is(err, ErrRevokedToken) {
		t.Errorf("expected ErrRevokedToken after logout, got %v", err)
	}
}

func TestAuthService_LogoutWithInvalidTokenIsNoop(t *testing.T) {
	s := setupService(t)

	// Best-effort semantics: an invalid token never blocks logout.
	if err := s.Logout(context.Background(), "garbage"); err != nil {
		t.Errorf("Logout() with invalid token error = %v, want nil", err)
	}
}

func TestAuthService_UpdateProfile(t *testing.T) {
	s := setupService(t)
	ctx := context.Background()

	user, err := s.Register(ctx, "frank@example.com", "Frank", "password123")
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	newName := "Franklin"
	newEmail := "franklin@example.com"
	updated, err := s.UpdateProfile(ctx, user.ID, &newName, &newEmail)
	if err != nil {
		t.Fatalf("UpdateProfile() error = %v", err)
	}
	if updated.Name != "Franklin" || updated.Email != "franklin@example.com" {
		t.Errorf("unexpected profile after update: %+v", updated)
	}

	t.Run("rejects taken email", func(t *testing.T) {
		if _, err := s.Register(ctx, "taken@example.com", "Other", "password123"); err != nil {
			t.Fatalf("Register() error = %v", err)
		}
		taken := "taken@example.com"
		if _, err := s.UpdateProfile(ctx, user.ID, nil, &taken); !errors.Is(err, ErrUserExists) {
			t.Errorf("expected ErrUserExists, got %v", err)
		}
	})
}

func TestAuthService_ChangePassword(t *testing.T) {
	s := setupService(t)
	ctx := context.Background()

	user, err := s.Register(ctx, "grace@example.com", "Grace", "oldpassword1")
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	if err := s.ChangePassword(ctx, user.ID, "wrongpassword", "newpassword1"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials for wrong current password, got %v", err)
	}

	if err := s.ChangePassword(ctx, user.ID, "oldpassword1", "newpassword1"); err != nil {
		t.Fatalf("ChangePassword() error = %v", err)
	}

	if _, _, err := s.Login(ctx, "grace@example.com", "oldpassword1"); !errors.Is(err, ErrInvalidCredentials) {
		t.Error("old password should no longer work")
	}
	if _, _, err := s.Login(ctx, "grace@example.com", "newpassword1"); err != nil {
		t.Errorf("new password should work: %v", err)
	}
}

func TestMemoryDenylist_Expiry(t *testing.T) {
	d := NewMemoryDenylist()
	ctx := context.Background()

	if err := d.Revoke(ctx, "tok-1", 50*time.Millisecond); err != nil {
		t.Fatalf("Revoke() error = %v", err)
	}

	revoked, err := d.IsRevoked(ctx, "tok-1")
	if err != nil || !revoked {
		t.Fatalf("expected tok-1 revoked, got %v err %v", revoked, err)
	}

	time.Sleep(80 * time.Millisecond)

	revoked, err = d.IsRevoked(ctx, "tok-1")
	if err != nil || revoked {
		t.Errorf("expected tok-1 expired, got %v err %v", revoked, err)
	}

	// Non-positive TTL is a no-op.
	if err := d.Revoke(ctx, "tok-2", -time.Second); err != nil {
		t.Fatalf("Revoke() error = %v", err)
	}
	revoked, _ = d.IsRevoked(ctx, "tok-2")
	if revoked {
		t.Error("non-positive ttl should not revoke")
	}
}
