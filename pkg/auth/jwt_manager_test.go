package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

func TestNewJWTManagerRejectsEmptySecret(t *testing.T) {
	if _, err := NewJWTManager("", time.Hour); err == nil {
		t.Fatal("NewJWTManager(\"\") error = nil, want error")
	}
}

func TestGenerateVerifyRoundTrip(t *testing.T) {
	m, err := NewJWTManager("test-secret", time.Hour)
	if err != nil {
		t.Fatalf("NewJWTManager() error = %v", err)
	}

	token, err := m.Generate("user-123", "johndoe")
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	claims, err := m.Verify(token)
	if err != nil {
		t.Fatalf("Verify() error = %v", err)
	}
	if claims.Subject != "user-123" {
		t.Fatalf("Subject = %q, want %q", claims.Subject, "user-123")
	}
	if claims.Username != "johndoe" {
		t.Fatalf("Username = %q, want %q", claims.Username, "johndoe")
	}
}

func TestVerifyWrongSecret(t *testing.T) {
	m1, _ := NewJWTManager("secret-one", time.Hour)
	m2, _ := NewJWTManager("secret-two", time.Hour)

	token, err := m1.Generate("user-123", "johndoe")
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	if _, err := m2.Verify(token); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("Verify() error = %v, want ErrTokenInvalid", err)
	}
}

func TestVerifyExpiredToken(t *testing.T) {
	m, _ := NewJWTManager("test-secret", -time.Minute)

	token, err := m.Generate("user-123", "johndoe")
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	if _, err := m.Verify(token); !errors.Is(err, ErrTokenExpired) {
		t.Fatalf("Verify() error = %v, want ErrTokenExpired", err)
	}
}

func TestVerifyGarbage(t *testing.T) {
	m, _ := NewJWTManager("test-secret", time.Hour)
	if _, err := m.Verify("not.a.token"); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("Verify() error = %v, want ErrTokenInvalid", err)
	}
}

func TestVerifyMissingClaims(t *testing.T) {
	m, _ := NewJWTManager("test-secret", time.Hour)

	// Token signed with the same secret but without subject/username.
	raw := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		IssuedAt:  jwt.NewNumericDate(time.Now()),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})
	token, err := raw.SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("SignedString() error = %v", err)
	}

	if _, err := m.Verify(token); !errors.Is(err, ErrTokenMalformed) {
		t.Fatalf("Verify() error = %v, want ErrTokenMalformed", err)
	}
}

func TestVerifyMissingExpiry(t *testing.T) {
	m, _ := NewJWTManager("test-secret", time.Hour)

	// Корректно подписанный токен с subject и username, но без exp:
	// jwt/v4 считает exp необязательным, мы — нет.
	raw := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		Username: "johndoe",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:  "user-123",
			IssuedAt: jwt.NewNumericDate(time.Now()),
		},
	})
	token, err := raw.SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("SignedString() error = %v", err)
	}

	if _, err := m.Verify(token); !errors.Is(err, ErrTokenMalformed) {
		t.Fatalf("Verify(no exp) error = %v, want ErrTokenMalformed", err)
	}
}
