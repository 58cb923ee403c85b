package auth

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func TestPasswordRoundTrip(t *testing.T) {
	hash, err := HashPassword("pass123")
	if err != nil {
		t.Fatalf("hash failed: %v", err)
	}
	if hash == "pass123" {
		t.Fatal("hash must not equal the plaintext")
	}
	if err := CheckPassword(hash, "pass123"); err != nil {
		t.Fatalf("expected password to verify: %v", err)
	}
	if err := CheckPassword(hash, "wrongpass"); err == nil {
		t.Fatal("expected mismatch for wrong password")
	}
}

func TestHashPasswordSalts(t *testing.T) {
	first, err := HashPassword("pass123")
	if err != nil {
		t.Fatalf("hash failed: %v", err)
	}
	second, err := HashPassword("pass123")
	if err != nil {
		t.Fatalf("hash failed: %v", err)
	}
	if first == second {
		t.Fatal("expected per-record salt to produce distinct hashes")
	}
}

func TestHashPasswordTooShort(t *testing.T) {
	if _, err := HashPassword("abc"); !errors.Is(err, ErrPasswordTooShort) {
		t.Fatalf("expected ErrPasswordTooShort, got %v", err)
	}
}

func TestTokenRoundTrip(t *testing.T) {
	token, err := GenerateToken("secret", Claims{UserID: "u1", EmployeeID: "E100"}, time.Hour)
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	claims, err := ParseToken("secret", token)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if claims.UserID != "u1" || claims.EmployeeID != "E100" {
		t.Fatalf("claims mismatch: %+v", claims)
	}
}

func TestTokenExpired(t *testing.T) {
	token, err := GenerateToken("secret", Claims{UserID: "u1", EmployeeID: "E100"}, -time.Minute)
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	if _, err := ParseToken("secret", token); err == nil {
		t.Fatal("expected expired token to fail verification")
	}
}

func TestTokenTampered(t *testing.T) {
	token, err := GenerateToken("secret", Claims{UserID: "u1", EmployeeID: "E100"}, time.Hour)
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		t.Fatalf("unexpected token shape: %q", token)
	}
	parts[2] = "x" + parts[2][1:]
	if _, err := ParseToken("secret", strings.Join(parts, ".")); err == nil {
		t.Fatal("expected tampered signature to fail verification")
	}
}

func TestTokenWrongSecret(t *testing.T) {
	token, err := GenerateToken("secret", Claims{UserID: "u1", EmployeeID: "E100"}, time.Hour)
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	if _, err := ParseToken("other", token); err == nil {
		t.Fatal("expected verification with another secret to fail")
	}
}
