package session

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func signedToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatal(err)
	}
	return tok
}

func TestPeekClaims(t *testing.T) {
	exp := time.Now().Add(time.Hour).Truncate(time.Second)
	tok := signedToken(t, jwt.MapClaims{
		"sub":  "u1",
		"role": "doctor",
		"exp":  exp.Unix(),
	})

	claims, err := PeekClaims(tok)
	if err != nil {
		t.Fatalf("PeekClaims: %v", err)
	}
	if claims.Subject != "u1" || claims.Role != "doctor" {
		t.Errorf("claims = %+v", claims)
	}
	if !claims.ExpiresAt.Equal(exp) {
		t.Errorf("ExpiresAt = %v, want %v", claims.ExpiresAt, exp)
	}
	if claims.Expired(time.Now()) {
		t.Error("token should not be expired yet")
	}
	if !claims.Expired(exp.Add(time.Minute)) {
		t.Error("token should be expired past exp")
	}
}

func TestPeekClaimsIDFallback(t *testing.T) {
	tok := signedToken(t, jwt.MapClaims{"id": "u2"})
	claims, err := PeekClaims(tok)
	if err != nil {
		t.Fatalf("PeekClaims: %v", err)
	}
	if claims.Subject != "u2" {
		t.Errorf("Subject = %q, want id fallback", claims.Subject)
	}
	if claims.Expired(time.Now()) {
		t.Error("token without exp never expires locally")
	}
}

func TestPeekClaimsGarbage(t *testing.T) {
	if _, err := PeekClaims("not.a.token"); err == nil {
		t.Error("garbage token should fail to decode")
	}
}
