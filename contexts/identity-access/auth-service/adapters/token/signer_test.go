package token

import (
	"testing"
	"time"

	"requisite/contexts/identity-access/auth-service/domain/entities"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func TestSignVerifyRoundTrip(t *testing.T) {
	signer, err := NewSigner("test-secret", time.Hour, nil)
	if err != nil {
		t.Fatalf("new signer: %v", err)
	}

	signed, err := signer.Sign(entities.User{Domain: "local", UserName: "owner"})
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	claims, ok := signer.Verify(signed)
	if !ok {
		t.Fatalf("expected verification to succeed")
	}
	if claims.Domain != "local" || claims.UserName != "owner" {
		t.Fatalf("unexpected claims %+v", claims)
	}
}

func TestVerifyRejectsExpiredToken(t *testing.T) {
	clock := &fakeClock{now: time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)}
	signer, err := NewSigner("test-secret", time.Minute, clock)
	if err != nil {
		t.Fatalf("new signer: %v", err)
	}

	signed, err := signer.Sign(entities.User{Domain: "local", UserName: "owner"})
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	clock.now = clock.now.Add(2 * time.Minute)
	if _, ok := signer.Verify(signed); ok {
		t.Fatalf("expected expired token to fail verification")
	}
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	signer, err := NewSigner("test-secret", time.Hour, nil)
	if err != nil {
		t.Fatalf("new signer: %v", err)
	}
	other, err := NewSigner("other-secret", time.Hour, nil)
	if err != nil {
		t.Fatalf("new signer: %v", err)
	}

	signed, err := signer.Sign(entities.User{Domain: "local", UserName: "owner"})
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if _, ok := other.Verify(signed); ok {
		t.Fatalf("expected a different secret to fail verification")
	}
}

func TestNewSignerRequiresSecret(t *testing.T) {
	if _, err := NewSigner("", time.Hour, nil); err == nil {
		t.Fatalf("expected empty secret to be rejected")
	}
}
