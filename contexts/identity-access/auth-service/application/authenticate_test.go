package application

import (
	"context"
	"errors"
	"testing"

	"requisite/contexts/identity-access/auth-service/adapters/memory"
	"requisite/contexts/identity-access/auth-service/adapters/token"
	domainerrors "requisite/contexts/identity-access/auth-service/domain/errors"
)

func TestPasswordLoginSucceeds(t *testing.T) {
	store := memory.NewStore()
	seeded := store.SeedUser("local", "owner", "s3cret", false)

	login := PasswordLoginUseCase{Users: store}
	user, err := login.Execute(context.Background(), PasswordLoginQuery{
		Domain:   "local",
		UserName: "owner",
		Password: "s3cret",
	})
	if err != nil {
		t.Fatalf("expected login to succeed, got %v", err)
	}
	if user.ID != seeded.ID {
		t.Fatalf("expected user %d, got %d", seeded.ID, user.ID)
	}
}

func TestPasswordLoginDefaultsDomain(t *testing.T) {
	store := memory.NewStore()
	store.SeedUser("local", "owner", "s3cret", false)

	login := PasswordLoginUseCase{Users: store}
	if _, err := login.Execute(context.Background(), PasswordLoginQuery{
		UserName: "owner",
		Password: "s3cret",
	}); err != nil {
		t.Fatalf("expected empty domain to default to local, got %v", err)
	}
}

func TestPasswordLoginFailuresAreIndistinguishable(t *testing.T) {
	store := memory.NewStore()
	store.SeedUser("local", "owner", "s3cret", false)
	store.SeedUser("local", "gone", "s3cret", true)

	login := PasswordLoginUseCase{Users: store}
	cases := []struct {
		name  string
		query PasswordLoginQuery
	}{
		{"wrong password", PasswordLoginQuery{Domain: "local", UserName: "owner", Password: "wrong"}},
		{"unknown user", PasswordLoginQuery{Domain: "local", UserName: "nobody", Password: "s3cret"}},
		{"revoked user", PasswordLoginQuery{Domain: "local", UserName: "gone", Password: "s3cret"}},
	}
	for _, tc := range cases {
		if _, err := login.Execute(context.Background(), tc.query); !errors.Is(err, domainerrors.ErrNotAuthenticated) {
			t.Fatalf("%s: expected ErrNotAuthenticated, got %v", tc.name, err)
		}
	}
}

func TestVerifyTokenRoundTrip(t *testing.T) {
	store := memory.NewStore()
	seeded := store.SeedUser("local", "owner", "s3cret", false)
	signer, err := token.NewSigner("test-secret", 0, nil)
	if err != nil {
		t.Fatalf("new signer: %v", err)
	}

	signed, err := signer.Sign(seeded)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	verify := VerifyTokenUseCase{Users: store, Tokens: signer}
	user, ok, err := verify.Execute(context.Background(), signed)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if !ok || user.ID != seeded.ID {
		t.Fatalf("expected live identity, got ok=%v user=%v", ok, user)
	}
}

func TestVerifyTokenFailsClosedOnTampering(t *testing.T) {
	store := memory.NewStore()
	seeded := store.SeedUser("local", "owner", "s3cret", false)
	signer, err := token.NewSigner("test-secret", 0, nil)
	if err != nil {
		t.Fatalf("new signer: %v", err)
	}
	signed, err := signer.Sign(seeded)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	verify := VerifyTokenUseCase{Users: store, Tokens: signer}
	for _, bad := range []string{"", "garbage", signed + "x"} {
		if _, ok, err := verify.Execute(context.Background(), bad); ok || err != nil {
			t.Fatalf("expected fail-closed for %q, got ok=%v err=%v", bad, ok, err)
		}
	}
}

func TestVerifyTokenRejectsRevokedUser(t *testing.T) {
	store := memory.NewStore()
	seeded := store.SeedUser("local", "gone", "s3cret", true)
	signer, err := token.NewSigner("test-secret", 0, nil)
	if err != nil {
		t.Fatalf("new signer: %v", err)
	}
	signed, err := signer.Sign(seeded)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	verify := VerifyTokenUseCase{Users: store, Tokens: signer}
	if _, ok, _ := verify.Execute(context.Background(), signed); ok {
		t.Fatalf("expected revoked user to be rejected despite valid token")
	}
}

func TestRegisterThenLogin(t *testing.T) {
	store := memory.NewStore()

	register := RegisterUserUseCase{Users: store}
	if _, err := register.Execute(context.Background(), RegisterUserInput{
		UserName:     "fresh",
		Password:     "pw12345",
		EmailAddress: "fresh@example.com",
	}); err != nil {
		t.Fatalf("register: %v", err)
	}

	login := PasswordLoginUseCase{Users: store}
	if _, err := login.Execute(context.Background(), PasswordLoginQuery{
		UserName: "fresh",
		Password: "pw12345",
	}); err != nil {
		t.Fatalf("expected registered user to log in, got %v", err)
	}
}

func TestRegisterDuplicateUserName(t *testing.T) {
	store := memory.NewStore()
	store.SeedUser("local", "owner", "s3cret", false)

	register := RegisterUserUseCase{Users: store}
	_, err := register.Execute(context.Background(), RegisterUserInput{
		UserName: "owner",
		Password: "pw12345",
	})
	if !errors.Is(err, domainerrors.ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
}
