package repos_test

import (
	"context"
	"errors"
	"testing"

	"tokokita/internal/repos"
)

func TestSignInBindsSession(t *testing.T) {
	db := memdb(t)
	userRepo := repos.NewUserRepo(db)
	ctx := context.Background()

	u, err := userRepo.SignIn(ctx, "sari@tokokita.test", "Passw0rd!", "sid-1")
	if err != nil {
		t.Fatal(err)
	}
	if u.ID != "u-sari" {
		t.Fatalf("want seeded user, got %+v", u)
	}

	got, err := userRepo.SessionUser(ctx, "sid-1")
	if err != nil {
		t.Fatal(err)
	}
	if got.ID != "u-sari" {
		t.Fatalf("session not bound: %+v", got)
	}
}

func TestSignInRejectsBadCredentials(t *testing.T) {
	db := memdb(t)
	userRepo := repos.NewUserRepo(db)
	ctx := context.Background()

	if _, err := userRepo.SignIn(ctx, "sari@tokokita.test", "wrong", "sid-1"); !errors.Is(err, repos.ErrBadCreds) {
		t.Fatalf("want ErrBadCreds for wrong password, got %v", err)
	}
	if _, err := userRepo.SignIn(ctx, "nobody@tokokita.test", "Passw0rd!", "sid-1"); !errors.Is(err, repos.ErrBadCreds) {
		t.Fatalf("want ErrBadCreds for unknown email, got %v", err)
	}
}

func TestSignOutUnbindsSessionOnly(t *testing.T) {
	db := memdb(t)
	userRepo := repos.NewUserRepo(db)
	ctx := context.Background()

	if _, err := userRepo.SignIn(ctx, "sari@tokokita.test", "Passw0rd!", "sid-1"); err != nil {
		t.Fatal(err)
	}
	if err := userRepo.SignOut(ctx, "sid-1"); err != nil {
		t.Fatal(err)
	}

	if _, err := userRepo.SessionUser(ctx, "sid-1"); !errors.Is(err, repos.ErrNoSession) {
		t.Fatalf("want ErrNoSession after sign-out, got %v", err)
	}

	// account untouched, sign-in works again
	if _, err := userRepo.SignIn(ctx, "sari@tokokita.test", "Passw0rd!", "sid-1"); err != nil {
		t.Fatal(err)
	}
}

func TestSignUpRejectsTakenEmail(t *testing.T) {
	db := memdb(t)
	userRepo := repos.NewUserRepo(db)
	profileRepo := repos.NewProfileRepo(db)
	ctx := context.Background()

	if err := userRepo.SignUp(ctx, "budi@tokokita.test", "Passw0rd!"); err != nil {
		t.Fatal(err)
	}
	if err := userRepo.SignUp(ctx, "budi@tokokita.test", "AnotherPass1"); !errors.Is(err, repos.ErrEmailTaken) {
		t.Fatalf("want ErrEmailTaken, got %v", err)
	}

	// new accounts always start as regular users
	u, err := userRepo.SignIn(ctx, "budi@tokokita.test", "Passw0rd!", "sid-2")
	if err != nil {
		t.Fatal(err)
	}
	p, err := profileRepo.Get(ctx, u.ID)
	if err != nil {
		t.Fatal(err)
	}
	if p.IsAdmin() {
		t.Fatalf("fresh sign-up must not be admin: %+v", p)
	}
}
