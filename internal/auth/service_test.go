package auth

import (
	"context"
	"errors"
	"testing"
)

func TestPasswordIsHashedBeforeSaving(t *testing.T) {
	repo := NewInMemoryUserRepository()
	service := NewService(repo)

	password := "Password@123"

	_, err := service.Register(context.Background(), "Test User", "test@example.com", password)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	user := repo.users["test@example.com"]
	if user == nil {
		t.Fatalf("user not found")
	}

	if user.Password == password {
		t.Fatalf("password was stored in plain text")
	}
	if user.Role != RoleCustomer {
		t.Fatalf("expected role %s, got %s", RoleCustomer, user.Role)
	}
}

func TestRegister_Validation(t *testing.T) {
	service := NewService(NewInMemoryUserRepository())
	ctx := context.Background()

	if _, err := service.Register(ctx, "", "a@b.c", "Password@123"); !errors.Is(err, ErrMissingFields) {
		t.Errorf("expected ErrMissingFields, got %v", err)
	}
	if _, err := service.Register(ctx, "A", "a@b.c", "short"); !errors.Is(err, ErrWeakPassword) {
		t.Errorf("expected ErrWeakPassword, got %v", err)
	}
	if _, err := service.Register(ctx, "A", " A@B.c ", "Password@123"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := service.Register(ctx, "B", "a@b.c", "Password@123"); !errors.Is(err, ErrEmailExists) {
		t.Errorf("expected ErrEmailExists for case-folded duplicate, got %v", err)
	}
}

func TestLogin(t *testing.T) {
	service := NewService(NewInMemoryUserRepository())
	ctx := context.Background()

	registered, err := service.Register(ctx, "Test User", "test@example.com", "Password@123")
	if err != nil {
		t.Fatal(err)
	}

	user, err := service.Login(ctx, "TEST@example.com", "Password@123")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.ID != registered.ID {
		t.Fatalf("logged in as wrong user")
	}

	if _, err := service.Login(ctx, "test@example.com", "wrong-password"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials, got %v", err)
	}
	if _, err := service.Login(ctx, "nobody@example.com", "Password@123"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials for unknown user, got %v", err)
	}
}

func TestChangePassword(t *testing.T) {
	service := NewService(NewInMemoryUserRepository())
	ctx := context.Background()

	user, err := service.Register(ctx, "Test User", "test@example.com", "Password@123")
	if err != nil {
		t.Fatal(err)
	}

	if err := service.ChangePassword(ctx, user.ID, "wrong-password", "NewPassword@1"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if err := service.ChangePassword(ctx, user.ID, "Password@123", "NewPassword@1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := service.Login(ctx, "test@example.com", "Password@123"); err == nil {
		t.Fatal("old password still works")
	}
	if _, err := service.Login(ctx, "test@example.com", "NewPassword@1"); err != nil {
		t.Fatalf("new password rejected: %v", err)
	}

	if err := service.ChangePassword(ctx, "missing", "Password@123", "NewPassword@1"); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("expected ErrUserNotFound, got %v", err)
	}
}

func TestEnsureAdmin_IsIdempotent(t *testing.T) {
	repo := NewInMemoryUserRepository()
	service := NewService(repo)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		if err := service.EnsureAdmin(ctx, "admin@example.com", "AdminPass@1"); err != nil {
			t.Fatalf("run %d: unexpected error: %v", i, err)
		}
	}

	if len(repo.users) != 1 {
		t.Fatalf("expected one admin, got %d users", len(repo.users))
	}
	if repo.users["admin@example.com"].Role != RoleAdmin {
		t.Fatalf("seeded account is not an admin")
	}
}
