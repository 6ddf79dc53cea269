package service

import (
	"context"
	"testing"

	"material-store/internal/model"
)

func TestCreateUserRoles(t *testing.T) {
	e := newEnv(t)
	master := e.addUser(t, model.RoleMaster)
	consumer := e.addUser(t, model.RoleConsumer)
	ctx := context.Background()

	req := CreateUserRequest{
		UniqueID: "EMP-100",
		Name:     "Asha",
		Email:    "asha@store.test",
		Password: "secret123",
		Role:     model.RoleCaseworker,
	}

	if _, err := e.users.CreateUser(ctx, consumer, req); err != ErrForbidden {
		t.Errorf("consumer create err = %v, want ErrForbidden", err)
	}

	created, err := e.users.CreateUser(ctx, master, req)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.Role != model.RoleCaseworker || created.Email != "asha@store.test" {
		t.Errorf("unexpected user: %+v", created)
	}

	// Duplicate email and invalid role are rejected.
	if _, err := e.users.CreateUser(ctx, master, req); !IsValidation(err) {
		t.Errorf("duplicate email err = %v, want validation error", err)
	}
	bad := req
	bad.Email = "other@store.test"
	bad.Role = "janitor"
	if _, err := e.users.CreateUser(ctx, master, bad); !IsValidation(err) {
		t.Errorf("bad role err = %v, want validation error", err)
	}
}

func TestLoginAndRefresh(t *testing.T) {
	e := newEnv(t)
	master := e.addUser(t, model.RoleMaster)
	ctx := context.Background()

	if _, err := e.users.CreateUser(ctx, master, CreateUserRequest{
		UniqueID: "EMP-101",
		Name:     "Binh",
		Email:    "binh@store.test",
		Password: "secret123",
		Role:     model.RoleApprover,
	}); err != nil {
		t.Fatalf("create: %v", err)
	}

	if _, err := e.users.Login(ctx, LoginRequest{Email: "binh@store.test", Password: "wrong"}); err == nil {
		t.Error("bad password accepted")
	}

	tokens, err := e.users.Login(ctx, LoginRequest{Email: "binh@store.test", Password: "secret123"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if tokens.Token == "" || tokens.RefreshToken == "" {
		t.Fatalf("empty tokens: %+v", tokens)
	}
	if tokens.User.Role != model.RoleApprover {
		t.Errorf("login user role = %q", tokens.User.Role)
	}

	// Refresh rotates: the new pair works, the old refresh token is dead.
	rotated, err := e.users.Refresh(ctx, tokens.RefreshToken)
	if err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if rotated.RefreshToken == tokens.RefreshToken {
		t.Error("refresh token not rotated")
	}
	if _, err := e.users.Refresh(ctx, tokens.RefreshToken); err == nil {
		t.Error("revoked refresh token accepted")
	}

	if err := e.users.Logout(ctx, rotated.RefreshToken); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if _, err := e.users.Refresh(ctx, rotated.RefreshToken); err == nil {
		t.Error("refresh after logout accepted")
	}
}

func TestChangePassword(t *testing.T) {
	e := newEnv(t)
	consumer := e.addUser(t, model.RoleConsumer)
	ctx := context.Background()

	err := e.users.ChangePassword(ctx, consumer, ChangePasswordRequest{
		OldPassword: "nope",
		NewPassword: "newsecret1",
	})
	if !IsValidation(err) {
		t.Errorf("wrong old password err = %v, want validation error", err)
	}

	if err := e.users.ChangePassword(ctx, consumer, ChangePasswordRequest{
		OldPassword: "secret123",
		NewPassword: "newsecret1",
	}); err != nil {
		t.Fatalf("change password: %v", err)
	}

	user, err := e.userRepo.GetByID(ctx, consumer.ID.String())
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if _, err := e.users.Login(ctx, LoginRequest{Email: user.Email, Password: "newsecret1"}); err != nil {
		t.Errorf("login with new password: %v", err)
	}
	if _, err := e.users.Login(ctx, LoginRequest{Email: user.Email, Password: "secret123"}); err == nil {
		t.Error("old password still accepted")
	}
}

func TestDeleteUserRules(t *testing.T) {
	e := newEnv(t)
	master := e.addUser(t, model.RoleMaster)
	consumer := e.addUser(t, model.RoleConsumer)
	ctx := context.Background()

	if err := e.users.DeleteUser(ctx, master, master.ID.String()); !IsValidation(err) {
		t.Errorf("self delete err = %v, want validation error", err)
	}
	if err := e.users.DeleteUser(ctx, master, consumer.ID.String()); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := e.users.GetUserByID(ctx, consumer.ID.String()); err == nil {
		t.Error("deleted user still readable")
	}
}
