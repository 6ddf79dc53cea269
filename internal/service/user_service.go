package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"material-store/internal/model"
	"material-store/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	accessTokenTTL  = 24 * time.Hour
	refreshTokenTTL = 7 * 24 * time.Hour
)

// DTOs for request validation
type CreateUserRequest struct {
	UniqueID    string `json:"unique_id" binding:"required"`
	Name        string `json:"name" binding:"required"`
	Designation string `json:"designation"`
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required,min=6"`
	Role        string `json:"role" binding:"required"`
}

type UpdateUserRequest struct {
	UniqueID    string `json:"unique_id"`
	Name        string `json:"name"`
	Designation string `json:"designation"`
	Email       string `json:"email" binding:"omitempty,email"`
	Role        string `json:"role"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=6"`
}

type TokenResponse struct {
	Token        string       `json:"token"`
	RefreshToken string       `json:"refresh_token"`
	User         UserResponse `json:"user"`
}

// UserResponse returns a user without exposing sensitive data
type UserResponse struct {
	ID          uuid.UUID `json:"id"`
	UniqueID    string    `json:"unique_id"`
	Name        string    `json:"name"`
	Designation string    `json:"designation"`
	Email       string    `json:"email"`
	Role        string    `json:"role"`
	CreatedAt   string    `json:"created_at"`
	UpdatedAt   string    `json:"updated_at"`
}

type UserService interface {
	CreateUser(ctx context.Context, actor Actor, req CreateUserRequest) (*UserResponse, error)
	Login(ctx context.Context, req LoginRequest) (*TokenResponse, error)
	Refresh(ctx context.Context, refreshToken string) (*TokenResponse, error)
	Logout(ctx context.Context, refreshToken string) error
	ChangePassword(ctx context.Context, actor Actor, req ChangePasswordRequest) error
	GetUserByID(ctx context.Context, id string) (*UserResponse, error)
	ListUsers(ctx context.Context, actor Actor, page, limit int) ([]UserResponse, int64, error)
	UpdateUser(ctx context.Context, actor Actor, id string, req UpdateUserRequest) (*UserResponse, error)
	DeleteUser(ctx context.Context, actor Actor, id string) error
}

type userService struct {
	repo      repository.UserRepository
	auditRepo repository.AuditRepository
	txManager repository.TransactionManager
}

func NewUserService(repo repository.UserRepository, auditRepo repository.AuditRepository, txManager repository.TransactionManager) UserService {
	return &userService{repo: repo, auditRepo: auditRepo, txManager: txManager}
}

func jwtSecret() []byte {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "default_super_secret_key"
	}
	return []byte(secret)
}

func mapToResponse(user *model.User) *UserResponse {
	return &UserResponse{
		ID:          user.ID,
		UniqueID:    user.UniqueID,
		Name:        user.Name,
		Designation: user.Designation,
		Email:       user.Email,
		Role:        user.Role,
		CreatedAt:   user.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   user.UpdatedAt.Format(time.RFC3339),
	}
}

// CreateUser provisions an account. There is no self-registration: only the
// master creates accounts and assigns their role.
func (s *userService) CreateUser(ctx context.Context, actor Actor, req CreateUserRequest) (*UserResponse, error) {
	if err := actor.require(model.RoleMaster); err != nil {
		return nil, err
	}
	if !model.ValidRole(req.Role) {
		return nil, validationf("invalid role: must be master, caseworker, approver, or consumer")
	}
	if _, err := s.repo.GetByEmail(ctx, req.Email); err == nil {
		return nil, ValidationError("email already exists")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, errors.New("failed to hash password")
	}

	user := &model.User{
		UniqueID:    req.UniqueID,
		Name:        req.Name,
		Designation: req.Designation,
		Email:       req.Email,
		Password:    string(hashedPassword),
		Role:        req.Role,
	}

	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.repo.Create(txCtx, user); err != nil {
			return err
		}
		return s.logUserAction(txCtx, actor, model.ActionCreateUser, user)
	})
	if err != nil {
		return nil, err
	}

	return mapToResponse(user), nil
}

func (s *userService) Login(ctx context.Context, req LoginRequest) (*TokenResponse, error) {
	user, err := s.repo.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, errors.New("invalid email or password")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, errors.New("invalid email or password")
	}
	return s.issueTokens(ctx, user)
}

// Refresh exchanges a valid refresh token for a new token pair. The old
// refresh token is revoked — each token is single-use.
func (s *userService) Refresh(ctx context.Context, refreshToken string) (*TokenResponse, error) {
	stored, err := s.repo.GetRefreshToken(ctx, refreshToken)
	if err != nil {
		return nil, errors.New("invalid refresh token")
	}
	if time.Now().After(stored.ExpiresAt) {
		_ = s.repo.DeleteRefreshToken(ctx, refreshToken)
		return nil, errors.New("refresh token expired")
	}

	user, err := s.repo.GetByID(ctx, stored.UserID.String())
	if err != nil {
		return nil, errors.New("invalid refresh token")
	}
	if err := s.repo.DeleteRefreshToken(ctx, refreshToken); err != nil {
		return nil, err
	}
	return s.issueTokens(ctx, user)
}

func (s *userService) Logout(ctx context.Context, refreshToken string) error {
	return s.repo.DeleteRefreshToken(ctx, refreshToken)
}

func (s *userService) issueTokens(ctx context.Context, user *model.User) (*TokenResponse, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  user.ID.String(),
		"role": user.Role,
		"iat":  now.Unix(),
		"exp":  now.Add(accessTokenTTL).Unix(),
	})
	tokenString, err := token.SignedString(jwtSecret())
	if err != nil {
		return nil, errors.New("failed to generate token")
	}

	raw := make([]byte, 32)
	if _, err := rand.Read(raw); err != nil {
		return nil, errors.New("failed to generate refresh token")
	}
	refresh := &model.RefreshToken{
		UserID:    user.ID,
		Token:     hex.EncodeToString(raw),
		ExpiresAt: now.Add(refreshTokenTTL),
	}
	if err := s.repo.StoreRefreshToken(ctx, refresh); err != nil {
		return nil, err
	}

	// Opportunistic cleanup of tokens past their expiry.
	_ = s.repo.DeleteExpiredRefreshTokens(ctx, now)

	return &TokenResponse{
		Token:        tokenString,
		RefreshToken: refresh.Token,
		User:         *mapToResponse(user),
	}, nil
}

// ChangePassword re-proves the current password before accepting the new one,
// so a stolen session cannot silently rotate the credential.
func (s *userService) ChangePassword(ctx context.Context, actor Actor, req ChangePasswordRequest) error {
	user, err := s.repo.GetByID(ctx, actor.ID.String())
	if err != nil {
		return ErrNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.OldPassword)); err != nil {
		return ValidationError("current password is incorrect")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return errors.New("failed to hash password")
	}
	user.Password = string(hashed)

	return s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.repo.Update(txCtx, user); err != nil {
			return err
		}
		return s.logUserAction(txCtx, actor, model.ActionChangePassword, user)
	})
}

func (s *userService) GetUserByID(ctx context.Context, id string) (*UserResponse, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, ErrNotFound
	}
	return mapToResponse(user), nil
}

func (s *userService) ListUsers(ctx context.Context, actor Actor, page, limit int) ([]UserResponse, int64, error) {
	if err := actor.require(model.RoleMaster); err != nil {
		return nil, 0, err
	}
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 10
	}

	users, total, err := s.repo.List(ctx, page, limit)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]UserResponse, 0, len(users))
	for _, u := range users {
		responses = append(responses, *mapToResponse(&u))
	}
	return responses, total, nil
}

func (s *userService) UpdateUser(ctx context.Context, actor Actor, id string, req UpdateUserRequest) (*UserResponse, error) {
	if err := actor.require(model.RoleMaster); err != nil {
		return nil, err
	}

	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, ErrNotFound
	}

	if req.Role != "" {
		if !model.ValidRole(req.Role) {
			return nil, validationf("invalid role: must be master, caseworker, approver, or consumer")
		}
		user.Role = req.Role
	}
	if req.Email != "" && req.Email != user.Email {
		if _, err := s.repo.GetByEmail(ctx, req.Email); err == nil {
			return nil, ValidationError("email already exists")
		}
		user.Email = req.Email
	}
	if req.UniqueID != "" {
		user.UniqueID = req.UniqueID
	}
	if req.Name != "" {
		user.Name = req.Name
	}
	if req.Designation != "" {
		user.Designation = req.Designation
	}

	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.repo.Update(txCtx, user); err != nil {
			return err
		}
		return s.logUserAction(txCtx, actor, model.ActionUpdateUser, user)
	})
	if err != nil {
		return nil, err
	}

	return mapToResponse(user), nil
}

func (s *userService) DeleteUser(ctx context.Context, actor Actor, id string) error {
	if err := actor.require(model.RoleMaster); err != nil {
		return err
	}
	if actor.ID.String() == id {
		return ValidationError("cannot delete your own account")
	}

	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	return s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.repo.Delete(txCtx, id); err != nil {
			return err
		}
		return s.logUserAction(txCtx, actor, model.ActionDeleteUser, user)
	})
}

func (s *userService) logUserAction(ctx context.Context, actor Actor, action string, user *model.User) error {
	details, _ := json.Marshal(map[string]interface{}{"email": user.Email, "role": user.Role})
	audit := &model.AuditLog{
		UserID:     &actor.ID,
		Action:     action,
		EntityID:   user.ID.String(),
		EntityName: user.Name,
		Details:    string(details),
	}
	if err := s.auditRepo.Log(ctx, audit); err != nil {
		return fmt.Errorf("failed to write audit log: %w", err)
	}
	return nil
}
