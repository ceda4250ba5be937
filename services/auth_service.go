package services

import (
	"context"
	"errors"
	"strings"

	"github.com/yashrajoria/storefront/apperrors"
	"github.com/yashrajoria/storefront/models"
	"github.com/yashrajoria/storefront/repository"

	"golang.org/x/crypto/bcrypt"
)

// passwordCost is the bcrypt work factor.
const passwordCost = 10

type ITokenService interface {
	GenerateToken(userID, email, name, role string) (string, error)
	ValidateToken(tokenStr string) (*TokenClaims, error)
}

type AuthService struct {
	userRepo     repository.UserRepo
	tokenService ITokenService
	metrics      MetricsRecorder
}

func NewAuthService(ur repository.UserRepo, ts ITokenService, metrics MetricsRecorder) *AuthService {
	return &AuthService{userRepo: ur, tokenService: ts, metrics: metrics}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *AuthService) Register(ctx context.Context, req models.RegisterRequest) (*models.AuthResult, error) {
	name := strings.TrimSpace(req.Name)
	email := normalizeEmail(req.Email)
	phone := strings.TrimSpace(req.Phone)
	if name == "" || email == "" || req.Password == "" || phone == "" {
		return nil, apperrors.Validation("Name, email, password, and phone are required")
	}

	_, err := s.userRepo.FindByEmail(ctx, email)
	if err == nil {
		return nil, apperrors.Conflict("User already exists")
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, apperrors.Internal("Failed to register", err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), passwordCost)
	if err != nil {
		return nil, apperrors.Internal("Failed to register", err)
	}

	user := &models.User{
		Name:     name,
		Email:    email,
		Password: string(hashedPassword),
		Phone:    phone,
		Address:  strings.TrimSpace(req.Address),
		City:     strings.TrimSpace(req.City),
		State:    strings.TrimSpace(req.State),
		ZipCode:  strings.TrimSpace(req.ZipCode),
		Country:  strings.TrimSpace(req.Country),
		Wishlist: []string{},
		Role:     models.RoleUser,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		// Lost the race against a concurrent registration.
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, apperrors.Conflict("User already exists")
		}
		return nil, apperrors.Internal("Failed to register", err)
	}

	recordCount(s.metrics, MetricUserRegistrations, nil)
	return s.issue(user, "Failed to register")
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*models.AuthResult, error) {
	user, err := s.authenticate(ctx, email, password, "Failed to login")
	if err != nil {
		return nil, err
	}
	return s.issue(user, "Failed to login")
}

// AdminLogin is Login restricted to accounts with the admin role.
func (s *AuthService) AdminLogin(ctx context.Context, email, password string) (*models.AuthResult, error) {
	user, err := s.authenticate(ctx, email, password, "Failed to login")
	if err != nil {
		return nil, err
	}
	if !user.IsAdmin() {
		return nil, apperrors.Forbidden("Access denied. Admin only.")
	}
	return s.issue(user, "Failed to login")
}

// Verify resolves a token back to the user it was issued for.
func (s *AuthService) Verify(ctx context.Context, token string) (*models.PublicProfile, error) {
	claims, err := s.tokenService.ValidateToken(token)
	if err != nil {
		return nil, apperrors.Unauthorized("Invalid token")
	}
	return s.GetProfile(ctx, claims.UserID)
}

func (s *AuthService) GetProfile(ctx context.Context, userID string) (*models.PublicProfile, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, repoErr(err, "User not found", "Failed to fetch profile")
	}
	profile := user.Profile()
	return &profile, nil
}

// UpdateProfile applies the supplied fields and stamps updated_at.
func (s *AuthService) UpdateProfile(ctx context.Context, userID string, update models.ProfileUpdate) (*models.PublicProfile, error) {
	if update.Empty() {
		return nil, apperrors.Validation("No profile fields provided")
	}

	fields := map[string]interface{}{}
	set := func(key string, v *string) {
		if v != nil {
			fields[key] = strings.TrimSpace(*v)
		}
	}
	set("name", update.Name)
	set("phone", update.Phone)
	set("address", update.Address)
	set("city", update.City)
	set("state", update.State)
	set("zip_code", update.ZipCode)
	set("country", update.Country)

	if name, ok := fields["name"]; ok && name == "" {
		return nil, apperrors.Validation("Name cannot be empty")
	}
	if phone, ok := fields["phone"]; ok && phone == "" {
		return nil, apperrors.Validation("Phone cannot be empty")
	}

	user, err := s.userRepo.Update(ctx, userID, fields)
	if err != nil {
		return nil, repoErr(err, "User not found", "Failed to update profile")
	}
	profile := user.Profile()
	return &profile, nil
}

func (s *AuthService) authenticate(ctx context.Context, email, password, internalMsg string) (*models.User, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return nil, apperrors.Validation("Email and password required")
	}

	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, repoErr(err, "User not found", internalMsg)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, apperrors.Unauthorized("Invalid password")
	}
	return user, nil
}

func (s *AuthService) issue(user *models.User, internalMsg string) (*models.AuthResult, error) {
	token, err := s.tokenService.GenerateToken(user.ID.Hex(), user.Email, user.Name, user.Role)
	if err != nil {
		return nil, apperrors.Internal(internalMsg, err)
	}
	return &models.AuthResult{PublicProfile: user.Profile(), Token: token}, nil
}
