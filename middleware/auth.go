package middleware

import (
	"context"
	"errors"
	"strings"

	"github.com/yashrajoria/storefront/apperrors"
	"github.com/yashrajoria/storefront/logger"
	"github.com/yashrajoria/storefront/models"
	"github.com/yashrajoria/storefront/repository"
	"github.com/yashrajoria/storefront/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Context keys set by RequireAuth.
const (
	ClaimsKey = "auth_claims"
	UserIDKey = "user_id"
)

type TokenValidator interface {
	ValidateToken(tokenStr string) (*services.TokenClaims, error)
}

// UserLookup is used to re-read the caller's role on every guarded request.
type UserLookup interface {
	FindByID(ctx context.Context, id string) (*models.User, error)
}

// Authorizer builds the bearer-token and role guards.
type Authorizer struct {
	tokens TokenValidator
	users  UserLookup
}

func NewAuthorizer(tokens TokenValidator, users UserLookup) *Authorizer {
	return &Authorizer{tokens: tokens, users: users}
}

// Claims returns the validated token claims of the current request.
func Claims(c *gin.Context) (*services.TokenClaims, bool) {
	v, ok := c.Get(ClaimsKey)
	if !ok {
		return nil, false
	}
	claims, ok := v.(*services.TokenClaims)
	return claims, ok && claims != nil
}

// BearerToken extracts the token from an "Authorization: Bearer <token>" header.
func BearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

// RequireAuth validates the bearer token and stores its claims.
func (a *Authorizer) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			abortWithError(c, apperrors.Unauthorized("No token provided"))
			return
		}
		token, ok := BearerToken(header)
		if !ok {
			abortWithError(c, apperrors.Unauthorized("Invalid token"))
			return
		}
		claims, err := a.tokens.ValidateToken(token)
		if err != nil {
			logger.Debug(c, "Token rejected", zap.Error(err))
			abortWithError(c, apperrors.Unauthorized("Invalid token"))
			return
		}
		c.Set(ClaimsKey, claims)
		c.Set(UserIDKey, claims.UserID)
		c.Next()
	}
}

// RequireRole only lets through callers whose stored role equals role. It
// must run after RequireAuth.
func (a *Authorizer) RequireRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := Claims(c)
		if !ok {
			abortWithError(c, apperrors.Unauthorized("No token provided"))
			return
		}
		has, err := a.hasRole(c.Request.Context(), claims.UserID, role)
		if err != nil {
			abortWithError(c, err)
			return
		}
		if !has {
			abortWithError(c, apperrors.Forbidden("Access denied. Admin only."))
			return
		}
		c.Next()
	}
}

// RequireOwner lets through the user named by the path parameter, or an
// admin. It must run after RequireAuth.
func (a *Authorizer) RequireOwner(param string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := a.CanActFor(c, c.Param(param)); err != nil {
			abortWithError(c, err)
			return
		}
		c.Next()
	}
}

// CanActFor reports whether the authenticated caller may act on behalf of
// userID: either it is their own id or they are an admin.
func (a *Authorizer) CanActFor(c *gin.Context, userID string) error {
	claims, ok := Claims(c)
	if !ok {
		return apperrors.Unauthorized("No token provided")
	}
	if strings.EqualFold(claims.UserID, strings.TrimSpace(userID)) {
		return nil
	}
	admin, err := a.hasRole(c.Request.Context(), claims.UserID, models.RoleAdmin)
	if err != nil {
		return err
	}
	if !admin {
		return apperrors.Forbidden("Access denied")
	}
	return nil
}

func (a *Authorizer) hasRole(ctx context.Context, userID, role string) (bool, error) {
	user, err := a.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return false, apperrors.Unauthorized("Invalid token")
		}
		return false, apperrors.Internal("Failed to authorize request", err)
	}
	return user.Role == role, nil
}

func abortWithError(c *gin.Context, err error) {
	appErr := apperrors.As(err)
	if appErr == nil {
		appErr = apperrors.Internal("Internal server error", err)
	}
	if appErr.Kind == apperrors.KindInternal {
		logger.Error(c, appErr.Message, appErr.Err)
	}
	c.AbortWithStatusJSON(appErr.Code, gin.H{"success": false, "message": appErr.Message})
}
