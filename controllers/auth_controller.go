package controllers

import (
	"net/http"

	"github.com/yashrajoria/storefront/apperrors"
	"github.com/yashrajoria/storefront/middleware"
	"github.com/yashrajoria/storefront/models"

	"github.com/gin-gonic/gin"
)

type AuthController struct {
	auth AuthAPI
}

func NewAuthController(auth AuthAPI) *AuthController {
	return &AuthController{auth: auth}
}

// Register creates a user account and returns the profile with a token.
func (ac *AuthController) Register(c *gin.Context) {
	var req models.RegisterRequest
	if err := bindJSON(c, &req); err != nil {
		respondError(c, err, "Failed to register")
		return
	}

	result, err := ac.auth.Register(c.Request.Context(), req)
	if err != nil {
		respondError(c, err, "Failed to register")
		return
	}
	respond(c, http.StatusCreated, "User registered successfully", result)
}

func (ac *AuthController) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperrors.Validation("Email and password required"), "Failed to login")
		return
	}

	result, err := ac.auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, err, "Failed to login")
		return
	}
	respond(c, http.StatusOK, "Login successful", result)
}

func (ac *AuthController) AdminLogin(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperrors.Validation("Email and password required"), "Failed to login")
		return
	}

	result, err := ac.auth.AdminLogin(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, err, "Failed to login")
		return
	}
	respond(c, http.StatusOK, "Admin login successful", result)
}

// Verify resolves the bearer token to the current user's profile.
func (ac *AuthController) Verify(c *gin.Context) {
	header := c.GetHeader("Authorization")
	if header == "" {
		respondError(c, apperrors.Unauthorized("No token provided"), "Invalid token")
		return
	}
	token, ok := middleware.BearerToken(header)
	if !ok {
		respondError(c, apperrors.Unauthorized("Invalid token"), "Invalid token")
		return
	}

	profile, err := ac.auth.Verify(c.Request.Context(), token)
	if err != nil {
		respondError(c, err, "Invalid token")
		return
	}
	respond(c, http.StatusOK, "", profile)
}

// UpdateMyProfile updates the profile of the token's subject.
func (ac *AuthController) UpdateMyProfile(c *gin.Context) {
	claims, ok := middleware.Claims(c)
	if !ok {
		respondError(c, apperrors.Unauthorized("No token provided"), "Failed to update profile")
		return
	}
	ac.updateProfile(c, claims.UserID)
}

// UpdateProfile updates the profile named by the path; the route is guarded
// so only the owner or an admin reaches it.
func (ac *AuthController) UpdateProfile(c *gin.Context) {
	ac.updateProfile(c, c.Param("userId"))
}

func (ac *AuthController) updateProfile(c *gin.Context, userID string) {
	var update models.ProfileUpdate
	if err := bindJSON(c, &update); err != nil {
		respondError(c, err, "Failed to update profile")
		return
	}

	profile, err := ac.auth.UpdateProfile(c.Request.Context(), userID, update)
	if err != nil {
		respondError(c, err, "Failed to update profile")
		return
	}
	respond(c, http.StatusOK, "Profile updated successfully", profile)
}

func (ac *AuthController) GetProfile(c *gin.Context) {
	profile, err := ac.auth.GetProfile(c.Request.Context(), c.Param("userId"))
	if err != nil {
		respondError(c, err, "Failed to fetch profile")
		return
	}
	respond(c, http.StatusOK, "", profile)
}
