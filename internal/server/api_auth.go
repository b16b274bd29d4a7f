package server

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	identityapp "github.com/femisayo-autos/autoshop-api/internal/domains/identity/application"
	identitydomain "github.com/femisayo-autos/autoshop-api/internal/domains/identity/domain"
	identityports "github.com/femisayo-autos/autoshop-api/internal/domains/identity/ports"
	"github.com/femisayo-autos/autoshop-api/internal/shared/auth"
)

// AuthAPI implements the sign-up / sign-in / profile section.
type AuthAPI struct {
	service identityports.Service
}

// NewAuthAPI wires dependencies.
func NewAuthAPI(service identityports.Service) AuthAPI {
	return AuthAPI{service: service}
}

type signUpRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"fullName"`
}

type signInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type profileResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	FullName  string    `json:"fullName"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

type sessionResponse struct {
	Token     string          `json:"token"`
	ExpiresAt time.Time       `json:"expiresAt"`
	Profile   profileResponse `json:"profile"`
}

func toProfileResponse(profile *identitydomain.Profile) profileResponse {
	return profileResponse{
		ID:        profile.ID,
		Email:     profile.Email,
		FullName:  profile.FullName,
		Role:      string(profile.Role),
		CreatedAt: profile.CreatedAt,
	}
}

// Post /api/auth/signup
// Register a customer profile
func (api *AuthAPI) SignUp(c *gin.Context) {
	var payload signUpRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	profile, err := api.service.SignUp(c.Request.Context(), payload.Email, payload.Password, payload.FullName)
	if err != nil {
		respondAuthError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toProfileResponse(profile))
}

// Post /api/auth/signin
// Exchange credentials for an access token
func (api *AuthAPI) SignIn(c *gin.Context) {
	var payload signInRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	session, err := api.service.SignIn(c.Request.Context(), payload.Email, payload.Password)
	if err != nil {
		respondAuthError(c, err)
		return
	}
	c.JSON(http.StatusOK, sessionResponse{
		Token:     session.Token,
		ExpiresAt: session.ExpiresAt,
		Profile:   toProfileResponse(session.Profile),
	})
}

// Post /api/auth/signout
// Drop the caller's stored sessions
func (api *AuthAPI) SignOut(c *gin.Context) {
	caller, ok := requireIdentity(c)
	if !ok {
		return
	}
	if err := api.service.SignOut(c.Request.Context(), caller.ID); err != nil {
		respondAuthError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Get /api/profile
// Return the caller's profile
func (api *AuthAPI) GetProfile(c *gin.Context) {
	caller, ok := requireIdentity(c)
	if !ok {
		return
	}
	profile, err := api.service.GetProfile(c.Request.Context(), caller.ID)
	if err != nil {
		respondAuthError(c, err)
		return
	}
	c.JSON(http.StatusOK, toProfileResponse(profile))
}

func respondAuthError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	switch {
	case errors.Is(err, identityapp.ErrAuthentication):
		respondError(c, http.StatusUnauthorized, err)
	case errors.Is(err, auth.ErrUnauthorized):
		respondError(c, http.StatusForbidden, err)
	case errors.Is(err, identityapp.ErrInvalidInput):
		respondError(c, http.StatusBadRequest, err)
	case errors.Is(err, identityports.ErrNotFound):
		respondError(c, http.StatusNotFound, err)
	default:
		respondError(c, http.StatusInternalServerError, err)
	}
}
