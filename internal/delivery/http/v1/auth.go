package v1

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ekovalev/go-taskhub/internal/models"
	"github.com/ekovalev/go-taskhub/internal/services"
)

type userResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

func newUserResponse(user *models.User) userResponse {
	return userResponse{
		ID:        user.ID,
		Email:     user.Email,
		Name:      user.Name,
		CreatedAt: user.CreatedAt,
	}
}

type tokenResponse struct {
	AccessToken string       `json:"access_token"`
	TokenType   string       `json:"token_type"`
	User        userResponse `json:"user"`
}

func newTokenResponse(result *services.AuthResult) tokenResponse {
	return tokenResponse{
		AccessToken: result.AccessToken,
		TokenType:   "bearer",
		User:        newUserResponse(result.User),
	}
}

type signUpRequest struct {
	Email    string `json:"email" binding:"required,email,max=255"`
	Password string `json:"password" binding:"required,min=6,max=255"`
	Name     string `json:"name" binding:"max=255"`
}

func (h *handlerImpl) HandleSignUp(c *gin.Context) {
	var req signUpRequest
	err := c.ShouldBindJSON(&req)
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to bind json")
		abort(c, newBadRequestError(errInvalidRequestBody.Error()))
		return
	}
	h.logger.Info().
		Str("email", req.Email).
		Msg("signup request")

	result, err := h.auth.Register(c, services.RegisterParams{
		Email:    req.Email,
		Password: req.Password,
		Name:     req.Name,
	})
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to register user")
		switch {
		// The original API reports a taken email as a plain bad
		// request, not a conflict.
		case errors.Is(err, services.ErrUserAlreadyExists):
			abort(c, newBadRequestError(errEmailAlreadyTaken.Error()))
		default:
			abort(c, newStatusTextError(http.StatusInternalServerError))
		}
		return
	}

	c.JSON(http.StatusCreated, newTokenResponse(result))
}

type signInRequest struct {
	Email    string `json:"email" binding:"required,email,max=255"`
	Password string `json:"password" binding:"required,max=255"`
}

func (h *handlerImpl) HandleSignIn(c *gin.Context) {
	var req signInRequest
	err := c.ShouldBindJSON(&req)
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to bind json")
		abort(c, newBadRequestError(errInvalidRequestBody.Error()))
		return
	}

	result, err := h.auth.Login(c, services.LoginParams{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to login")
		switch {
		// An unknown email and a wrong password produce the same
		// response so the endpoint doesn't reveal which emails exist.
		case errors.Is(err, services.ErrUserNotFound),
			errors.Is(err, services.ErrUserPasswordMismatch):
			abort(c, newUnauthorizedError(errInvalidCredentials.Error()))
		default:
			abort(c, newStatusTextError(http.StatusInternalServerError))
		}
		return
	}

	c.JSON(http.StatusOK, newTokenResponse(result))
}

func (h *handlerImpl) HandleMe(c *gin.Context) {
	userID, ok := h.mustGetUserID(c)
	if !ok {
		return
	}

	user, err := h.auth.GetUserByID(c, userID)
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to get user")
		switch {
		case errors.Is(err, services.ErrUserNotFound):
			abort(c, newNotFoundError(errUserNotFound.Error()))
		default:
			abort(c, newStatusTextError(http.StatusInternalServerError))
		}
		return
	}

	c.JSON(http.StatusOK, newUserResponse(user))
}

// HandleSignOut is a stateless no-op. Tokens cannot be revoked
// server-side and remain valid until they expire; clients drop
// the token locally.
func (h *handlerImpl) HandleSignOut(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "signed out successfully",
	})
}
