package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/abdulrafayKhan-10/EventSphere-Management-System/internal/application"
	"github.com/abdulrafayKhan-10/EventSphere-Management-System/internal/interface/middleware"
	"github.com/abdulrafayKhan-10/EventSphere-Management-System/pkg/response"
	"github.com/abdulrafayKhan-10/EventSphere-Management-System/pkg/validation"
)

type AccountHandler struct {
	Svc    *application.Service
	Logger *logrus.Logger
}

func NewAccountHandler(svc *application.Service, logger *logrus.Logger) *AccountHandler {
	return &AccountHandler{Svc: svc, Logger: logger}
}

type registerRequest struct {
	Name         string `json:"name" binding:"required"`
	Email        string `json:"email" binding:"required"`
	Password     string `json:"password" binding:"required"`
	Role         string `json:"role" binding:"required"`
	Phone        string `json:"phone"`
	Organization string `json:"organization"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type updateProfileRequest struct {
	Name           string `json:"name"`
	Phone          string `json:"phone"`
	ProfilePicture string `json:"profile_picture"`
	Organization   string `json:"organization"`
}

type verifyEmailRequest struct {
	Token string `json:"token" binding:"required"`
}

type tokenPayload struct {
	Token string              `json:"token"`
	User  application.Profile `json:"user"`
}

// Register handles POST /api/users/register.
func (h *AccountHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	p, token, err := h.Svc.Register(c.Request.Context(), application.RegisterInput{
		Name:         req.Name,
		Email:        req.Email,
		Password:     req.Password,
		Role:         req.Role,
		Phone:        req.Phone,
		Organization: req.Organization,
	})
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, tokenPayload{Token: token, User: *p}, "User created successfully")
}

// Login handles POST /api/users/login.
func (h *AccountHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	p, token, err := h.Svc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, tokenPayload{Token: token, User: *p}, "Login successful")
}

// VerifyEmail handles POST /api/users/verify-email.
func (h *AccountHandler) VerifyEmail(c *gin.Context) {
	var req verifyEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	if err := h.Svc.VerifyEmail(c.Request.Context(), req.Token); err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"verified": true}, "Email verified successfully")
}

// GetProfile handles GET /api/users/profile for the authenticated caller.
func (h *AccountHandler) GetProfile(c *gin.Context) {
	p, err := h.Svc.GetProfile(c.GetString(middleware.CtxAccountIDKey))
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, p, "profile")
}

// UpdateProfile handles PUT /api/users/profile. Empty fields are left
// untouched.
func (h *AccountHandler) UpdateProfile(c *gin.Context) {
	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	p, err := h.Svc.UpdateProfile(c.Request.Context(), c.GetString(middleware.CtxAccountIDKey), application.UpdateProfileInput{
		Name:           req.Name,
		Phone:          req.Phone,
		ProfilePicture: req.ProfilePicture,
		Organization:   req.Organization,
	})
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, p, "User updated successfully")
}

// UploadPicture handles POST /api/users/profile/picture (multipart).
func (h *AccountHandler) UploadPicture(c *gin.Context) {
	file, header, err := c.Request.FormFile("picture")
	if err != nil {
		response.Error(c, http.StatusBadRequest, "picture file is required", nil)
		return
	}
	defer func() { _ = file.Close() }()

	contentType := header.Header.Get("Content-Type")
	p, err := h.Svc.UploadPicture(c.Request.Context(), c.GetString(middleware.CtxAccountIDKey), file, header.Filename, contentType)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, p, "Profile picture updated")
}

func (h *AccountHandler) writeError(c *gin.Context, err error) {
	writeServiceError(c, h.Logger, err)
}

// writeServiceError maps service errors onto the status/message contract:
// validation 400, conflict 409, auth 401, not-found 404, everything else
// 500 with the underlying message passed through.
func writeServiceError(c *gin.Context, logger *logrus.Logger, err error) {
	var verr *application.ValidationError
	switch {
	case errors.As(err, &verr):
		response.Error(c, http.StatusBadRequest, verr.Message, nil)
	case errors.Is(err, application.ErrEmailTaken):
		response.Error(c, http.StatusConflict, "Email already in use", nil)
	case errors.Is(err, application.ErrInvalidCredentials):
		response.Error(c, http.StatusUnauthorized, "Invalid email or password", nil)
	case errors.Is(err, application.ErrAccountNotFound):
		response.Error(c, http.StatusNotFound, "User not found", nil)
	case errors.Is(err, application.ErrInvalidVerifyToken):
		response.Error(c, http.StatusBadRequest, "invalid or expired token", nil)
	default:
		if logger != nil {
			logger.WithError(err).Error("account operation failed")
		}
		response.Error(c, http.StatusInternalServerError, err.Error(), nil)
	}
}
