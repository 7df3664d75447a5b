package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/campus-scheduler/internal/domain/account"
	"github.com/BruksfildServices01/campus-scheduler/internal/dto"
	"github.com/BruksfildServices01/campus-scheduler/internal/httpresp"
	ucAuth "github.com/BruksfildServices01/campus-scheduler/internal/usecase/auth"
)

type AuthHandler struct {
	register  *ucAuth.Register
	verify    *ucAuth.VerifyEmail
	resend    *ucAuth.ResendVerification
	login     *ucAuth.Login
	refresh   *ucAuth.Refresh
	logout    *ucAuth.Logout
	avatarURL func(string) string
	logger    *zap.Logger
}

func NewAuthHandler(
	register *ucAuth.Register,
	verify *ucAuth.VerifyEmail,
	resend *ucAuth.ResendVerification,
	login *ucAuth.Login,
	refresh *ucAuth.Refresh,
	logout *ucAuth.Logout,
	avatarURL func(string) string,
	logger *zap.Logger,
) *AuthHandler {
	return &AuthHandler{
		register:  register,
		verify:    verify,
		resend:    resend,
		login:     login,
		refresh:   refresh,
		logout:    logout,
		avatarURL: avatarURL,
		logger:    logger,
	}
}

// --------- Requests ---------

type RegisterRequest struct {
	Email         string `json:"email" binding:"required"`
	Password      string `json:"password" binding:"required"`
	FirstName     string `json:"first_name" binding:"required"`
	LastName      string `json:"last_name" binding:"required"`
	StudentNumber string `json:"student_number"`
	Phone         string `json:"phone"`
	Department    string `json:"department"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

type ResendRequest struct {
	Email string `json:"email" binding:"required"`
}

type SessionResponse struct {
	User         dto.UserDTO `json:"user"`
	AccessToken  string      `json:"access_token"`
	RefreshToken string      `json:"refresh_token"`
	TokenType    string      `json:"token_type"`
	ExpiresIn    int64       `json:"expires_in"`
}

func (h *AuthHandler) session(s *ucAuth.Session) SessionResponse {
	return SessionResponse{
		User:         dto.NewUserDTO(s.User, h.avatarURL),
		AccessToken:  s.Tokens.Access,
		RefreshToken: s.Tokens.Refresh,
		TokenType:    "Bearer",
		ExpiresIn:    s.Tokens.ExpiresIn,
	}
}

// --------- Handlers ---------

func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if !bindJSON(c, &req) {
		return
	}

	u, err := h.register.Execute(c.Request.Context(), account.Registration{
		Email:         req.Email,
		Password:      req.Password,
		FirstName:     req.FirstName,
		LastName:      req.LastName,
		StudentNumber: req.StudentNumber,
		Phone:         req.Phone,
		Department:    req.Department,
	})
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	httpresp.Created(c, gin.H{
		"user":    dto.NewUserDTO(u, h.avatarURL),
		"message": "Account created. Check your inbox to verify your email address.",
	})
}

func (h *AuthHandler) VerifyEmail(c *gin.Context) {
	u, err := h.verify.Execute(c.Request.Context(), c.Param("token"))
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	httpresp.OK(c, gin.H{
		"user":    dto.NewUserDTO(u, h.avatarURL),
		"message": "Email verified. You can now sign in.",
	})
}

func (h *AuthHandler) ResendVerification(c *gin.Context) {
	var req ResendRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := h.resend.Execute(c.Request.Context(), req.Email); err != nil {
		writeError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusAccepted, gin.H{
		"message": "If the account exists and is not verified, a new link has been sent.",
	})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if !bindJSON(c, &req) {
		return
	}

	s, err := h.login.Execute(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	httpresp.OK(c, h.session(s))
}

func (h *AuthHandler) Refresh(c *gin.Context) {
	var req RefreshRequest
	if !bindJSON(c, &req) {
		return
	}

	s, err := h.refresh.Execute(c.Request.Context(), req.RefreshToken)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	httpresp.OK(c, h.session(s))
}

func (h *AuthHandler) Logout(c *gin.Context) {
	caller, ok := callerOf(c)
	if !ok {
		return
	}

	var req RefreshRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := h.logout.Execute(c.Request.Context(), caller, req.RefreshToken); err != nil {
		writeError(c, h.logger, err)
		return
	}

	c.Status(http.StatusNoContent)
}
