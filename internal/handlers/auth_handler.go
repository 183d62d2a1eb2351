package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/barberpro-booking/internal/httperr"
	"github.com/BruksfildServices01/barberpro-booking/internal/models"
	ucAccount "github.com/BruksfildServices01/barberpro-booking/internal/usecase/account"
)

type AuthHandler struct {
	register *ucAccount.Register
	login    *ucAccount.Login
}

func NewAuthHandler(register *ucAccount.Register, login *ucAccount.Login) *AuthHandler {
	return &AuthHandler{register: register, login: login}
}

// --------- Requests ---------

type RegisterRequest struct {
	TenantName    string `json:"tenant_name" binding:"required"`
	TenantSlug    string `json:"tenant_slug" binding:"required"`
	TenantPhone   string `json:"tenant_phone"`
	TenantAddress string `json:"tenant_address"`
	Timezone      string `json:"timezone"`

	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Phone    string `json:"phone"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// --------- Handlers ---------

func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	sess, err := h.register.Execute(c.Request.Context(), ucAccount.RegisterInput{
		TenantName:    req.TenantName,
		TenantSlug:    req.TenantSlug,
		TenantPhone:   req.TenantPhone,
		TenantAddress: req.TenantAddress,
		Timezone:      req.Timezone,
		Name:          req.Name,
		Email:         req.Email,
		Password:      req.Password,
		Phone:         req.Phone,
	})
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	c.JSON(http.StatusCreated, sessionJSON(sess))
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	sess, err := h.login.Execute(c.Request.Context(), req.Email, req.Password)
	if errors.Is(err, ucAccount.ErrInvalidCredentials) {
		httperr.Unauthorized(c, "invalid_credentials", "E-mail ou senha inválidos.")
		return
	}
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	c.JSON(http.StatusOK, sessionJSON(sess))
}

func sessionJSON(sess *ucAccount.Session) gin.H {
	return gin.H{
		"user":   userJSON(&sess.User),
		"tenant": tenantJSON(&sess.Tenant),
		"token":  sess.Token,
	}
}

func userJSON(u *models.User) gin.H {
	return gin.H{
		"id":        u.ID,
		"name":      u.Name,
		"email":     u.Email,
		"phone":     u.Phone,
		"role":      u.Role,
		"tenant_id": u.TenantID,
	}
}

func tenantJSON(t *models.Tenant) gin.H {
	return gin.H{
		"id":       t.ID,
		"name":     t.Name,
		"slug":     t.Slug,
		"phone":    t.Phone,
		"whatsapp": t.WhatsApp,
		"address":  t.Address,
		"timezone": t.Timezone,
		"logo_url": t.LogoURL,
	}
}
