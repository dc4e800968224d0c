package handler

import (
	"net/http"

	"anoa.com/langanalytics/internal/modules/auth/dto"
	auth "anoa.com/langanalytics/internal/modules/auth/service"
	"anoa.com/langanalytics/pkg/response"
	"anoa.com/langanalytics/pkg/validator"
	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	service auth.AuthService
}

func NewAuthHandler(service auth.AuthService) *AuthHandler {
	return &AuthHandler{service: service}
}

func (h *AuthHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/auth/login", h.Login)
}

// Login accepts form-encoded or JSON credentials.
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBind(&req); err != nil {
		response.Detail(c, http.StatusBadRequest, validator.FormatValidationError(err))
		return
	}

	resp, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
