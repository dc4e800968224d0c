package handler

import (
	"net/http"

	"anoa.com/langanalytics/internal/modules/admin/dto"
	admin "anoa.com/langanalytics/internal/modules/admin/service"
	"anoa.com/langanalytics/pkg/response"
	"anoa.com/langanalytics/pkg/validator"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type AdminHandler struct {
	service admin.AdminService
}

func NewAdminHandler(service admin.AdminService) *AdminHandler {
	return &AdminHandler{service: service}
}

func (h *AdminHandler) RegisterRoutes(rg *gin.RouterGroup) {
	admins := rg.Group("/admin")
	admins.POST("/add", h.AddAdmin)
	admins.GET("/list", h.ListAdmins)
	admins.GET("/search", h.SearchAdmins)
	admins.PUT("/update/:id", h.UpdateAdmin)
	admins.DELETE("/delete/:id", h.DeleteAdmin)
}

func (h *AdminHandler) AddAdmin(c *gin.Context) {
	var req dto.CreateAdminRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Detail(c, http.StatusBadRequest, validator.FormatValidationError(err))
		return
	}

	created, err := h.service.AddAdmin(c.Request.Context(), req)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"admin": created})
}

func (h *AdminHandler) ListAdmins(c *gin.Context) {
	var query dto.ListAdminsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Detail(c, http.StatusBadRequest, "invalid org_id")
		return
	}

	var orgID *uuid.UUID
	if query.OrgID != "" {
		id, err := uuid.Parse(query.OrgID)
		if err != nil {
			response.Detail(c, http.StatusBadRequest, "invalid org_id")
			return
		}
		orgID = &id
	}

	admins, err := h.service.ListAdmins(c.Request.Context(), orgID)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"admins": admins})
}

func (h *AdminHandler) SearchAdmins(c *gin.Context) {
	var query dto.SearchAdminsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Detail(c, http.StatusBadRequest, validator.FormatValidationError(err))
		return
	}

	admins, err := h.service.SearchAdmins(c.Request.Context(), query.Q, query.Limit)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"admins": admins})
}

func (h *AdminHandler) UpdateAdmin(c *gin.Context) {
	id, ok := bindID(c)
	if !ok {
		return
	}

	var req dto.UpdateAdminRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Detail(c, http.StatusBadRequest, validator.FormatValidationError(err))
		return
	}

	updated, err := h.service.UpdateAdmin(c.Request.Context(), id, req)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"admin": updated})
}

func (h *AdminHandler) DeleteAdmin(c *gin.Context) {
	id, ok := bindID(c)
	if !ok {
		return
	}

	if err := h.service.DeleteAdmin(c.Request.Context(), id); err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Admin deleted successfully"})
}

func bindID(c *gin.Context) (uuid.UUID, bool) {
	var uri dto.AdminURI
	if err := c.ShouldBindUri(&uri); err != nil {
		response.Detail(c, http.StatusBadRequest, "invalid admin id")
		return uuid.Nil, false
	}

	id, err := uuid.Parse(uri.ID)
	if err != nil {
		response.Detail(c, http.StatusBadRequest, "invalid admin id")
		return uuid.Nil, false
	}
	return id, true
}
