package handler

import (
	"net/http"

	"anoa.com/langanalytics/internal/modules/organization/dto"
	organization "anoa.com/langanalytics/internal/modules/organization/service"
	"anoa.com/langanalytics/pkg/response"
	"anoa.com/langanalytics/pkg/validator"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type OrganizationHandler struct {
	service organization.OrganizationService
}

func NewOrganizationHandler(service organization.OrganizationService) *OrganizationHandler {
	return &OrganizationHandler{service: service}
}

func (h *OrganizationHandler) RegisterRoutes(rg *gin.RouterGroup) {
	org := rg.Group("/organization")
	org.POST("/add", h.AddOrganization)
	org.GET("/list", h.ListOrganizations)
	org.GET("/search", h.SearchOrganizations)
	org.PUT("/update/:id", h.UpdateOrganization)
	org.PUT("/logo/:id", h.UploadLogo)
	org.DELETE("/delete/:id", h.DeleteOrganization)
}

func (h *OrganizationHandler) AddOrganization(c *gin.Context) {
	var req dto.CreateOrganizationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Detail(c, http.StatusBadRequest, validator.FormatValidationError(err))
		return
	}

	org, err := h.service.AddOrganization(c.Request.Context(), req)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"organization": org})
}

func (h *OrganizationHandler) ListOrganizations(c *gin.Context) {
	orgs, err := h.service.ListOrganizations(c.Request.Context())
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"organizations": orgs})
}

func (h *OrganizationHandler) SearchOrganizations(c *gin.Context) {
	var query dto.SearchQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Detail(c, http.StatusBadRequest, validator.FormatValidationError(err))
		return
	}

	orgs, err := h.service.SearchOrganizations(c.Request.Context(), query.Q, query.Limit)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"organizations": orgs})
}

func (h *OrganizationHandler) UpdateOrganization(c *gin.Context) {
	id, ok := bindID(c)
	if !ok {
		return
	}

	var req dto.UpdateOrganizationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Detail(c, http.StatusBadRequest, validator.FormatValidationError(err))
		return
	}

	org, err := h.service.UpdateOrganization(c.Request.Context(), id, req)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"organization": org})
}

func (h *OrganizationHandler) UploadLogo(c *gin.Context) {
	id, ok := bindID(c)
	if !ok {
		return
	}

	fileHeader, err := c.FormFile("logo")
	if err != nil {
		response.Detail(c, http.StatusBadRequest, "logo file is required")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		response.Detail(c, http.StatusBadRequest, "failed to read logo file")
		return
	}
	defer file.Close()

	org, err := h.service.UploadLogo(c.Request.Context(), id, file, fileHeader.Filename)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"organization": org})
}

func (h *OrganizationHandler) DeleteOrganization(c *gin.Context) {
	id, ok := bindID(c)
	if !ok {
		return
	}

	if err := h.service.DeleteOrganization(c.Request.Context(), id); err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Organization deleted successfully"})
}

func bindID(c *gin.Context) (uuid.UUID, bool) {
	var uri dto.OrganizationURI
	if err := c.ShouldBindUri(&uri); err != nil {
		response.Detail(c, http.StatusBadRequest, "invalid organization id")
		return uuid.Nil, false
	}

	id, err := uuid.Parse(uri.ID)
	if err != nil {
		response.Detail(c, http.StatusBadRequest, "invalid organization id")
		return uuid.Nil, false
	}
	return id, true
}
