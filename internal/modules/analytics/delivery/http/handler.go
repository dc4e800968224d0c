package handler

import (
	"net/http"

	"anoa.com/langanalytics/internal/modules/analytics/dto"
	analytics "anoa.com/langanalytics/internal/modules/analytics/service"
	studentRepo "anoa.com/langanalytics/internal/modules/student/repository"
	"anoa.com/langanalytics/pkg/response"
	"anoa.com/langanalytics/pkg/validator"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type AnalyticsHandler struct {
	service analytics.AnalyticsService
}

func NewAnalyticsHandler(service analytics.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{service: service}
}

func (h *AnalyticsHandler) RegisterRoutes(rg *gin.RouterGroup) {
	a := rg.Group("/analytics")
	a.GET("/students", h.Students)
	a.GET("/summary", h.Summary)
	a.GET("/language-detail", h.LanguageDetail)
	a.GET("/organizations/status", h.OrganizationsByStatus)
	a.GET("/organizations/timeline", h.OrganizationTimeline)
	a.GET("/students/timeline", h.StudentTimeline)
}

func (h *AnalyticsHandler) Students(c *gin.Context) {
	var query dto.StudentQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Detail(c, http.StatusBadRequest, validator.FormatValidationError(err))
		return
	}

	filter, ok := buildFilter(c, query.OrgID, query.Language)
	if !ok {
		return
	}

	students, err := h.service.Students(c.Request.Context(), filter)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"students": students})
}

func (h *AnalyticsHandler) Summary(c *gin.Context) {
	orgID, language, ok := bindLanguageQuery(c)
	if !ok {
		return
	}

	summary, err := h.service.Summarize(c.Request.Context(), orgID, language)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	if summary == nil {
		c.JSON(http.StatusOK, gin.H{"summary": gin.H{}})
		return
	}
	c.JSON(http.StatusOK, gin.H{"summary": summary})
}

func (h *AnalyticsHandler) LanguageDetail(c *gin.Context) {
	orgID, language, ok := bindLanguageQuery(c)
	if !ok {
		return
	}

	detail, err := h.service.LanguageDetail(c.Request.Context(), orgID, language)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, detail)
}

func (h *AnalyticsHandler) OrganizationsByStatus(c *gin.Context) {
	var query dto.StatusQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Detail(c, http.StatusBadRequest, validator.FormatValidationError(err))
		return
	}

	report, err := h.service.OrganizationsByStatus(c.Request.Context(), query.Timeframe, query.StartDate, query.EndDate)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, report)
}

func (h *AnalyticsHandler) OrganizationTimeline(c *gin.Context) {
	timeline, err := h.service.OrganizationTimeline(c.Request.Context(), c.Query("timeframe"))
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, timeline)
}

func (h *AnalyticsHandler) StudentTimeline(c *gin.Context) {
	var query dto.TimelineQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Detail(c, http.StatusBadRequest, validator.FormatValidationError(err))
		return
	}

	filter, ok := buildFilter(c, query.OrgID, query.Language)
	if !ok {
		return
	}

	timeline, err := h.service.StudentTimeline(c.Request.Context(), query.Timeframe, filter)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, timeline)
}

func bindLanguageQuery(c *gin.Context) (uuid.UUID, string, bool) {
	var query dto.LanguageQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Detail(c, http.StatusBadRequest, validator.FormatValidationError(err))
		return uuid.Nil, "", false
	}

	orgID, err := uuid.Parse(query.OrgID)
	if err != nil {
		response.Detail(c, http.StatusBadRequest, "invalid org_id")
		return uuid.Nil, "", false
	}
	return orgID, query.Language, true
}

func buildFilter(c *gin.Context, orgID, language string) (studentRepo.StudentFilter, bool) {
	filter := studentRepo.StudentFilter{Language: language}
	if orgID == "" {
		return filter, true
	}

	id, err := uuid.Parse(orgID)
	if err != nil {
		response.Detail(c, http.StatusBadRequest, "invalid org_id")
		return filter, false
	}
	filter.OrgID = &id
	return filter, true
}
