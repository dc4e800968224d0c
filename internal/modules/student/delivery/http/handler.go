package handler

import (
	"net/http"

	"anoa.com/langanalytics/internal/modules/student/dto"
	"anoa.com/langanalytics/internal/modules/student/repository"
	student "anoa.com/langanalytics/internal/modules/student/service"
	"anoa.com/langanalytics/pkg/response"
	"anoa.com/langanalytics/pkg/validator"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type StudentHandler struct {
	service student.StudentService
}

func NewStudentHandler(service student.StudentService) *StudentHandler {
	return &StudentHandler{service: service}
}

func (h *StudentHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/students/list", h.ListStudents)
}

func (h *StudentHandler) ListStudents(c *gin.Context) {
	var query dto.ListStudentsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Detail(c, http.StatusBadRequest, validator.FormatValidationError(err))
		return
	}

	filter := repository.StudentFilter{Language: query.Language}
	if query.OrgID != "" {
		id, err := uuid.Parse(query.OrgID)
		if err != nil {
			response.Detail(c, http.StatusBadRequest, "invalid org_id")
			return
		}
		filter.OrgID = &id
	}

	students, err := h.service.ListStudents(c.Request.Context(), filter)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"students": students})
}
