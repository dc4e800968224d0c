package dto

import (
	"time"

	"anoa.com/langanalytics/internal/entity"
	"github.com/google/uuid"
)

type CreateAdminRequest struct {
	Name     string `json:"name" binding:"required,max=150"`
	Contact  string `json:"contact" binding:"required,max=100"`
	Role     string `json:"role" binding:"required,max=100"`
	Language string `json:"language" binding:"required,language"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	OrgName  string `json:"org_name" binding:"required"`
}

type UpdateAdminRequest struct {
	Name     *string `json:"name" binding:"omitempty,min=1,max=150"`
	Contact  *string `json:"contact" binding:"omitempty,max=100"`
	Role     *string `json:"role" binding:"omitempty,max=100"`
	Language *string `json:"language" binding:"omitempty,language"`
	Email    *string `json:"email" binding:"omitempty,email"`
	Password *string `json:"password" binding:"omitempty,min=8"`
	OrgName  *string `json:"org_name" binding:"omitempty,min=1"`
}

type ListAdminsQuery struct {
	OrgID string `form:"org_id" binding:"omitempty,uuid"`
}

type SearchAdminsQuery struct {
	Q     string `form:"q" binding:"required"`
	Limit int    `form:"limit" binding:"omitempty,min=1,max=50"`
}

type AdminURI struct {
	ID string `uri:"id" binding:"required,uuid"`
}

type AdminResponse struct {
	ID               uuid.UUID `json:"id"`
	Name             string    `json:"name"`
	Contact          string    `json:"contact"`
	Role             string    `json:"role"`
	Language         string    `json:"language"`
	Email            string    `json:"email"`
	OrgID            uuid.UUID `json:"org_id"`
	OrganizationName string    `json:"organization_name"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

func ToAdminResponse(admin *entity.Admin, orgName string) AdminResponse {
	return AdminResponse{
		ID:               admin.ID,
		Name:             admin.Name,
		Contact:          admin.Contact,
		Role:             admin.Role,
		Language:         admin.Language,
		Email:            admin.Email,
		OrgID:            admin.OrgID,
		OrganizationName: orgName,
		CreatedAt:        admin.CreatedAt,
		UpdatedAt:        admin.UpdatedAt,
	}
}
