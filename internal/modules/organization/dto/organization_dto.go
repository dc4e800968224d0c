package dto

type CreateOrganizationRequest struct {
	Name              string `json:"name" binding:"required,max=150"`
	Head              string `json:"head" binding:"required,max=150"`
	AmbassadorName    string `json:"ambassador_name" binding:"required,max=150"`
	AmbassadorContact string `json:"ambassador_contact" binding:"required,max=100"`
	Contact           string `json:"contact" binding:"required,max=100"`
	Email             string `json:"email" binding:"required,email"`
	Password          string `json:"password" binding:"required,min=8"`
	Status            string `json:"status" binding:"omitempty,org_status"`
}

// UpdateOrganizationRequest is a partial update: nil fields keep their stored value.
type UpdateOrganizationRequest struct {
	Name              *string `json:"name" binding:"omitempty,min=1,max=150"`
	Head              *string `json:"head" binding:"omitempty,max=150"`
	AmbassadorName    *string `json:"ambassador_name" binding:"omitempty,max=150"`
	AmbassadorContact *string `json:"ambassador_contact" binding:"omitempty,max=100"`
	Contact           *string `json:"contact" binding:"omitempty,max=100"`
	Email             *string `json:"email" binding:"omitempty,email"`
	Password          *string `json:"password" binding:"omitempty,min=8"`
	Status            *string `json:"status" binding:"omitempty,org_status"`
}

type OrganizationURI struct {
	ID string `uri:"id" binding:"required,uuid"`
}

type SearchQuery struct {
	Q     string `form:"q" binding:"required"`
	Limit int    `form:"limit" binding:"omitempty,min=1,max=50"`
}
