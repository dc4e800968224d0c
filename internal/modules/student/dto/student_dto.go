package dto

type ListStudentsQuery struct {
	OrgID    string `form:"org_id" binding:"omitempty,uuid"`
	Language string `form:"language"`
}
