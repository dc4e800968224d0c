package dto

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type StudentQuery struct {
	OrgID    string `form:"org_id" binding:"omitempty,uuid"`
	Language string `form:"language"`
}

// LanguageQuery backs the summary and language-detail endpoints, where both filters are mandatory.
type LanguageQuery struct {
	OrgID    string `form:"org_id" binding:"required,uuid"`
	Language string `form:"language" binding:"required"`
}

type StatusQuery struct {
	Timeframe string `form:"timeframe"`
	StartDate string `form:"start_date"`
	EndDate   string `form:"end_date"`
}

type TimelineQuery struct {
	Timeframe string `form:"timeframe"`
	Language  string `form:"language"`
	OrgID     string `form:"org_id" binding:"omitempty,uuid"`
}

type Summary struct {
	AvgOverall       float64 `json:"avg_overall"`
	AvgFluency       float64 `json:"avg_fluency"`
	AvgVocab         float64 `json:"avg_vocab"`
	AvgPronunciation float64 `json:"avg_pronunciation"`
}

type TopStudent struct {
	Name        string  `json:"name"`
	OverallMark float64 `json:"overall_mark"`
}

// LanguageDetail has only Message and TotalStudents set when nothing matched.
type LanguageDetail struct {
	Message       string      `json:"message,omitempty"`
	Language      string      `json:"language,omitempty"`
	TotalStudents int         `json:"total_students"`
	AverageMark   *float64    `json:"average_mark,omitempty"`
	TopStudent    *TopStudent `json:"top_student,omitempty"`
}

type OrganizationStatusRow struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

type DateRange struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

type StatusReport struct {
	Data      []OrganizationStatusRow `json:"data"`
	Counts    map[string]int          `json:"counts"`
	Timeframe string                  `json:"timeframe"`
	DateRange DateRange               `json:"date_range"`
}

// Bucket is one point of a timeline. Counts are flattened into the JSON object
// next to the descriptive fields.
type Bucket struct {
	Date   string
	Label  string
	Name   string
	Start  string
	End    string
	Counts map[string]int
}

func (b Bucket) MarshalJSON() ([]byte, error) {
	out := make(map[string]interface{}, len(b.Counts)+4)
	for key, count := range b.Counts {
		out[key] = count
	}
	setIfPresent(out, "date", b.Date)
	setIfPresent(out, "label", b.Label)
	setIfPresent(out, "name", b.Name)
	setIfPresent(out, "start", b.Start)
	setIfPresent(out, "end", b.End)
	return json.Marshal(out)
}

func setIfPresent(out map[string]interface{}, key, value string) {
	if value != "" {
		out[key] = value
	}
}

type OrganizationTimeline struct {
	Data      []Bucket `json:"data"`
	Timeframe string   `json:"timeframe"`
	GroupBy   string   `json:"group_by"`
}

type TimelineFilters struct {
	Language *string `json:"language"`
	OrgID    *string `json:"org_id"`
}

type StudentTimeline struct {
	Data      []Bucket        `json:"data"`
	Timeframe string          `json:"timeframe"`
	GroupBy   string          `json:"group_by"`
	Filters   TimelineFilters `json:"filters"`
}
