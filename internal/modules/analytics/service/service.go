package service

import (
	"context"
	"fmt"
	"time"

	"anoa.com/langanalytics/internal/entity"
	"anoa.com/langanalytics/internal/modules/analytics/dto"
	"anoa.com/langanalytics/internal/modules/analytics/repository"
	studentRepo "anoa.com/langanalytics/internal/modules/student/repository"
	"anoa.com/langanalytics/pkg/apperror"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Options struct {
	// CountVerified adds a "verified" series to the organization timeline.
	CountVerified bool
	// StudentGroupBy is the student timeline granularity, day when empty.
	StudentGroupBy string
	// OrganizationGroupings overrides the per-timeframe organization granularity.
	OrganizationGroupings map[string]string
	Now                   func() time.Time
}

type AnalyticsService interface {
	Students(ctx context.Context, filter studentRepo.StudentFilter) ([]*entity.Student, error)
	Summarize(ctx context.Context, orgID uuid.UUID, language string) (*dto.Summary, error)
	LanguageDetail(ctx context.Context, orgID uuid.UUID, language string) (*dto.LanguageDetail, error)
	OrganizationsByStatus(ctx context.Context, timeframe, startDate, endDate string) (*dto.StatusReport, error)
	OrganizationTimeline(ctx context.Context, timeframe string) (*dto.OrganizationTimeline, error)
	StudentTimeline(ctx context.Context, timeframe string, filter studentRepo.StudentFilter) (*dto.StudentTimeline, error)
}

type analyticsService struct {
	repo           repository.AnalyticsRepository
	students       studentRepo.StudentRepository
	countVerified  bool
	studentGroupBy string
	orgGroupings   map[string]string
	now            func() time.Time
	log            *zap.Logger
}

func NewAnalyticsService(
	repo repository.AnalyticsRepository,
	students studentRepo.StudentRepository,
	opts Options,
	log *zap.Logger,
) AnalyticsService {
	groupings := make(map[string]string, len(defaultOrganizationGrouping))
	for tf, g := range defaultOrganizationGrouping {
		groupings[tf] = g
	}
	for tf, g := range opts.OrganizationGroupings {
		if _, known := timeframeDays[tf]; !known || !IsValidGroupBy(g) {
			log.Warn("ignoring organization timeline grouping", zap.String("timeframe", tf), zap.String("group_by", g))
			continue
		}
		groupings[tf] = g
	}

	studentGroupBy := opts.StudentGroupBy
	if !IsValidGroupBy(studentGroupBy) {
		studentGroupBy = GroupByDay
	}

	now := opts.Now
	if now == nil {
		now = time.Now
	}

	return &analyticsService{
		repo:           repo,
		students:       students,
		countVerified:  opts.CountVerified,
		studentGroupBy: studentGroupBy,
		orgGroupings:   groupings,
		now:            now,
		log:            log,
	}
}

func (s *analyticsService) Students(ctx context.Context, filter studentRepo.StudentFilter) ([]*entity.Student, error) {
	students, err := s.students.FindAll(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("fetch students: %w", err)
	}
	if students == nil {
		students = []*entity.Student{}
	}
	return students, nil
}

func (s *analyticsService) matchedStudents(ctx context.Context, orgID uuid.UUID, language string) ([]*entity.Student, error) {
	students, err := s.students.FindAll(ctx, studentRepo.StudentFilter{OrgID: &orgID, Language: language})
	if err != nil {
		return nil, fmt.Errorf("fetch students: %w", err)
	}
	return students, nil
}

// Summarize returns nil when no student matches.
func (s *analyticsService) Summarize(ctx context.Context, orgID uuid.UUID, language string) (*dto.Summary, error) {
	students, err := s.matchedStudents(ctx, orgID, language)
	if err != nil {
		return nil, err
	}
	if len(students) == 0 {
		return nil, nil
	}

	var sum dto.Summary
	for _, st := range students {
		sum.AvgOverall += st.OverallMark
		sum.AvgFluency += st.FluencyMark
		sum.AvgVocab += st.VocabMark
		sum.AvgPronunciation += st.Pronunciation
	}

	n := float64(len(students))
	return &dto.Summary{
		AvgOverall:       sum.AvgOverall / n,
		AvgFluency:       sum.AvgFluency / n,
		AvgVocab:         sum.AvgVocab / n,
		AvgPronunciation: sum.AvgPronunciation / n,
	}, nil
}

// LanguageDetail picks the first student, in creation order, holding the highest overall mark.
func (s *analyticsService) LanguageDetail(ctx context.Context, orgID uuid.UUID, language string) (*dto.LanguageDetail, error) {
	students, err := s.matchedStudents(ctx, orgID, language)
	if err != nil {
		return nil, err
	}
	if len(students) == 0 {
		return &dto.LanguageDetail{Message: "No data", TotalStudents: 0}, nil
	}

	var total float64
	top := students[0]
	for _, st := range students {
		total += st.OverallMark
		if st.OverallMark > top.OverallMark {
			top = st
		}
	}
	average := total / float64(len(students))

	return &dto.LanguageDetail{
		Language:      language,
		TotalStudents: len(students),
		AverageMark:   &average,
		TopStudent:    &dto.TopStudent{Name: top.Name, OverallMark: top.OverallMark},
	}, nil
}

func (s *analyticsService) OrganizationsByStatus(ctx context.Context, timeframe, startDate, endDate string) (*dto.StatusReport, error) {
	timeframe, days := ResolveTimeframe(timeframe)

	var from, until time.Time
	if startDate != "" && endDate != "" {
		start, err := time.Parse(dateLayout, startDate)
		if err != nil {
			return nil, apperror.BadRequest("start_date must be YYYY-MM-DD")
		}
		end, err := time.Parse(dateLayout, endDate)
		if err != nil {
			return nil, apperror.BadRequest("end_date must be YYYY-MM-DD")
		}
		if start.After(end) {
			return nil, apperror.BadRequest("start_date must not be after end_date")
		}
		from, until = start, end
	} else {
		win := newWindow(s.now(), days)
		from, until = win.start, win.today
	}

	orgs, err := s.repo.OrganizationsCreatedBetween(ctx, from, until.AddDate(0, 0, 1))
	if err != nil {
		return nil, fmt.Errorf("fetch organizations: %w", err)
	}

	report := &dto.StatusReport{
		Data:      make([]dto.OrganizationStatusRow, 0, len(orgs)),
		Counts:    make(map[string]int, len(entity.OrganizationStatuses)),
		Timeframe: timeframe,
		DateRange: dto.DateRange{Start: from.Format(dateLayout), End: until.Format(dateLayout)},
	}
	for _, status := range entity.OrganizationStatuses {
		report.Counts[status] = 0
	}
	for _, org := range orgs {
		report.Data = append(report.Data, dto.OrganizationStatusRow{
			ID:        org.ID,
			Name:      org.Name,
			Status:    org.Status,
			CreatedAt: org.CreatedAt,
		})
		report.Counts[org.Status]++
	}
	return report, nil
}

func (s *analyticsService) statusSeriesKeys() []string {
	keys := []string{"onboarded", "contacted", "standby", "verification"}
	if s.countVerified {
		keys = append(keys, verifiedSeries)
	}
	return keys
}

func (s *analyticsService) seriesFor(status string) (string, bool) {
	if key, ok := statusSeries[status]; ok {
		return key, true
	}
	if status == entity.StatusVerified && s.countVerified {
		return verifiedSeries, true
	}
	return "", false
}

func (s *analyticsService) OrganizationTimeline(ctx context.Context, timeframe string) (*dto.OrganizationTimeline, error) {
	timeframe, days := ResolveTimeframe(timeframe)
	groupBy := s.orgGroupings[timeframe]
	win := newWindow(s.now(), days)

	b, err := newBucketer(groupBy, win, s.statusSeriesKeys())
	if err != nil {
		return nil, err
	}

	orgs, err := s.repo.OrganizationsCreatedBetween(ctx, win.start, time.Time{})
	if err != nil {
		return nil, fmt.Errorf("fetch organizations: %w", err)
	}

	var dropped int
	for _, org := range orgs {
		key, ok := s.seriesFor(org.Status)
		if !ok || !b.add(org.CreatedAt, key) {
			dropped++
		}
	}
	if dropped > 0 {
		s.log.Debug("organizations left out of timeline", zap.Int("count", dropped), zap.String("timeframe", timeframe))
	}

	return &dto.OrganizationTimeline{
		Data:      b.buckets,
		Timeframe: timeframe,
		GroupBy:   groupBy,
	}, nil
}

func (s *analyticsService) StudentTimeline(ctx context.Context, timeframe string, filter studentRepo.StudentFilter) (*dto.StudentTimeline, error) {
	timeframe, days := ResolveTimeframe(timeframe)
	win := newWindow(s.now(), days)

	b, err := newBucketer(s.studentGroupBy, win, []string{"count"})
	if err != nil {
		return nil, err
	}

	students, err := s.students.FindCreatedSince(ctx, win.start, filter)
	if err != nil {
		return nil, fmt.Errorf("fetch students: %w", err)
	}
	for _, st := range students {
		b.add(st.CreatedAt, "count")
	}

	result := &dto.StudentTimeline{
		Data:      b.buckets,
		Timeframe: timeframe,
		GroupBy:   s.studentGroupBy,
	}
	if filter.Language != "" {
		result.Filters.Language = &filter.Language
	}
	if filter.OrgID != nil {
		id := filter.OrgID.String()
		result.Filters.OrgID = &id
	}
	return result, nil
}
