package service

import (
	"context"
	"fmt"

	"anoa.com/langanalytics/internal/entity"
	"anoa.com/langanalytics/internal/modules/student/repository"
)

type StudentService interface {
	ListStudents(ctx context.Context, filter repository.StudentFilter) ([]*entity.Student, error)
}

type studentService struct {
	repo repository.StudentRepository
}

func NewStudentService(repo repository.StudentRepository) StudentService {
	return &studentService{repo: repo}
}

func (s *studentService) ListStudents(ctx context.Context, filter repository.StudentFilter) ([]*entity.Student, error) {
	students, err := s.repo.FindAll(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list students: %w", err)
	}
	if students == nil {
		students = []*entity.Student{}
	}
	return students, nil
}
