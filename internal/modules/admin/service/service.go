package service

import (
	"context"
	"errors"
	"fmt"

	"anoa.com/langanalytics/internal/entity"
	"anoa.com/langanalytics/internal/modules/admin/dto"
	"anoa.com/langanalytics/internal/modules/admin/repository"
	credentialRepo "anoa.com/langanalytics/internal/modules/credential/repository"
	orgRepo "anoa.com/langanalytics/internal/modules/organization/repository"
	search "anoa.com/langanalytics/internal/modules/search/service"
	"anoa.com/langanalytics/pkg/apperror"
	"anoa.com/langanalytics/pkg/sanitize"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	msgAdminExists          = "Admin already exists"
	msgAdminNotFound        = "Admin not found"
	msgOrganizationNotFound = "Organization not found"
	msgInvalidLanguage      = "Invalid language"

	defaultSearchLimit = 20
)

type AdminService interface {
	AddAdmin(ctx context.Context, req dto.CreateAdminRequest) (*dto.AdminResponse, error)
	ListAdmins(ctx context.Context, orgID *uuid.UUID) ([]dto.AdminResponse, error)
	UpdateAdmin(ctx context.Context, id uuid.UUID, req dto.UpdateAdminRequest) (*dto.AdminResponse, error)
	DeleteAdmin(ctx context.Context, id uuid.UUID) error
	SearchAdmins(ctx context.Context, query string, limit int) ([]dto.AdminResponse, error)
}

type adminService struct {
	repo        repository.AdminRepository
	orgs        orgRepo.OrganizationRepository
	credentials credentialRepo.CredentialRepository
	index       search.DirectoryIndex
	log         *zap.Logger
}

func NewAdminService(
	repo repository.AdminRepository,
	orgs orgRepo.OrganizationRepository,
	credentials credentialRepo.CredentialRepository,
	index search.DirectoryIndex,
	log *zap.Logger,
) AdminService {
	return &adminService{
		repo:        repo,
		orgs:        orgs,
		credentials: credentials,
		index:       index,
		log:         log,
	}
}

func (s *adminService) AddAdmin(ctx context.Context, req dto.CreateAdminRequest) (*dto.AdminResponse, error) {
	if !entity.IsValidLanguage(req.Language) {
		return nil, apperror.BadRequest(msgInvalidLanguage)
	}

	email := sanitize.Email(req.Email)
	if err := s.ensureEmailFree(ctx, email, uuid.Nil, ""); err != nil {
		return nil, err
	}

	org, err := s.resolveOrganization(ctx, sanitize.Text(req.OrgName))
	if err != nil {
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	admin := &entity.Admin{
		Name:     sanitize.Text(req.Name),
		Contact:  sanitize.Text(req.Contact),
		Role:     sanitize.Text(req.Role),
		Language: req.Language,
		Email:    email,
		OrgID:    org.ID,
	}
	if admin.Name == "" {
		return nil, apperror.BadRequest("name is required")
	}

	cred := &entity.Credential{
		Username: admin.Name,
		Email:    admin.Email,
		Password: string(hashed),
		Role:     entity.RoleAdmin,
	}

	if err := s.repo.Create(ctx, admin, cred); err != nil {
		return nil, fmt.Errorf("create admin: %w", err)
	}

	s.reindex(admin, org.Name)
	resp := dto.ToAdminResponse(admin, org.Name)
	return &resp, nil
}

func (s *adminService) ensureEmailFree(ctx context.Context, email string, excludeID uuid.UUID, ownEmail string) error {
	taken, err := s.repo.EmailTaken(ctx, email, excludeID)
	if err != nil {
		return fmt.Errorf("uniqueness check: %w", err)
	}
	if !taken {
		taken, err = s.credentials.EmailTaken(ctx, email, ownEmail)
		if err != nil {
			return fmt.Errorf("uniqueness check: %w", err)
		}
	}
	if taken {
		return apperror.Conflict(msgAdminExists)
	}
	return nil
}

func (s *adminService) resolveOrganization(ctx context.Context, name string) (*entity.Organization, error) {
	org, err := s.orgs.FindByName(ctx, name)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound(msgOrganizationNotFound)
		}
		return nil, fmt.Errorf("find organization: %w", err)
	}
	return org, nil
}

func (s *adminService) ListAdmins(ctx context.Context, orgID *uuid.UUID) ([]dto.AdminResponse, error) {
	admins, err := s.repo.FindAll(ctx, orgID)
	if err != nil {
		return nil, fmt.Errorf("list admins: %w", err)
	}

	return toResponses(admins), nil
}

// SearchAdmins prefers the search index and falls back to a LIKE query.
func (s *adminService) SearchAdmins(ctx context.Context, query string, limit int) ([]dto.AdminResponse, error) {
	if limit <= 0 {
		limit = defaultSearchLimit
	}

	if s.index != nil {
		ids, err := s.index.SearchAdmins(query, limit)
		if err == nil {
			return s.loadInOrder(ctx, ids)
		}
		s.log.Warn("search index unavailable, falling back to database", zap.Error(err))
	}

	admins, err := s.repo.Search(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("search admins: %w", err)
	}
	return toResponses(admins), nil
}

func (s *adminService) loadInOrder(ctx context.Context, ids []uuid.UUID) ([]dto.AdminResponse, error) {
	found, err := s.repo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("load admins: %w", err)
	}

	byID := make(map[uuid.UUID]*entity.Admin, len(found))
	for _, admin := range found {
		byID[admin.ID] = admin
	}

	admins := make([]*entity.Admin, 0, len(ids))
	for _, id := range ids {
		if admin, ok := byID[id]; ok {
			admins = append(admins, admin)
		}
	}
	return toResponses(admins), nil
}

func toResponses(admins []*entity.Admin) []dto.AdminResponse {
	resp := make([]dto.AdminResponse, 0, len(admins))
	for _, admin := range admins {
		resp = append(resp, dto.ToAdminResponse(admin, organizationName(admin)))
	}
	return resp
}

func (s *adminService) findAdmin(ctx context.Context, id uuid.UUID) (*entity.Admin, error) {
	admin, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound(msgAdminNotFound)
		}
		return nil, fmt.Errorf("find admin: %w", err)
	}
	return admin, nil
}

func (s *adminService) UpdateAdmin(ctx context.Context, id uuid.UUID, req dto.UpdateAdminRequest) (*dto.AdminResponse, error) {
	admin, err := s.findAdmin(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Language != nil && !entity.IsValidLanguage(*req.Language) {
		return nil, apperror.BadRequest(msgInvalidLanguage)
	}

	prevEmail := admin.Email
	credFields := make(map[string]interface{})

	if req.Email != nil {
		email := sanitize.Email(*req.Email)
		if email != admin.Email {
			if err := s.ensureEmailFree(ctx, email, admin.ID, prevEmail); err != nil {
				return nil, err
			}
			admin.Email = email
			credFields["email"] = email
		}
	}

	orgName := organizationName(admin)
	if req.OrgName != nil {
		org, err := s.resolveOrganization(ctx, sanitize.Text(*req.OrgName))
		if err != nil {
			return nil, err
		}
		admin.OrgID = org.ID
		admin.Organization = org
		orgName = org.Name
	}

	if req.Name != nil {
		name := sanitize.Text(*req.Name)
		if name == "" {
			return nil, apperror.BadRequest("name is required")
		}
		if name != admin.Name {
			admin.Name = name
			credFields["username"] = name
		}
	}
	if req.Contact != nil {
		admin.Contact = sanitize.Text(*req.Contact)
	}
	if req.Role != nil {
		admin.Role = sanitize.Text(*req.Role)
	}
	if req.Language != nil {
		admin.Language = *req.Language
	}
	if req.Password != nil {
		hashed, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		credFields["password"] = string(hashed)
	}

	if err := s.repo.Update(ctx, admin, prevEmail, credFields); err != nil {
		return nil, fmt.Errorf("update admin: %w", err)
	}

	s.reindex(admin, orgName)
	resp := dto.ToAdminResponse(admin, orgName)
	return &resp, nil
}

func (s *adminService) DeleteAdmin(ctx context.Context, id uuid.UUID) error {
	admin, err := s.findAdmin(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, admin); err != nil {
		return fmt.Errorf("delete admin: %w", err)
	}

	if s.index != nil {
		if err := s.index.DeleteAdmin(admin.ID); err != nil {
			s.log.Warn("failed to remove admin from search index", zap.Stringer("id", admin.ID), zap.Error(err))
		}
	}
	return nil
}

func (s *adminService) reindex(admin *entity.Admin, orgName string) {
	if s.index == nil {
		return
	}
	if err := s.index.IndexAdmin(admin, orgName); err != nil {
		s.log.Warn("failed to index admin", zap.Stringer("id", admin.ID), zap.Error(err))
	}
}

func organizationName(admin *entity.Admin) string {
	if admin.Organization == nil {
		return ""
	}
	return admin.Organization.Name
}
