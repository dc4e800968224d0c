package service

import (
	"context"
	"errors"
	"fmt"
	"io"

	"anoa.com/langanalytics/internal/entity"
	credentialRepo "anoa.com/langanalytics/internal/modules/credential/repository"
	"anoa.com/langanalytics/internal/modules/organization/dto"
	"anoa.com/langanalytics/internal/modules/organization/repository"
	search "anoa.com/langanalytics/internal/modules/search/service"
	"anoa.com/langanalytics/pkg/apperror"
	"anoa.com/langanalytics/pkg/sanitize"
	"anoa.com/langanalytics/pkg/storage"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	msgOrganizationExists   = "Organization already exists"
	msgOrganizationNotFound = "Organization not found"

	defaultSearchLimit = 20
	logoFolder         = "organization_logos"
)

type OrganizationService interface {
	AddOrganization(ctx context.Context, req dto.CreateOrganizationRequest) (*entity.Organization, error)
	ListOrganizations(ctx context.Context) ([]*entity.Organization, error)
	UpdateOrganization(ctx context.Context, id uuid.UUID, req dto.UpdateOrganizationRequest) (*entity.Organization, error)
	DeleteOrganization(ctx context.Context, id uuid.UUID) error
	SearchOrganizations(ctx context.Context, query string, limit int) ([]*entity.Organization, error)
	UploadLogo(ctx context.Context, id uuid.UUID, r io.Reader, fileName string) (*entity.Organization, error)
}

type organizationService struct {
	repo         repository.OrganizationRepository
	credentials  credentialRepo.CredentialRepository
	index        search.DirectoryIndex
	imageStorage storage.ImageStorage
	log          *zap.Logger
}

// NewOrganizationService accepts a nil index or imageStorage when those integrations are not configured.
func NewOrganizationService(
	repo repository.OrganizationRepository,
	credentials credentialRepo.CredentialRepository,
	index search.DirectoryIndex,
	imageStorage storage.ImageStorage,
	log *zap.Logger,
) OrganizationService {
	return &organizationService{
		repo:         repo,
		credentials:  credentials,
		index:        index,
		imageStorage: imageStorage,
		log:          log,
	}
}

func (s *organizationService) AddOrganization(ctx context.Context, req dto.CreateOrganizationRequest) (*entity.Organization, error) {
	org := &entity.Organization{
		Name:              sanitize.Text(req.Name),
		Head:              sanitize.Text(req.Head),
		AmbassadorName:    sanitize.Text(req.AmbassadorName),
		AmbassadorContact: sanitize.Text(req.AmbassadorContact),
		Contact:           sanitize.Text(req.Contact),
		Email:             sanitize.Email(req.Email),
		Status:            req.Status,
	}
	if org.Name == "" {
		return nil, apperror.BadRequest("name is required")
	}
	if org.Status == "" {
		org.Status = entity.StatusOnboard
	}
	if !entity.IsValidStatus(org.Status) {
		return nil, apperror.BadRequest("Invalid status")
	}

	if err := s.ensureUnique(ctx, org.Name, org.Email, uuid.Nil, ""); err != nil {
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	cred := &entity.Credential{
		Username: org.Name,
		Email:    org.Email,
		Password: string(hashed),
		Role:     entity.RoleOrg,
	}

	if err := s.repo.Create(ctx, org, cred); err != nil {
		return nil, fmt.Errorf("create organization: %w", err)
	}

	s.reindex(org)
	return org, nil
}

// ensureUnique checks the organization table and the credential table. ownEmail and excludeID
// identify the record being updated so it does not collide with itself.
func (s *organizationService) ensureUnique(ctx context.Context, name, email string, excludeID uuid.UUID, ownEmail string) error {
	checks := []func() (bool, error){
		func() (bool, error) { return s.repo.NameTaken(ctx, name, excludeID) },
		func() (bool, error) { return s.repo.EmailTaken(ctx, email, excludeID) },
		func() (bool, error) { return s.credentials.EmailTaken(ctx, email, ownEmail) },
		func() (bool, error) { return s.credentials.UsernameTaken(ctx, name, ownEmail) },
	}

	for _, check := range checks {
		taken, err := check()
		if err != nil {
			return fmt.Errorf("uniqueness check: %w", err)
		}
		if taken {
			return apperror.Conflict(msgOrganizationExists)
		}
	}
	return nil
}

func (s *organizationService) ListOrganizations(ctx context.Context) ([]*entity.Organization, error) {
	orgs, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list organizations: %w", err)
	}
	return orgs, nil
}

func (s *organizationService) findOrganization(ctx context.Context, id uuid.UUID) (*entity.Organization, error) {
	org, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound(msgOrganizationNotFound)
		}
		return nil, fmt.Errorf("find organization: %w", err)
	}
	return org, nil
}

func (s *organizationService) UpdateOrganization(ctx context.Context, id uuid.UUID, req dto.UpdateOrganizationRequest) (*entity.Organization, error) {
	org, err := s.findOrganization(ctx, id)
	if err != nil {
		return nil, err
	}

	prevEmail := org.Email
	credFields := make(map[string]interface{})

	name, email := org.Name, org.Email
	if req.Name != nil {
		name = sanitize.Text(*req.Name)
		if name == "" {
			return nil, apperror.BadRequest("name is required")
		}
	}
	if req.Email != nil {
		email = sanitize.Email(*req.Email)
	}
	if name != org.Name || email != org.Email {
		if err := s.ensureUnique(ctx, name, email, org.ID, prevEmail); err != nil {
			return nil, err
		}
	}
	if name != org.Name {
		org.Name = name
		credFields["username"] = name
	}
	if email != org.Email {
		org.Email = email
		credFields["email"] = email
	}

	if req.Status != nil {
		if !entity.IsValidStatus(*req.Status) {
			return nil, apperror.BadRequest("Invalid status")
		}
		org.Status = *req.Status
	}
	if req.Head != nil {
		org.Head = sanitize.Text(*req.Head)
	}
	if req.AmbassadorName != nil {
		org.AmbassadorName = sanitize.Text(*req.AmbassadorName)
	}
	if req.AmbassadorContact != nil {
		org.AmbassadorContact = sanitize.Text(*req.AmbassadorContact)
	}
	if req.Contact != nil {
		org.Contact = sanitize.Text(*req.Contact)
	}
	if req.Password != nil {
		hashed, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		credFields["password"] = string(hashed)
	}

	if err := s.repo.Update(ctx, org, prevEmail, credFields); err != nil {
		return nil, fmt.Errorf("update organization: %w", err)
	}

	s.reindex(org)
	return org, nil
}

func (s *organizationService) DeleteOrganization(ctx context.Context, id uuid.UUID) error {
	org, err := s.findOrganization(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, org); err != nil {
		return fmt.Errorf("delete organization: %w", err)
	}

	if s.index != nil {
		if err := s.index.DeleteOrganization(org.ID); err != nil {
			s.log.Warn("failed to remove organization from search index", zap.Stringer("id", org.ID), zap.Error(err))
		}
	}
	if s.imageStorage != nil && org.LogoURL != nil {
		if err := s.imageStorage.DeleteImage(ctx, *org.LogoURL); err != nil {
			s.log.Warn("failed to delete organization logo", zap.Stringer("id", org.ID), zap.Error(err))
		}
	}
	return nil
}

// SearchOrganizations prefers the search index and falls back to a LIKE query.
func (s *organizationService) SearchOrganizations(ctx context.Context, query string, limit int) ([]*entity.Organization, error) {
	if limit <= 0 {
		limit = defaultSearchLimit
	}

	if s.index != nil {
		ids, err := s.index.SearchOrganizations(query, limit)
		if err == nil {
			return s.loadInOrder(ctx, ids)
		}
		s.log.Warn("search index unavailable, falling back to database", zap.Error(err))
	}

	orgs, err := s.repo.Search(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("search organizations: %w", err)
	}
	return orgs, nil
}

func (s *organizationService) loadInOrder(ctx context.Context, ids []uuid.UUID) ([]*entity.Organization, error) {
	found, err := s.repo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("load organizations: %w", err)
	}

	byID := make(map[uuid.UUID]*entity.Organization, len(found))
	for _, org := range found {
		byID[org.ID] = org
	}

	orgs := make([]*entity.Organization, 0, len(ids))
	for _, id := range ids {
		if org, ok := byID[id]; ok {
			orgs = append(orgs, org)
		}
	}
	return orgs, nil
}

func (s *organizationService) UploadLogo(ctx context.Context, id uuid.UUID, r io.Reader, fileName string) (*entity.Organization, error) {
	if s.imageStorage == nil {
		return nil, apperror.New(503, "logo storage is not configured", apperror.ErrInternal)
	}
	if !storage.IsImageFile(fileName) {
		return nil, apperror.BadRequest("logo must be an image")
	}

	org, err := s.findOrganization(ctx, id)
	if err != nil {
		return nil, err
	}

	url, err := s.imageStorage.UploadImage(ctx, r, logoFolder, fileName)
	if err != nil {
		return nil, err
	}
	if err := s.repo.UpdateLogo(ctx, org.ID, url); err != nil {
		return nil, fmt.Errorf("save organization logo: %w", err)
	}

	if org.LogoURL != nil {
		if err := s.imageStorage.DeleteImage(ctx, *org.LogoURL); err != nil {
			s.log.Warn("failed to delete previous logo", zap.Stringer("id", org.ID), zap.Error(err))
		}
	}

	org.LogoURL = &url
	return org, nil
}

func (s *organizationService) reindex(org *entity.Organization) {
	if s.index == nil {
		return
	}
	if err := s.index.IndexOrganization(org); err != nil {
		s.log.Warn("failed to index organization", zap.Stringer("id", org.ID), zap.Error(err))
	}
}
