package service

import (
	"encoding/json"
	"fmt"

	"anoa.com/langanalytics/internal/entity"
	"github.com/google/uuid"
	"github.com/meilisearch/meilisearch-go"
	"go.uber.org/zap"
)

const (
	organizationsIndex = "organizations"
	adminsIndex        = "admins"
)

// DirectoryIndex keeps a search index of organizations and admins in sync with the database.
type DirectoryIndex interface {
	IndexOrganization(org *entity.Organization) error
	DeleteOrganization(id uuid.UUID) error
	IndexAdmin(admin *entity.Admin, orgName string) error
	DeleteAdmin(id uuid.UUID) error
	SearchOrganizations(query string, limit int) ([]uuid.UUID, error)
	SearchAdmins(query string, limit int) ([]uuid.UUID, error)
}

type meiliDirectory struct {
	client meilisearch.ServiceManager
	log    *zap.Logger
}

func NewMeiliDirectory(client meilisearch.ServiceManager, log *zap.Logger) DirectoryIndex {
	d := &meiliDirectory{client: client, log: log}
	d.initIndexes()
	return d
}

func (d *meiliDirectory) initIndexes() {
	orgSearchable := []string{"name", "head", "ambassador_name", "email"}
	if _, err := d.client.Index(organizationsIndex).UpdateSearchableAttributes(&orgSearchable); err != nil {
		d.log.Warn("failed to update organizations searchable attributes", zap.Error(err))
	}

	orgFilterable := []interface{}{"status"}
	if _, err := d.client.Index(organizationsIndex).UpdateFilterableAttributes(&orgFilterable); err != nil {
		d.log.Warn("failed to update organizations filterable attributes", zap.Error(err))
	}

	adminSearchable := []string{"name", "email", "role", "language", "organization_name"}
	if _, err := d.client.Index(adminsIndex).UpdateSearchableAttributes(&adminSearchable); err != nil {
		d.log.Warn("failed to update admins searchable attributes", zap.Error(err))
	}

	adminFilterable := []interface{}{"org_id", "language"}
	if _, err := d.client.Index(adminsIndex).UpdateFilterableAttributes(&adminFilterable); err != nil {
		d.log.Warn("failed to update admins filterable attributes", zap.Error(err))
	}
}

type organizationDoc struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Head           string `json:"head"`
	AmbassadorName string `json:"ambassador_name"`
	Email          string `json:"email"`
	Status         string `json:"status"`
	CreatedAt      int64  `json:"created_at"`
}

type adminDoc struct {
	ID               string `json:"id"`
	Name             string `json:"name"`
	Email            string `json:"email"`
	Role             string `json:"role"`
	Language         string `json:"language"`
	OrgID            string `json:"org_id"`
	OrganizationName string `json:"organization_name"`
}

func (d *meiliDirectory) IndexOrganization(org *entity.Organization) error {
	doc := organizationDoc{
		ID:             org.ID.String(),
		Name:           org.Name,
		Head:           org.Head,
		AmbassadorName: org.AmbassadorName,
		Email:          org.Email,
		Status:         org.Status,
		CreatedAt:      org.CreatedAt.Unix(),
	}

	task, err := d.client.Index(organizationsIndex).AddDocuments([]organizationDoc{doc}, strPtr("id"))
	if err != nil {
		return fmt.Errorf("index organization %s: %w", org.ID, err)
	}
	d.log.Debug("organization indexed", zap.Stringer("id", org.ID), zap.Int64("task_uid", task.TaskUID))
	return nil
}

func (d *meiliDirectory) DeleteOrganization(id uuid.UUID) error {
	_, err := d.client.Index(organizationsIndex).DeleteDocument(id.String())
	return err
}

func (d *meiliDirectory) IndexAdmin(admin *entity.Admin, orgName string) error {
	doc := adminDoc{
		ID:               admin.ID.String(),
		Name:             admin.Name,
		Email:            admin.Email,
		Role:             admin.Role,
		Language:         admin.Language,
		OrgID:            admin.OrgID.String(),
		OrganizationName: orgName,
	}

	if _, err := d.client.Index(adminsIndex).AddDocuments([]adminDoc{doc}, strPtr("id")); err != nil {
		return fmt.Errorf("index admin %s: %w", admin.ID, err)
	}
	return nil
}

func (d *meiliDirectory) DeleteAdmin(id uuid.UUID) error {
	_, err := d.client.Index(adminsIndex).DeleteDocument(id.String())
	return err
}

// SearchOrganizations returns matching ids in relevance order.
func (d *meiliDirectory) SearchOrganizations(query string, limit int) ([]uuid.UUID, error) {
	return d.searchIDs(organizationsIndex, query, limit)
}

func (d *meiliDirectory) SearchAdmins(query string, limit int) ([]uuid.UUID, error) {
	return d.searchIDs(adminsIndex, query, limit)
}

func (d *meiliDirectory) searchIDs(index, query string, limit int) ([]uuid.UUID, error) {
	raw, err := d.client.Index(index).SearchRaw(query, &meilisearch.SearchRequest{
		Limit:                int64(limit),
		AttributesToRetrieve: []string{"id"},
	})
	if err != nil {
		return nil, fmt.Errorf("search %s: %w", index, err)
	}
	return decodeHitIDs(*raw)
}

func decodeHitIDs(raw []byte) ([]uuid.UUID, error) {
	var resp struct {
		Hits []struct {
			ID string `json:"id"`
		} `json:"hits"`
	}
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, fmt.Errorf("decode search response: %w", err)
	}

	ids := make([]uuid.UUID, 0, len(resp.Hits))
	for _, hit := range resp.Hits {
		id, err := uuid.Parse(hit.ID)
		if err != nil {
			continue
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func strPtr(s string) *string {
	return &s
}
