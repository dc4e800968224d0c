package service_test

import (
	"context"
	"errors"
	"testing"

	"anoa.com/langanalytics/internal/entity"
	"anoa.com/langanalytics/internal/modules/admin/dto"
	"anoa.com/langanalytics/internal/modules/admin/repository"
	"anoa.com/langanalytics/internal/modules/admin/service"
	credentialRepo "anoa.com/langanalytics/internal/modules/credential/repository"
	orgRepo "anoa.com/langanalytics/internal/modules/organization/repository"
	"anoa.com/langanalytics/internal/testutil"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type fakeIndex struct {
	indexed   map[uuid.UUID]string
	deleted   []uuid.UUID
	searchIDs []uuid.UUID
	searchErr error
}

func (f *fakeIndex) IndexOrganization(*entity.Organization) error { return nil }
func (f *fakeIndex) DeleteOrganization(uuid.UUID) error           { return nil }

func (f *fakeIndex) IndexAdmin(admin *entity.Admin, orgName string) error {
	if f.indexed == nil {
		f.indexed = make(map[uuid.UUID]string)
	}
	f.indexed[admin.ID] = orgName
	return nil
}

func (f *fakeIndex) DeleteAdmin(id uuid.UUID) error {
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeIndex) SearchOrganizations(string, int) ([]uuid.UUID, error) { return nil, nil }

func (f *fakeIndex) SearchAdmins(string, int) ([]uuid.UUID, error) {
	return f.searchIDs, f.searchErr
}

func newService(t *testing.T, index *fakeIndex) (service.AdminService, *gorm.DB) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	svc := service.NewAdminService(
		repository.NewAdminRepository(db),
		orgRepo.NewOrganizationRepository(db),
		credentialRepo.NewCredentialRepository(db),
		index, zap.NewNop(),
	)
	return svc, db
}

func TestSearchAdminsUsesIndexOrder(t *testing.T) {
	index := &fakeIndex{}
	svc, db := newService(t, index)
	acme := testutil.CreateTestOrg(t, db, "Acme", "acme@x.com")
	first := testutil.CreateTestAdmin(t, db, acme, "first@x.com")
	second := testutil.CreateTestAdmin(t, db, acme, "second@x.com")

	index.searchIDs = []uuid.UUID{second.ID, uuid.New(), first.ID}

	admins, err := svc.SearchAdmins(context.Background(), "x.com", 0)
	require.NoError(t, err)
	require.Len(t, admins, 2)
	assert.Equal(t, second.ID, admins[0].ID)
	assert.Equal(t, first.ID, admins[1].ID)
	assert.Equal(t, "Acme", admins[0].OrganizationName)
}

func TestSearchAdminsFallsBackToDatabase(t *testing.T) {
	index := &fakeIndex{searchErr: errors.New("meili down")}
	svc, db := newService(t, index)
	acme := testutil.CreateTestOrg(t, db, "Acme", "acme@x.com")
	testutil.CreateTestAdmin(t, db, acme, "kenji@x.com")
	testutil.CreateTestAdmin(t, db, acme, "maria@x.com")

	admins, err := svc.SearchAdmins(context.Background(), "maria", 10)
	require.NoError(t, err)
	require.Len(t, admins, 1)
	assert.Equal(t, "maria@x.com", admins[0].Email)
}

func TestAdminIndexFollowsWrites(t *testing.T) {
	index := &fakeIndex{}
	svc, db := newService(t, index)
	testutil.CreateTestOrg(t, db, "Acme", "acme@x.com")
	testutil.CreateTestOrg(t, db, "Globex", "globex@x.com")
	ctx := context.Background()

	created, err := svc.AddAdmin(ctx, dto.CreateAdminRequest{
		Name:     "Yuki",
		Contact:  "+81",
		Role:     "Coordinator",
		Language: "Japanese",
		Email:    "yuki@x.com",
		Password: "supersecret",
		OrgName:  "Acme",
	})
	require.NoError(t, err)
	assert.Equal(t, "Acme", index.indexed[created.ID])

	globex := "Globex"
	_, err = svc.UpdateAdmin(ctx, created.ID, dto.UpdateAdminRequest{OrgName: &globex})
	require.NoError(t, err)
	assert.Equal(t, "Globex", index.indexed[created.ID])

	require.NoError(t, svc.DeleteAdmin(ctx, created.ID))
	assert.Equal(t, []uuid.UUID{created.ID}, index.deleted)
}
