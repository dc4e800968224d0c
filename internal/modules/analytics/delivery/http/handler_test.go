package handler_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"anoa.com/langanalytics/internal/entity"
	handler "anoa.com/langanalytics/internal/modules/analytics/delivery/http"
	"anoa.com/langanalytics/internal/modules/analytics/repository"
	"anoa.com/langanalytics/internal/modules/analytics/service"
	studentRepo "anoa.com/langanalytics/internal/modules/student/repository"
	"anoa.com/langanalytics/internal/testutil"
	"anoa.com/langanalytics/pkg/validator"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func setupRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	require.NoError(t, validator.Register())

	db := testutil.SetupTestDB(t)
	svc := service.NewAnalyticsService(repository.NewAnalyticsRepository(db), studentRepo.NewStudentRepository(db), service.Options{
		Now: func() time.Time { return time.Date(2025, 3, 15, 12, 0, 0, 0, time.UTC) },
	}, zap.NewNop())

	r := gin.New()
	handler.NewAnalyticsHandler(svc).RegisterRoutes(&r.RouterGroup)
	return r, db
}

func get(t *testing.T, r *gin.Engine, path string) (int, map[string]interface{}) {
	t.Helper()
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body), w.Body.String())
	return w.Code, body
}

func TestSummaryEndpoint(t *testing.T) {
	r, db := setupRouter(t)
	orgID := uuid.New()

	code, body := get(t, r, "/analytics/summary?org_id="+orgID.String()+"&language=Japanese")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, map[string]interface{}{}, body["summary"])

	testutil.CreateTestStudent(t, db, &entity.Student{OrgID: orgID, Language: "Japanese", OverallMark: 70, FluencyMark: 60, VocabMark: 50, Pronunciation: 40})

	code, body = get(t, r, "/analytics/summary?org_id="+orgID.String()+"&language=Japanese")
	require.Equal(t, http.StatusOK, code)
	summary := body["summary"].(map[string]interface{})
	assert.Equal(t, 70.0, summary["avg_overall"])
	assert.Equal(t, 40.0, summary["avg_pronunciation"])

	code, _ = get(t, r, "/analytics/summary?language=Japanese")
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestLanguageDetailEndpoint(t *testing.T) {
	r, _ := setupRouter(t)

	code, body := get(t, r, "/analytics/language-detail?org_id="+uuid.NewString()+"&language=German")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, map[string]interface{}{"message": "No data", "total_students": 0.0}, body)

	code, _ = get(t, r, "/analytics/language-detail?org_id="+uuid.NewString())
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestStudentsEndpoint(t *testing.T) {
	r, db := setupRouter(t)
	orgID := uuid.New()
	testutil.CreateTestStudent(t, db, &entity.Student{Name: "Aiko", OrgID: orgID, Language: "Japanese"})
	testutil.CreateTestStudent(t, db, &entity.Student{Name: "Ben", OrgID: orgID, Language: "German"})

	code, body := get(t, r, "/analytics/students?language=German")
	require.Equal(t, http.StatusOK, code)
	students := body["students"].([]interface{})
	require.Len(t, students, 1)
	assert.Equal(t, "Ben", students[0].(map[string]interface{})["name"])
}

func TestStudentFiltersAcceptAnyLanguage(t *testing.T) {
	r, db := setupRouter(t)
	orgID := uuid.New()
	testutil.CreateTestStudent(t, db, &entity.Student{
		Name:        "Minji",
		OrgID:       orgID,
		Language:    "Korean",
		OverallMark: 88,
		CreatedAt:   time.Date(2025, 3, 14, 9, 0, 0, 0, time.UTC),
	})

	code, body := get(t, r, "/analytics/summary?org_id="+orgID.String()+"&language=Korean")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, 88.0, body["summary"].(map[string]interface{})["avg_overall"])

	code, body = get(t, r, "/analytics/summary?org_id="+orgID.String()+"&language=Italian")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, map[string]interface{}{}, body["summary"])

	code, body = get(t, r, "/analytics/language-detail?org_id="+orgID.String()+"&language=Italian")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, 0.0, body["total_students"])

	code, body = get(t, r, "/analytics/students?language=Korean")
	require.Equal(t, http.StatusOK, code)
	assert.Len(t, body["students"], 1)

	code, body = get(t, r, "/analytics/students/timeline?timeframe=7days&language=Korean")
	require.Equal(t, http.StatusOK, code)
	assert.Len(t, body["data"], 7)
}

func TestOrganizationTimelineEndpoint(t *testing.T) {
	r, _ := setupRouter(t)

	code, body := get(t, r, "/analytics/organizations/timeline?timeframe=7days")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "7days", body["timeframe"])
	assert.Equal(t, "day", body["group_by"])

	data := body["data"].([]interface{})
	require.Len(t, data, 7)
	first := data[0].(map[string]interface{})
	assert.Equal(t, "2025-03-09", first["date"])
	assert.Equal(t, "Mar 09", first["label"])
	assert.Equal(t, 0.0, first["onboarded"])
	assert.Equal(t, 0.0, first["verification"])
	assert.NotContains(t, first, "verified")
}

func TestStudentTimelineEndpoint(t *testing.T) {
	r, _ := setupRouter(t)

	code, body := get(t, r, "/analytics/students/timeline?timeframe=15days&language=Spanish")
	require.Equal(t, http.StatusOK, code)
	assert.Len(t, body["data"], 15)
	assert.Equal(t, map[string]interface{}{"language": "Spanish", "org_id": nil}, body["filters"])

	code, _ = get(t, r, "/analytics/students/timeline?org_id=nope")
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestOrganizationsStatusEndpoint(t *testing.T) {
	r, db := setupRouter(t)
	testutil.CreateTestOrgAt(t, db, "Acme", entity.StatusContacted, time.Date(2025, 3, 12, 8, 0, 0, 0, time.UTC))

	code, body := get(t, r, "/analytics/organizations/status?timeframe=7days")
	require.Equal(t, http.StatusOK, code)
	assert.Len(t, body["data"], 1)
	assert.Equal(t, 1.0, body["counts"].(map[string]interface{})["contacted"])
	assert.Equal(t, map[string]interface{}{"start": "2025-03-09", "end": "2025-03-15"}, body["date_range"])

	code, body = get(t, r, "/analytics/organizations/status?start_date=2025-13-01&end_date=2025-03-10")
	assert.Equal(t, http.StatusBadRequest, code)
	assert.NotEmpty(t, body["detail"])
}
