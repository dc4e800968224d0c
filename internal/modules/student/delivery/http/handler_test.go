package handler_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"anoa.com/langanalytics/internal/entity"
	handler "anoa.com/langanalytics/internal/modules/student/delivery/http"
	"anoa.com/langanalytics/internal/modules/student/repository"
	"anoa.com/langanalytics/internal/modules/student/service"
	"anoa.com/langanalytics/internal/testutil"
	"anoa.com/langanalytics/pkg/validator"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListStudents(t *testing.T) {
	gin.SetMode(gin.TestMode)
	require.NoError(t, validator.Register())

	db := testutil.SetupTestDB(t)
	r := gin.New()
	handler.NewStudentHandler(service.NewStudentService(repository.NewStudentRepository(db))).RegisterRoutes(&r.RouterGroup)

	orgA, orgB := uuid.New(), uuid.New()
	testutil.CreateTestStudent(t, db, &entity.Student{Name: "Aiko", Language: "Japanese", OrgID: orgA, OverallMark: 80})
	testutil.CreateTestStudent(t, db, &entity.Student{Name: "Ben", Language: "German", OrgID: orgA, OverallMark: 70})
	testutil.CreateTestStudent(t, db, &entity.Student{Name: "Chen", Language: "Japanese", OrgID: orgB, OverallMark: 90})

	get := func(path string) (int, []interface{}) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		var body map[string][]interface{}
		_ = json.Unmarshal(w.Body.Bytes(), &body)
		return w.Code, body["students"]
	}

	code, students := get("/students/list")
	require.Equal(t, http.StatusOK, code)
	assert.Len(t, students, 3)

	code, students = get("/students/list?org_id=" + orgA.String())
	require.Equal(t, http.StatusOK, code)
	assert.Len(t, students, 2)

	code, students = get("/students/list?org_id=" + orgA.String() + "&language=Japanese")
	require.Equal(t, http.StatusOK, code)
	require.Len(t, students, 1)
	assert.Equal(t, "Aiko", students[0].(map[string]interface{})["name"])

	code, students = get("/students/list?org_id=" + uuid.NewString())
	require.Equal(t, http.StatusOK, code)
	assert.Empty(t, students)

	code, students = get("/students/list?language=Klingon")
	require.Equal(t, http.StatusOK, code)
	assert.Empty(t, students)

	code, _ = get("/students/list?org_id=nope")
	assert.Equal(t, http.StatusBadRequest, code)
}
