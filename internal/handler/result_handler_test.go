package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AskKenImani/school-backend/internal/grading"
	"github.com/AskKenImani/school-backend/internal/middleware"
	"github.com/AskKenImani/school-backend/internal/models"
	"github.com/AskKenImani/school-backend/internal/service"
	appErrors "github.com/AskKenImani/school-backend/pkg/errors"
)

type responseEnvelope struct {
	Data  map[string]interface{} `json:"data"`
	Error *appErrors.Error       `json:"error"`
	Meta  map[string]interface{} `json:"meta"`
}

type fakeResultSrv struct {
	result     *models.Result
	summary    *grading.StudentSummary
	report     *service.ReportFile
	err        error
	lastCreate service.CreateResultRequest
}

func (f *fakeResultSrv) List(context.Context) ([]models.ResultDetail, error) {
	return nil, f.err
}

func (f *fakeResultSrv) Create(_ context.Context, _ *models.JWTClaims, req service.CreateResultRequest) (*models.Result, error) {
	f.lastCreate = req
	return f.result, f.err
}

func (f *fakeResultSrv) Update(context.Context, string, service.UpdateResultRequest) (*models.Result, error) {
	return f.result, f.err
}

func (f *fakeResultSrv) ListByStudent(context.Context, *models.JWTClaims, string, string, string) ([]models.Result, error) {
	if f.err != nil {
		return nil, f.err
	}
	if f.result == nil {
		return nil, nil
	}
	return []models.Result{*f.result}, nil
}

func (f *fakeResultSrv) Summary(context.Context, *models.JWTClaims, string, string, string) (*grading.StudentSummary, error) {
	return f.summary, f.err
}

func (f *fakeResultSrv) Report(context.Context, *models.JWTClaims, string, string, string) (*service.ReportFile, error) {
	return f.report, f.err
}

func TestResultHandlerCreateSuccess(t *testing.T) {
	gin.SetMode(gin.TestMode)
	srv := &fakeResultSrv{result: &models.Result{ID: "res-1", Score: 70, Grade: "B"}}
	handler := NewResultHandler(srv)

	body := `{"student_id":"s-1","subject":"Mathematics","score":70,"term":"First Term","session":"2024/2025"}`
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodPost, "/results", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Set(middleware.ContextUserKey, &models.JWTClaims{UserID: "u-1", Role: models.RoleTeacher, ProfileID: "t-1"})

	handler.Create(c)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "Mathematics", srv.lastCreate.Subject)
	assert.Equal(t, 70, srv.lastCreate.Score)
}

func TestResultHandlerCreateInvalidScore(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewResultHandler(&fakeResultSrv{err: appErrors.ErrInvalidScore})

	body := `{"student_id":"s-1","subject":"Mathematics","score":120,"term":"First Term","session":"2024/2025"}`
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodPost, "/results", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	handler.Create(c)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	var envelope responseEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	require.NotNil(t, envelope.Error)
	assert.Equal(t, "INVALID_SCORE", envelope.Error.Code)
}

func TestResultHandlerSummaryForbidden(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewResultHandler(&fakeResultSrv{err: appErrors.ErrForbidden})

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/results/student/s-1/summary?term=First%20Term&session=2024/2025", nil)
	c.Params = gin.Params{{Key: "studentId", Value: "s-1"}}
	c.Set(middleware.ContextUserKey, &models.JWTClaims{UserID: "u-2", Role: models.RoleStudent, ProfileID: "s-2"})

	handler.Summary(c)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestResultHandlerSummarySuccess(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewResultHandler(&fakeResultSrv{summary: &grading.StudentSummary{
		StudentID:      "s-1",
		Term:           "First Term",
		Session:        "2024/2025",
		TotalScore:     185,
		MaxScore:       300,
		AveragePercent: 61.67,
	}})

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/results/student/s-1/summary?term=First%20Term&session=2024/2025", nil)
	c.Params = gin.Params{{Key: "studentId", Value: "s-1"}}

	handler.Summary(c)

	assert.Equal(t, http.StatusOK, rec.Code)
	var envelope responseEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.Equal(t, float64(185), envelope.Data["total_score"])
	assert.Equal(t, 61.67, envelope.Data["average_percent"])
}

func TestResultHandlerReportStreamsPDF(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewResultHandler(&fakeResultSrv{report: &service.ReportFile{
		Data:        []byte("%PDF-1.4 fake"),
		Filename:    "Jane Doe_Result_First Term_2024-2025.pdf",
		ContentType: "application/pdf",
	}})

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/results/student/s-1/report?term=First%20Term&session=2024/2025", nil)
	c.Params = gin.Params{{Key: "studentId", Value: "s-1"}}

	handler.Report(c)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "Jane Doe_Result_First Term_2024-2025.pdf")
	assert.True(t, strings.HasPrefix(rec.Body.String(), "%PDF"))
}

func TestResultHandlerReportNoRecords(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewResultHandler(&fakeResultSrv{err: appErrors.ErrNoRecordsFound})

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/results/student/s-1/report?term=First%20Term&session=2024/2025", nil)
	c.Params = gin.Params{{Key: "studentId", Value: "s-1"}}

	handler.Report(c)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.NotContains(t, rec.Body.String(), "%PDF")
}
