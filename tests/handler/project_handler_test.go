package handler_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/gustmic/consulting-crm-api/internal/domain"
	"github.com/gustmic/consulting-crm-api/internal/http/handler"
	"github.com/gustmic/consulting-crm-api/internal/repository"
	"github.com/gustmic/consulting-crm-api/internal/service"
	"github.com/gustmic/consulting-crm-api/tests/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func setupProjectRouter(t *testing.T) (http.Handler, *gorm.DB) {
	db := testutil.SetupTestDB(t)
	projectRepo := repository.NewProjectRepository(db)
	contactRepo := repository.NewContactRepository(db)
	companyRepo := repository.NewCompanyRepository(db)
	svc := service.NewProjectService(projectRepo, contactRepo, companyRepo, zap.NewNop())
	h := handler.NewProjectHandler(svc, zap.NewNop())

	r := chi.NewRouter()
	r.Post("/projects", h.CreateProject)
	r.Put("/projects/{id}/pipeline-status", h.UpdatePipelineStatus)
	r.Post("/projects/{id}/win", h.WinProject)
	return r, db
}

func TestProjectHandler_PipelineStatusWonRejectedWithoutWinPayload(t *testing.T) {
	router, db := setupProjectRouter(t)
	project := testutil.CreateTestProject(t, db, "Pilot Build", nil)

	body := bytes.NewBufferString(`{"pipelineStatus":"Won"}`)
	req := httptest.NewRequest(http.MethodPut, fmt.Sprintf("/projects/%s/pipeline-status", project.ID), body)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)

	var stored domain.Project
	require.NoError(t, db.First(&stored, "id = ?", project.ID).Error)
	assert.Equal(t, domain.PipelineStatusMeetingBooked, stored.PipelineStatus, "rejected move writes nothing")
}

func TestProjectHandler_WinCommitsEverythingAtOnce(t *testing.T) {
	router, db := setupProjectRouter(t)
	project := testutil.CreateTestProject(t, db, "Pilot Build", nil)

	body := bytes.NewBufferString(`{"valueKr":250000,"startDate":"2025-07-01T00:00:00Z","endDate":"2025-09-30T00:00:00Z"}`)
	req := httptest.NewRequest(http.MethodPost, fmt.Sprintf("/projects/%s/win", project.ID), body)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var dto domain.ProjectDTO
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&dto))
	assert.Equal(t, domain.PipelineStatusWon, dto.PipelineStatus)
	assert.Equal(t, 250000.0, dto.ValueKr)
	assert.Equal(t, 100, dto.ProbabilityPercent)
	assert.Equal(t, domain.ProjectStatusOngoing, dto.Status)
}

func TestProjectHandler_WinWithoutValueFailsValidation(t *testing.T) {
	router, db := setupProjectRouter(t)
	project := testutil.CreateTestProject(t, db, "Pilot Build", nil)

	body := bytes.NewBufferString(`{"startDate":"2025-07-01T00:00:00Z"}`)
	req := httptest.NewRequest(http.MethodPost, fmt.Sprintf("/projects/%s/win", project.ID), body)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)

	var stored domain.Project
	require.NoError(t, db.First(&stored, "id = ?", project.ID).Error)
	assert.Equal(t, domain.PipelineStatusMeetingBooked, stored.PipelineStatus)
}

func TestProjectHandler_LostWithoutConfirmRejected(t *testing.T) {
	router, db := setupProjectRouter(t)
	project := testutil.CreateTestProject(t, db, "Pilot Build", nil)

	body := bytes.NewBufferString(`{"pipelineStatus":"Lost"}`)
	req := httptest.NewRequest(http.MethodPut, fmt.Sprintf("/projects/%s/pipeline-status", project.ID), body)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	body = bytes.NewBufferString(`{"pipelineStatus":"Lost","confirm":true}`)
	req = httptest.NewRequest(http.MethodPut, fmt.Sprintf("/projects/%s/pipeline-status", project.ID), body)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestProjectHandler_TerminalMoveConflicts(t *testing.T) {
	router, db := setupProjectRouter(t)
	project := testutil.CreateTestProject(t, db, "Pilot Build", nil)
	require.NoError(t, db.Model(project).Update("pipeline_status", domain.PipelineStatusLost).Error)

	body := bytes.NewBufferString(`{"pipelineStatus":"Meeting Booked"}`)
	req := httptest.NewRequest(http.MethodPut, fmt.Sprintf("/projects/%s/pipeline-status", project.ID), body)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusConflict, rec.Code)
}
