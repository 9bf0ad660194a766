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

func setupContactRouter(t *testing.T) (http.Handler, *gorm.DB) {
	db := testutil.SetupTestDB(t)
	contactRepo := repository.NewContactRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	svc := service.NewContactService(contactRepo, projectRepo, zap.NewNop())
	h := handler.NewContactHandler(svc, zap.NewNop())

	r := chi.NewRouter()
	r.Post("/contacts", h.CreateContact)
	r.Get("/contacts/{id}", h.GetContact)
	r.Put("/contacts/{id}/stage", h.UpdateContactStage)
	r.Delete("/contacts/{id}", h.DeleteContact)
	return r, db
}

func decodeAPIError(t *testing.T, rec *httptest.ResponseRecorder) domain.APIError {
	t.Helper()
	var apiErr domain.APIError
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&apiErr))
	return apiErr
}

func TestContactHandler_Create(t *testing.T) {
	router, _ := setupContactRouter(t)

	body := bytes.NewBufferString(`{"firstName":"Kari","lastName":"Nordmann","email":"kari@example.com"}`)
	req := httptest.NewRequest(http.MethodPost, "/contacts", body)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)

	var dto domain.ContactDTO
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&dto))
	assert.Equal(t, domain.ContactStageLead, dto.Stage)
	assert.Equal(t, "Kari Nordmann", dto.FullName)
}

func TestContactHandler_Create_ValidationErrors(t *testing.T) {
	router, _ := setupContactRouter(t)

	body := bytes.NewBufferString(`{"firstName":"","lastName":"Nordmann","email":"not-an-email"}`)
	req := httptest.NewRequest(http.MethodPost, "/contacts", body)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	apiErr := decodeAPIError(t, rec)
	assert.Contains(t, apiErr.Errors, "firstName")
	assert.Contains(t, apiErr.Errors, "email")
}

func TestContactHandler_UpdateStage(t *testing.T) {
	router, db := setupContactRouter(t)
	contact := testutil.CreateTestContact(t, db, "Kari", "Nordmann", "kari@example.com")

	body := bytes.NewBufferString(`{"stage":"Prospect"}`)
	req := httptest.NewRequest(http.MethodPut, fmt.Sprintf("/contacts/%s/stage", contact.ID), body)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var dto domain.ContactDTO
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&dto))
	assert.Equal(t, domain.ContactStageProspect, dto.Stage)
}

func TestContactHandler_UpdateStage_UnknownStageRejected(t *testing.T) {
	router, db := setupContactRouter(t)
	contact := testutil.CreateTestContact(t, db, "Kari", "Nordmann", "kari@example.com")

	body := bytes.NewBufferString(`{"stage":"Archived"}`)
	req := httptest.NewRequest(http.MethodPut, fmt.Sprintf("/contacts/%s/stage", contact.ID), body)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestContactHandler_Delete_ReferencedContactConflicts(t *testing.T) {
	router, db := setupContactRouter(t)
	contact := testutil.CreateTestContact(t, db, "Kari", "Nordmann", "kari@example.com")
	testutil.CreateTestProject(t, db, "Strategy Assessment", &contact.ID)

	req := httptest.NewRequest(http.MethodDelete, fmt.Sprintf("/contacts/%s", contact.ID), nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusConflict, rec.Code)
	apiErr := decodeAPIError(t, rec)
	assert.Contains(t, apiErr.Detail, "1 project(s)")
}

func TestContactHandler_Delete_Unreferenced(t *testing.T) {
	router, db := setupContactRouter(t)
	contact := testutil.CreateTestContact(t, db, "Kari", "Nordmann", "kari@example.com")

	req := httptest.NewRequest(http.MethodDelete, fmt.Sprintf("/contacts/%s", contact.ID), nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestContactHandler_Get_NotFound(t *testing.T) {
	router, _ := setupContactRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/contacts/6a6e2abc-0000-4000-8000-000000000000", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
