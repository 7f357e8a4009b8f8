package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"docflow/internal/model"
	"docflow/internal/service"
	serviceMocks "docflow/internal/service/mocks"
)

func TestGetLogs(t *testing.T) {
	mockSvc := new(serviceMocks.MockActivityService)
	app := fiber.New()
	app.Get("/api/logs", GetLogs(mockSvc))

	logs := []model.ActivityLog{{ID: "l1", Username: "alice", Action: "login"}}
	mockSvc.On("Logs", mock.Anything).Return(logs, nil).Once()

	req := httptest.NewRequest(http.MethodGet, "/api/logs", nil)
	resp, _ := app.Test(req)

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var result []model.ActivityLog
	json.NewDecoder(resp.Body).Decode(&result)
	assert.Len(t, result, 1)
	assert.Equal(t, "login", result[0].Action)
}

func TestRecordEvent(t *testing.T) {
	mockSvc := new(serviceMocks.MockActivityService)
	app := fiber.New()
	app.Post("/api/events", RecordEvent(mockSvc))

	t.Run("success", func(t *testing.T) {
		at := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
		mockSvc.On("RecordEvent", mock.Anything, "alice", "button-clicked", at).
			Return(&model.Event{ID: "ev", Username: "alice", Action: "button-clicked", OccurredAt: at}, nil).Once()

		resp, _ := app.Test(jsonRequest(t, http.MethodPost, "/api/events",
			recordEventRequest{Username: "alice", Action: "button-clicked", OccurredAt: at}))

		assert.Equal(t, http.StatusCreated, resp.StatusCode)

		var ev model.Event
		json.NewDecoder(resp.Body).Decode(&ev)
		assert.Equal(t, "button-clicked", ev.Action)
	})

	t.Run("missing fields", func(t *testing.T) {
		mockSvc.On("RecordEvent", mock.Anything, "", "", mock.Anything).
			Return(nil, service.ErrIDRequired).Once()

		resp, _ := app.Test(jsonRequest(t, http.MethodPost, "/api/events", recordEventRequest{}))

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		var res errorPayload
		json.NewDecoder(resp.Body).Decode(&res)
		assert.Equal(t, "FIELDS_REQUIRED", res.Error.Code)
	})
}

func TestListEvents(t *testing.T) {
	mockSvc := new(serviceMocks.MockActivityService)
	app := fiber.New()
	app.Get("/api/events", ListEvents(mockSvc))

	events := []model.Event{{ID: "ev", Username: "alice", Action: "document-processed"}}
	mockSvc.On("ListEvents", mock.Anything).Return(events, nil).Once()

	req := httptest.NewRequest(http.MethodGet, "/api/events", nil)
	resp, _ := app.Test(req)

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var result []model.Event
	json.NewDecoder(resp.Body).Decode(&result)
	assert.Len(t, result, 1)
}

func TestSaveDataflow(t *testing.T) {
	mockSvc := new(serviceMocks.MockDataflowService)
	app := fiber.New()
	app.Post("/api/data", SaveDataflow(mockSvc))

	t.Run("success", func(t *testing.T) {
		mockSvc.On("Save", mock.Anything, mock.MatchedBy(func(r *model.DataflowRecord) bool {
			return r.ClientName == "Acme"
		})).Return(&model.DataflowRecord{ID: "rec", ClientName: "Acme"}, nil).Once()

		resp, _ := app.Test(jsonRequest(t, http.MethodPost, "/api/data",
			model.DataflowRecord{ClientName: "Acme"}))

		assert.Equal(t, http.StatusCreated, resp.StatusCode)

		var rec model.DataflowRecord
		json.NewDecoder(resp.Body).Decode(&rec)
		assert.Equal(t, "rec", rec.ID)
	})

	t.Run("missing client name", func(t *testing.T) {
		mockSvc.On("Save", mock.Anything, mock.Anything).
			Return(nil, service.ErrIDRequired).Once()

		resp, _ := app.Test(jsonRequest(t, http.MethodPost, "/api/data", model.DataflowRecord{}))

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		var res errorPayload
		json.NewDecoder(resp.Body).Decode(&res)
		assert.Equal(t, "CLIENT_NAME_REQUIRED", res.Error.Code)
	})
}
