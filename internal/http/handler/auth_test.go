package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"docflow/internal/model"
	"docflow/internal/service"
	serviceMocks "docflow/internal/service/mocks"
)

func jsonRequest(t *testing.T, method, target string, payload any) *http.Request {
	t.Helper()
	body, err := json.Marshal(payload)
	require.NoError(t, err)
	req := httptest.NewRequest(method, target, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestRegister(t *testing.T) {
	mockSvc := new(serviceMocks.MockAuthService)
	app := fiber.New()
	app.Post("/api/register", Register(mockSvc))

	t.Run("success", func(t *testing.T) {
		mockSvc.On("Register", mock.Anything, "alice", "s3cret").
			Return(&model.User{ID: "id", Username: "alice"}, nil).Once()

		resp, _ := app.Test(jsonRequest(t, http.MethodPost, "/api/register",
			credentialsRequest{Username: "alice", Password: "s3cret"}))

		assert.Equal(t, http.StatusCreated, resp.StatusCode)

		var user model.User
		json.NewDecoder(resp.Body).Decode(&user)
		assert.Equal(t, "alice", user.Username)
	})

	t.Run("duplicate username", func(t *testing.T) {
		mockSvc.On("Register", mock.Anything, "alice", "s3cret").
			Return(nil, service.ErrUserExists).Once()

		resp, _ := app.Test(jsonRequest(t, http.MethodPost, "/api/register",
			credentialsRequest{Username: "alice", Password: "s3cret"}))

		assert.Equal(t, http.StatusConflict, resp.StatusCode)
		var res errorPayload
		json.NewDecoder(resp.Body).Decode(&res)
		assert.Equal(t, "USER_EXISTS", res.Error.Code)
	})

	t.Run("missing fields", func(t *testing.T) {
		mockSvc.On("Register", mock.Anything, "", "").
			Return(nil, service.ErrInvalidCredentials).Once()

		resp, _ := app.Test(jsonRequest(t, http.MethodPost, "/api/register", credentialsRequest{}))

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestLogin(t *testing.T) {
	mockSvc := new(serviceMocks.MockAuthService)
	app := fiber.New()
	app.Post("/api/login", Login(mockSvc))

	t.Run("success", func(t *testing.T) {
		mockSvc.On("Login", mock.Anything, "alice", "s3cret").
			Return(&model.User{ID: "id", Username: "alice"}, nil).Once()

		resp, _ := app.Test(jsonRequest(t, http.MethodPost, "/api/login",
			credentialsRequest{Username: "alice", Password: "s3cret"}))

		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("bad credentials", func(t *testing.T) {
		mockSvc.On("Login", mock.Anything, "alice", "wrong").
			Return(nil, service.ErrInvalidCredentials).Once()

		resp, _ := app.Test(jsonRequest(t, http.MethodPost, "/api/login",
			credentialsRequest{Username: "alice", Password: "wrong"}))

		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		var res errorPayload
		json.NewDecoder(resp.Body).Decode(&res)
		assert.Equal(t, "INVALID_CREDENTIALS", res.Error.Code)
	})
}

func TestLogout(t *testing.T) {
	mockSvc := new(serviceMocks.MockAuthService)
	app := fiber.New()
	app.Post("/api/logout", Logout(mockSvc))

	t.Run("success", func(t *testing.T) {
		mockSvc.On("Logout", mock.Anything, "alice").Return(nil).Once()

		resp, _ := app.Test(jsonRequest(t, http.MethodPost, "/api/logout",
			usernameRequest{Username: "alice"}))

		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("missing username", func(t *testing.T) {
		mockSvc.On("Logout", mock.Anything, "").Return(service.ErrIDRequired).Once()

		resp, _ := app.Test(jsonRequest(t, http.MethodPost, "/api/logout", usernameRequest{}))

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestDeleteUsers(t *testing.T) {
	mockSvc := new(serviceMocks.MockAuthService)
	app := fiber.New()
	app.Delete("/api/users", DeleteUsers(mockSvc))

	t.Run("success", func(t *testing.T) {
		ids := []string{"0b9fc90c-3f7e-4b6f-9a5d-111111111111"}
		mockSvc.On("DeleteUsers", mock.Anything, ids).Return(nil).Once()

		resp, _ := app.Test(jsonRequest(t, http.MethodDelete, "/api/users",
			deleteUsersRequest{IDs: ids}))

		assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	})

	t.Run("invalid ids", func(t *testing.T) {
		mockSvc.On("DeleteUsers", mock.Anything, []string{"nope"}).
			Return(service.ErrIDRequired).Once()

		resp, _ := app.Test(jsonRequest(t, http.MethodDelete, "/api/users",
			deleteUsersRequest{IDs: []string{"nope"}}))

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		var res errorPayload
		json.NewDecoder(resp.Body).Decode(&res)
		assert.Equal(t, "INVALID_ID", res.Error.Code)
	})
}

func TestActiveUsers(t *testing.T) {
	mockSvc := new(serviceMocks.MockAuthService)
	app := fiber.New()
	app.Get("/api/active-users", ActiveUsers(mockSvc))

	mockSvc.On("ActiveUsers", mock.Anything).Return([]string{"alice", "bob"}, nil).Once()

	req := httptest.NewRequest(http.MethodGet, "/api/active-users", nil)
	resp, _ := app.Test(req)

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Count int      `json:"count"`
		Users []string `json:"users"`
	}
	json.NewDecoder(resp.Body).Decode(&body)
	assert.Equal(t, 2, body.Count)
	assert.Equal(t, []string{"alice", "bob"}, body.Users)
}
