package handlers_test

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/hugh/birthday-reminder/internal/api/dto"
	"github.com/hugh/birthday-reminder/internal/api/handlers"
	"github.com/hugh/birthday-reminder/internal/api/middleware"
	"github.com/hugh/birthday-reminder/internal/auth"
	"github.com/hugh/birthday-reminder/internal/database/models"
	"github.com/hugh/birthday-reminder/internal/testutil"
	"github.com/hugh/birthday-reminder/internal/users"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupUserTestRouter(t *testing.T) (*chi.Mux, *testutil.TestSetup) {
	tc := testutil.NewTestContext(t)

	handler := handlers.NewUserHandler(users.NewService(tc.DB), discardLogger())

	r := chi.NewRouter()
	r.Route("/api/user", func(r chi.Router) {
		r.Use(middleware.Auth(tc.JWTService))
		r.Patch("/{id}", handler.UpdateProfile)
		r.Patch("/password/{id}", handler.UpdatePassword)
	})

	return r, tc
}

func TestUserHandler_UpdateProfile(t *testing.T) {
	router, tc := setupUserTestRouter(t)
	defer tc.Cleanup()

	path := fmt.Sprintf("/api/user/%d", tc.User.ID)

	t.Run("empty body", func(t *testing.T) {
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, testutil.AuthenticatedRequest(t, "PATCH", path, nil, tc.Token))

		testutil.AssertStatus(t, rr, http.StatusBadRequest)
		assert.JSONEq(t, `{"code":"not_changes_detected","message":"Not changes detected"}`, rr.Body.String())

		var reloaded models.User
		require.NoError(t, tc.DB.First(&reloaded, tc.User.ID).Error)
		assert.Equal(t, tc.User.Name, reloaded.Name)
	})

	t.Run("unrecognized fields only", func(t *testing.T) {
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, testutil.AuthenticatedRequest(t, "PATCH", path, map[string]bool{"active": true}, tc.Token))

		testutil.AssertStatus(t, rr, http.StatusBadRequest)
		assert.Equal(t, dto.CodeNotChangesDetected, testutil.ErrorCode(t, rr))
	})

	t.Run("partial update", func(t *testing.T) {
		body := map[string]string{"cellphone": "5511999998888", "source": "email"}

		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, testutil.AuthenticatedRequest(t, "PATCH", path, body, tc.Token))
		testutil.AssertStatus(t, rr, http.StatusOK)

		var resp dto.UserDTO
		testutil.ParseJSONResponse(t, rr, &resp)
		assert.Equal(t, tc.User.Name, resp.Name)
		require.NotNil(t, resp.Cellphone)
		assert.Equal(t, "5511999998888", *resp.Cellphone)
		require.NotNil(t, resp.Source)
		assert.Equal(t, models.SourceEmail, *resp.Source)
	})

	t.Run("invalid source", func(t *testing.T) {
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, testutil.AuthenticatedRequest(t, "PATCH", path, map[string]string{"source": "pigeon"}, tc.Token))

		testutil.AssertStatus(t, rr, http.StatusBadRequest)
		assert.Equal(t, dto.CodeInvalidFields, testutil.ErrorCode(t, rr))
	})

	t.Run("other user's id", func(t *testing.T) {
		other := testutil.CreateTestUser(t, tc.DB)

		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, testutil.AuthenticatedRequest(t, "PATCH",
			fmt.Sprintf("/api/user/%d", other.ID), map[string]string{"name": "Hijacked"}, tc.Token))

		testutil.AssertStatus(t, rr, http.StatusBadRequest)
		assert.Equal(t, dto.CodeUserNotExists, testutil.ErrorCode(t, rr))

		var reloaded models.User
		require.NoError(t, tc.DB.First(&reloaded, other.ID).Error)
		assert.NotEqual(t, "Hijacked", reloaded.Name)
	})

	t.Run("deleted account", func(t *testing.T) {
		ghost := testutil.CreateTestUser(t, tc.DB)
		token := testutil.GenerateTestToken(t, tc.JWTService, ghost)
		require.NoError(t, tc.DB.Delete(&models.User{}, ghost.ID).Error)

		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, testutil.AuthenticatedRequest(t, "PATCH",
			fmt.Sprintf("/api/user/%d", ghost.ID), map[string]string{"name": "Ghost"}, token))

		testutil.AssertStatus(t, rr, http.StatusBadRequest)
		assert.Equal(t, dto.CodeUserNotExists, testutil.ErrorCode(t, rr))
	})
}

func TestUserHandler_UpdatePassword(t *testing.T) {
	router, tc := setupUserTestRouter(t)
	defer tc.Cleanup()

	path := fmt.Sprintf("/api/user/password/%d", tc.User.ID)

	t.Run("changes the hash", func(t *testing.T) {
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, testutil.AuthenticatedRequest(t, "PATCH", path, map[string]string{"password": "newpass1"}, tc.Token))
		testutil.AssertStatus(t, rr, http.StatusOK)
		assert.NotContains(t, rr.Body.String(), "newpass1")

		var reloaded models.User
		require.NoError(t, tc.DB.First(&reloaded, tc.User.ID).Error)
		assert.True(t, auth.CheckPassword("newpass1", reloaded.Password))
	})

	t.Run("too short", func(t *testing.T) {
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, testutil.AuthenticatedRequest(t, "PATCH", path, map[string]string{"password": "123"}, tc.Token))

		testutil.AssertStatus(t, rr, http.StatusBadRequest)
		assert.Equal(t, dto.CodeInvalidFields, testutil.ErrorCode(t, rr))
	})
}
