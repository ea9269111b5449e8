package server

import (
	"net/http"
	"testing"

	"haven/internal/models"
	"haven/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterAndLogin(t *testing.T) {
	t.Parallel()
	_, app, _ := newTestServer(t)

	in := service.RegisterInput{
		Email:       "new@example.com",
		Password:    testPassword,
		DisplayName: "Newcomer",
	}

	resp := doRequest(t, app, http.MethodPost, "/api/accounts/register", "", in)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var registered authResponse
	decodeBody(t, resp, &registered)
	assert.NotEmpty(t, registered.Token)
	assert.Equal(t, "Newcomer", registered.User.DisplayName)
	assert.Equal(t, models.RoleUser, registered.User.Role)

	t.Run("duplicate email", func(t *testing.T) {
		resp := doRequest(t, app, http.MethodPost, "/api/accounts/register", "", in)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("weak password", func(t *testing.T) {
		weak := in
		weak.Email = "weak@example.com"
		weak.Password = "short"
		resp := doRequest(t, app, http.MethodPost, "/api/accounts/register", "", weak)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("login", func(t *testing.T) {
		resp := doRequest(t, app, http.MethodPost, "/api/accounts/login", "",
			loginRequest{Email: in.Email, Password: in.Password})
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var body authResponse
		decodeBody(t, resp, &body)
		assert.NotEmpty(t, body.Token)
	})

	t.Run("wrong password", func(t *testing.T) {
		resp := doRequest(t, app, http.MethodPost, "/api/accounts/login", "",
			loginRequest{Email: in.Email, Password: "WrongPassword99"})
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})
}

func TestGetMyAccount(t *testing.T) {
	t.Parallel()
	s, app, db := newTestServer(t)
	user, token := createServerTestUser(t, s, db, "me@example.com", models.RoleUser)

	resp := doRequest(t, app, http.MethodGet, "/api/accounts/me", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var got models.User
	decodeBody(t, resp, &got)
	assert.Equal(t, user.ID, got.ID)

	t.Run("missing token", func(t *testing.T) {
		resp := doRequest(t, app, http.MethodGet, "/api/accounts/me", "", nil)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("malformed token", func(t *testing.T) {
		resp := doRequest(t, app, http.MethodGet, "/api/accounts/me", "not-a-jwt", nil)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})
}

func TestUpdateMyAccount(t *testing.T) {
	t.Parallel()
	s, app, db := newTestServer(t)
	_, token := createServerTestUser(t, s, db, "update@example.com", models.RoleUser)

	name := "Renamed"
	anon := true
	resp := doRequest(t, app, http.MethodPatch, "/api/accounts/me", token,
		service.UpdateAccountInput{DisplayName: &name, IsAnonymous: &anon})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var got models.User
	decodeBody(t, resp, &got)
	assert.Equal(t, "Renamed", got.DisplayName)
	assert.True(t, got.IsAnonymous)
}

func TestDeleteMyAccount(t *testing.T) {
	t.Parallel()
	s, app, db := newTestServer(t)
	user, token := createServerTestUser(t, s, db, "gone@example.com", models.RoleUser)

	resp := doRequest(t, app, http.MethodDelete, "/api/accounts/me", token,
		deleteAccountRequest{Reason: "no longer needed"})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var result service.DeleteAccountResult
	decodeBody(t, resp, &result)
	assert.True(t, result.Success)

	var stored models.User
	require.NoError(t, db.First(&stored, user.ID).Error)
	assert.Equal(t, models.AnonymizedDisplayName, stored.DisplayName)
	assert.Nil(t, stored.Email)
	assert.False(t, stored.IsActive)

	t.Run("token no longer usable", func(t *testing.T) {
		resp := doRequest(t, app, http.MethodGet, "/api/accounts/me", token, nil)
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	})
}

func TestLogoutWithoutRedis(t *testing.T) {
	t.Parallel()
	s, app, db := newTestServer(t)
	_, token := createServerTestUser(t, s, db, "logout@example.com", models.RoleUser)

	// No Redis in tests: logout degrades to a no-op success
	resp := doRequest(t, app, http.MethodPost, "/api/accounts/logout", token, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
