package server

import (
	"net/http"
	"testing"

	"haven/internal/models"
	"haven/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateBoardRequiresModerator(t *testing.T) {
	t.Parallel()
	s, app, db := newTestServer(t)
	_, userToken := createServerTestUser(t, s, db, "user@example.com", models.RoleUser)
	_, modToken := createServerTestUser(t, s, db, "mod@example.com", models.RoleModerator)

	in := service.CreateBoardInput{Name: "Diabetes", Description: "Type 1 and 2"}

	t.Run("regular user forbidden", func(t *testing.T) {
		resp := doRequest(t, app, http.MethodPost, "/api/boards", userToken, in)
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	})

	t.Run("moderator creates", func(t *testing.T) {
		resp := doRequest(t, app, http.MethodPost, "/api/boards", modToken, in)
		require.Equal(t, http.StatusCreated, resp.StatusCode)

		var board models.ConditionBoard
		decodeBody(t, resp, &board)
		assert.Equal(t, "Diabetes", board.Name)
	})

	t.Run("duplicate name rejected", func(t *testing.T) {
		resp := doRequest(t, app, http.MethodPost, "/api/boards", modToken, in)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("admin may also create", func(t *testing.T) {
		_, adminToken := createServerTestUser(t, s, db, "admin@example.com", models.RoleAdmin)
		resp := doRequest(t, app, http.MethodPost, "/api/boards", adminToken,
			service.CreateBoardInput{Name: "Mental Health"})
		assert.Equal(t, http.StatusCreated, resp.StatusCode)
	})
}

func TestGetBoards(t *testing.T) {
	t.Parallel()
	s, app, db := newTestServer(t)
	_, token := createServerTestUser(t, s, db, "reader@example.com", models.RoleUser)

	require.NoError(t, db.Create(&models.ConditionBoard{Name: "Chronic Pain"}).Error)
	require.NoError(t, db.Create(&models.ConditionBoard{Name: "Arthritis"}).Error)

	resp := doRequest(t, app, http.MethodGet, "/api/boards", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var boards []models.ConditionBoard
	decodeBody(t, resp, &boards)
	require.Len(t, boards, 2)
	// Ordered by name
	assert.Equal(t, "Arthritis", boards[0].Name)

	t.Run("unauthenticated", func(t *testing.T) {
		resp := doRequest(t, app, http.MethodGet, "/api/boards", "", nil)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})
}
