package handlers

import (
	"context"
	"net/http"
	"testing"

	"worksmis/models"
	"worksmis/repository"
	"worksmis/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loginRouter(t *testing.T, users map[string]*models.UserGorm) *gin.Engine {
	t.Helper()
	utils.SetJWTSecret("test-secret")
	r := gin.New()
	r.POST("/api/login", LoginHandler(func(_ context.Context, email string) (*models.UserGorm, error) {
		u, ok := users[email]
		if !ok {
			return nil, repository.ErrNotFound
		}
		return u, nil
	}))
	r.GET("/api/me", AuthMiddleware(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"email": currentUser(c)})
	})
	return r
}

func TestLoginAndAuthorize(t *testing.T) {
	hash, err := utils.HashPassword("canal-2026")
	require.NoError(t, err)
	r := loginRouter(t, map[string]*models.UserGorm{
		"je@example.org": {Email: "je@example.org", Password: hash},
	})

	w := doJSON(t, r, http.MethodPost, "/api/login", models.LoginRequest{Email: " je@example.org ", Password: "canal-2026"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var resp models.LoginResponse
	decodeBody(t, w, &resp)
	require.NotEmpty(t, resp.AccessToken)
	assert.Equal(t, "Bearer", resp.TokenType)

	w = doJSON(t, r, http.MethodGet, "/api/me", nil, "Authorization", "Bearer "+resp.AccessToken)
	require.Equal(t, http.StatusOK, w.Code)
	var me map[string]string
	decodeBody(t, w, &me)
	assert.Equal(t, "je@example.org", me["email"])
}

func TestLoginFailures(t *testing.T) {
	hash, err := utils.HashPassword("canal-2026")
	require.NoError(t, err)
	r := loginRouter(t, map[string]*models.UserGorm{
		"je@example.org":  {Email: "je@example.org", Password: hash},
		"old@example.org": {Email: "old@example.org", Password: hash, Suspended: true},
	})

	cases := []struct {
		name string
		body models.LoginRequest
		want int
	}{
		{"unknown user", models.LoginRequest{Email: "x@example.org", Password: "canal-2026"}, http.StatusUnauthorized},
		{"wrong password", models.LoginRequest{Email: "je@example.org", Password: "nope"}, http.StatusUnauthorized},
		{"suspended", models.LoginRequest{Email: "old@example.org", Password: "canal-2026"}, http.StatusForbidden},
		{"missing fields", models.LoginRequest{}, http.StatusBadRequest},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := doJSON(t, r, http.MethodPost, "/api/login", tc.body)
			assert.Equal(t, tc.want, w.Code)
		})
	}
}

func TestAuthMiddlewareRejects(t *testing.T) {
	r := loginRouter(t, nil)

	assert.Equal(t, http.StatusUnauthorized, doJSON(t, r, http.MethodGet, "/api/me", nil).Code)
	assert.Equal(t, http.StatusUnauthorized, doJSON(t, r, http.MethodGet, "/api/me", nil, "Authorization", "Bearer junk").Code)
}
