package container

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx"
	"go.uber.org/fx/fxtest"

	"github.com/nutriplan/v1/internal/infrastructure/http/server"
	"github.com/nutriplan/v1/internal/infrastructure/security"
	"github.com/nutriplan/v1/internal/ports/inbound"
)

func memoryEnv(t *testing.T) {
	t.Setenv("NUTRIPLAN_DATABASE_DRIVER", "memory")
	t.Setenv("NUTRIPLAN_DATABASE_SEED_DEMO_DATA", "true")
	t.Setenv("NUTRIPLAN_REDIS_ENABLED", "false")
	t.Setenv("NUTRIPLAN_APP_LOG_LEVEL", "error")
	t.Setenv("NUTRIPLAN_RATE_LIMIT_ENABLE", "false")
}

func TestValidateGraph(t *testing.T) {
	require.NoError(t, fx.ValidateApp(New(""), fx.NopLogger))
}

func TestMemoryDriverServesRequests(t *testing.T) {
	memoryEnv(t)

	var (
		srv    *server.Server
		tokens *security.TokenService
		menus  inbound.MenuService
	)
	fxtest.New(t, New(""), fx.NopLogger, fx.Populate(&srv, &tokens, &menus))
	require.NotNil(t, srv)
	require.NotNil(t, menus)

	handler := srv.Handler()

	t.Run("health", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("seeded recipes are public", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/recipes", nil))
		require.Equal(t, http.StatusOK, rec.Code)

		var body struct {
			Success bool              `json:"success"`
			Data    []json.RawMessage `json:"data"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.True(t, body.Success)
		assert.NotEmpty(t, body.Data)
	})

	t.Run("suggest menu", func(t *testing.T) {
		token, _, err := tokens.GenerateAccessToken(uuid.New())
		require.NoError(t, err)

		date := time.Now().UTC().AddDate(0, 0, 1).Format("2006-01-02")
		req := httptest.NewRequest(http.MethodPost, "/api/v1/menus/suggest", strings.NewReader(`{"date":"`+date+`"}`))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Bearer "+token)

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

		var body struct {
			Data inbound.DailyMenuDTO `json:"data"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, date, body.Data.Date)
		assert.NotEmpty(t, body.Data.Items)
	})
}
