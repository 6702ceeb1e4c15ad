package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imudaynigam/finance-tracker-techbridge/cache"
	"github.com/imudaynigam/finance-tracker-techbridge/services"
)

func TestAdminOverviewResponseShape(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	defer db.Close()

	now := time.Now()
	mock.ExpectQuery(`FROM users ORDER BY created_at ASC`).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "email", "password_hash", "role", "first_name", "last_name",
			"totp_secret", "totp_enabled", "created_at", "updated_at",
		}).AddRow("u1", "admin@demo.com", "hash", "admin", "", "", "", false, now, now))
	mock.ExpectQuery(`FROM transactions t`).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "user_id", "category_id", "name", "type", "amount",
			"description", "date", "created_at", "updated_at",
		}))
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM categories`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

	store := cache.NewMemoryStore()
	users := services.NewUserService(db, store)
	txns := services.NewTransactionService(db, store)
	categories := services.NewCategoryService(db, store)
	h := &AdminHandler{
		Admin: services.NewAdminService(users, txns, categories),
		Users: users,
	}

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/admin/overview", h.Overview)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin/overview", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))

	// The role histogram lives inside the overview, once.
	require.Contains(t, body, "overview")
	assert.NotContains(t, body, "user_roles")

	var overview map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(body["overview"], &overview))
	assert.Contains(t, overview, "user_roles")

	assert.NoError(t, mock.ExpectationsWereMet())
}
