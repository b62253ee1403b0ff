package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	bankingapp "github.com/fincontrol/backend/internal/application/banking"
	"github.com/fincontrol/backend/internal/infrastructure/persistence"
	"github.com/fincontrol/backend/internal/infrastructure/persistence/models"
	"github.com/fincontrol/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newAccountTestServer(t *testing.T) *gin.Engine {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared&_foreign_keys=on"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.BankAccountModel{}, &models.MovementModel{}))
	t.Cleanup(func() {
		sqlDB, err := db.DB()
		if err == nil {
			sqlDB.Close()
		}
	})

	accountRepo := persistence.NewGormBankAccountRepository(db)
	movementRepo := persistence.NewGormMovementRepository(db)
	service := bankingapp.NewAccountService(accountRepo, movementRepo, zap.NewNop())

	engine := gin.New()
	api := engine.Group("/api/v1")
	NewAccountHandler(service).RegisterRoutes(api)
	return engine
}

func TestAccountHandlerCreateAndGet(t *testing.T) {
	engine := newAccountTestServer(t)

	body := `{
		"name": "Checking",
		"bank": "Banco Azul",
		"branch": "0001",
		"number": "12345-6",
		"opening_balance": "1000.50",
		"methods": ["pix", "debit"]
	}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/accounts", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	engine.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)

	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.True(t, resp.Success)

	created := resp.Data.(map[string]any)
	id := created["ID"].(string)
	assert.Equal(t, "Checking", created["name"])

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/api/v1/accounts/"+id, nil)
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAccountHandlerCreateValidation(t *testing.T) {
	engine := newAccountTestServer(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/accounts", strings.NewReader(`{"name": ""}`))
	req.Header.Set("Content-Type", "application/json")
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAccountHandlerGetInvalidID(t *testing.T) {
	engine := newAccountTestServer(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/accounts/not-a-uuid", nil)
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAccountHandlerGetUnknownID(t *testing.T) {
	engine := newAccountTestServer(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/accounts/6f1b2a64-19c1-4c6a-9a8f-1f2d3c4b5a60", nil)
	engine.ServeHTTP(w, req)

	require.Equal(t, http.StatusNotFound, w.Code)

	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotNil(t, resp.Error)
	assert.Equal(t, "NOT_FOUND", resp.Error.Code)
}
