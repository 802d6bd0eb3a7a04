package routes

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viewtouch/settle-api/internal/application/service"
	"github.com/viewtouch/settle-api/internal/config"
	"github.com/viewtouch/settle-api/internal/domain/entity"
	"github.com/viewtouch/settle-api/internal/infrastructure/database"
	"github.com/viewtouch/settle-api/internal/infrastructure/repository"
	"github.com/viewtouch/settle-api/internal/presentation/http/handler"
	"github.com/viewtouch/settle-api/pkg/printer"
	"github.com/viewtouch/settle-api/pkg/utils"
)

type apiEnvelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type testServer struct {
	t       *testing.T
	router  *gin.Engine
	printer *printer.Memory
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{
		App:       config.AppConfig{Name: "settle-api-test"},
		Database:  config.DatabaseConfig{Driver: "sqlite", SQLitePath: ":memory:"},
		RateLimit: config.RateLimitConfig{Requests: 1000, Duration: 1},
		Printer:   config.PrinterConfig{Width: 32, StoreName: "Corner Bistro"},
		Settle: config.SettleConfig{
			FoodRate:     decimal.RequireFromString("0.10"),
			AlcoholRate:  decimal.RequireFromString("0.10"),
			Rounding:     "None",
			NewQSTMethod: true,
		},
		Admin: config.AdminConfig{Code: "100", PIN: "1234", FirstName: "Mia", LastName: "Manager"},
	}

	db, err := database.Open(&cfg.Database)
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))
	require.NoError(t, database.SeedDefaultData(db, cfg))

	jwtManager := utils.NewJWTManager("test-secret", time.Hour, 24*time.Hour)
	checkRepo := repository.NewCheckRepository(db)
	discountRepo := repository.NewDiscountRepository(db)
	employeeRepo := repository.NewEmployeeRepository(db)
	settingsRepo := repository.NewSettingsRepository(db)

	checkService := service.NewCheckService(checkRepo, settingsRepo, discountRepo)
	mem := printer.NewMemory()

	router := Setup(&Handlers{
		Auth:     handler.NewAuthHandler(service.NewAuthService(employeeRepo, jwtManager)),
		Check:    handler.NewCheckHandler(checkService),
		Discount: handler.NewDiscountHandler(service.NewDiscountService(discountRepo)),
		Settings: handler.NewSettingsHandler(service.NewSettingsService(settingsRepo)),
		Printer: handler.NewPrinterHandler(service.NewPrinterService(
			mem, checkService, employeeRepo, entity.ReceiptHeader{StoreName: "Corner Bistro"}, 32)),
	}, &Deps{
		JWTManager:      jwtManager,
		Cfg:             cfg,
		IdempotencyRepo: repository.NewIdempotencyRepository(db),
	})

	return &testServer{t: t, router: router, printer: mem}
}

func (s *testServer) do(method, path, token string, body interface{}, headers ...string) *httptest.ResponseRecorder {
	s.t.Helper()
	var buf bytes.Buffer
	switch b := body.(type) {
	case nil:
	case []byte:
		buf.Write(b)
	default:
		require.NoError(s.t, json.NewEncoder(&buf).Encode(b))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var env apiEnvelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	var out T
	require.NoError(t, json.Unmarshal(env.Data, &out), string(env.Data))
	return out
}

func (s *testServer) login(code, pin string) string {
	s.t.Helper()
	w := s.do(http.MethodPost, "/api/v1/auth/login", "", map[string]string{"code": code, "pin": pin})
	require.Equal(s.t, http.StatusOK, w.Code, w.Body.String())
	out := decode[struct {
		AccessToken string `json:"access_token"`
	}](s.t, w)
	return out.AccessToken
}

type subCheckView struct {
	ID        string `json:"id"`
	Number    int    `json:"number"`
	Status    string `json:"status"`
	TotalTax  int64  `json:"total_tax"`
	TotalCost int64  `json:"total_cost"`
	Balance   int64  `json:"balance"`
	Orders    []struct {
		ID string `json:"id"`
	} `json:"orders"`
	Payments []struct {
		Tender string `json:"tender"`
		Value  int64  `json:"value"`
	} `json:"payments"`
}

func (s *testServer) openCheck(token string) (string, subCheckView) {
	s.t.Helper()
	w := s.do(http.MethodPost, "/api/v1/checks", token, map[string]interface{}{"table_label": "12", "guests": 2})
	require.Equal(s.t, http.StatusCreated, w.Code, w.Body.String())
	check := decode[struct {
		ID        string         `json:"id"`
		SubChecks []subCheckView `json:"sub_checks"`
	}](s.t, w)
	require.Len(s.t, check.SubChecks, 1)
	return check.ID, check.SubChecks[0]
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)
	w := s.do(http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "settle-api-test")
}

func TestLogin(t *testing.T) {
	s := newTestServer(t)

	w := s.do(http.MethodPost, "/api/v1/auth/login", "", map[string]string{"code": "100", "pin": "9999"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = s.do(http.MethodPost, "/api/v1/auth/login", "", map[string]string{"code": "100"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	token := s.login("100", "1234")
	w = s.do(http.MethodGet, "/api/v1/profile", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"role":"manager"`)

	w = s.do(http.MethodGet, "/api/v1/profile", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestSettleCheckOverHTTP(t *testing.T) {
	s := newTestServer(t)
	token := s.login("100", "1234")
	checkID, sc := s.openCheck(token)
	base := "/api/v1/subchecks/" + sc.ID

	w := s.do(http.MethodPost, base+"/orders", token, map[string]interface{}{
		"name": "Steak", "category": "Food", "unit_cost": 1000,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	sc = decode[subCheckView](t, w)
	assert.Equal(t, int64(100), sc.TotalTax)
	assert.Equal(t, int64(1100), sc.TotalCost)

	payment := map[string]interface{}{"tender": "Cash", "amount": 2000}
	first := s.do(http.MethodPost, base+"/payments", token, payment, "Idempotency-Key", "tender-1")
	require.Equal(t, http.StatusCreated, first.Code, first.Body.String())
	retry := s.do(http.MethodPost, base+"/payments", token, payment, "Idempotency-Key", "tender-1")
	require.Equal(t, http.StatusCreated, retry.Code)
	assert.Equal(t, "true", retry.Header().Get("X-Idempotency-Replayed"))

	w = s.do(http.MethodGet, base, token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	sc = decode[subCheckView](t, w)
	cash := 0
	for _, p := range sc.Payments {
		if p.Tender == "Cash" {
			cash++
		}
		if p.Tender == "Change" {
			assert.Equal(t, int64(900), p.Value)
		}
	}
	assert.Equal(t, 1, cash, "retried tender must not be applied twice")
	assert.Equal(t, int64(0), sc.Balance)

	w = s.do(http.MethodPost, "/api/v1/printer/print", token, map[string]string{"sub_check_id": sc.ID})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	require.Len(t, s.printer.Jobs(), 1)
	assert.Contains(t, string(s.printer.Jobs()[0]), "$11.00")

	w = s.do(http.MethodPost, base+"/close", token, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "Closed", decode[subCheckView](t, w).Status)

	w = s.do(http.MethodPost, base+"/orders", token, map[string]interface{}{"name": "Pie", "unit_cost": 500})
	assert.Equal(t, http.StatusConflict, w.Code)

	w = s.do(http.MethodGet, "/api/v1/checks?status=Closed", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), checkID)
}

func TestCloseWithBalanceDue(t *testing.T) {
	s := newTestServer(t)
	token := s.login("100", "1234")
	_, sc := s.openCheck(token)
	base := "/api/v1/subchecks/" + sc.ID

	s.do(http.MethodPost, base+"/orders", token, map[string]interface{}{"name": "Soup", "unit_cost": 600})
	w := s.do(http.MethodPost, base+"/close", token, nil)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = s.do(http.MethodPost, base+"/payments", token, map[string]interface{}{"tender": "Change", "amount": 100})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestExportImport(t *testing.T) {
	s := newTestServer(t)
	token := s.login("100", "1234")
	checkID, sc := s.openCheck(token)
	base := "/api/v1/subchecks/" + sc.ID

	s.do(http.MethodPost, base+"/orders", token, map[string]interface{}{"name": "Wine", "category": "Alcohol", "unit_cost": 900})

	w := s.do(http.MethodGet, base+"/export", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	record := w.Body.Bytes()
	assert.Contains(t, string(record), `"version"`)

	w = s.do(http.MethodPost, "/api/v1/checks/"+checkID+"/import", token, record)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	imported := decode[subCheckView](t, w)
	assert.Equal(t, 2, imported.Number)
	assert.Equal(t, int64(990), imported.TotalCost)

	w = s.do(http.MethodPost, "/api/v1/checks/"+checkID+"/import", token, []byte(`{"version":99}`))
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestManagerOnlyRoutes(t *testing.T) {
	s := newTestServer(t)
	manager := s.login("100", "1234")

	w := s.do(http.MethodPost, "/api/v1/employees", manager, map[string]interface{}{
		"code": "200", "first_name": "Sam", "pin": "5678",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	server := s.login("200", "5678")

	w = s.do(http.MethodPut, "/api/v1/settings", server, map[string]interface{}{"food_rate": "0.05"})
	assert.Equal(t, http.StatusForbidden, w.Code)
	w = s.do(http.MethodGet, "/api/v1/employees", server, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
	w = s.do(http.MethodPost, "/api/v1/discounts", server, map[string]interface{}{"name": "Staff", "tender": "Discount"})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = s.do(http.MethodGet, "/api/v1/settings", server, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestDiscountDefinitions(t *testing.T) {
	s := newTestServer(t)
	token := s.login("100", "1234")

	w := s.do(http.MethodPost, "/api/v1/discounts", token, map[string]interface{}{
		"name": "Happy Hour", "tender": "Discount", "amount": 2000, "is_percent": true,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	def := decode[struct {
		ID string `json:"id"`
	}](t, w)

	w = s.do(http.MethodPost, "/api/v1/discounts", token, map[string]interface{}{
		"name": "Bad", "tender": "Cash", "amount": 100,
	})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = s.do(http.MethodGet, "/api/v1/discounts?tender=Discount&active=true", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), def.ID)

	_, sc := s.openCheck(token)
	base := "/api/v1/subchecks/" + sc.ID
	s.do(http.MethodPost, base+"/orders", token, map[string]interface{}{"name": "Steak", "unit_cost": 1000})
	w = s.do(http.MethodPost, base+"/payments", token, map[string]interface{}{"tender": "Discount", "tender_id": def.ID})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, int64(880), decode[subCheckView](t, w).TotalCost)
}

func TestMalformedIDs(t *testing.T) {
	s := newTestServer(t)
	token := s.login("100", "1234")

	for _, path := range []string{
		"/api/v1/checks/not-a-uuid",
		"/api/v1/subchecks/not-a-uuid",
		"/api/v1/discounts/not-a-uuid",
	} {
		w := s.do(http.MethodGet, path, token, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code, path)
	}

	w := s.do(http.MethodGet, "/api/v1/checks?status=Pending", token, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
