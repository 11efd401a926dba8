package controllers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"sync"
	"testing"

	"pjhweb-backend/config"
	"pjhweb-backend/routes"
	"pjhweb-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

type testEnv struct {
	router   *gin.Engine
	db       *gorm.DB
	notifier *fakeNotifier
}

func setupTestEnv(t *testing.T, configure ...func(*routes.Deps)) *testEnv {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_fk=1", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })
	require.NoError(t, config.RunMigrations(context.Background(), db))

	notifier := &fakeNotifier{}
	deps := routes.Deps{
		DB:       db,
		Auth:     utils.NewTokenAuth("", 0),
		Notifier: notifier,
		Config: config.Config{
			PublicURL:    "https://pjhwebservices.co.uk",
			ContactInbox: "office@pjhwebservices.co.uk",
		},
	}
	for _, fn := range configure {
		fn(&deps)
	}

	return &testEnv{router: routes.SetupRouter(deps), db: db, notifier: notifier}
}

func (e *testEnv) request(t *testing.T, method, path string, body interface{}, headers ...string) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}

	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)

	var resp map[string]interface{}
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), w.Body.String())
	}
	return w, resp
}

// createCustomer posts a customer and returns its id.
func (e *testEnv) createCustomer(t *testing.T, business string) uint {
	t.Helper()
	body := gin.H{"name": "Jane Doe", "email": "jane@example.com"}
	if business != "" {
		body["business"] = business
	}
	w, resp := e.request(t, http.MethodPost, "/api/customers", body)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return idOf(resp["customer"])
}

// createQuote posts a quote for the customer and returns the quote object.
func (e *testEnv) createQuote(t *testing.T, customerID uint) map[string]interface{} {
	t.Helper()
	w, resp := e.request(t, http.MethodPost, fmt.Sprintf("/api/customers/%d/quotes", customerID), gin.H{
		"title": "Website rebuild",
		"items": []gin.H{
			{"description": "Design", "quantity": 1, "price": 400},
			{"description": "Pages", "quantity": 5, "price": 120},
		},
		"deposit": 250,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return resp["quote"].(map[string]interface{})
}

func idOf(v interface{}) uint {
	return uint(v.(map[string]interface{})["id"].(float64))
}

type fakeNotifier struct {
	mu       sync.Mutex
	emails   []string
	sms      []string
	emailErr error
}

func (f *fakeNotifier) SendEmail(ctx context.Context, to, subject, body string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.emailErr != nil {
		return f.emailErr
	}
	f.emails = append(f.emails, to+"|"+subject+"|"+body)
	return nil
}

func (f *fakeNotifier) SendSMS(ctx context.Context, to, body string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sms = append(f.sms, to+"|"+body)
	return nil
}
