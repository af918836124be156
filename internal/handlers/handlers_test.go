package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/Shimizu-Technology/pdfhustle-api/internal/database"
	"github.com/Shimizu-Technology/pdfhustle-api/internal/middleware"
	"github.com/Shimizu-Technology/pdfhustle-api/internal/models"
	"github.com/Shimizu-Technology/pdfhustle-api/internal/services/converter"
	"github.com/Shimizu-Technology/pdfhustle-api/internal/services/spreadsheet"
	"github.com/Shimizu-Technology/pdfhustle-api/internal/services/usage"
	"github.com/Shimizu-Technology/pdfhustle-api/internal/services/worker"
	"github.com/Shimizu-Technology/pdfhustle-api/internal/testutil"
)

const (
	freeKey  = "pdh_free_key"
	proKey   = "pdh_pro_key"
	ownerKey = "pdh_owner_key"
)

// memStore is an in-memory Store that also authenticates requests.
type memStore struct {
	mu          sync.Mutex
	keys        []*models.APIKey
	conversions []models.Conversion
	seq         int
	healthErr   error
	createErr   error
}

func newMemStore() *memStore {
	s := &memStore{}
	s.keys = []*models.APIKey{
		{ID: "key-free", KeyHash: middleware.HashAPIKey(freeKey), KeyPrefix: "pdh_free...", Name: "free", Active: true, RateLimit: 1000, Plan: models.PlanFree},
		{ID: "key-pro", KeyHash: middleware.HashAPIKey(proKey), KeyPrefix: "pdh_pro_...", Name: "pro", Active: true, RateLimit: 1000, Plan: models.PlanPro},
		{ID: "key-owner", KeyHash: middleware.HashAPIKey(ownerKey), KeyPrefix: "pdh_owne...", Name: "owner", Active: true, RateLimit: 1000, Plan: models.PlanFree},
	}
	return s
}

func (s *memStore) HealthCheck(context.Context) error { return s.healthErr }

func (s *memStore) GetAPIKeyByHash(_ context.Context, hash string) (*models.APIKey, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, k := range s.keys {
		if k.KeyHash == hash && k.Active {
			return k, nil
		}
	}
	return nil, database.ErrNotFound
}

func (s *memStore) UpdateAPIKeyLastUsed(context.Context, string) error { return nil }

func (s *memStore) GetUserByID(context.Context, string) (*models.User, error) {
	return nil, database.ErrNotFound
}

func (s *memStore) CreateAPIKey(_ context.Context, key *models.APIKey) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.createErr != nil {
		return s.createErr
	}
	s.seq++
	key.ID = fmt.Sprintf("key-%d", s.seq)
	key.CreatedAt = time.Now()
	s.keys = append(s.keys, key)
	return nil
}

func (s *memStore) ListAPIKeys(context.Context) ([]models.APIKey, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.APIKey, 0, len(s.keys))
	for _, k := range s.keys {
		out = append(out, *k)
	}
	return out, nil
}

func (s *memStore) RevokeAPIKey(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, k := range s.keys {
		if k.ID == id {
			k.Active = false
			return nil
		}
	}
	return fmt.Errorf("API key %s: %w", id, database.ErrNotFound)
}

func (s *memStore) CreateConversion(_ context.Context, c *models.Conversion) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	c.ID = fmt.Sprintf("conv-%d", s.seq)
	c.CreatedAt = time.Now().Add(time.Duration(s.seq) * time.Millisecond)
	s.conversions = append(s.conversions, *c)
	return nil
}

func owns(c models.Conversion, owner models.Owner) bool {
	if owner.UserID != "" {
		return c.UserID != nil && *c.UserID == owner.UserID
	}
	return c.APIKeyID != nil && *c.APIKeyID == owner.APIKeyID
}

func (s *memStore) GetConversion(_ context.Context, id string, owner models.Owner) (*models.Conversion, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range s.conversions {
		if c.ID == id && owns(c, owner) {
			c := c
			return &c, nil
		}
	}
	return nil, fmt.Errorf("conversion: %w", database.ErrNotFound)
}

func (s *memStore) ListConversions(_ context.Context, owner models.Owner, params models.ConversionListParams) ([]models.Conversion, int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var matched []models.Conversion
	for _, c := range s.conversions {
		if owns(c, owner) && (params.Status == "" || c.Status == params.Status) {
			matched = append(matched, c)
		}
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].CreatedAt.After(matched[j].CreatedAt) })

	start := (params.Page - 1) * params.PerPage
	if start > len(matched) {
		start = len(matched)
	}
	end := start + params.PerPage
	if end > len(matched) {
		end = len(matched)
	}
	return matched[start:end], len(matched), nil
}

func (s *memStore) CountCompletedSince(_ context.Context, owner models.Owner, since time.Time) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, c := range s.conversions {
		if owns(c, owner) && c.Status == models.StatusCompleted && !c.CreatedAt.Before(since) {
			n++
		}
	}
	return n, nil
}

func (s *memStore) statuses() []models.ConversionStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.ConversionStatus
	for _, c := range s.conversions {
		out = append(out, c.Status)
	}
	return out
}

type testServer struct {
	store   *memStore
	handler *Handler
	engine  *gin.Engine
}

func newTestServer(t *testing.T, freeLimit int) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := newMemStore()
	pool := worker.NewPool(2, 4)
	pool.Start()
	t.Cleanup(pool.Stop)

	h := &Handler{
		DB:               store,
		Pool:             pool,
		Converter:        converter.New(1),
		Meter:            usage.NewMeter(usage.NewDBCounter(store), freeLimit),
		Owner:            middleware.OwnerOverride{KeyID: "key-owner"},
		DefaultRateLimit: 100,
		MaxUploadBytes:   5 << 20,
	}

	r := gin.New()
	r.GET("/api/v1/health", h.HealthCheck)
	r.POST("/api/v1/keys", h.CreateAPIKey)
	r.GET("/api/docs", h.ServeSwaggerUI)
	r.GET("/api/docs/openapi.yaml", h.ServeOpenAPISpec)
	p := r.Group("/api/v1", middleware.DualAuth(store, "secret"))
	p.POST("/convert/pdf-to-excel", h.ConvertPDFToExcel)
	p.GET("/conversions", h.ListConversions)
	p.GET("/conversions/:id", h.GetConversion)
	p.GET("/usage", h.GetUsage)
	p.GET("/keys", h.ListAPIKeys)
	p.DELETE("/keys/:id", h.RevokeAPIKey)

	return &testServer{store: store, handler: h, engine: r}
}

func (s *testServer) do(req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)
	return w
}

func uploadRequest(t *testing.T, apiKey, filename string, data []byte, fields map[string]string) *http.Request {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	if filename != "" {
		fw, err := mw.CreateFormFile("file", filename)
		require.NoError(t, err)
		_, err = fw.Write(data)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/convert/pdf-to-excel", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	if apiKey != "" {
		req.Header.Set("X-API-Key", apiKey)
	}
	return req
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) models.ErrorResponse {
	t.Helper()
	var resp models.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), w.Body.String())
	return resp
}

var (
	tablePDF = testutil.PDF([]testutil.Glyph{
		{X: 72, Y: 700, Text: "Name"},
		{X: 200, Y: 700, Text: "Age"},
		{X: 72, Y: 680, Text: "Alice"},
		{X: 200, Y: 680, Text: "30"},
	})
	prosePDF = testutil.PDF([]testutil.Glyph{{X: 72, Y: 700, Text: "Just a heading"}})
)

func TestConvert_Success(t *testing.T) {
	s := newTestServer(t, 5)

	w := s.do(uploadRequest(t, freeKey, "Q3 Report.pdf", tablePDF, nil))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	assert.Equal(t, spreadsheet.ContentType, w.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="Q3 Report.xlsx"`, w.Header().Get("Content-Disposition"))
	assert.Equal(t, "1", w.Header().Get("X-Page-Count"))
	assert.Equal(t, "1", w.Header().Get("X-Table-Count"))

	f, err := excelize.OpenReader(bytes.NewReader(w.Body.Bytes()))
	require.NoError(t, err)
	defer f.Close()
	rows, err := f.GetRows("Data")
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"Name", "Age"}, {"Alice", "30"}}, rows)

	assert.Equal(t, []models.ConversionStatus{models.StatusCompleted}, s.store.statuses())
}

func TestConvert_Failures(t *testing.T) {
	tests := []struct {
		name       string
		filename   string
		data       []byte
		fields     map[string]string
		wantStatus int
		wantCode   string
		wantRecord bool
	}{
		{"no file", "", nil, nil, http.StatusBadRequest, "invalid_request", false},
		{"wrong extension", "table.docx", tablePDF, nil, http.StatusBadRequest, "invalid_file_type", false},
		{"not a pdf", "table.pdf", []byte("hello, world"), nil, http.StatusBadRequest, "invalid_pdf", false},
		{"damaged pdf", "table.pdf", []byte("%PDF-1.4\ngarbage without xref"), nil, http.StatusUnprocessableEntity, "document_unreadable", true},
		{"no tables", "prose.pdf", prosePDF, nil, http.StatusUnprocessableEntity, "no_tabular_content", true},
		{"bad page range", "table.pdf", tablePDF, map[string]string{"page_range": "2-9"}, http.StatusBadRequest, "invalid_page_range", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestServer(t, 5)

			w := s.do(uploadRequest(t, freeKey, tt.filename, tt.data, tt.fields))
			assert.Equal(t, tt.wantStatus, w.Code)
			resp := decodeError(t, w)
			assert.Equal(t, tt.wantCode, resp.Error)
			assert.Equal(t, tt.wantStatus, resp.Code)

			if tt.wantRecord {
				assert.Equal(t, []models.ConversionStatus{models.StatusFailed}, s.store.statuses())
			} else {
				assert.Empty(t, s.store.statuses())
			}
		})
	}
}

func TestConvert_NoTablesMessage(t *testing.T) {
	s := newTestServer(t, 5)

	w := s.do(uploadRequest(t, freeKey, "prose.pdf", prosePDF, nil))
	assert.Equal(t, "No table data found in PDF. Make sure your PDF contains tabular data.", decodeError(t, w).Message)
}

func TestConvert_TooLarge(t *testing.T) {
	s := newTestServer(t, 5)
	s.handler.MaxUploadBytes = 64

	w := s.do(uploadRequest(t, freeKey, "table.pdf", tablePDF, nil))
	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
	assert.Equal(t, "file_too_large", decodeError(t, w).Error)
}

func TestConvert_DailyLimit(t *testing.T) {
	s := newTestServer(t, 2)

	for i := 0; i < 2; i++ {
		require.Equal(t, http.StatusOK, s.do(uploadRequest(t, freeKey, "t.pdf", tablePDF, nil)).Code)
	}
	// Failed conversions don't count against the quota.
	require.Equal(t, http.StatusUnprocessableEntity, s.do(uploadRequest(t, freeKey, "p.pdf", prosePDF, nil)).Code)

	w := s.do(uploadRequest(t, freeKey, "t.pdf", tablePDF, nil))
	assert.Equal(t, http.StatusForbidden, w.Code)
	resp := decodeError(t, w)
	assert.Equal(t, "daily_limit_reached", resp.Error)
	assert.Contains(t, resp.Message, "(2/2)")

	// Pro and owner keys are unlimited.
	assert.Equal(t, http.StatusOK, s.do(uploadRequest(t, proKey, "t.pdf", tablePDF, nil)).Code)
	for i := 0; i < 3; i++ {
		assert.Equal(t, http.StatusOK, s.do(uploadRequest(t, ownerKey, "t.pdf", tablePDF, nil)).Code)
	}
}

func TestConvert_Busy(t *testing.T) {
	s := newTestServer(t, 5)
	stopped := worker.NewPool(1, 0)
	stopped.Stop()
	s.handler.Pool = stopped

	w := s.do(uploadRequest(t, freeKey, "t.pdf", tablePDF, nil))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Equal(t, "busy", decodeError(t, w).Error)
	assert.Empty(t, s.store.statuses())
}

func TestConvert_RequiresAuth(t *testing.T) {
	s := newTestServer(t, 5)

	w := s.do(uploadRequest(t, "", "t.pdf", tablePDF, nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestUsage(t *testing.T) {
	s := newTestServer(t, 3)
	require.Equal(t, http.StatusOK, s.do(uploadRequest(t, freeKey, "t.pdf", tablePDF, nil)).Code)

	tests := []struct {
		key  string
		want models.UsageResponse
	}{
		{freeKey, models.UsageResponse{Plan: models.PlanFree, UsedToday: 1, Limit: 3, Remaining: 2, CanConvert: true}},
		{proKey, models.UsageResponse{Plan: models.PlanPro, UsedToday: 0, Limit: usage.Unlimited, Remaining: usage.Unlimited, CanConvert: true}},
		{ownerKey, models.UsageResponse{Plan: models.PlanPro, UsedToday: 0, Limit: usage.Unlimited, Remaining: usage.Unlimited, CanConvert: true}},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/v1/usage", nil)
			req.Header.Set("X-API-Key", tt.key)
			w := s.do(req)
			require.Equal(t, http.StatusOK, w.Code)

			var got models.UsageResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestConversionHistory(t *testing.T) {
	s := newTestServer(t, 10)
	require.Equal(t, http.StatusOK, s.do(uploadRequest(t, freeKey, "a.pdf", tablePDF, nil)).Code)
	require.Equal(t, http.StatusUnprocessableEntity, s.do(uploadRequest(t, freeKey, "b.pdf", prosePDF, nil)).Code)
	require.Equal(t, http.StatusOK, s.do(uploadRequest(t, freeKey, "c.pdf", tablePDF, nil)).Code)
	require.Equal(t, http.StatusOK, s.do(uploadRequest(t, proKey, "other.pdf", tablePDF, nil)).Code)

	get := func(path, key string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		req.Header.Set("X-API-Key", key)
		return s.do(req)
	}

	t.Run("paginated newest first", func(t *testing.T) {
		w := get("/api/v1/conversions?per_page=2", freeKey)
		require.Equal(t, http.StatusOK, w.Code)

		var page models.PaginatedResponse[models.Conversion]
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &page))
		assert.Equal(t, 3, page.TotalItems)
		assert.Equal(t, 2, page.TotalPages)
		require.Len(t, page.Data, 2)
		assert.Equal(t, "c.pdf", page.Data[0].OriginalName)
		assert.Equal(t, "b.pdf", page.Data[1].OriginalName)
		assert.Equal(t, "No table data found in PDF. Make sure your PDF contains tabular data.", page.Data[1].ErrorMessage)
	})

	t.Run("status filter", func(t *testing.T) {
		w := get("/api/v1/conversions?status=failed", freeKey)
		var page models.PaginatedResponse[models.Conversion]
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &page))
		require.Len(t, page.Data, 1)
		assert.Equal(t, models.StatusFailed, page.Data[0].Status)
	})

	t.Run("invalid status", func(t *testing.T) {
		assert.Equal(t, http.StatusBadRequest, get("/api/v1/conversions?status=pending", freeKey).Code)
	})

	t.Run("single record", func(t *testing.T) {
		w := get("/api/v1/conversions?per_page=1", freeKey)
		var page models.PaginatedResponse[models.Conversion]
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &page))
		require.Len(t, page.Data, 1)
		id := page.Data[0].ID

		w = get("/api/v1/conversions/"+id, freeKey)
		require.Equal(t, http.StatusOK, w.Code)
		var conv models.Conversion
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &conv))
		assert.Equal(t, 1, conv.TableCount)

		// Someone else's record is invisible.
		assert.Equal(t, http.StatusNotFound, get("/api/v1/conversions/"+id, proKey).Code)
	})
}

func TestCreateAPIKey(t *testing.T) {
	tests := []struct {
		name       string
		adminKey   string
		header     string
		body       string
		wantStatus int
		wantPlan   models.Plan
	}{
		{"open in development", "", "", `{"name":"dev"}`, http.StatusCreated, models.PlanFree},
		{"development never issues pro keys", "", "", `{"name":"dev","plan":"pro"}`, http.StatusCreated, models.PlanFree},
		{"admin key required", "adm", "", `{"name":"x"}`, http.StatusUnauthorized, ""},
		{"wrong admin key", "adm", "nope", `{"name":"x"}`, http.StatusForbidden, ""},
		{"valid admin key", "adm", "adm", `{"name":"x","plan":"pro"}`, http.StatusCreated, models.PlanPro},
		{"missing name", "", "", `{}`, http.StatusBadRequest, ""},
		{"unknown plan", "", "", `{"name":"x","plan":"gold"}`, http.StatusBadRequest, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestServer(t, 5)
			s.handler.AdminAPIKey = tt.adminKey

			req := httptest.NewRequest(http.MethodPost, "/api/v1/keys", bytes.NewBufferString(tt.body))
			req.Header.Set("Content-Type", "application/json")
			if tt.header != "" {
				req.Header.Set("X-Admin-Key", tt.header)
			}
			w := s.do(req)
			require.Equal(t, tt.wantStatus, w.Code, w.Body.String())

			if tt.wantStatus == http.StatusCreated {
				var resp models.CreateAPIKeyResponse
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
				assert.Regexp(t, `^pdh_[0-9a-f]{32}$`, resp.RawKey)
				assert.Equal(t, resp.RawKey[:8]+"...", resp.KeyPrefix)
				assert.Equal(t, 100, resp.RateLimit)
				assert.Equal(t, tt.wantPlan, resp.Plan)
				assert.NotContains(t, w.Body.String(), "key_hash")

				// The new key authenticates.
				usageReq := httptest.NewRequest(http.MethodGet, "/api/v1/usage", nil)
				usageReq.Header.Set("X-API-Key", resp.RawKey)
				assert.Equal(t, http.StatusOK, s.do(usageReq).Code)
			}
		})
	}
}

func keysRequest(method, path, apiKey, adminKey string) *http.Request {
	req := httptest.NewRequest(method, path, nil)
	req.Header.Set("X-API-Key", apiKey)
	if adminKey != "" {
		req.Header.Set("X-Admin-Key", adminKey)
	}
	return req
}

func TestListAPIKeys(t *testing.T) {
	tests := []struct {
		name       string
		adminKey   string
		header     string
		wantStatus int
	}{
		{"no admin header", "adm", "", http.StatusUnauthorized},
		{"wrong admin key", "adm", "nope", http.StatusForbidden},
		{"admin not configured", "", "anything", http.StatusForbidden},
		{"valid admin key", "adm", "adm", http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestServer(t, 5)
			s.handler.AdminAPIKey = tt.adminKey

			w := s.do(keysRequest(http.MethodGet, "/api/v1/keys", freeKey, tt.header))
			require.Equal(t, tt.wantStatus, w.Code, w.Body.String())
			if tt.wantStatus != http.StatusOK {
				assert.NotContains(t, w.Body.String(), "key-pro")
				return
			}

			var keys []models.APIKey
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &keys))
			assert.Len(t, keys, 3)
			assert.NotContains(t, w.Body.String(), "key_hash")
		})
	}
}

func TestRevokeAPIKey(t *testing.T) {
	s := newTestServer(t, 5)
	s.handler.AdminAPIKey = "adm"

	usageStatus := func(apiKey string) int {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/usage", nil)
		req.Header.Set("X-API-Key", apiKey)
		return s.do(req).Code
	}

	t.Run("non-admin callers cannot revoke", func(t *testing.T) {
		assert.Equal(t, http.StatusUnauthorized,
			s.do(keysRequest(http.MethodDelete, "/api/v1/keys/key-pro", freeKey, "")).Code)
		assert.Equal(t, http.StatusForbidden,
			s.do(keysRequest(http.MethodDelete, "/api/v1/keys/key-owner", freeKey, "guess")).Code)

		assert.Equal(t, http.StatusOK, usageStatus(proKey))
		assert.Equal(t, http.StatusOK, usageStatus(ownerKey))
	})

	t.Run("admin revokes", func(t *testing.T) {
		assert.Equal(t, http.StatusNotFound,
			s.do(keysRequest(http.MethodDelete, "/api/v1/keys/missing", proKey, "adm")).Code)
		assert.Equal(t, http.StatusOK,
			s.do(keysRequest(http.MethodDelete, "/api/v1/keys/key-free", proKey, "adm")).Code)

		assert.Equal(t, http.StatusUnauthorized, usageStatus(freeKey))
	})
}

func TestHealthCheck(t *testing.T) {
	s := newTestServer(t, 5)
	s.store.healthErr = fmt.Errorf("connection refused")

	w := s.do(httptest.NewRequest(http.MethodGet, "/api/v1/health", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var resp models.HealthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, Version, resp.Version)
	assert.Equal(t, "unhealthy: connection refused", resp.Database)
	assert.Equal(t, 2, resp.Workers)
}

func TestDocs(t *testing.T) {
	s := newTestServer(t, 5)

	w := s.do(httptest.NewRequest(http.MethodGet, "/api/docs/openapi.yaml", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "/convert/pdf-to-excel:")

	w = s.do(httptest.NewRequest(http.MethodGet, "/api/docs", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "swagger-ui")
}
