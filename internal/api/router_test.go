package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/timmy/imagen/internal/api/middleware"
	"github.com/timmy/imagen/internal/cache"
	"github.com/timmy/imagen/internal/domain"
	"github.com/timmy/imagen/internal/eventlog"
	"github.com/timmy/imagen/internal/logger"
	"github.com/timmy/imagen/internal/projection"
	"github.com/timmy/imagen/internal/provider"
	"github.com/timmy/imagen/internal/repository"
	"github.com/timmy/imagen/internal/service"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

type stubGenerator struct{}

func (stubGenerator) GenerateImage(_ context.Context, _ string) (string, error) {
	return "aGVsbG8=", nil
}

type stubResolver struct{}

func (stubResolver) Generator(_ string) provider.ImageGenerator { return stubGenerator{} }

type stubConverter struct{}

func (stubConverter) ConvertURLToBase64(_ context.Context, _ string) (string, error) {
	return "aGVsbG8=", nil
}

type testEnv struct {
	router     *gin.Engine
	log        *eventlog.MemoryLog
	dispatcher *projection.Dispatcher
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := db.AutoMigrate(&domain.ImageRecord{}, &domain.ClassifiedImageRecord{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}

	imageRepo := repository.NewImageRepository(db)
	classifiedRepo := repository.NewClassifiedImageRepository(db)
	c := cache.NewMemoryCache()
	log := eventlog.NewMemoryLog()

	commands := service.NewCommandService(stubResolver{}, stubConverter{}, provider.NewMockClassifier(), log, "image-events")
	queries := service.NewQueryService(imageRepo, classifiedRepo, c)

	dispatcher := projection.NewDispatcher(
		log,
		projection.NewImageProjector(imageRepo, c),
		projection.NewClassifiedImageProjector(classifiedRepo, c),
	)

	router := SetupRouter(commands, queries, logger.New(nil), RouterConfig{
		Mode: "test",
		CORS: middleware.CORSConfig{AllowAllOrigins: true},
	})
	return &testEnv{router: router, log: log, dispatcher: dispatcher}
}

func (e *testEnv) request(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func TestHealthEndpoint(t *testing.T) {
	env := newTestEnv(t)
	w := env.request(t, http.MethodGet, "/health", "")
	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
}

func TestGenerateEndpoint(t *testing.T) {
	env := newTestEnv(t)

	w := env.request(t, http.MethodPost, "/api/v1/images/generate",
		`{"description":"a cat","platform":"azure"}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}

	var dto service.ImageDTO
	if err := json.Unmarshal(w.Body.Bytes(), &dto); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if dto.ID == "" || dto.PlatformUsed != "Azure" {
		t.Errorf("unexpected response: %+v", dto)
	}
	if len(env.log.Entries()) != 1 {
		t.Errorf("expected one appended event, got %d", len(env.log.Entries()))
	}
}

func TestGenerateEndpointValidation(t *testing.T) {
	env := newTestEnv(t)

	tests := []struct {
		name string
		body string
	}{
		{name: "missing description", body: `{"platform":"azure"}`},
		{name: "blank description", body: `{"description":"   "}`},
		{name: "unknown platform", body: `{"description":"a cat","platform":"banana"}`},
		{name: "malformed body", body: `{broken`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := env.request(t, http.MethodPost, "/api/v1/images/generate", tt.body)
			if w.Code != http.StatusBadRequest {
				t.Errorf("expected 400, got %d: %s", w.Code, w.Body.String())
			}
		})
	}
	if len(env.log.Entries()) != 0 {
		t.Errorf("expected no events after rejected commands, got %d", len(env.log.Entries()))
	}
}

func TestClassifyEndpoint(t *testing.T) {
	env := newTestEnv(t)

	w := env.request(t, http.MethodPost, "/api/v1/images/classify",
		`{"imageUrl":"https://example.com/pizza.png"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var dto service.ClassifiedImageDTO
	if err := json.Unmarshal(w.Body.Bytes(), &dto); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if dto.ClassificationResult != "Food" {
		t.Errorf("expected Food for pizza URL, got %q", dto.ClassificationResult)
	}
}

func TestQueryAfterProjection(t *testing.T) {
	env := newTestEnv(t)

	w := env.request(t, http.MethodPost, "/api/v1/images/generate",
		`{"description":"a cat"}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", w.Code)
	}
	var created service.ImageDTO
	if err := json.Unmarshal(w.Body.Bytes(), &created); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}

	// The read model is eventually consistent; until the event is
	// projected, the query side reports absence.
	w = env.request(t, http.MethodGet, "/api/v1/images/"+created.ID, "")
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 before projection, got %d", w.Code)
	}

	if err := env.dispatcher.Replay(context.Background()); err != nil {
		t.Fatalf("replay failed: %v", err)
	}

	w = env.request(t, http.MethodGet, "/api/v1/images/"+created.ID, "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 after projection, got %d: %s", w.Code, w.Body.String())
	}

	w = env.request(t, http.MethodGet, "/api/v1/images/"+created.ID+"/base64", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var payload map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &payload); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if payload["base64Data"] != "aGVsbG8=" {
		t.Errorf("unexpected base64 payload: %v", payload)
	}
}

func TestGetUnknownIDsReturn404(t *testing.T) {
	env := newTestEnv(t)

	for _, path := range []string{
		"/api/v1/images/nope",
		"/api/v1/images/nope/base64",
		"/api/v1/images/classified/nope",
	} {
		w := env.request(t, http.MethodGet, path, "")
		if w.Code != http.StatusNotFound {
			t.Errorf("expected 404 for %s, got %d", path, w.Code)
		}
	}
}
