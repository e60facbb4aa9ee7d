package handlers

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"net/http"
	"path/filepath"
	"testing"
	"time"

	"github.com/gorilla/mux"

	"media-scan/internal/cache"
	"media-scan/internal/database"
	"media-scan/internal/scanner"
	"media-scan/internal/signing"
)

// testKey is generated once; RSA key generation is too slow to repeat
// per test.
var testKey *rsa.PrivateKey

func init() {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		panic(err)
	}
	testKey = key
}

// testFixture bundles the wired-up handler surface for a test.
type testFixture struct {
	handlers *Handlers
	db       *database.Database
	signer   *signing.Service
	engine   *scanner.Engine
	mediaDir string
}

// setupTestHandlers builds handlers backed by a real database, a real
// signing key, and an idle scan engine over a temp media directory.
func setupTestHandlers(t *testing.T) *testFixture {
	t.Helper()

	dir := t.TempDir()

	db, err := database.New(context.Background(), filepath.Join(dir, "events.db"))
	if err != nil {
		t.Fatalf("database.New failed: %v", err)
	}
	t.Cleanup(func() {
		if err := db.Close(); err != nil {
			t.Errorf("failed to close database: %v", err)
		}
	})

	timingCache, err := cache.Load(filepath.Join(dir, "timing-cache.json"))
	if err != nil {
		t.Fatalf("cache.Load failed: %v", err)
	}

	mediaDir := filepath.Join(dir, "media")
	engine := scanner.New(db, timingCache, []scanner.Location{
		{Name: "Photos", Root: mediaDir},
	}, time.Hour, 0)

	signer := signing.New(testKey)

	return &testFixture{
		handlers: New(db, engine, signer),
		db:       db,
		signer:   signer,
		engine:   engine,
		mediaDir: mediaDir,
	}
}

// newTestRouter wires the handlers the same way the server does.
func newTestRouter(h *Handlers) *mux.Router {
	r := mux.NewRouter()
	r.SkipClean(true)

	r.HandleFunc("/health", h.HealthCheck).Methods("GET")
	r.HandleFunc("/healthz", h.HealthCheck).Methods("GET")
	r.HandleFunc("/livez", h.LivenessCheck).Methods("GET", "HEAD")
	r.HandleFunc("/readyz", h.ReadinessCheck).Methods("GET")
	r.HandleFunc("/version", h.GetVersion).Methods("GET")

	auth := r.PathPrefix("/api/auth").Subrouter()
	auth.HandleFunc("/setup-required", h.CheckSetupRequired).Methods("GET")
	auth.HandleFunc("/setup", h.Setup).Methods("POST")
	auth.HandleFunc("/login", h.Login).Methods("POST")
	auth.HandleFunc("/logout", h.Logout).Methods("POST")
	auth.HandleFunc("/check", h.CheckAuth).Methods("GET")

	r.HandleFunc("/file/{path:.*}/{signature}", h.GetFile).Methods("GET")
	r.HandleFunc("/status", h.GetStatus).Methods("GET")
	r.HandleFunc("/events", h.GetEvents).Methods("GET")

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/scan/status", h.GetScanStatus).Methods("GET")

	return r
}

// sessionCookie pulls the session cookie out of a recorded response.
func sessionCookie(t *testing.T, resp *http.Response) *http.Cookie {
	t.Helper()
	for _, c := range resp.Cookies() {
		if c.Name == SessionCookieName {
			return c
		}
	}
	t.Fatal("Expected a session cookie in the response")
	return nil
}
