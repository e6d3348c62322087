// Package testutil provides shared test helpers for config files and a fake suggestions API.
package testutil

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
)

// SetupTestConfig writes a config file pointing the client at baseURL with retries off and
// sequential lookups. A file cache lives under tmpDir/cache.
// Returns the path to the generated config file.
func SetupTestConfig(t *testing.T, tmpDir string, baseURL string, cacheBackend string) string {
	t.Helper()

	configContent := fmt.Sprintf(`openrussian:
  base_url: %s
  retry_attempts: 0
lookup:
  concurrency: 1
  output: %s
cache:
  backend: %s
  directory: %s
`,
		baseURL,
		filepath.Join(tmpDir, "output", "openrussian_lookup.json"),
		cacheBackend,
		filepath.Join(tmpDir, "cache"),
	)
	configPath := filepath.Join(tmpDir, "config.yml")
	require.NoError(t, os.WriteFile(configPath, []byte(configContent), 0644))
	return configPath
}

// SuggestionServer serves canned suggestion responses keyed by the q parameter.
// Unknown words get a 404.
type SuggestionServer struct {
	*httptest.Server
	requests atomic.Int32
}

func NewSuggestionServer(t *testing.T, responses map[string]string) *SuggestionServer {
	t.Helper()

	server := &SuggestionServer{}
	server.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		server.requests.Add(1)
		if r.URL.Path != "/suggestions" {
			http.NotFound(w, r)
			return
		}
		body, ok := responses[r.URL.Query().Get("q")]
		if !ok {
			http.Error(w, "unknown word", http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = fmt.Fprint(w, body)
	}))
	t.Cleanup(server.Close)
	return server
}

// Requests returns the number of requests served so far.
func (s *SuggestionServer) Requests() int32 {
	return s.requests.Load()
}
