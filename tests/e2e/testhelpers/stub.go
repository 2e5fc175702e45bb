package testhelpers

import (
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/painel-dev/painelctl/internal/stubserver"
)

// seedYAML is the fixture loaded into every e2e stub instance.
const seedYAML = `admins:
  - email: admin@painel.local
    senha: testpass123
    name: Test Admin
    role: admin
  - email: viewer@painel.local
    senha: viewerpass
    name: Read Only
    role: viewer
profiles:
  - name: Full access
    description: Unrestricted panel access
    permissions: [admins:write, profiles:write, settings:write]
  - name: Support
    description: Read-only support access
    permissions: [tickets:read]
`

// StartStub boots an in-process stub panel server seeded from a YAML fixture
// and returns its API base URL (base path included).
func StartStub(t *testing.T) string {
	t.Helper()

	tempDir := t.TempDir()

	seedPath := filepath.Join(tempDir, "seed.yaml")
	require.NoError(t, os.WriteFile(seedPath, []byte(seedYAML), 0644))

	cfg := &stubserver.Config{
		DatabasePath: filepath.Join(tempDir, "painel-stub.sqlite"),
		SeedPath:     seedPath,
		JWTSecret:    "e2e-test-secret",
		BasePath:     "/Admin/api",
		CORSOrigin:   "http://localhost:5173",
	}

	srv, err := stubserver.New(cfg, zerolog.Nop(), "e2e")
	require.NoError(t, err)

	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)

	return ts.URL + cfg.BasePath
}
