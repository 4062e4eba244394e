package cli

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"husbandry-tracker/internal/adapters/storage/sqlite"
	"husbandry-tracker/internal/adapters/storage/sqlstore"
	"husbandry-tracker/internal/router"
)

type testEnv struct {
	url      string
	dir      string
	fallback string
	down     atomic.Bool
}

// newEnv levanta el router real sobre sqlite. Con down=true responde 503,
// que el cliente trata igual que un servidor caído.
func newEnv(t *testing.T) *testEnv {
	t.Helper()

	dir := t.TempDir()
	db, err := sqlite.Open(filepath.Join(dir, "tracker.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	store, err := sqlstore.New(db, sqlstore.DialectSQLite)
	require.NoError(t, err)
	require.NoError(t, store.Migrate(context.Background()))

	env := &testEnv{dir: dir, fallback: filepath.Join(dir, "client", "fallback.json")}
	h := router.NewRouter(router.Options{Store: store})
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if env.down.Load() {
			http.Error(w, `{"error":"maintenance"}`, http.StatusServiceUnavailable)
			return
		}
		h.ServeHTTP(w, r)
	}))
	t.Cleanup(ts.Close)
	env.url = ts.URL
	return env
}

func (e *testEnv) run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	root := NewRootCommand(&out, &errOut)
	root.SetArgs(append([]string{
		"--config", filepath.Join(e.dir, "missing.toml"),
		"--server", e.url,
		"--fallback", e.fallback,
	}, args...))
	err := root.ExecuteContext(t.Context())
	return out.String(), err
}

func (e *testEnv) mustRun(t *testing.T, args ...string) string {
	t.Helper()
	out, err := e.run(t, args...)
	require.NoError(t, err, "husbandryctl %s\n%s", strings.Join(args, " "), out)
	return out
}

func TestCLI_AnimalsAndBreedings(t *testing.T) {
	env := newEnv(t)

	env.mustRun(t, "animals", "add", "--id", "AB-0001", "--name", "Buck", "--species", "rabbit",
		"--sex", "male", "--dob", "2023-01-10", "--status", "Breeder")
	env.mustRun(t, "animals", "add", "--id", "AB-0002", "--name", "Doe", "--species", "rabbit",
		"--sex", "female", "--dob", "2023-02-10")

	out := env.mustRun(t, "animals", "list")
	assert.Contains(t, out, "Buck")
	assert.Contains(t, out, "Doe")
	assert.NotContains(t, out, "[degraded]")

	out = env.mustRun(t, "animals", "eligible", "--role", "female")
	assert.Contains(t, out, "AB-0002")
	assert.NotContains(t, out, "AB-0001")

	out = env.mustRun(t, "breedings", "add", "--male", "AB-0001", "--female", "ZZ-9999", "--date", "2024-01-01")
	require.True(t, strings.HasPrefix(out, "created breeding "), out)
	breedingID := strings.TrimSpace(strings.TrimPrefix(out, "created breeding "))

	out = env.mustRun(t, "breedings", "list")
	assert.Contains(t, out, "2024-02-01")
	assert.Contains(t, out, "Buck (rabbit)")
	assert.Contains(t, out, "Unknown (unknown)")
	assert.Contains(t, out, "OVERDUE")

	env.mustRun(t, "breedings", "update", breedingID, "--status", "successful", "--offspring", "5", "--actual", "2024-02-02")
	out = env.mustRun(t, "breedings", "list")
	assert.Contains(t, out, "successful/5")
	assert.Contains(t, out, "closed")

	out = env.mustRun(t, "stats")
	assert.Contains(t, out, "Breeder")
	assert.Contains(t, out, "successful")
}

func TestCLI_HatchingProgress(t *testing.T) {
	env := newEnv(t)

	out := env.mustRun(t, "hatchings", "add", "--name", "Batch A", "--eggs", "12", "--start", "2024-03-01")
	id := strings.TrimSpace(strings.TrimPrefix(out, "created hatching "))

	env.mustRun(t, "hatchings", "update", id, "--hatched", "10", "--status", "completed")
	out = env.mustRun(t, "hatchings", "list")
	assert.Contains(t, out, "2024-03-22")
	assert.Contains(t, out, "10/12")
	assert.Contains(t, out, "83.3%")
	assert.Contains(t, out, "closed")
}

func TestCLI_OfflineQueueAndReconcile(t *testing.T) {
	env := newEnv(t)
	env.down.Store(true)

	out := env.mustRun(t, "animals", "add", "--name", "Offline Doe", "--species", "rabbit", "--dob", "2023-06-01")
	assert.Contains(t, out, "queued")

	out = env.mustRun(t, "sync", "status")
	assert.Contains(t, out, "server: unreachable")
	assert.Contains(t, out, "state: degraded")
	assert.Contains(t, out, "pending: 1")

	out = env.mustRun(t, "animals", "list")
	assert.Contains(t, out, "[degraded]")
	assert.Contains(t, out, "Offline Doe")

	_, err := env.run(t, "sync", "reconcile")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "still unreachable")

	env.down.Store(false)
	out = env.mustRun(t, "sync", "reconcile")
	assert.Contains(t, out, "reconciled 1 change(s), state: synced")

	out = env.mustRun(t, "animals", "list")
	assert.NotContains(t, out, "[degraded]")
	assert.Contains(t, out, "Offline Doe")

	out = env.mustRun(t, "sync", "status")
	assert.Contains(t, out, "server: OK")
	assert.Contains(t, out, "state: synced")
	assert.Contains(t, out, "pending: 0")

	resp, err := http.Get(env.url + "/api/animals")
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "Offline Doe")
}

func TestCLI_ArgumentErrors(t *testing.T) {
	env := newEnv(t)

	_, err := env.run(t, "animals", "add", "--name", "x")
	assert.Error(t, err, "required flags are enforced")

	_, err = env.run(t, "animals", "update", "AB-0001")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nothing to update")

	_, err = env.run(t, "breedings", "update", "1", "--actual", "2024-01-01", "--clear-actual")
	assert.Error(t, err, "--actual and --clear-actual are exclusive")

	_, err = env.run(t, "animals", "delete", "ZZ-0000")
	assert.Error(t, err)
}

func TestLoadClientConfig(t *testing.T) {
	dir := t.TempDir()

	cfg, err := LoadClientConfig(filepath.Join(dir, "absent.toml"))
	require.NoError(t, err)
	assert.Equal(t, defaultServerURL, cfg.ServerURL)
	assert.Equal(t, defaultFallbackPath, cfg.FallbackPath)

	path := filepath.Join(dir, "client.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
server_url = "http://farm.local:3001"
fallback_path = "/var/lib/husbandry/fallback.json"
timeout = "3s"
`), 0o644))

	cfg, err = LoadClientConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "http://farm.local:3001", cfg.ServerURL)
	assert.Equal(t, "/var/lib/husbandry/fallback.json", cfg.FallbackPath)
	d, err := cfg.timeout()
	require.NoError(t, err)
	assert.Equal(t, 3*time.Second, d)

	require.NoError(t, os.WriteFile(path, []byte(`server_url = `), 0o644))
	_, err = LoadClientConfig(path)
	assert.Error(t, err)

	_, err = ClientConfig{Timeout: "soon"}.timeout()
	assert.Error(t, err)
}

func TestExpandPath_Home(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	got, err := expandPath("~/.local/share/husbandry/fallback.json")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".local/share/husbandry/fallback.json"), got)

	_, err = expandPath("  ")
	assert.Error(t, err)
}

func TestBadgeText(t *testing.T) {
	cases := []struct {
		urgency string
		days    int
		want    string
	}{
		{"overdue", -3, "OVERDUE 3d"},
		{"due_soon", 0, "DUE TODAY"},
		{"due_soon", 2, "DUE IN 2d"},
		{"on_track", 21, "21d left"},
		{"closed", -40, "closed"},
		{"", 0, "-"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, badgeText(tc.urgency, tc.days))
	}
}
