package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	sqliteadapter "github.com/ericfisherdev/marquee/internal/adapter/driven/sqlite"
	"github.com/ericfisherdev/marquee/internal/application"
)

// isolateEnv points the CLI at a fresh mirror file and no .env file.
func isolateEnv(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	dbPath := filepath.Join(dir, "mirror.db")
	t.Setenv("MARQUEE_ENV_FILE", filepath.Join(dir, "absent.env"))
	t.Setenv("MARQUEE_DB_PATH", dbPath)
	t.Setenv("MARQUEE_CONTENT_SOURCE", "cms")
	t.Setenv("MARQUEE_CMS_PROJECT_ID", "")
	t.Setenv("MARQUEE_CMS_BASE_URL", "")
	return dbPath
}

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var stdout, stderr bytes.Buffer
	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)

	err := cmd.ExecuteContext(context.Background())
	return stdout.String(), err
}

func countMirror(t *testing.T, dbPath string) int {
	t.Helper()

	ctx := context.Background()
	db, err := sqliteadapter.NewDB(ctx, dbPath)
	require.NoError(t, err)
	defer db.Close()

	n, err := sqliteadapter.NewDocumentRepo(db).Count(ctx)
	require.NoError(t, err)
	return n
}

func TestExportTokens(t *testing.T) {
	t.Run("css to stdout", func(t *testing.T) {
		out, err := runCLI(t, "export-tokens", "--format", "css")

		require.NoError(t, err)
		assert.Contains(t, out, ":root {")
		assert.Contains(t, out, "--color-brand-primary: #e50914;")
	})

	t.Run("json to file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "tokens.json")

		_, err := runCLI(t, "export-tokens", "--format", "json", "-o", path)
		require.NoError(t, err)

		data, err := os.ReadFile(path)
		require.NoError(t, err)

		var tree map[string]any
		require.NoError(t, json.Unmarshal(data, &tree))
		assert.Contains(t, tree, "color")
	})

	t.Run("unknown format", func(t *testing.T) {
		_, err := runCLI(t, "export-tokens", "--format", "scss")

		require.Error(t, err)
		assert.Contains(t, err.Error(), "unknown format")
	})

	t.Run("custom token file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "tokens.yaml")
		require.NoError(t, os.WriteFile(path, []byte("color:\n  ink: \"#111\"\n"), 0o600))

		out, err := runCLI(t, "export-tokens", "--tokens", path)

		require.NoError(t, err)
		assert.Equal(t, ":root {\n  --color-ink: #111;\n}\n", out)
	})
}

func TestSchema(t *testing.T) {
	out, err := runCLI(t, "schema")
	require.NoError(t, err)

	var schemas []map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &schemas))
	assert.NotEmpty(t, schemas)

	names := make([]any, 0, len(schemas))
	for _, s := range schemas {
		names = append(names, s["name"])
	}
	assert.Contains(t, names, "division")
	assert.Contains(t, names, "siteSettings")
}

func TestSeed_SQLiteIsIdempotent(t *testing.T) {
	dbPath := isolateEnv(t)

	docs, err := application.NewSeedService(nil, nil).Documents()
	require.NoError(t, err)

	for range 3 {
		out, err := runCLI(t, "seed", "--target", "sqlite")
		require.NoError(t, err)
		assert.Contains(t, out, "into sqlite")
	}

	assert.Equal(t, len(docs), countMirror(t, dbPath))
}

func TestSeed_DryRun(t *testing.T) {
	dbPath := isolateEnv(t)

	out, err := runCLI(t, "seed", "--dry-run")

	require.NoError(t, err)
	assert.Contains(t, out, "documents valid")
	assert.NoFileExists(t, dbPath)
}

func TestSeed_InvalidFixturesWriteNothing(t *testing.T) {
	dbPath := isolateEnv(t)

	path := filepath.Join(t.TempDir(), "seed.yaml")
	require.NoError(t, os.WriteFile(path, []byte("documents:\n  - _id: x\n    _type: widget\n"), 0o600))

	_, err := runCLI(t, "seed", "--target", "sqlite", "--fixtures", path)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid seed fixtures")
	assert.Equal(t, 0, countMirror(t, dbPath))
}

func TestSeed_UnknownTarget(t *testing.T) {
	isolateEnv(t)

	_, err := runCLI(t, "seed", "--target", "s3")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown target")
}

func TestSeed_CMSWithoutConfig(t *testing.T) {
	isolateEnv(t)

	_, err := runCLI(t, "seed", "--target", "cms")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "MARQUEE_CMS_PROJECT_ID")
}

func TestCheckSlugs_FixThenClean(t *testing.T) {
	isolateEnv(t)

	_, err := runCLI(t, "seed", "--target", "sqlite")
	require.NoError(t, err)

	_, err = runCLI(t, "check-slugs", "--source", "sqlite", "--fix")
	require.NoError(t, err)

	out, err := runCLI(t, "check-slugs", "--source", "sqlite")
	require.NoError(t, err)
	assert.Contains(t, out, "all slugs ok")
}

func TestSync_FromCMS(t *testing.T) {
	dbPath := isolateEnv(t)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if r.URL.Query().Get("$type") == `"division"` {
			_, _ = w.Write([]byte(`{"result":[{"_id":"division-live","_type":"division","title":"Marquee Live"}]}`))
			return
		}
		_, _ = w.Write([]byte(`{"result":[]}`))
	}))
	defer srv.Close()
	t.Setenv("MARQUEE_CMS_BASE_URL", srv.URL)

	out, err := runCLI(t, "sync")

	require.NoError(t, err)
	assert.Contains(t, out, "synced 1 documents across 8 types")
	assert.Equal(t, 1, countMirror(t, dbPath))
}
