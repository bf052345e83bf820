package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadAppliesDefaults(t *testing.T) {
	path := writeConfig(t, `
server:
  port: 8080
database:
  host: localhost
  port: 3306
  user: app
  password: secret
  name: compliance
vectorStore:
  host: localhost
  port: 5432
  user: app
  password: secret
  name: corpus
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "gpt-4o", cfg.OpenAI.Model)
	assert.Equal(t, "text-embedding-3-small", cfg.OpenAI.EmbedModel)
	assert.Equal(t, 2000, cfg.Pipeline.ContentLimit)
	assert.Equal(t, 3, cfg.Pipeline.TopK)
	assert.Equal(t, 500, cfg.Pipeline.ChunkSize)
	assert.Equal(t, 50, cfg.Pipeline.ChunkOverlap)
	assert.Equal(t, 3, cfg.Pipeline.MaxSearchResults)
	assert.Equal(t, []string{"fss.or.kr", "fsc.go.kr", "fsec.or.kr"}, cfg.Pipeline.SearchDomains)
}

func TestLoadEnvOverridesSecrets(t *testing.T) {
	path := writeConfig(t, `
openai:
  apiKey: from-file
`)
	t.Setenv("OPENAI_API_KEY", "from-env")
	t.Setenv("TAVILY_API_KEY", "tvly-env")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.OpenAI.APIKey)
	assert.Equal(t, "tvly-env", cfg.Tavily.APIKey)
}

func TestDSNBuilders(t *testing.T) {
	path := writeConfig(t, `
database:
  host: db.internal
  port: 3306
  user: app
  password: pw
  name: compliance
vectorStore:
  host: pg.internal
  port: 5432
  user: vec
  password: pw2
  name: corpus
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t,
		"app:pw@tcp(db.internal:3306)/compliance?parseTime=true&charset=utf8mb4&loc=UTC",
		cfg.MySQLDSN())
	assert.Equal(t,
		"host=pg.internal port=5432 user=vec password=pw2 dbname=corpus sslmode=disable",
		cfg.PostgresDSN())
}
