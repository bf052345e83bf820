package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server struct {
		Port int `yaml:"port"`
	} `yaml:"server"`

	Database struct {
		Host     string `yaml:"host"`
		Port     int    `yaml:"port"`
		User     string `yaml:"user"`
		Password string `yaml:"password"`
		Name     string `yaml:"name"`
	} `yaml:"database"`

	// VectorStore is the Postgres/pgvector index holding the regulation corpus.
	VectorStore struct {
		Host     string `yaml:"host"`
		Port     int    `yaml:"port"`
		User     string `yaml:"user"`
		Password string `yaml:"password"`
		Name     string `yaml:"name"`
		SSLMode  string `yaml:"sslMode"`
	} `yaml:"vectorStore"`

	Minio struct {
		Endpoint   string `yaml:"endpoint"`
		AccessKey  string `yaml:"accessKey"`
		SecretKey  string `yaml:"secretKey"`
		BucketName string `yaml:"bucketName"`
		Region     string `yaml:"region"`
		UseSSL     bool   `yaml:"useSSL"`
	} `yaml:"minio"`

	OpenAI struct {
		APIKey     string `yaml:"apiKey"`
		Model      string `yaml:"model"`
		EmbedModel string `yaml:"embedModel"`
	} `yaml:"openai"`

	// Tavily is optional; an empty API key disables the web-search stage.
	Tavily struct {
		APIKey string `yaml:"apiKey"`
	} `yaml:"tavily"`

	Pipeline struct {
		ContentLimit     int      `yaml:"contentLimit"`     // prompt prefix bound, chars
		TopK             int      `yaml:"topK"`             // retrieval depth for QA
		ChunkSize        int      `yaml:"chunkSize"`        // indexer chunk size, chars
		ChunkOverlap     int      `yaml:"chunkOverlap"`     // indexer chunk overlap, chars
		MaxSearchResults int      `yaml:"maxSearchResults"` // web-search result cap
		SearchDomains    []string `yaml:"searchDomains"`    // web-search allow-list
	} `yaml:"pipeline"`

	Auth struct {
		// APIKeys maps tenant id to its key; empty disables auth.
		APIKeys map[string]string `yaml:"apiKeys"`
	} `yaml:"auth"`
}

// Load reads config from a YAML file and applies env overrides for secrets.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	cfg.applyEnv()
	cfg.applyDefaults()
	return &cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("OPENAI_API_KEY"); v != "" {
		c.OpenAI.APIKey = v
	}
	if v := os.Getenv("TAVILY_API_KEY"); v != "" {
		c.Tavily.APIKey = v
	}
}

func (c *Config) applyDefaults() {
	if c.OpenAI.Model == "" {
		c.OpenAI.Model = "gpt-4o"
	}
	if c.OpenAI.EmbedModel == "" {
		c.OpenAI.EmbedModel = "text-embedding-3-small"
	}
	if c.Pipeline.ContentLimit <= 0 {
		c.Pipeline.ContentLimit = 2000
	}
	if c.Pipeline.TopK <= 0 {
		c.Pipeline.TopK = 3
	}
	if c.Pipeline.ChunkSize <= 0 {
		c.Pipeline.ChunkSize = 500
	}
	if c.Pipeline.ChunkOverlap < 0 || c.Pipeline.ChunkOverlap >= c.Pipeline.ChunkSize {
		c.Pipeline.ChunkOverlap = 50
	}
	if c.Pipeline.MaxSearchResults <= 0 {
		c.Pipeline.MaxSearchResults = 3
	}
	if len(c.Pipeline.SearchDomains) == 0 {
		// financial supervisory bodies the original corpus tracks
		c.Pipeline.SearchDomains = []string{"fss.or.kr", "fsc.go.kr", "fsec.or.kr"}
	}
}

// MySQLDSN builds the DSN for the analyses history database.
func (c *Config) MySQLDSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?parseTime=true&charset=utf8mb4&loc=UTC",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
	)
}

// PostgresDSN builds the DSN for the pgvector store.
func (c *Config) PostgresDSN() string {
	ssl := c.VectorStore.SSLMode
	if ssl == "" {
		ssl = "disable"
	}
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.VectorStore.Host,
		c.VectorStore.Port,
		c.VectorStore.User,
		c.VectorStore.Password,
		c.VectorStore.Name,
		ssl,
	)
}
