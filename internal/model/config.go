package model

import "time"

// Config is the complete tfquiz configuration tree
type Config struct {
	Quiz         QuizConfig         `yaml:"quiz" mapstructure:"quiz"`
	HTTP         HTTPConfig         `yaml:"http" mapstructure:"http"`
	Cache        CacheConfig        `yaml:"cache" mapstructure:"cache"`
	Server       ServerConfig       `yaml:"server" mapstructure:"server"`
	LLM          LLMConfig          `yaml:"llm" mapstructure:"llm"`
	Concurrency  ConcurrencyConfig  `yaml:"concurrency" mapstructure:"concurrency"`
	RateLimiting RateLimitingConfig `yaml:"rate_limiting" mapstructure:"rate_limiting"`
	Output       OutputConfig       `yaml:"output" mapstructure:"output"`
}

// QuizConfig controls term selection and statement synthesis
type QuizConfig struct {
	Questions   int      `yaml:"questions" mapstructure:"questions"`       // Statements per document
	Terms       int      `yaml:"terms" mapstructure:"terms"`               // Quiz terms selected per document
	Variation   int      `yaml:"variation" mapstructure:"variation"`       // Upper bound of the random skip-ahead
	MaxAttempts int      `yaml:"max_attempts" mapstructure:"max_attempts"` // Synthesis retry cap
	Seed        int64    `yaml:"seed" mapstructure:"seed"`                 // 0 means unseeded
	Topics      []string `yaml:"topics,omitempty" mapstructure:"topics"`   // Guaranteed terms
}

// HTTPConfig controls fetching of web documents
type HTTPConfig struct {
	Timeout       time.Duration `yaml:"timeout" mapstructure:"timeout"`
	UserAgent     string        `yaml:"user_agent" mapstructure:"user_agent"`
	MaxBodyBytes  int64         `yaml:"max_body_bytes" mapstructure:"max_body_bytes"`
	RespectRobots bool          `yaml:"respect_robots" mapstructure:"respect_robots"`
	HTTPProxy     string        `yaml:"http_proxy,omitempty" mapstructure:"http_proxy"`
	HTTPSProxy    string        `yaml:"https_proxy,omitempty" mapstructure:"https_proxy"`
}

// CacheConfig controls the fetched-page cache
type CacheConfig struct {
	Enabled   bool          `yaml:"enabled" mapstructure:"enabled"`
	Dir       string        `yaml:"dir" mapstructure:"dir"`
	MemoryTTL time.Duration `yaml:"memory_ttl" mapstructure:"memory_ttl"`
	DiskTTL   time.Duration `yaml:"disk_ttl" mapstructure:"disk_ttl"`
}

// ServerConfig controls the HTTP delivery layer
type ServerConfig struct {
	Addr           string   `yaml:"addr" mapstructure:"addr"`
	Mode           string   `yaml:"mode" mapstructure:"mode"` // development or production
	AllowOrigins   []string `yaml:"allow_origins" mapstructure:"allow_origins"`
	MaxUploadBytes int64    `yaml:"max_upload_bytes" mapstructure:"max_upload_bytes"`
}

// LLMConfig controls the optional chat-model engine
type LLMConfig struct {
	Provider  string `yaml:"provider" mapstructure:"provider"` // openai, ollama or empty
	Model     string `yaml:"model" mapstructure:"model"`
	APIKey    string `yaml:"-" mapstructure:"api_key"`
	BaseURL   string `yaml:"base_url,omitempty" mapstructure:"base_url"`
	Timeout   int    `yaml:"timeout" mapstructure:"timeout"` // seconds
	MaxTokens int    `yaml:"max_tokens" mapstructure:"max_tokens"`
}

// ConcurrencyConfig controls batch parallelism
type ConcurrencyConfig struct {
	Workers int `yaml:"workers" mapstructure:"workers"`
}

// RateLimitingConfig controls per-key rate limits
type RateLimitingConfig struct {
	RequestsPerSecond float64 `yaml:"requests_per_second" mapstructure:"requests_per_second"`
	BurstSize         int     `yaml:"burst_size" mapstructure:"burst_size"`
}

// OutputConfig controls rendering
type OutputConfig struct {
	Verbose       bool `yaml:"verbose" mapstructure:"verbose"`
	IncludeAnswer bool `yaml:"include_answers" mapstructure:"include_answers"`
}

// DefaultConfig returns sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Quiz: QuizConfig{
			Questions:   10,
			Terms:       10,
			Variation:   5,
			MaxAttempts: 100,
		},
		HTTP: HTTPConfig{
			Timeout:       30 * time.Second,
			UserAgent:     "tfquiz/0.1 (+https://github.com/ppiankov/tfquiz)",
			MaxBodyBytes:  2_000_000,
			RespectRobots: true,
		},
		Cache: CacheConfig{
			Enabled:   true,
			Dir:       ".tfquiz-cache",
			MemoryTTL: 15 * time.Minute,
			DiskTTL:   24 * time.Hour,
		},
		Server: ServerConfig{
			Addr:           "127.0.0.1:5000",
			Mode:           "development",
			AllowOrigins:   []string{"http://localhost:3000", "http://127.0.0.1:3000"},
			MaxUploadBytes: 10 << 20,
		},
		LLM: LLMConfig{
			Timeout:   30,
			MaxTokens: 1000,
		},
		Concurrency: ConcurrencyConfig{
			Workers: 4,
		},
		RateLimiting: RateLimitingConfig{
			RequestsPerSecond: 2,
			BurstSize:         5,
		},
		Output: OutputConfig{
			IncludeAnswer: true,
		},
	}
}
