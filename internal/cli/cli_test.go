package cli

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/ppiankov/tfquiz/internal/model"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"notes/Array Basics.txt", "Array-Basics"},
		{"https://en.wikipedia.org/wiki/Array", "en.wikipedia.org_wiki_Array"},
		{"https://example.com/", "example.com"},
		{"a:b*c?.md", "a_b_c_"},
		{"", "quiz"},
	}
	for _, tt := range tests {
		if got := sanitizeFilename(tt.in); got != tt.want {
			t.Errorf("sanitizeFilename(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestUniqueSlug(t *testing.T) {
	used := make(map[string]int)
	got := []string{uniqueSlug(used, "arrays"), uniqueSlug(used, "arrays"), uniqueSlug(used, "lists")}
	want := []string{"arrays", "arrays-2", "lists"}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("slug %d: expected %s, got %s", i, want[i], got[i])
		}
	}
}

func TestParseFormat(t *testing.T) {
	if j, m, err := parseFormat("json"); err != nil || !j || m {
		t.Errorf("json: got %v %v %v", j, m, err)
	}
	if j, m, err := parseFormat("MD"); err != nil || j || !m {
		t.Errorf("md: got %v %v %v", j, m, err)
	}
	if j, m, err := parseFormat("both"); err != nil || !j || !m {
		t.Errorf("both: got %v %v %v", j, m, err)
	}
	if _, _, err := parseFormat("pdf"); err == nil {
		t.Error("expected error for unknown format")
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	v := viper.New()
	setDefaults(v, model.DefaultConfig())

	cfg, err := loadConfig(v)
	if err != nil {
		t.Fatalf("loadConfig failed: %v", err)
	}
	if cfg.Quiz.Questions != 10 || cfg.Quiz.Variation != 5 || cfg.Quiz.MaxAttempts != 100 {
		t.Errorf("unexpected quiz defaults: %+v", cfg.Quiz)
	}
	if cfg.Cache.DiskTTL != 24*time.Hour {
		t.Errorf("expected 24h disk TTL, got %v", cfg.Cache.DiskTTL)
	}
}

func TestLoadConfig_FileAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "quiz:\n  questions: 6\n  topics: [arrays]\ncache:\n  disk_ttl: 2h\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	t.Setenv("TFQUIZ_QUIZ_TERMS", "3")

	v := viper.New()
	setDefaults(v, model.DefaultConfig())
	v.SetConfigFile(path)
	v.SetEnvPrefix("TFQUIZ")
	v.SetEnvKeyReplacer(newEnvReplacer())
	v.AutomaticEnv()
	if err := v.ReadInConfig(); err != nil {
		t.Fatalf("ReadInConfig failed: %v", err)
	}

	cfg, err := loadConfig(v)
	if err != nil {
		t.Fatalf("loadConfig failed: %v", err)
	}
	if cfg.Quiz.Questions != 6 {
		t.Errorf("expected questions from file, got %d", cfg.Quiz.Questions)
	}
	if cfg.Quiz.Terms != 3 {
		t.Errorf("expected terms from env, got %d", cfg.Quiz.Terms)
	}
	if len(cfg.Quiz.Topics) != 1 || cfg.Quiz.Topics[0] != "arrays" {
		t.Errorf("expected topics [arrays], got %v", cfg.Quiz.Topics)
	}
	if cfg.Cache.DiskTTL != 2*time.Hour {
		t.Errorf("expected 2h disk TTL, got %v", cfg.Cache.DiskTTL)
	}
}

func TestLoadConfig_OpenAIKeyFromEnv(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-test")

	v := viper.New()
	setDefaults(v, model.DefaultConfig())
	v.Set("llm.provider", "openai")

	cfg, err := loadConfig(v)
	if err != nil {
		t.Fatalf("loadConfig failed: %v", err)
	}
	if cfg.LLM.APIKey != "sk-test" {
		t.Errorf("expected API key from env, got %q", cfg.LLM.APIKey)
	}
}

func TestWriteDefaultConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".tfquiz", "config.yaml")

	if err := writeDefaultConfig(path, false); err != nil {
		t.Fatalf("writeDefaultConfig failed: %v", err)
	}
	if err := writeDefaultConfig(path, false); err == nil {
		t.Error("expected error when config exists")
	}
	if err := writeDefaultConfig(path, true); err != nil {
		t.Errorf("expected --force to overwrite, got %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var cfg model.Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		t.Fatalf("written config is not valid YAML: %v", err)
	}
	if cfg.Quiz.Questions != 10 || cfg.Server.Addr != "127.0.0.1:5000" {
		t.Errorf("unexpected round-tripped config: %+v", cfg)
	}
}
