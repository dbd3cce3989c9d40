package cli

import (
	"fmt"
	"os"

	"github.com/ppiankov/tfquiz/internal/model"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// flagKeys maps flag names to the config keys they override
var flagKeys = map[string]string{
	"questions":    "quiz.questions",
	"terms":        "quiz.terms",
	"variation":    "quiz.variation",
	"max-attempts": "quiz.max_attempts",
	"seed":         "quiz.seed",
	"topics":       "quiz.topics",
	"answers":      "output.include_answers",
	"ua":           "http.user_agent",
	"llm-provider": "llm.provider",
	"llm-model":    "llm.model",
	"llm-base-url": "llm.base_url",
	"workers":      "concurrency.workers",
	"addr":         "server.addr",
	"mode":         "server.mode",
	"rps":          "rate_limiting.requests_per_second",
	"burst":        "rate_limiting.burst_size",
}

func addQuizFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.IntP("questions", "n", 10, "statements per document")
	f.Int("terms", 10, "quiz terms selected per document")
	f.Int("variation", 5, "upper bound of the random skip-ahead between picked terms")
	f.Int("max-attempts", 100, "synthesis attempt cap")
	f.Int64("seed", 0, "random seed (0 = different quiz every run)")
	f.StringSlice("topics", nil, "terms that must be quizzed when present")
	f.Bool("answers", true, "include the answer key in output")
}

func addFetchFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.String("ua", "", "HTTP User-Agent")
	f.Bool("no-cache", false, "disable page cache (force fresh fetch)")
	f.Bool("no-robots", false, "ignore robots.txt")
}

func addLLMFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.String("llm-provider", "", "chat-model engine (openai, ollama); empty uses tfidf")
	f.String("llm-model", "", "chat model name")
	f.String("llm-base-url", "", "OpenAI-compatible endpoint (e.g. a local Ollama)")
}

// commandConfig binds cmd's flags and loads the merged configuration.
// Binding happens per run so commands sharing a key do not clobber each other.
func commandConfig(cmd *cobra.Command) (*model.Config, error) {
	v := viper.GetViper()
	for name, key := range flagKeys {
		if fl := cmd.Flags().Lookup(name); fl != nil {
			if err := v.BindPFlag(key, fl); err != nil {
				return nil, fmt.Errorf("bind --%s: %w", name, err)
			}
		}
	}

	cfg, err := loadConfig(v)
	if err != nil {
		return nil, err
	}

	if off, err := cmd.Flags().GetBool("no-cache"); err == nil && off {
		cfg.Cache.Enabled = false
	}
	if off, err := cmd.Flags().GetBool("no-robots"); err == nil && off {
		cfg.HTTP.RespectRobots = false
	}

	if cfg.LLM.Provider == "openai" && cfg.LLM.APIKey == "" {
		cfg.LLM.APIKey = os.Getenv("OPENAI_API_KEY")
		if cfg.LLM.APIKey == "" {
			return nil, fmt.Errorf("OPENAI_API_KEY environment variable not set")
		}
	}
	return cfg, nil
}
