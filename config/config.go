package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the agent backend
type Config struct {
	Server      ServerConfig      `mapstructure:"server"`
	LLM         LLMConfig         `mapstructure:"llm"`
	Search      SearchConfig      `mapstructure:"search"`
	Semantic    SemanticConfig    `mapstructure:"semantic"`
	Fetch       FetchConfig       `mapstructure:"fetch"`
	Memory      MemoryConfig      `mapstructure:"memory"`
	Suggestions SuggestionsConfig `mapstructure:"suggestions"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	Address string `mapstructure:"address"`
	Debug   bool   `mapstructure:"debug"`
}

// LLMConfig contains generation provider configuration
type LLMConfig struct {
	Provider       string        `mapstructure:"provider"` // openai
	APIKey         string        `mapstructure:"api_key"`
	AnswerModel    string        `mapstructure:"answer_model"`    // blocking synthesis
	StreamModel    string        `mapstructure:"stream_model"`    // streaming synthesis
	AuxiliaryModel string        `mapstructure:"auxiliary_model"` // memory filter, suggestions
	Timeout        time.Duration `mapstructure:"timeout"`
}

// SearchConfig contains web search provider configuration
type SearchConfig struct {
	Provider   string `mapstructure:"provider"` // tavily, brave
	APIKey     string `mapstructure:"api_key"`
	MaxResults int    `mapstructure:"max_results"`
}

// SemanticConfig contains semantic content provider configuration
type SemanticConfig struct {
	Provider string `mapstructure:"provider"` // exa
	APIKey   string `mapstructure:"api_key"`
}

// FetchConfig contains page extraction settings
type FetchConfig struct {
	Fetcher  string        `mapstructure:"fetcher"` // firecrawl, readability, chromedp
	APIKey   string        `mapstructure:"api_key"`
	Timeout  time.Duration `mapstructure:"timeout"`
	MaxChars int           `mapstructure:"max_chars"`
	Workers  int           `mapstructure:"workers"`
}

// MemoryConfig contains memory store provider configuration
type MemoryConfig struct {
	APIKey    string        `mapstructure:"api_key"`
	OrgID     string        `mapstructure:"org_id"`
	ProjectID string        `mapstructure:"project_id"`
	Timeout   time.Duration `mapstructure:"timeout"`
}

// SuggestionsConfig contains the session store used for repeat suppression
type SuggestionsConfig struct {
	Store      string        `mapstructure:"store"` // inmemory, redis
	SessionTTL time.Duration `mapstructure:"session_ttl"`
	Redis      RedisConfig   `mapstructure:"redis"`
}

// RedisConfig contains redis connection settings
type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// LoadConfig reads configuration from file and environment (INSIGHT_*)
func LoadConfig(path string) *Config {
	viper.SetConfigName("config")
	viper.SetConfigType("json")

	viper.SetDefault("server.address", ":10010")
	viper.SetDefault("llm.provider", "openai")
	viper.SetDefault("llm.answer_model", "gpt-4o-mini")
	viper.SetDefault("llm.stream_model", "gpt-4o")
	viper.SetDefault("llm.auxiliary_model", "gpt-4o-mini")
	viper.SetDefault("llm.timeout", "60s")
	viper.SetDefault("search.provider", "tavily")
	viper.SetDefault("search.max_results", 5)
	viper.SetDefault("semantic.provider", "exa")
	viper.SetDefault("fetch.fetcher", "firecrawl")
	viper.SetDefault("fetch.timeout", "15s")
	viper.SetDefault("fetch.max_chars", 3000)
	viper.SetDefault("fetch.workers", 8)
	viper.SetDefault("memory.timeout", "15s")
	viper.SetDefault("suggestions.store", "inmemory")
	viper.SetDefault("suggestions.session_ttl", "24h")

	if path == "" {
		viper.AddConfigPath("./config")
		viper.AddConfigPath(".")
	} else {
		viper.SetConfigFile(path)
	}

	viper.SetEnvPrefix("INSIGHT")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// Config file is optional; env and defaults are enough to run.
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			panic(fmt.Errorf("fatal error config file: %w", err))
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		panic(fmt.Errorf("fatal error config file: %w", err))
	}
	return &config
}
