// Package config holds run configuration, loaded from environment
// variables with the DOCINDEX_ prefix and falling back to defaults that
// mirror the public creator-docs corpus layout.
package config

import (
	"path/filepath"

	"github.com/spf13/viper"
)

// Config is the resolved configuration for one run.
type Config struct {
	// DataDir is the base directory for all outputs.
	DataDir string `mapstructure:"data_dir"`

	// RepoZipURL is the corpus archive to download.
	RepoZipURL string `mapstructure:"repo_zip_url"`

	// LocalRepoDir is where the extracted corpus lives.
	LocalRepoDir string `mapstructure:"local_repo_dir"`

	// DocsSubpath locates the record YAMLs inside the corpus.
	DocsSubpath string `mapstructure:"docs_subpath"`

	// NavSubpath locates the navigation tree inside the corpus.
	NavSubpath string `mapstructure:"nav_subpath"`

	// ObjectsDir is where per-record JSON documents are written.
	ObjectsDir string `mapstructure:"objects_dir"`

	// GeneralIndexFile and PropertiesIndexFile are the two output streams.
	GeneralIndexFile    string `mapstructure:"general_index_file"`
	PropertiesIndexFile string `mapstructure:"properties_index_file"`

	// BaseURL is the public docs URL records link back to.
	BaseURL string `mapstructure:"base_url"`

	// IDPrefix namespaces synthesized record identifiers.
	IDPrefix string `mapstructure:"id_prefix"`

	// Behavior flags.
	NonInteractive bool `mapstructure:"non_interactive"`
	ForceRebuild   bool `mapstructure:"force_rebuild"`
	SkipDownload   bool `mapstructure:"skip_download"`

	// LLM enrichment endpoint (OpenAI-compatible).
	LLMBaseURL string `mapstructure:"llm_base_url"`
	LLMAPIKey  string `mapstructure:"llm_api_key"`
	LLMModel   string `mapstructure:"llm_model"`
}

// Load builds a Config from environment variables and defaults.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("DOCINDEX")
	v.AutomaticEnv()

	v.SetDefault("data_dir", ".")
	v.SetDefault("repo_zip_url", "https://github.com/Roblox/creator-docs/archive/refs/heads/main.zip")
	v.SetDefault("local_repo_dir", "creator-docs")
	v.SetDefault("docs_subpath", "content/en-us/reference/engine")
	v.SetDefault("nav_subpath", "content/common/navigation/engine/reference.yaml")
	v.SetDefault("objects_dir", "engine_objects")
	v.SetDefault("general_index_file", "engine_index.jsonl")
	v.SetDefault("properties_index_file", "engine_properties_index.jsonl")
	v.SetDefault("base_url", "https://create.roblox.com/docs/reference/engine")
	v.SetDefault("id_prefix", "engine/")
	v.SetDefault("non_interactive", false)
	v.SetDefault("force_rebuild", false)
	v.SetDefault("skip_download", false)
	v.SetDefault("llm_base_url", "http://127.0.0.1:8000/v1")
	v.SetDefault("llm_api_key", "dummy-key")
	v.SetDefault("llm_model", "")

	// Bind every key so AutomaticEnv sees them even without explicit Set.
	for _, key := range v.AllKeys() {
		if err := v.BindEnv(key); err != nil {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// DocsRoot is the absolute-ish path to the record YAML tree.
func (c *Config) DocsRoot() string {
	return filepath.Join(c.LocalRepoDir, filepath.FromSlash(c.DocsSubpath))
}

// NavPath is the path to the navigation tree YAML.
func (c *Config) NavPath() string {
	return filepath.Join(c.LocalRepoDir, filepath.FromSlash(c.NavSubpath))
}

// GeneralIndexPath is the general stream path under DataDir.
func (c *Config) GeneralIndexPath() string {
	return filepath.Join(c.DataDir, c.GeneralIndexFile)
}

// PropertiesIndexPath is the properties stream path under DataDir.
func (c *Config) PropertiesIndexPath() string {
	return filepath.Join(c.DataDir, c.PropertiesIndexFile)
}

// ObjectsRoot is the per-record JSON output tree under DataDir.
func (c *Config) ObjectsRoot() string {
	return filepath.Join(c.DataDir, c.ObjectsDir)
}
