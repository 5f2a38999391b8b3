package app

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	yaml "gopkg.in/yaml.v3"
)

// FileConfig is the optional single-file configuration schema. Pointer
// fields distinguish "absent" from an explicit false so the file never
// accidentally overrides a flag default.
type FileConfig struct {
	Root     string `yaml:"root" json:"root"`
	Encoding string `yaml:"encoding" json:"encoding"`
	Owner    string `yaml:"owner" json:"owner"`

	ExcludeGroupChats        *bool `yaml:"excludeGroupChats" json:"excludeGroupChats"`
	ExhaustiveLists          *bool `yaml:"exhaustiveLists" json:"exhaustiveLists"`
	IgnorePlaceholderSender  *bool `yaml:"ignorePlaceholderSender" json:"ignorePlaceholderSender"`
	CrossConversationReplies *bool `yaml:"crossConversationReplies" json:"crossConversationReplies"`

	MinMessages *int   `yaml:"minMessages" json:"minMessages"`
	PDF         string `yaml:"pdf" json:"pdf"`
	Verbose     *bool  `yaml:"verbose" json:"verbose"`
}

// LoadConfigFile reads a YAML or JSON config file, chosen by extension.
func LoadConfigFile(path string) (*FileConfig, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	var fc FileConfig
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		if err := json.Unmarshal(b, &fc); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	default:
		if err := yaml.Unmarshal(b, &fc); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	return &fc, nil
}

// Apply overlays the file values onto cfg. Only set fields override.
func (fc *FileConfig) Apply(cfg *Config) {
	if fc == nil {
		return
	}
	if fc.Root != "" {
		cfg.RootPath = fc.Root
	}
	if fc.Encoding != "" {
		cfg.Encoding = fc.Encoding
	}
	if fc.Owner != "" {
		cfg.OwnerName = fc.Owner
	}
	if fc.ExcludeGroupChats != nil {
		cfg.ExcludeGroupChats = *fc.ExcludeGroupChats
	}
	if fc.ExhaustiveLists != nil {
		cfg.ExhaustiveLists = *fc.ExhaustiveLists
	}
	if fc.IgnorePlaceholderSender != nil {
		cfg.IgnorePlaceholderSender = *fc.IgnorePlaceholderSender
	}
	if fc.CrossConversationReplies != nil {
		cfg.CrossConversationReplies = *fc.CrossConversationReplies
	}
	if fc.MinMessages != nil {
		cfg.MinMessagesPerConversation = *fc.MinMessages
	}
	if fc.PDF != "" {
		cfg.PDFPath = fc.PDF
	}
	if fc.Verbose != nil {
		cfg.Verbose = *fc.Verbose
	}
}

// ApplyEnv overlays MESSENGER_STATS_* environment variables onto cfg.
// Flags handled by the cmd layer still take precedence over these.
func ApplyEnv(cfg *Config) {
	if v := os.Getenv("MESSENGER_STATS_ROOT"); v != "" {
		cfg.RootPath = v
	}
	if v := os.Getenv("MESSENGER_STATS_OWNER"); v != "" {
		cfg.OwnerName = v
	}
	if v := os.Getenv("MESSENGER_STATS_ENCODING"); v != "" {
		cfg.Encoding = v
	}
}
