package application

import (
	"os"
	"path"
	"strings"

	"gopkg.in/yaml.v3"
)

// GmailSettings configures the mailbox label API client.
type GmailSettings struct {
	BaseURL string `yaml:"base_url"`
	Token   string `yaml:"token"`
}

// Config defines ingest defaults applied when the wizard's ingest step
// leaves optional fields blank.
type Config struct {
	DropboxRoot        string        `yaml:"dropbox_root"`
	AltosphereRoot     string        `yaml:"altosphere_root"`
	ShowInLoggerViewer bool          `yaml:"show_in_logger_viewer"`
	ShowInEmail        bool          `yaml:"show_in_email"`
	Gmail              GmailSettings `yaml:"gmail"`
}

// LoadConfig loads ingest defaults from yaml or env. Both display flags
// default to on, matching the wizard's pre-checked boxes.
func LoadConfig() (Config, error) {
	cfg := Config{
		DropboxRoot:        getenvDefault("INGEST_DROPBOX_ROOT", "/Apps/METData"),
		AltosphereRoot:     getenvDefault("INGEST_ALTOSPHERE_ROOT", "/data/projects"),
		ShowInLoggerViewer: true,
		ShowInEmail:        true,
		Gmail: GmailSettings{
			BaseURL: os.Getenv("GMAIL_API_BASE_URL"),
			Token:   os.Getenv("GMAIL_API_TOKEN"),
		},
	}

	if path := os.Getenv("INGEST_CONFIG"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, err
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, err
		}
	}

	if cfg.Gmail.BaseURL == "" {
		cfg.Gmail.BaseURL = os.Getenv("GMAIL_API_BASE_URL")
	}
	if cfg.Gmail.Token == "" {
		cfg.Gmail.Token = os.Getenv("GMAIL_API_TOKEN")
	}
	return cfg, nil
}

// DefaultDropboxPath derives a dropbox path for a site from the configured
// root.
func (c Config) DefaultDropboxPath(siteName string) string {
	if siteName == "" {
		return ""
	}
	return path.Join(c.DropboxRoot, sanitizeSegment(siteName)) + "/"
}

// DefaultAltospherePath derives an altosphere path for a project/site pair.
func (c Config) DefaultAltospherePath(projectName, siteName string) string {
	if projectName == "" || siteName == "" {
		return ""
	}
	return path.Join(c.AltosphereRoot, sanitizeSegment(projectName), sanitizeSegment(siteName)) + "/"
}

func sanitizeSegment(segment string) string {
	return strings.ReplaceAll(strings.TrimSpace(segment), " ", "")
}

func getenvDefault(key, fallback string) string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	return value
}
