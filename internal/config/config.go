package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

const (
	defaultSiteURL          = "https://tech.chefclub.tv/"
	defaultFeedAllAtom      = "feeds/all.atom.xml"
	defaultCategoryFeedAtom = "feeds/%s.atom.xml"
	defaultTagFeedAtom      = "feeds/%s.atom.xml"
	defaultDisqusSitename   = "tech-chefclub-tv"
	defaultOutputDir        = "output"
)

// Settings aggregates the effective publish configuration.
// Precedence: CLI flags > publish YAML > base YAML > Environment variables > Defaults
type Settings struct {
	SiteURL               string `validate:"omitempty,http_url"`
	RelativeURLs          bool
	FeedAllAtom           string `validate:"omitempty,feedpath"`
	CategoryFeedAtom      string `validate:"omitempty,feedtemplate"`
	TagFeedAtom           string `validate:"omitempty,feedtemplate"`
	DeleteOutputDirectory bool
	DisqusSitename        string `validate:"omitempty,hostname_rfc1123"`
	OutputDir             string `validate:"required"`
}

// CommentsEnabled reports whether the comment widget is configured.
func (s Settings) CommentsEnabled() bool {
	return s.DisqusSitename != ""
}

// profileFile represents one YAML configuration profile. All fields are
// pointers so that a profile only overrides the keys it actually sets,
// mirroring how the publish profile selectively shadows the base profile.
type profileFile struct {
	SiteURL               *string `yaml:"site_url"`
	RelativeURLs          *bool   `yaml:"relative_urls"`
	FeedAllAtom           *string `yaml:"feed_all_atom"`
	CategoryFeedAtom      *string `yaml:"category_feed_atom"`
	TagFeedAtom           *string `yaml:"tag_feed_atom"`
	DeleteOutputDirectory *bool   `yaml:"delete_output_directory"`
	DisqusSitename        *string `yaml:"disqus_sitename"`
	OutputDir             *string `yaml:"output_dir"`
}

// Overrides holds command-line flag overrides.
type Overrides struct {
	ConfigFile     string
	PublishFile    string
	SiteURL        *string
	RelativeURLs   *bool
	DeleteOutput   *bool
	DisqusSitename *string
	OutputDir      *string
}

// Load resolves the effective settings from all sources with precedence:
// CLI flags > publish YAML > base YAML > Environment variables > Defaults
func Load(overrides *Overrides) (Settings, error) {
	cfg := defaultSettings()

	applyEnv(&cfg)

	if overrides != nil && overrides.ConfigFile != "" {
		profile, err := loadProfile(overrides.ConfigFile)
		if err != nil {
			return Settings{}, fmt.Errorf("load base config: %w", err)
		}
		applyProfile(&cfg, profile)
	}

	if overrides != nil && overrides.PublishFile != "" {
		profile, err := loadProfile(overrides.PublishFile)
		if err != nil {
			return Settings{}, fmt.Errorf("load publish config: %w", err)
		}
		applyProfile(&cfg, profile)
	}

	if overrides != nil {
		applyOverrides(&cfg, overrides)
	}

	if err := validate(cfg); err != nil {
		return Settings{}, err
	}

	return cfg, nil
}

// defaultSettings returns the stock publish profile.
func defaultSettings() Settings {
	return Settings{
		SiteURL:               defaultSiteURL,
		RelativeURLs:          true,
		FeedAllAtom:           defaultFeedAllAtom,
		CategoryFeedAtom:      defaultCategoryFeedAtom,
		TagFeedAtom:           defaultTagFeedAtom,
		DeleteOutputDirectory: true,
		DisqusSitename:        defaultDisqusSitename,
		OutputDir:             defaultOutputDir,
	}
}

// loadProfile reads one YAML configuration profile from disk.
func loadProfile(path string) (*profileFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	var profile profileFile
	if err := yaml.Unmarshal(data, &profile); err != nil {
		return nil, fmt.Errorf("parse YAML: %w", err)
	}

	return &profile, nil
}

// applyProfile copies the keys a profile sets onto the settings, leaving the
// rest untouched.
func applyProfile(cfg *Settings, profile *profileFile) {
	if profile.SiteURL != nil {
		cfg.SiteURL = strings.TrimSpace(*profile.SiteURL)
	}
	if profile.RelativeURLs != nil {
		cfg.RelativeURLs = *profile.RelativeURLs
	}
	if profile.FeedAllAtom != nil {
		cfg.FeedAllAtom = strings.TrimSpace(*profile.FeedAllAtom)
	}
	if profile.CategoryFeedAtom != nil {
		cfg.CategoryFeedAtom = strings.TrimSpace(*profile.CategoryFeedAtom)
	}
	if profile.TagFeedAtom != nil {
		cfg.TagFeedAtom = strings.TrimSpace(*profile.TagFeedAtom)
	}
	if profile.DeleteOutputDirectory != nil {
		cfg.DeleteOutputDirectory = *profile.DeleteOutputDirectory
	}
	if profile.DisqusSitename != nil {
		cfg.DisqusSitename = strings.TrimSpace(*profile.DisqusSitename)
	}
	if profile.OutputDir != nil {
		cfg.OutputDir = strings.TrimSpace(*profile.OutputDir)
	}
}

// applyEnv applies environment variable configuration.
func applyEnv(cfg *Settings) {
	if v := strings.TrimSpace(os.Getenv("SITEURL")); v != "" {
		cfg.SiteURL = v
	}
	if v := strings.TrimSpace(os.Getenv("RELATIVE_URLS")); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.RelativeURLs = b
		}
	}
	if v := strings.TrimSpace(os.Getenv("FEED_ALL_ATOM")); v != "" {
		cfg.FeedAllAtom = v
	}
	if v := strings.TrimSpace(os.Getenv("CATEGORY_FEED_ATOM")); v != "" {
		cfg.CategoryFeedAtom = v
	}
	if v := strings.TrimSpace(os.Getenv("TAG_FEED_ATOM")); v != "" {
		cfg.TagFeedAtom = v
	}
	if v := strings.TrimSpace(os.Getenv("DELETE_OUTPUT_DIRECTORY")); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.DeleteOutputDirectory = b
		}
	}
	if v := strings.TrimSpace(os.Getenv("DISQUS_SITENAME")); v != "" {
		cfg.DisqusSitename = v
	}
	if v := strings.TrimSpace(os.Getenv("OUTPUT_DIR")); v != "" {
		cfg.OutputDir = v
	}
}

// applyOverrides applies command-line flag overrides.
func applyOverrides(cfg *Settings, overrides *Overrides) {
	if overrides.SiteURL != nil {
		cfg.SiteURL = strings.TrimSpace(*overrides.SiteURL)
	}
	if overrides.RelativeURLs != nil {
		cfg.RelativeURLs = *overrides.RelativeURLs
	}
	if overrides.DeleteOutput != nil {
		cfg.DeleteOutputDirectory = *overrides.DeleteOutput
	}
	if overrides.DisqusSitename != nil {
		cfg.DisqusSitename = strings.TrimSpace(*overrides.DisqusSitename)
	}
	if overrides.OutputDir != nil {
		cfg.OutputDir = strings.TrimSpace(*overrides.OutputDir)
	}
}

// validate checks the final settings, including the feed path rules.
func validate(cfg Settings) error {
	if !cfg.RelativeURLs && cfg.SiteURL == "" {
		return fmt.Errorf("SiteURL is required when RelativeURLs is false")
	}

	v := validator.New()

	if err := v.RegisterValidation("feedtemplate", func(fl validator.FieldLevel) bool {
		return validFeedPath(fl.Field().String(), true)
	}); err != nil {
		return fmt.Errorf("register validation: %w", err)
	}
	if err := v.RegisterValidation("feedpath", func(fl validator.FieldLevel) bool {
		return validFeedPath(fl.Field().String(), false)
	}); err != nil {
		return fmt.Errorf("register validation: %w", err)
	}

	if err := v.Struct(cfg); err != nil {
		if validationErrs, ok := err.(validator.ValidationErrors); ok {
			for _, fieldErr := range validationErrs {
				switch fieldErr.Tag() {
				case "feedtemplate":
					return fmt.Errorf("%s must be a relative path containing exactly one %%s placeholder (got: %q)",
						fieldErr.Field(), fieldErr.Value())
				case "feedpath":
					return fmt.Errorf("%s must be a relative path without placeholders (got: %q)",
						fieldErr.Field(), fieldErr.Value())
				case "http_url":
					return fmt.Errorf("SiteURL must be an absolute http(s) URL (got: %q)", fieldErr.Value())
				}
			}
		}
		return fmt.Errorf("validate settings: %w", err)
	}

	return nil
}

// validFeedPath checks a feed output path. Templated paths must contain
// exactly one %s placeholder and no other verbs; plain paths none at all.
// Both must stay inside the output tree.
func validFeedPath(path string, templated bool) bool {
	if filepath.IsAbs(path) || strings.Contains(path, "..") {
		return false
	}
	if templated {
		return strings.Count(path, "%") == 1 && strings.Count(path, "%s") == 1
	}
	return !strings.Contains(path, "%")
}
