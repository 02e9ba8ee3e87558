package config

import (
	"bytes"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"folio/internal/domain/content"
	domainerr "folio/internal/domain/errors"
)

type Config struct {
	Site    SiteConfig    `yaml:"site" toml:"site"`
	Content ContentConfig `yaml:"content" toml:"content"`
	Build   BuildConfig   `yaml:"build" toml:"build"`
	Serve   ServeConfig   `yaml:"serve" toml:"serve"`
}

type SiteConfig struct {
	Title           string       `yaml:"title" toml:"title"`
	Author          string       `yaml:"author" toml:"author"`
	Description     string       `yaml:"description" toml:"description"`
	SiteURL         string       `yaml:"site_url" toml:"site_url"`
	Theme           string       `yaml:"theme" toml:"theme"`
	DefaultLanguage content.Lang `yaml:"default_language" toml:"default_language"`
}

// ContentConfig describes the on-disk layout of the content. A post "x" lives
// in PostsDir/x<Extension>; its English body, if any, in
// PostsDir/x<AltSuffix><Extension>.
type ContentConfig struct {
	PostsDir  string `yaml:"posts_dir" toml:"posts_dir"`
	Extension string `yaml:"extension" toml:"extension"`
	AltSuffix string `yaml:"alt_suffix" toml:"alt_suffix"`
	CVFile    string `yaml:"cv_file" toml:"cv_file"`
}

type BuildConfig struct {
	PublicDir    string `yaml:"public_dir" toml:"public_dir"`
	ThemeDir     string `yaml:"theme_dir" toml:"theme_dir"`
	ManifestPath string `yaml:"manifest_path" toml:"manifest_path"`
	Workers      int    `yaml:"workers" toml:"workers"`
}

type ServeConfig struct {
	Addr  string `yaml:"addr" toml:"addr"`
	Watch bool   `yaml:"watch" toml:"watch"`
}

func Default() Config {
	return Config{
		Site: SiteConfig{
			Title:           "Folio",
			Theme:           "default",
			SiteURL:         "http://localhost:8080",
			DefaultLanguage: content.LangFR,
		},
		Content: ContentConfig{
			PostsDir:  "content/posts",
			Extension: ".md",
			AltSuffix: ".en",
			CVFile:    "content/cv.yaml",
		},
		Build: BuildConfig{
			PublicDir:    "public",
			ThemeDir:     "themes",
			ManifestPath: ".folio/manifest.db",
			Workers:      4,
		},
		Serve: ServeConfig{
			Addr:  ":8080",
			Watch: true,
		},
	}
}

func (c Config) Validate() error {
	var ve domainerr.ValidationError

	if strings.TrimSpace(c.Site.Title) == "" {
		ve.Add("site.title", "must not be empty")
	}

	if strings.TrimSpace(c.Site.SiteURL) == "" {
		ve.Add("site.site_url", "must not be empty")
	} else if !isValidAbsURL(c.Site.SiteURL) {
		ve.Add("site.site_url", "must be a valid absolute URL")
	}

	if strings.TrimSpace(c.Site.Theme) == "" {
		ve.Add("site.theme", "must not be empty")
	}
	if l, ok := content.ParseLang(string(c.Site.DefaultLanguage)); !ok || l != c.Site.DefaultLanguage {
		ve.Add("site.default_language", "must be 'fr' or 'en'")
	}

	if strings.TrimSpace(c.Content.PostsDir) == "" {
		ve.Add("content.posts_dir", "must not be empty")
	}
	if ext := c.Content.Extension; !strings.HasPrefix(ext, ".") || len(ext) < 2 {
		ve.Add("content.extension", "must start with '.'")
	}
	if strings.TrimSpace(c.Content.AltSuffix) == "" {
		ve.Add("content.alt_suffix", "must not be empty")
	}

	if strings.TrimSpace(c.Build.PublicDir) == "" {
		ve.Add("build.public_dir", "must not be empty")
	}
	if strings.TrimSpace(c.Build.ThemeDir) == "" {
		ve.Add("build.theme_dir", "must not be empty")
	}
	if strings.TrimSpace(c.Build.ManifestPath) == "" {
		ve.Add("build.manifest_path", "must not be empty")
	}
	if c.Build.Workers < 1 {
		ve.Add("build.workers", "must be at least 1")
	}

	if strings.TrimSpace(c.Serve.Addr) == "" {
		ve.Add("serve.addr", "must not be empty")
	}

	if ve.HasAny() {
		return ve
	}
	return nil
}

// normalize rewrites values that have a canonical spelling.
func (c *Config) normalize() {
	if l, ok := content.ParseLang(string(c.Site.DefaultLanguage)); ok {
		c.Site.DefaultLanguage = l
	}
}

func isValidAbsURL(s string) bool {
	u, err := url.Parse(strings.TrimSpace(s))
	if err != nil {
		return false
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return false
	}
	return u.Host != ""
}

// Load reads path over the defaults: keys present in the file win, the rest
// keep their default value. Files ending in .toml are TOML, anything else YAML.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := decode(path, data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse %s: %w", path, err)
	}
	cfg.normalize()
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// LoadOrDefault is Load, except that a missing file yields the defaults.
func LoadOrDefault(path string) (Config, error) {
	cfg, err := Load(path)
	if err != nil && os.IsNotExist(err) {
		cfg = Default()
		return cfg, cfg.Validate()
	}
	return cfg, err
}

func decode(path string, data []byte, cfg *Config) error {
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		return toml.NewDecoder(bytes.NewReader(data)).Decode(cfg)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	return yaml.Unmarshal(data, cfg)
}
