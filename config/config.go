package config

import (
	"fmt"
	"log"
	"math"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// StaticPage is a hand-authored page whose body is an HTML fragment
// file inserted verbatim into the site layout.
type StaticPage struct {
	Slug  string `yaml:"slug"`
	Title string `yaml:"title"`
	File  string `yaml:"file"`
}

type Config struct {
	SiteTitle string `yaml:"site_title"`
	Author    string `yaml:"author"`

	// Input locations
	DataDir      string `yaml:"data_dir"`      // artworks.csv, series.csv
	OriginalsDir string `yaml:"originals_dir"` // full-size source images
	FragmentsDir string `yaml:"fragments_dir"` // hand-authored HTML fragments

	// Output root
	OutDir string `yaml:"out_dir"`

	// Only tags in this list are honored; anything else on a row is
	// silently dropped.
	ValidTags []string `yaml:"valid_tags"`

	// Hand-maintained artwork id ordering for the "featured" tag page.
	FeaturedOrder []string `yaml:"featured_order"`

	// Decimal places kept when formatting physical dimensions.
	DimPrecision int `yaml:"dim_precision"`

	// Aspect ratio at or above which a figure gets no side margin.
	MaxAspect float64 `yaml:"max_aspect"`

	Pages []StaticPage `yaml:"pages"`
}

// Load reads the YAML site config, then lets environment variables
// override the file locations.
func Load(path string) (*Config, error) {
	cfg := &Config{
		SiteTitle:    "Gallery",
		DataDir:      "data",
		OriginalsDir: "originals",
		FragmentsDir: "fragments",
		OutDir:       "site",
		ValidTags:    []string{"featured", "painting", "drawing", "collage"},
		DimPrecision: 1,
		MaxAspect:    math.Sqrt2,
	}

	buf, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(buf, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	cfg.DataDir = getEnv("MARTINJ_DATA_DIR", cfg.DataDir)
	cfg.OriginalsDir = getEnv("MARTINJ_ORIGINALS_DIR", cfg.OriginalsDir)
	cfg.OutDir = getEnv("MARTINJ_OUT_DIR", cfg.OutDir)

	if cfg.DimPrecision < 0 {
		return nil, fmt.Errorf("config %s: dim_precision must be >= 0", path)
	}
	if cfg.MaxAspect <= 0 {
		return nil, fmt.Errorf("config %s: max_aspect must be > 0", path)
	}
	return cfg, nil
}

// LoadEnv pulls in a .env file when one exists. Missing files are
// fine; the system environment still applies.
func LoadEnv() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found. Using system environment variables.")
	}
}

func getEnv(key string, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}
