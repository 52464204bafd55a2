// Package config loads compositor configuration: page geometry, column
// count, fonts and the page label. Values come from a YAML config file
// with environment overrides (CODEPRESS_ prefix); a .env file in the
// working directory is honored when present.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/printforge/codepress/internal/layout"
)

// Config is the full recognized option set. Every field has a default;
// only an explicitly named config file that is missing or malformed is a
// startup error.
type Config struct {
	PageSize       string  `mapstructure:"page_size" yaml:"page_size"`
	Orientation    string  `mapstructure:"orientation" yaml:"orientation"`
	MarginTop      float64 `mapstructure:"margin_top" yaml:"margin_top"`
	MarginBottom   float64 `mapstructure:"margin_bottom" yaml:"margin_bottom"`
	MarginLeft     float64 `mapstructure:"margin_left" yaml:"margin_left"`
	MarginRight    float64 `mapstructure:"margin_right" yaml:"margin_right"`
	ColumnsPerPage int     `mapstructure:"columns_per_page" yaml:"columns_per_page"`
	Gutter         float64 `mapstructure:"gutter" yaml:"gutter"`
	FontSize       float64 `mapstructure:"font_size" yaml:"font_size"`
	TitleFontSize  float64 `mapstructure:"title_font_size" yaml:"title_font_size"`
	Label          string  `mapstructure:"label" yaml:"label"`
	TOCTitle       string  `mapstructure:"toc_title" yaml:"toc_title"`
	FontRegular    string  `mapstructure:"font_regular_path" yaml:"font_regular_path"`
	FontBold       string  `mapstructure:"font_bold_path" yaml:"font_bold_path"`
	MaxIterations  int     `mapstructure:"max_toc_iterations" yaml:"max_toc_iterations"`
}

// pointsPerInch converts the inch-denominated config values to points.
const pointsPerInch = 72.0

// pageSizes maps recognized page size names to portrait dimensions in
// points.
var pageSizes = map[string][2]float64{
	"a4":     {595.28, 841.89},
	"letter": {612, 792},
	"legal":  {612, 1008},
}

// Load reads configuration. When cfgFile is non-empty the file must exist
// and parse; otherwise the default search path is tried and absence is
// fine. The result is schema-validated and semantically checked.
func Load(cfgFile string) (*Config, error) {
	// Environment overrides may live in a local .env; absence is fine.
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("CODEPRESS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("config file %s: %w", cfgFile, err)
		}
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.codepress")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("reading config: %w", err)
			}
		}
	}

	if err := validateSchema(v.AllSettings()); err != nil {
		return nil, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate applies the semantic checks the schema cannot express against
// derived geometry.
func (c *Config) Validate() error {
	if _, ok := pageSizes[strings.ToLower(c.PageSize)]; !ok {
		return fmt.Errorf("unknown page_size %q (expected a4, letter, or legal)", c.PageSize)
	}
	switch strings.ToLower(c.Orientation) {
	case "portrait", "landscape":
	default:
		return fmt.Errorf("unknown orientation %q (expected portrait or landscape)", c.Orientation)
	}
	return c.Geometry().Validate()
}

// Geometry converts the configuration into the layout grid, in points.
func (c *Config) Geometry() layout.Geometry {
	dims := pageSizes[strings.ToLower(c.PageSize)]
	w, h := dims[0], dims[1]
	if strings.ToLower(c.Orientation) == "landscape" {
		w, h = h, w
	}
	return layout.Geometry{
		PageWidth:    w,
		PageHeight:   h,
		MarginTop:    c.MarginTop * pointsPerInch,
		MarginBottom: c.MarginBottom * pointsPerInch,
		MarginLeft:   c.MarginLeft * pointsPerInch,
		MarginRight:  c.MarginRight * pointsPerInch,
		Columns:      c.ColumnsPerPage,
		Gutter:       c.Gutter * pointsPerInch,
	}
}

// WriteDefault writes the default configuration as YAML, refusing to
// clobber an existing file.
func WriteDefault(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%s already exists", path)
	}
	data, err := Default().YAML()
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
