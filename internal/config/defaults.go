package config

import (
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Default returns the built-in configuration, matching the tool's
// historical defaults: three-column A4 landscape with minimal margins and
// a monospaced face.
func Default() *Config {
	return &Config{
		PageSize:       "a4",
		Orientation:    "landscape",
		MarginTop:      0.2,
		MarginBottom:   0.2,
		MarginLeft:     0.2,
		MarginRight:    0.2,
		ColumnsPerPage: 3,
		Gutter:         0.02,
		FontSize:       11,
		TitleFontSize:  10,
		Label:          "Team Name",
		TOCTitle:       "Table of Contents",
		MaxIterations:  10,
	}
}

// setDefaults seeds viper so every option resolves even without a config
// file.
func setDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault("page_size", d.PageSize)
	v.SetDefault("orientation", d.Orientation)
	v.SetDefault("margin_top", d.MarginTop)
	v.SetDefault("margin_bottom", d.MarginBottom)
	v.SetDefault("margin_left", d.MarginLeft)
	v.SetDefault("margin_right", d.MarginRight)
	v.SetDefault("columns_per_page", d.ColumnsPerPage)
	v.SetDefault("gutter", d.Gutter)
	v.SetDefault("font_size", d.FontSize)
	v.SetDefault("title_font_size", d.TitleFontSize)
	v.SetDefault("label", d.Label)
	v.SetDefault("toc_title", d.TOCTitle)
	v.SetDefault("font_regular_path", d.FontRegular)
	v.SetDefault("font_bold_path", d.FontBold)
	v.SetDefault("max_toc_iterations", d.MaxIterations)
}

// YAML serializes the config for `config init` and `config show`.
func (c *Config) YAML() ([]byte, error) {
	return yaml.Marshal(c)
}
