package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.PageSize != "a4" || cfg.Orientation != "landscape" {
		t.Errorf("page defaults = %s/%s", cfg.PageSize, cfg.Orientation)
	}
	if cfg.ColumnsPerPage != 3 {
		t.Errorf("columns_per_page = %d, want 3", cfg.ColumnsPerPage)
	}
	if cfg.FontSize != 11 || cfg.TitleFontSize != 10 {
		t.Errorf("font sizes = %g/%g", cfg.FontSize, cfg.TitleFontSize)
	}
	if cfg.MaxIterations != 10 {
		t.Errorf("max_toc_iterations = %d, want 10", cfg.MaxIterations)
	}
}

func TestLoad_ExplicitFile(t *testing.T) {
	path := writeConfig(t, "columns_per_page: 2\nlabel: ACME\npage_size: letter\n")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.ColumnsPerPage != 2 || cfg.Label != "ACME" || cfg.PageSize != "letter" {
		t.Errorf("overrides not applied: %+v", cfg)
	}
	// Untouched keys keep defaults.
	if cfg.Gutter != 0.02 {
		t.Errorf("gutter = %g, want default", cfg.Gutter)
	}
}

func TestLoad_ExplicitFileMissingIsFatal(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("expected error for missing explicit config file")
	}
}

func TestLoad_MalformedYAML(t *testing.T) {
	path := writeConfig(t, "columns_per_page: [unclosed\n")
	if _, err := Load(path); err == nil {
		t.Fatal("expected error for malformed YAML")
	}
}

func TestLoad_SchemaViolations(t *testing.T) {
	cases := map[string]string{
		"zero_columns":    "columns_per_page: 0\n",
		"negative_margin": "margin_top: -1\n",
		"wrong_type":      "font_size: big\n",
		"unknown_key":     "margn_top: 0.2\n",
	}
	for name, content := range cases {
		t.Run(name, func(t *testing.T) {
			path := writeConfig(t, content)
			if _, err := Load(path); err == nil {
				t.Errorf("expected validation error for %q", strings.TrimSpace(content))
			}
		})
	}
}

func TestLoad_SemanticValidation(t *testing.T) {
	t.Run("unknown_page_size", func(t *testing.T) {
		path := writeConfig(t, "page_size: a5\n")
		if _, err := Load(path); err == nil {
			t.Error("expected error for unknown page size")
		}
	})
	t.Run("unknown_orientation", func(t *testing.T) {
		path := writeConfig(t, "orientation: sideways\n")
		if _, err := Load(path); err == nil {
			t.Error("expected error for unknown orientation")
		}
	})
	t.Run("margins_consume_page", func(t *testing.T) {
		path := writeConfig(t, "margin_left: 20\nmargin_right: 20\n")
		if _, err := Load(path); err == nil {
			t.Error("expected error when margins leave no usable width")
		}
	})
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("CODEPRESS_LABEL", "Env Team")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Label != "Env Team" {
		t.Errorf("label = %q, want env override", cfg.Label)
	}
}

func TestGeometry_Conversion(t *testing.T) {
	cfg := Default()
	geom := cfg.Geometry()

	// Landscape A4: long edge horizontal.
	if geom.PageWidth != 841.89 || geom.PageHeight != 595.28 {
		t.Errorf("page dims = %gx%g", geom.PageWidth, geom.PageHeight)
	}
	if geom.MarginTop != 0.2*72 {
		t.Errorf("margin_top = %g points, want %g", geom.MarginTop, 0.2*72)
	}
	if geom.Columns != 3 {
		t.Errorf("columns = %d", geom.Columns)
	}

	cfg.Orientation = "portrait"
	geom = cfg.Geometry()
	if geom.PageWidth != 595.28 {
		t.Errorf("portrait width = %g", geom.PageWidth)
	}
}

func TestWriteDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := WriteDefault(path); err != nil {
		t.Fatalf("WriteDefault: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("written default config does not load: %v", err)
	}
	if cfg.ColumnsPerPage != Default().ColumnsPerPage {
		t.Errorf("round-tripped columns = %d", cfg.ColumnsPerPage)
	}

	if err := WriteDefault(path); err == nil {
		t.Error("expected error overwriting existing file")
	}
}
