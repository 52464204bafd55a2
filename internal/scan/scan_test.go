package scan

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, root, rel, content string) {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write %s: %v", rel, err)
	}
}

func TestScan(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "zeta.py", "print('z')\n")
	writeFile(t, root, "app/main.go", "package main\n")
	writeFile(t, root, "app/util.go", "package main\n")
	writeFile(t, root, "lib/core.js", "let x = 1\n")
	writeFile(t, root, "image.png", "not code")
	writeFile(t, root, "app/NOTES.MD", "readme\n")

	files, err := Scan(root)
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}

	wantOrder := []string{"app/NOTES.MD", "app/main.go", "app/util.go", "lib/core.js", "zeta.py"}
	if len(files) != len(wantOrder) {
		t.Fatalf("got %d files, want %d: %+v", len(files), len(wantOrder), files)
	}
	for i, want := range wantOrder {
		if files[i].RelPath != want {
			t.Errorf("files[%d].RelPath = %q, want %q", i, files[i].RelPath, want)
		}
	}

	if files[4].FolderKey != "" {
		t.Errorf("root file folder key = %q, want empty", files[4].FolderKey)
	}
	if files[1].FolderKey != "app" {
		t.Errorf("nested file folder key = %q, want %q", files[1].FolderKey, "app")
	}
	if files[0].Ext != ".md" {
		t.Errorf("extension not lowercased: %q", files[0].Ext)
	}
}

func TestScan_MissingRoot(t *testing.T) {
	if _, err := Scan(filepath.Join(t.TempDir(), "absent")); err == nil {
		t.Fatal("expected error for missing root")
	}
}

func TestScan_RootIsFile(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "plain.txt", "hi")
	if _, err := Scan(filepath.Join(root, "plain.txt")); err == nil {
		t.Fatal("expected error when root is a file")
	}
}

func TestLoad(t *testing.T) {
	root := t.TempDir()

	t.Run("utf8_lines", func(t *testing.T) {
		writeFile(t, root, "a.txt", "one\ntwo\n\nthree\n")
		lines, err := Load(filepath.Join(root, "a.txt"))
		if err != nil {
			t.Fatalf("Load: %v", err)
		}
		want := []string{"one", "two", "", "three"}
		if len(lines) != len(want) {
			t.Fatalf("got %d lines, want %d: %q", len(lines), len(want), lines)
		}
		for i := range want {
			if lines[i] != want[i] {
				t.Errorf("line %d = %q, want %q", i, lines[i], want[i])
			}
		}
	})

	t.Run("crlf", func(t *testing.T) {
		writeFile(t, root, "b.txt", "one\r\ntwo\r\n")
		lines, err := Load(filepath.Join(root, "b.txt"))
		if err != nil {
			t.Fatalf("Load: %v", err)
		}
		if len(lines) != 2 || lines[0] != "one" || lines[1] != "two" {
			t.Errorf("CRLF split = %q", lines)
		}
	})

	t.Run("latin1_fallback", func(t *testing.T) {
		// 0xE9 is é in Latin-1 and invalid as a standalone UTF-8 byte.
		path := filepath.Join(root, "c.txt")
		if err := os.WriteFile(path, []byte{'c', 'a', 'f', 0xE9, '\n'}, 0644); err != nil {
			t.Fatalf("write: %v", err)
		}
		lines, err := Load(path)
		if err != nil {
			t.Fatalf("Load: %v", err)
		}
		if len(lines) != 1 || lines[0] != "café" {
			t.Errorf("latin-1 fallback = %q", lines)
		}
	})

	t.Run("missing_file", func(t *testing.T) {
		if _, err := Load(filepath.Join(root, "absent.txt")); err == nil {
			t.Fatal("expected error for missing file")
		}
	})
}
