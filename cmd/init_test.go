package cmd

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/masmgr/reauthor/config"
)

func TestInitCmd_WritesEffectiveConfig(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	for _, name := range []string{"reauthor.json", "reauthor.toml"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), name)
			err := App().Run([]string{"reauthor", "init",
				"--output", path,
				"--author", "New Author",
				"--email", "new@example.com",
				"--backend", "cli",
			})
			if err != nil {
				t.Fatalf("init: %v", err)
			}

			got, err := config.LoadConfig(path)
			if err != nil {
				t.Fatalf("LoadConfig: %v", err)
			}
			want := config.DefaultConfig()
			want.Identity = config.IdentityConfig{Name: "New Author", Email: "new@example.com"}
			want.Reader.Backend = "cli"
			if diff := cmp.Diff(want, got, cmpopts.EquateEmpty()); diff != "" {
				t.Errorf("config mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestWriteConfigFile_Existing(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".reauthor.json")
	if err := os.WriteFile(path, []byte(`{"identity":{"name":"Keep"}}`), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg := config.DefaultConfig()
	cfg.Identity.Name = "Replace"

	err := writeConfigFile(cfg, path, false)
	if err == nil || !strings.Contains(err.Error(), "--force") {
		t.Fatalf("err = %v, want a hint to use --force", err)
	}
	kept, err := config.LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if kept.Identity.Name != "Keep" {
		t.Errorf("Identity.Name = %q, the existing file should be untouched", kept.Identity.Name)
	}

	if err := writeConfigFile(cfg, path, true); err != nil {
		t.Fatalf("writeConfigFile(force): %v", err)
	}
	replaced, err := config.LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if replaced.Identity.Name != "Replace" {
		t.Errorf("Identity.Name = %q, want Replace", replaced.Identity.Name)
	}
}
