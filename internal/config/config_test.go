package config_test

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/collabcloud/collab/internal/config"
)

func TestNewConfig(t *testing.T) {
	cfg := config.NewConfig("client-1", "/tmp/collab")

	if cfg.LogDir != filepath.Join("/tmp/collab", "log") {
		t.Errorf("LogDir = %q", cfg.LogDir)
	}
	if cfg.Local.DataDir != filepath.Join("/tmp/collab", "data") {
		t.Errorf("DataDir = %q", cfg.Local.DataDir)
	}
	if cfg.Remote.TimeoutSeconds != 30 {
		t.Errorf("TimeoutSeconds = %d, want 30", cfg.Remote.TimeoutSeconds)
	}
	if cfg.RemoteMode() {
		t.Error("RemoteMode() = true without a base URL")
	}
	if cfg.SessionPath() != filepath.Join("/tmp/collab", "session.json") {
		t.Errorf("SessionPath() = %q", cfg.SessionPath())
	}
}

func TestManager_ReadWrite(t *testing.T) {
	t.Run("round trips through TOML", func(t *testing.T) {
		cfg := config.NewConfig("client-1", "/tmp/collab")
		cfg.BaseURL = "https://api.example.com"

		var buf bytes.Buffer
		m := &config.Manager{}
		if err := m.Write(&buf, cfg); err != nil {
			t.Fatalf("Write() error = %v", err)
		}

		got, err := m.Read(&buf)
		if err != nil {
			t.Fatalf("Read() error = %v", err)
		}
		if got.ClientID != "client-1" || got.BaseURL != "https://api.example.com" {
			t.Errorf("Read() = %+v", got)
		}
		if !got.RemoteMode() {
			t.Error("RemoteMode() = false with a base URL")
		}
	})

	t.Run("fills defaults for sparse files", func(t *testing.T) {
		input := strings.NewReader(`client_id = "client-1"` + "\n" + `base_dir = "/tmp/collab"` + "\n")

		m := &config.Manager{}
		cfg, err := m.Read(input)
		if err != nil {
			t.Fatalf("Read() error = %v", err)
		}
		if cfg.Remote.TimeoutSeconds != 30 {
			t.Errorf("TimeoutSeconds = %d, want defaulted 30", cfg.Remote.TimeoutSeconds)
		}
		if cfg.Local.DataDir != filepath.Join("/tmp/collab", "data") {
			t.Errorf("DataDir = %q, want defaulted under base_dir", cfg.Local.DataDir)
		}
	})
}

func TestInit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "conf", "collab.toml")
	cfg := config.NewConfig("client-1", "/tmp/collab")

	if err := config.Init(path, cfg); err != nil {
		t.Fatalf("Init() error = %v", err)
	}

	got, err := config.ReadFromFile(path)
	if err != nil {
		t.Fatalf("ReadFromFile() error = %v", err)
	}
	if got.ClientID != "client-1" {
		t.Errorf("ClientID = %q", got.ClientID)
	}

	if err := config.Init(path, cfg); err == nil {
		t.Error("Init() on an existing file succeeded, want error")
	}
}
