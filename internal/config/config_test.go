package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	cfg "github.com/svj/nbeconnect/internal/config"
)

func TestWriteConfigFile_CreatesFile(t *testing.T) {
	tmp := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", tmp)

	c := cfg.Config{}
	c.Database.Type = "sqlite"
	c.Database.Dsn = "./nbeconnect.db"
	c.Language = "en"

	if err := cfg.WriteConfigFile(&c, false); err != nil {
		t.Fatalf("WriteConfigFile failed: %v", err)
	}

	path, err := cfg.GetConfigPath(false)
	if err != nil {
		t.Fatalf("GetConfigPath failed: %v", err)
	}
	if !strings.HasPrefix(path, tmp) {
		t.Fatalf("expected config path under %s, got %s", tmp, path)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("expected config file at %s, stat error: %v", path, err)
	}
	if info.Mode().Perm() != 0o600 {
		t.Fatalf("expected mode 0600, got %v", info.Mode().Perm())
	}
	data, _ := os.ReadFile(path)
	if !strings.Contains(string(data), "dsn: ./nbeconnect.db") {
		t.Fatalf("unexpected file content:\n%s", data)
	}
}

func TestLoadConfig_ReadsExplicitFile(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	tmp := t.TempDir()
	content := "database:\n  type: postgres\n  dsn: postgresql://user@/db\nlanguage: de\ndebug: true\n"
	file := filepath.Join(tmp, "cfg.yaml")
	if err := os.WriteFile(file, []byte(content), 0o600); err != nil {
		t.Fatalf("write file: %v", err)
	}

	got, err := cfg.LoadConfig[cfg.Config](&cobra.Command{}, cfg.Defaults(), &file)
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}
	if got.Database.Type != "postgres" {
		t.Fatalf("expected postgres, got %q", got.Database.Type)
	}
	if got.Language != "de" {
		t.Fatalf("expected de, got %q", got.Language)
	}
	if !got.Debug {
		t.Fatalf("expected debug true")
	}
}

func TestLoadConfig_MissingFileReturnsDefaults(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	got, err := cfg.LoadConfig[cfg.Config](&cobra.Command{}, cfg.Defaults(), nil)
	if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
		t.Fatalf("expected ConfigFileNotFoundError, got: %T %v", err, err)
	}
	if got.Database.Type != "sqlite" || got.Database.Dsn != "./nbeconnect.db" || got.Language != "en" {
		t.Fatalf("unexpected defaults: %+v", got)
	}
}

func TestLoadConfig_EnvOverridesDefaults(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("NBECONNECT_LANGUAGE", "de")
	t.Setenv("NBECONNECT_DATABASE_DSN", "file:env.db")

	got, _ := cfg.LoadConfig[cfg.Config](&cobra.Command{}, cfg.Defaults(), nil)
	if got.Language != "de" {
		t.Fatalf("expected env language de, got %q", got.Language)
	}
	if got.Database.Dsn != "file:env.db" {
		t.Fatalf("expected env dsn, got %q", got.Database.Dsn)
	}
}

func TestLoadConfig_FlagsOverrideFile(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	file := filepath.Join(t.TempDir(), "cfg.yaml")
	if err := os.WriteFile(file, []byte("language: de\n"), 0o600); err != nil {
		t.Fatalf("write file: %v", err)
	}

	cmd := &cobra.Command{}
	cmd.Flags().String("language", "en", "")
	if err := cmd.Flags().Set("language", "en"); err != nil {
		t.Fatalf("set flag: %v", err)
	}

	got, err := cfg.LoadConfig[cfg.Config](cmd, cfg.Defaults(), &file)
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}
	if got.Language != "en" {
		t.Fatalf("expected flag value en, got %q", got.Language)
	}
}

func TestLoadDotEnv_FeedsLoadConfig(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	// Registered so t.Setenv restores the variable after godotenv sets it.
	t.Setenv("NBECONNECT_DATABASE_DSN", "")
	t.Setenv("NBECONNECT_LANGUAGE", "fr")
	_ = os.Unsetenv("NBECONNECT_DATABASE_DSN")

	file := filepath.Join(t.TempDir(), ".env")
	content := "NBECONNECT_DATABASE_DSN=file:fromenv.db\nNBECONNECT_LANGUAGE=de\n"
	if err := os.WriteFile(file, []byte(content), 0o600); err != nil {
		t.Fatalf("write .env: %v", err)
	}
	if err := cfg.LoadDotEnv(file); err != nil {
		t.Fatalf("LoadDotEnv: %v", err)
	}

	got, _ := cfg.LoadConfig[cfg.Config](nil, cfg.Defaults(), nil)
	if got.Database.Dsn != "file:fromenv.db" {
		t.Fatalf("expected dsn from .env, got %q", got.Database.Dsn)
	}
	if got.Language != "fr" {
		t.Fatalf("existing environment must win over .env, got %q", got.Language)
	}
}

func TestLoadDotEnv_MissingFileIsIgnored(t *testing.T) {
	if err := cfg.LoadDotEnv(filepath.Join(t.TempDir(), "nope.env")); err != nil {
		t.Fatalf("expected nil for missing file, got %v", err)
	}
}
