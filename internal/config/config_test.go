package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestGetConfigValue_Precedence(t *testing.T) {
	t.Setenv("TEST_CONFIG_KEY", "from-env")

	if got := getConfigValue("from-flag", "TEST_CONFIG_KEY", "default"); got != "from-flag" {
		t.Errorf("flag should win, got %q", got)
	}
	if got := getConfigValue("", "TEST_CONFIG_KEY", "default"); got != "from-env" {
		t.Errorf("env should win over default, got %q", got)
	}
	if got := getConfigValue("", "TEST_CONFIG_MISSING", "default"); got != "default" {
		t.Errorf("default should apply, got %q", got)
	}
}

func TestSplitOrigins(t *testing.T) {
	tests := []struct {
		raw  string
		want int
	}{
		{"*", 1},
		{"https://rijeka.online, https://admin.rijeka.online", 2},
		{" , ", 0},
	}
	for _, tt := range tests {
		if got := splitOrigins(tt.raw); len(got) != tt.want {
			t.Errorf("splitOrigins(%q) = %v, want %d entries", tt.raw, got, tt.want)
		}
	}
}

func TestLoadEnvFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	content := "# comment\nTEST_ENV_FILE_KEY=hello\nTEST_QUOTED_KEY=\"quoted\"\nmalformed line\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	t.Setenv("TEST_ENV_FILE_KEY", "")
	t.Setenv("TEST_QUOTED_KEY", "")
	os.Unsetenv("TEST_ENV_FILE_KEY")
	os.Unsetenv("TEST_QUOTED_KEY")

	if err := loadEnvFile(path); err != nil {
		t.Fatalf("loadEnvFile: %v", err)
	}

	if got := os.Getenv("TEST_ENV_FILE_KEY"); got != "hello" {
		t.Errorf("TEST_ENV_FILE_KEY = %q, want %q", got, "hello")
	}
	if got := os.Getenv("TEST_QUOTED_KEY"); got != "quoted" {
		t.Errorf("TEST_QUOTED_KEY = %q, want %q", got, "quoted")
	}
}

func TestExpandPath(t *testing.T) {
	got, err := expandPath("", "/default/path")
	if err != nil {
		t.Fatal(err)
	}
	if got != "/default/path" {
		t.Errorf("empty path should return default, got %q", got)
	}

	got, err = expandPath("/absolute/path", "")
	if err != nil {
		t.Fatal(err)
	}
	if got != "/absolute/path" {
		t.Errorf("absolute path should pass through, got %q", got)
	}
}
