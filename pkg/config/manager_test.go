// Copyright © 2025 jackelyj <dreamerlyj@gmail.com>
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
// THE SOFTWARE.
//

package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

type testConfig struct {
	Server struct {
		Host string `mapstructure:"host"`
		Port int    `mapstructure:"port"`
	} `mapstructure:"server"`
	Logging struct {
		Level string `mapstructure:"level"`
	} `mapstructure:"logging"`
	Greeter struct {
		ServerTag string `mapstructure:"server_tag"`
	} `mapstructure:"greeter"`
}

func TestHierarchicalPrecedence(t *testing.T) {
	t.Setenv("HELLO_SERVER_PORT", "9300")

	tempDir := t.TempDir()

	// Base: lowest precedence (over defaults)
	writeFile(t, tempDir, "hello.yaml", `
server:
  host: 0.0.0.0
  port: 9000
logging:
  level: info
greeter:
  server_tag: base
`)

	// Env file: overrides base
	writeFile(t, tempDir, "hello.dev.yaml", `
server:
  port: 9100
logging:
  level: debug
`)

	// Override: overrides env file
	writeFile(t, tempDir, "hello.override.yaml", `
server:
  port: 9200
greeter:
  server_tag: override
`)

	m := NewManager(Options{
		WorkDir:            tempDir,
		ConfigBaseName:     "hello",
		ConfigType:         "yaml",
		EnvironmentName:    "dev",
		OverrideFilename:   "hello.override.yaml",
		EnvPrefix:          "HELLO",
		EnableAutomaticEnv: true,
	})

	m.SetDefault("server.host", "127.0.0.1")
	m.SetDefault("server.port", 8000)
	m.SetDefault("logging.level", "warn")
	m.SetDefault("greeter.server_tag", "default")

	if err := m.Load(); err != nil {
		t.Fatalf("load: %v", err)
	}

	var cfg testConfig
	if err := m.Unmarshal(&cfg); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	// defaults(8000) < base(9000) < env(9100) < override(9200) < envvars(9300)
	if got, want := cfg.Server.Port, 9300; got != want {
		t.Fatalf("server.port precedence = %d, want %d", got, want)
	}
	if got, want := cfg.Server.Host, "0.0.0.0"; got != want {
		t.Fatalf("server.host = %s, want %s", got, want)
	}
	if got, want := cfg.Logging.Level, "debug"; got != want {
		t.Fatalf("logging.level = %s, want %s", got, want)
	}
	if got, want := cfg.Greeter.ServerTag, "override"; got != want {
		t.Fatalf("greeter.server_tag = %s, want %s", got, want)
	}
}

func TestMissingFilesAreIgnored(t *testing.T) {
	tempDir := t.TempDir()

	// Only base exists
	writeFile(t, tempDir, "hello.yaml", `server: { port: 8001 }`)

	m := NewManager(DefaultOptions())
	m.options.WorkDir = tempDir
	m.options.EnvironmentName = "prod" // hello.prod.yaml not present

	if err := m.Load(); err != nil {
		t.Fatalf("load: %v", err)
	}

	var cfg testConfig
	if err := m.Unmarshal(&cfg); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got, want := cfg.Server.Port, 8001; got != want {
		t.Fatalf("server.port = %d, want %d", got, want)
	}
}

func TestInvalidFileFailsLoad(t *testing.T) {
	tempDir := t.TempDir()
	writeFile(t, tempDir, "hello.yaml", "server: [unterminated")

	m := NewManager(DefaultOptions())
	m.options.WorkDir = tempDir

	if err := m.Load(); err == nil {
		t.Fatalf("expected error for malformed base file")
	}
}

func TestDotEnvFeedsEnvironmentLayer(t *testing.T) {
	tempDir := t.TempDir()
	writeFile(t, tempDir, "hello.yaml", `greeter: { server_tag: from-file }`)
	writeFile(t, tempDir, ".env", "HELLO_GREETER_SERVER_TAG=from-dotenv\n")

	// godotenv writes to the process environment; make sure the key is
	// restored after the test.
	t.Setenv("HELLO_GREETER_SERVER_TAG", "")
	os.Unsetenv("HELLO_GREETER_SERVER_TAG")

	m := NewManager(DefaultOptions())
	m.options.WorkDir = tempDir
	m.SetDefault("greeter.server_tag", "default")

	if err := m.Load(); err != nil {
		t.Fatalf("load: %v", err)
	}
	if got, want := m.GetString("greeter.server_tag"), "from-dotenv"; got != want {
		t.Fatalf("greeter.server_tag = %s, want %s", got, want)
	}
}

func TestFilesFollowPrecedenceOrder(t *testing.T) {
	m := NewManager(Options{WorkDir: "/etc/hello", EnvironmentName: "Prod"})

	files := m.Files()
	want := []string{
		"/etc/hello/hello.yaml",
		"/etc/hello/hello.prod.yaml",
		"/etc/hello/hello.override.yaml",
	}
	if len(files) != len(want) {
		t.Fatalf("files = %v, want %v", files, want)
	}
	for i := range want {
		if files[i] != want[i] {
			t.Fatalf("files[%d] = %s, want %s", i, files[i], want[i])
		}
	}
}

func TestUnmarshalNilTarget(t *testing.T) {
	m := NewManager(DefaultOptions())
	if err := m.Unmarshal(nil); err == nil {
		t.Fatalf("expected error for nil target")
	}
}
