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

package serve

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/innovationmech/hello/pkg/logger"
)

func TestNewServeCmd_Flags(t *testing.T) {
	t.Setenv("HELLO_ENV", "staging")
	cmd := NewServeCmd()

	assert.Equal(t, "serve", cmd.Use)
	assert.Equal(t, ".", cmd.Flags().Lookup("config-dir").DefValue)
	assert.Equal(t, "staging", cmd.Flags().Lookup("env").DefValue)
	assert.NotNil(t, cmd.Flags().Lookup("host"))
	assert.NotNil(t, cmd.Flags().Lookup("port"))
}

func TestLoadConfig_FlagOverrides(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "hello.yaml"), []byte("server:\n  port: 9000\n"), 0o644))

	cmd := NewServeCmd()
	require.NoError(t, cmd.ParseFlags([]string{"--config-dir", dir, "--env", "", "--host", "0.0.0.0"}))

	opts := &Options{
		ConfigDir: dir,
		Host:      "0.0.0.0",
	}
	_, serveCfg, err := loadConfig(cmd, opts)
	require.NoError(t, err)
	assert.Equal(t, "0.0.0.0", serveCfg.Server.Host)
	assert.Equal(t, 9000, serveCfg.Server.Port)
}

func TestLoadConfig_InvalidPortOverride(t *testing.T) {
	dir := t.TempDir()
	cmd := NewServeCmd()
	require.NoError(t, cmd.ParseFlags([]string{"--port", "70000"}))

	_, _, err := loadConfig(cmd, &Options{ConfigDir: dir, Port: 70000})
	assert.Error(t, err)
}

func TestApplyLogLevel(t *testing.T) {
	logger.InitLogger()
	t.Cleanup(func() { _ = logger.SetLevel("info") })

	applyLogLevel(map[string]interface{}{
		"logging": map[string]interface{}{"level": "debug"},
	})
	assert.Equal(t, "debug", logger.GetLevel())

	applyLogLevel(map[string]interface{}{
		"logging": map[string]interface{}{"level": "bogus"},
	})
	assert.Equal(t, "debug", logger.GetLevel())

	applyLogLevel(map[string]interface{}{"server": map[string]interface{}{}})
	assert.Equal(t, "debug", logger.GetLevel())
}

func TestServeCmd_RunsUntilCancelled(t *testing.T) {
	dir := t.TempDir()
	t.Cleanup(func() { _ = logger.SetLevel("info") })

	ctx, cancel := context.WithCancel(context.Background())
	cmd := NewServeCmd()
	cmd.SetArgs([]string{"--config-dir", dir, "--env", "", "--port", "0"})

	done := make(chan error, 1)
	go func() {
		done <- cmd.ExecuteContext(ctx)
	}()

	time.Sleep(200 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(10 * time.Second):
		t.Fatal("serve command did not stop after cancellation")
	}
}
