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

package main

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/innovationmech/hello/pkg/logger"
)

func withArgs(t *testing.T, args ...string) {
	t.Helper()
	logger.Logger = zap.NewNop()
	orig := os.Args
	t.Cleanup(func() { os.Args = orig })
	os.Args = append([]string{"hello-serve"}, args...)
}

func TestRun_Help(t *testing.T) {
	withArgs(t, "--help")
	assert.Equal(t, 0, run())
}

func TestRun_Version(t *testing.T) {
	withArgs(t, "version")
	assert.Equal(t, 0, run())
}

func TestRun_UnknownCommand(t *testing.T) {
	withArgs(t, "invalid-cmd")
	assert.Equal(t, 1, run())
}

func TestRun_InvalidConfigDir(t *testing.T) {
	dir := t.TempDir()
	assert.NoError(t, os.WriteFile(dir+"/hello.yaml", []byte("server: [unterminated"), 0o644))
	withArgs(t, "serve", "--config-dir", dir, "--env", "")
	assert.Equal(t, 1, run())
}
