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

package types

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatTimestamp(t *testing.T) {
	loc := time.FixedZone("UTC+2", 2*60*60)
	ts := time.Date(2024, 3, 1, 14, 5, 9, 123456789, loc)

	assert.Equal(t, "2024-03-01T12:05:09.123456Z", FormatTimestamp(ts))
	assert.Equal(t, "2024-03-01T12:05:09.000000Z", FormatTimestamp(ts.Truncate(time.Second)))
}

func TestGreetingRecordJSONShape(t *testing.T) {
	data, err := json.Marshal(GreetingRecord{
		Message:   "Hello, World!",
		Name:      "World",
		Language:  "xx",
		Timestamp: "2024-03-01T12:05:09.123456Z",
		Server:    "Python/FastAPI",
	})
	require.NoError(t, err)

	var fields map[string]string
	require.NoError(t, json.Unmarshal(data, &fields))
	assert.Len(t, fields, 5)
	assert.Equal(t, "xx", fields["language"])
}

func TestNewHealthStatus(t *testing.T) {
	h := NewHealthStatus(HealthStatusHealthy, "1.0.0", 90*time.Second+400*time.Millisecond)

	assert.True(t, h.IsHealthy())
	assert.Equal(t, "1.0.0", h.Version)
	assert.Equal(t, "1m30s", h.Uptime)
	assert.False(t, (&HealthStatus{Status: "down"}).IsHealthy())
}
