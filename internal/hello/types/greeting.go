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

import "time"

// TimestampLayout renders greeting timestamps as UTC ISO-8601 with microseconds.
const TimestampLayout = "2006-01-02T15:04:05.000000Z"

// GreetingRecord is the structured greeting returned by the JSON outputs.
// Language is the code the caller asked for, which may differ from the
// template actually used when the code fell back to English.
type GreetingRecord struct {
	Message   string `json:"message"`
	Name      string `json:"name"`
	Language  string `json:"language"`
	Timestamp string `json:"timestamp"`
	Server    string `json:"server"`
}

// FormatTimestamp formats t in TimestampLayout.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}

// LanguageInfo describes a single supported language.
type LanguageInfo struct {
	Language string `json:"language"`
	Template string `json:"template"`
	Example  string `json:"example"`
}

// LanguageList is the JSON shape of the CLI language listing.
type LanguageList struct {
	Languages []string `json:"languages"`
}

// ErrorResponse is the inline error object returned by the HTTP API.
type ErrorResponse struct {
	Error string `json:"error"`
}
