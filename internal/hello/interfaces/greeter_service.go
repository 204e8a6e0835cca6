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

package interfaces

import "github.com/innovationmech/hello/internal/hello/types"

// GreeterService defines the greeting operations shared by the CLI and the HTTP API.
// Implementations never fail: unknown language codes render with the English template.
type GreeterService interface {
	// Languages returns the supported language codes in table order.
	Languages() []string
	// Greet renders the greeting for name in language, falling back to English.
	Greet(name, language string) string
	// BuildRecord renders the greeting and wraps it with the requested language,
	// the current UTC time and the server tag.
	BuildRecord(name, language string) *types.GreetingRecord
	// IsSupported reports whether language has its own template.
	IsSupported(language string) bool
	// Template returns the raw template registered for language.
	Template(language string) (string, bool)
}
