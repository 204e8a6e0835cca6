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

package v1

import (
	"time"

	"go.uber.org/zap"

	"github.com/innovationmech/hello/internal/hello/types"
	"github.com/innovationmech/hello/pkg/logger"
)

// DefaultServerTag identifies the serving implementation in greeting records.
// It keeps the value existing clients already see.
const DefaultServerTag = "Python/FastAPI"

// Option configures a Service.
type Option func(*Service)

// WithServerTag sets the server field of greeting records.
func WithServerTag(tag string) Option {
	return func(s *Service) {
		s.serverTag = tag
	}
}

// WithClock replaces the time source used for record timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// Service implements the greeter business logic. It is safe for concurrent use.
type Service struct {
	serverTag string
	now       func() time.Time
}

// NewService creates a new greeter service implementation
func NewService(opts ...Option) *Service {
	s := &Service{
		serverTag: DefaultServerTag,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Languages returns the supported language codes in table order.
func (s *Service) Languages() []string {
	codes := make([]string, 0, len(languageTable))
	for _, l := range languageTable {
		codes = append(codes, l.code)
	}
	return codes
}

// IsSupported reports whether language has its own template.
func (s *Service) IsSupported(language string) bool {
	_, ok := languageIndex[language]
	return ok
}

// Template returns the template registered for language without falling back.
func (s *Service) Template(language string) (string, bool) {
	template, ok := languageIndex[language]
	return template, ok
}

// Greet renders the greeting for name in language. Unknown languages use the
// English template. The name is inserted as given.
func (s *Service) Greet(name, language string) string {
	resolved := language
	template, ok := languageIndex[language]
	if !ok {
		resolved = DefaultLanguage
		template = languageIndex[DefaultLanguage]
	}

	greeting := render(template, name)

	logger.GetLogger().Debug("Generated greeting",
		zap.String("requested_language", language),
		zap.String("resolved_language", resolved),
		zap.String("greeting", greeting),
	)

	return greeting
}

// BuildRecord renders the greeting and records the language the caller asked
// for, not the one resolved by the fallback.
func (s *Service) BuildRecord(name, language string) *types.GreetingRecord {
	return &types.GreetingRecord{
		Message:   s.Greet(name, language),
		Name:      name,
		Language:  language,
		Timestamp: types.FormatTimestamp(s.now()),
		Server:    s.serverTag,
	}
}
