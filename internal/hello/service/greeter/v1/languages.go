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

import "strings"

// DefaultLanguage is used whenever a requested language has no template.
const DefaultLanguage = "en"

// Placeholder marks where the name goes in a template.
const Placeholder = "{}"

type language struct {
	code     string
	template string
}

// languageTable is never modified after package initialization.
var languageTable = []language{
	{code: "en", template: "Hello, {}!"},
	{code: "es", template: "¡Hola, {}!"},
	{code: "fr", template: "Bonjour, {}!"},
	{code: "de", template: "Hallo, {}!"},
	{code: "it", template: "Ciao, {}!"},
	{code: "pt", template: "Olá, {}!"},
	{code: "ru", template: "Привет, {}!"},
	{code: "ja", template: "こんにちは、{}！"},
	{code: "zh", template: "你好，{}！"},
}

var languageIndex = func() map[string]string {
	index := make(map[string]string, len(languageTable))
	for _, l := range languageTable {
		index[l.code] = l.template
	}
	return index
}()

// render substitutes name for the first placeholder only, so a name that itself
// contains "{}" is kept verbatim.
func render(template, name string) string {
	return strings.Replace(template, Placeholder, name, 1)
}
