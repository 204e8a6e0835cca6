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

package greet

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/cobra"

	"github.com/innovationmech/hello/internal/hello/cmd/version"
	"github.com/innovationmech/hello/internal/hello/interfaces"
	greeterv1 "github.com/innovationmech/hello/internal/hello/service/greeter/v1"
	"github.com/innovationmech/hello/internal/hello/types"
)

// Output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// Options holds the greeting flags.
type Options struct {
	Name          string
	Format        string `validate:"oneof=text json"`
	Language      string
	ListLanguages bool
}

// NewGreetCommand creates the hello root command.
func NewGreetCommand() *cobra.Command {
	opts := &Options{}

	cmd := &cobra.Command{
		Use:           "hello",
		Short:         "Print a greeting in one of several languages",
		Version:       version.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := opts.Validate(); err != nil {
				return err
			}
			return Run(cmd.OutOrStdout(), cmd.ErrOrStderr(), opts, greeterv1.NewService())
		},
	}
	cmd.SetVersionTemplate("{{.Name}} version {{.Version}}\n")

	cmd.Flags().StringVarP(&opts.Name, "name", "n", "World", "Name to greet")
	cmd.Flags().StringVarP(&opts.Format, "format", "f", FormatText, "Output format (text, json)")
	cmd.Flags().StringVarP(&opts.Language, "language", "l", "en", "Language for greeting")
	cmd.Flags().BoolVar(&opts.ListLanguages, "list-languages", false, "List available languages")

	cmd.AddCommand(version.NewVersionCommand())

	return cmd
}

// Validate checks the flag values.
func (o *Options) Validate() error {
	err := validator.New().Struct(o)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}
	for _, fe := range fieldErrs {
		if fe.StructField() == "Format" {
			return fmt.Errorf("invalid format '%s': use 'text' or 'json'", o.Format)
		}
	}
	return fmt.Errorf("invalid options: %w", err)
}

// Run writes the language list or the greeting for opts to out. Warnings go to errOut.
func Run(out, errOut io.Writer, opts *Options, service interfaces.GreeterService) error {
	if opts.ListLanguages {
		languages := service.Languages()
		if opts.Format == FormatJSON {
			return writeJSON(out, types.LanguageList{Languages: languages})
		}
		if _, err := paint(out, color.FgBlue).Fprintln(out, "Available languages:"); err != nil {
			return err
		}
		for _, language := range languages {
			if _, err := fmt.Fprintf(out, "  %s\n", language); err != nil {
				return err
			}
		}
		return nil
	}

	if !service.IsSupported(opts.Language) {
		if _, err := paint(errOut, color.FgYellow).Fprintf(errOut, "Warning: Language '%s' not supported, using English\n", opts.Language); err != nil {
			return err
		}
	}

	if opts.Format == FormatJSON {
		return writeJSON(out, service.BuildRecord(opts.Name, opts.Language))
	}
	_, err := paint(out, color.FgGreen).Fprintln(out, service.Greet(opts.Name, opts.Language))
	return err
}

// writeJSON prints v indented by two spaces. Names are printed verbatim, without HTML escaping.
func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// paint returns a color for w. Writers other than the process's own stdout and
// stderr never get escape codes; for those, color decides based on the terminal.
func paint(w io.Writer, attr color.Attribute) *color.Color {
	c := color.New(attr)
	if w != os.Stdout && w != os.Stderr {
		c.DisableColor()
	}
	return c
}
