// SPDX-FileCopyrightText: © 2025 Nfrastack <code@nfrastack.com>
//
// SPDX-License-Identifier: BSD-3-Clause

package output

import (
	"encoding/json"
	"io"

	"gopkg.in/yaml.v3"

	"primesieve/pkg/runner"
)

func init() {
	Register("json", func(w io.Writer, _ Options) (Writer, error) { return jsonWriter{w: w}, nil })
	Register("yaml", func(w io.Writer, _ Options) (Writer, error) { return yamlWriter{w: w}, nil })
}

type jsonWriter struct{ w io.Writer }

func (jsonWriter) Begin(uint64) error { return nil }

func (j jsonWriter) Write(r runner.Report) error {
	enc := json.NewEncoder(j.w)
	enc.SetIndent("", "  ")
	return enc.Encode(NewResult(r))
}

type yamlWriter struct{ w io.Writer }

func (yamlWriter) Begin(uint64) error { return nil }

func (y yamlWriter) Write(r runner.Report) error {
	enc := yaml.NewEncoder(y.w)
	enc.SetIndent(2)
	if err := enc.Encode(NewResult(r)); err != nil {
		return err
	}
	return enc.Close()
}
