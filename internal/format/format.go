// Package format renders the settings document for the config CLI in the
// supported output formats: table, plain, json, and yaml.
package format

import (
	"encoding/json"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"gopkg.in/yaml.v3"

	"github.com/bwestphal/autocommit/internal/config"
	acErrors "github.com/bwestphal/autocommit/internal/errors"
)

// Format names accepted by the --format flag.
const (
	Table = "table"
	Plain = "plain"
	JSON  = "json"
	YAML  = "yaml"
)

// Render writes the settings document to w in the named format.
func Render(w io.Writer, cfg *config.Config, format string) error {
	switch format {
	case Table:
		renderTable(w, cfg)
		return nil
	case Plain:
		return renderPlain(w, cfg)
	case JSON:
		return renderJSON(w, cfg)
	case YAML:
		return renderYAML(w, cfg)
	}
	return acErrors.Errorf("unknown output format %q (want table, plain, json, or yaml)", format)
}

// renderTable writes a two-column setting/value table.
func renderTable(w io.Writer, cfg *config.Config) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Setting", "Value"})
	t.SetColumnConfigs([]table.ColumnConfig{
		{Name: "Value", Align: text.AlignLeft},
	})

	for _, entry := range config.Entries(cfg) {
		t.AppendRow(table.Row{entry.Path, entry.Value})
	}

	t.Render()
}

// renderPlain writes one "path = value" line per setting, a grep-friendly
// counterpart to the table.
func renderPlain(w io.Writer, cfg *config.Config) error {
	for _, entry := range config.Entries(cfg) {
		if _, err := io.WriteString(w, entry.Path+" = "+entry.Value+"\n"); err != nil {
			return err
		}
	}
	return nil
}

func renderJSON(w io.Writer, cfg *config.Config) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(cfg)
}

func renderYAML(w io.Writer, cfg *config.Config) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return err
	}
	return enc.Close()
}
