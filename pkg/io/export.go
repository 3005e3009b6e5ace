package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/sankeyflow/pkg/flow"
)

// MarshalGraph encodes g as an indented graph document.
func MarshalGraph(g *flow.Graph) ([]byte, error) {
	if g == nil {
		g = flow.NewGraph()
	}
	data, err := json.MarshalIndent(g, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode graph: %w", err)
	}
	return append(data, '\n'), nil
}

// WriteGraph writes the graph document for g to w.
func WriteGraph(w io.Writer, g *flow.Graph) error {
	data, err := MarshalGraph(g)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

// ReadGraph decodes a graph document. Missing "nodes" or "links" arrays
// stay nil.
func ReadGraph(r io.Reader) (*flow.Graph, error) {
	var g flow.Graph
	if err := json.NewDecoder(r).Decode(&g); err != nil {
		return nil, fmt.Errorf("decode graph: %w", err)
	}
	return &g, nil
}

// MarshalReport encodes a validation report with empty lists as [].
func MarshalReport(r flow.Report) ([]byte, error) {
	if r.Errors == nil {
		r.Errors = []string{}
	}
	if r.Warnings == nil {
		r.Warnings = []string{}
	}
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode report: %w", err)
	}
	return append(data, '\n'), nil
}

// WriteReport writes the validation report document to w.
func WriteReport(w io.Writer, r flow.Report) error {
	data, err := MarshalReport(r)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

// WriteFile writes data to path, or to stdout when path is "" or "-".
func WriteFile(path string, data []byte) error {
	if path == "" || path == "-" {
		_, err := os.Stdout.Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
