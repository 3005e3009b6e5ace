package io

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	serrors "github.com/matzehuels/sankeyflow/pkg/errors"
	"github.com/matzehuels/sankeyflow/pkg/flow"
)

// ReadTable reads the table stored at path. The format follows the file
// extension: .csv, .tsv or .json.
func ReadTable(path string) (flow.Table, error) {
	if err := serrors.ValidateInputPath(path); err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, serrors.Wrap(serrors.ErrCodeFileNotFound, err, "input %s", path)
	}
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".tsv":
		return ReadCSV(f, '\t')
	case ".json":
		return ReadJSON(f)
	default:
		return ReadCSV(f, ',')
	}
}

// ReadCSV reads delimited text whose first record is the header.
// Every record must have as many fields as the header.
func ReadCSV(r io.Reader, comma rune) (flow.Table, error) {
	cr := csv.NewReader(bufio.NewReader(r))
	cr.Comma = comma
	cr.ReuseRecord = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, serrors.New(serrors.ErrCodeInvalidFormat, "input has no header row")
	}
	if err != nil {
		return nil, serrors.Wrap(serrors.ErrCodeInvalidFormat, err, "read header")
	}

	names := make([]string, len(header))
	for i, h := range header {
		if i == 0 {
			h = strings.TrimPrefix(h, "\ufeff")
		}
		names[i] = h
	}
	t := make(flow.Table, len(names))
	for _, name := range names {
		if _, dup := t[name]; dup {
			return nil, serrors.New(serrors.ErrCodeInvalidFormat, "duplicate column %q in header", name)
		}
		t[name] = []flow.Cell{}
	}

	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, serrors.Wrap(serrors.ErrCodeInvalidFormat, err, "read row")
		}
		for i, field := range rec {
			t[names[i]] = append(t[names[i]], flow.StringCell(field))
		}
	}
	return t, nil
}

// ReadJSON reads a columnar object or an array of records.
func ReadJSON(r io.Reader) (flow.Table, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read: %w", err)
	}
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, serrors.New(serrors.ErrCodeInvalidFormat, "input is empty")
	}

	switch trimmed[0] {
	case '{':
		var t flow.Table
		if err := json.Unmarshal(trimmed, &t); err != nil {
			return nil, serrors.Wrap(serrors.ErrCodeInvalidFormat, err, "decode columnar table")
		}
		return t, nil
	case '[':
		var records []map[string]flow.Cell
		if err := json.Unmarshal(trimmed, &records); err != nil {
			return nil, serrors.Wrap(serrors.ErrCodeInvalidFormat, err, "decode records")
		}
		return fromRecords(records), nil
	default:
		return nil, serrors.New(serrors.ErrCodeInvalidFormat, "expected a JSON object or array, got %q", trimmed[:1])
	}
}

// fromRecords pivots rows into columns. Keys missing from a row become
// absent cells so every column has one cell per record.
func fromRecords(records []map[string]flow.Cell) flow.Table {
	t := make(flow.Table)
	for _, rec := range records {
		for k := range rec {
			if _, ok := t[k]; !ok {
				t[k] = make([]flow.Cell, 0, len(records))
			}
		}
	}
	for _, rec := range records {
		for k := range t {
			t[k] = append(t[k], rec[k])
		}
	}
	return t
}
