package io

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	serrors "github.com/matzehuels/sankeyflow/pkg/errors"
	"github.com/matzehuels/sankeyflow/pkg/flow"
)

func texts(cells []flow.Cell) []string {
	out := make([]string, len(cells))
	for i, c := range cells {
		out[i] = c.Text()
	}
	return out
}

func TestReadCSV(t *testing.T) {
	in := "\ufefffrom,to,amount\nA,B,10\nA,B,5\nB,C, 3 \n"
	tbl, err := ReadCSV(strings.NewReader(in), ',')
	require.NoError(t, err)

	assert.Equal(t, []string{"A", "A", "B"}, texts(tbl["from"]))
	assert.Equal(t, []string{"B", "B", "C"}, texts(tbl["to"]))
	assert.Equal(t, []string{"10", "5", " 3 "}, texts(tbl["amount"]))
	assert.Equal(t, flow.CellString, tbl["amount"][0].Kind())
	assert.Equal(t, 3, tbl.Rows())
}

func TestReadCSVTabs(t *testing.T) {
	tbl, err := ReadCSV(strings.NewReader("s\tt\tv\nx y\tz\t1\n"), '\t')
	require.NoError(t, err)
	assert.Equal(t, []string{"x y"}, texts(tbl["s"]))
}

func TestReadCSVHeaderOnly(t *testing.T) {
	tbl, err := ReadCSV(strings.NewReader("s,t,v\n"), ',')
	require.NoError(t, err)
	assert.Len(t, tbl, 3)
	assert.Zero(t, tbl.Rows())
}

func TestReadCSVErrors(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"empty", ""},
		{"duplicate header", "a,a\n1,2\n"},
		{"ragged", "a,b\n1\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadCSV(strings.NewReader(tt.in), ',')
			require.Error(t, err)
			assert.True(t, serrors.Is(err, serrors.ErrCodeInvalidFormat), "got %v", err)
		})
	}
}

func TestReadJSONColumnar(t *testing.T) {
	in := `{"from": ["A", "B"], "to": ["B", "C"], "amount": [10, "5"], "ok": [true, null]}`
	tbl, err := ReadJSON(strings.NewReader(in))
	require.NoError(t, err)

	assert.Equal(t, flow.CellNumber, tbl["amount"][0].Kind())
	assert.Equal(t, flow.CellString, tbl["amount"][1].Kind())
	assert.Equal(t, flow.CellBool, tbl["ok"][0].Kind())
	assert.True(t, tbl["ok"][1].IsAbsent())
}

func TestReadJSONRecords(t *testing.T) {
	in := `[{"from": "A", "to": "B", "amount": 10}, {"from": "A", "to": "C"}]`
	tbl, err := ReadJSON(strings.NewReader(in))
	require.NoError(t, err)

	require.Len(t, tbl["amount"], 2)
	assert.Equal(t, 10.0, tbl["amount"][0].Float())
	assert.True(t, tbl["amount"][1].IsAbsent(), "missing key becomes absent")
	assert.Equal(t, []string{"B", "C"}, texts(tbl["to"]))
}

func TestReadJSONErrors(t *testing.T) {
	for _, in := range []string{"", "  ", `"text"`, `{"a": [{"nested": 1}]}`, `[1, 2]`, `{"a": [1,`} {
		_, err := ReadJSON(strings.NewReader(in))
		require.Error(t, err, "input %q", in)
		assert.True(t, serrors.Is(err, serrors.ErrCodeInvalidFormat), "input %q: %v", in, err)
	}
}

func TestReadTable(t *testing.T) {
	dir := t.TempDir()
	csvPath := filepath.Join(dir, "flows.csv")
	require.NoError(t, os.WriteFile(csvPath, []byte("s,t,v\nA,B,1\n"), 0644))
	tsvPath := filepath.Join(dir, "flows.TSV")
	require.NoError(t, os.WriteFile(tsvPath, []byte("s\tt\tv\nA\tB\t1\n"), 0644))
	jsonPath := filepath.Join(dir, "flows.json")
	require.NoError(t, os.WriteFile(jsonPath, []byte(`{"s":["A"],"t":["B"],"v":[1]}`), 0644))

	for _, path := range []string{csvPath, tsvPath, jsonPath} {
		tbl, err := ReadTable(path)
		require.NoError(t, err, path)
		assert.Equal(t, []string{"A"}, texts(tbl["s"]), path)
	}

	_, err := ReadTable(filepath.Join(dir, "missing.csv"))
	assert.True(t, serrors.Is(err, serrors.ErrCodeFileNotFound), "got %v", err)

	_, err = ReadTable(filepath.Join(dir, "flows.xlsx"))
	assert.True(t, serrors.Is(err, serrors.ErrCodeInvalidFormat), "got %v", err)
}

func TestWriteGraphDeterministic(t *testing.T) {
	d0, d1 := 0, 1
	g := &flow.Graph{
		Nodes: []flow.Node{{Name: "A", Depth: &d0}, {Name: "B", Depth: &d1}},
		Links: []flow.Edge{{Source: "A", Target: "B", Value: 15}},
	}

	var a, b bytes.Buffer
	require.NoError(t, WriteGraph(&a, g))
	require.NoError(t, WriteGraph(&b, g.Clone()))
	assert.Equal(t, a.String(), b.String())

	want := `{
  "nodes": [
    {
      "name": "A",
      "depth": 0
    },
    {
      "name": "B",
      "depth": 1
    }
  ],
  "links": [
    {
      "source": "A",
      "target": "B",
      "value": 15
    }
  ]
}
`
	assert.Equal(t, want, a.String())
}

func TestMarshalGraphEmpty(t *testing.T) {
	data, err := MarshalGraph(nil)
	require.NoError(t, err)
	assert.JSONEq(t, `{"nodes": [], "links": []}`, string(data))
}

func TestReadGraph(t *testing.T) {
	g, err := ReadGraph(strings.NewReader(`{"nodes": [{"name": "A"}]}`))
	require.NoError(t, err)
	assert.Len(t, g.Nodes, 1)
	assert.Nil(t, g.Links, "absent links stay nil")

	report := flow.Validate(g)
	assert.Equal(t, []string{flow.MsgMissingData}, report.Errors)

	_, err = ReadGraph(strings.NewReader(`nope`))
	assert.Error(t, err)
}

func TestWriteReport(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteReport(&buf, flow.Report{IsValid: true}))
	assert.JSONEq(t, `{"isValid": true, "errors": [], "warnings": []}`, buf.String())
}
