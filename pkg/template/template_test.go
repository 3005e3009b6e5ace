package template

import (
	"slices"
	"testing"

	"github.com/matzehuels/sankeyflow/pkg/flow"
)

func TestFormat(t *testing.T) {
	link := LinkRecord(flow.Edge{Source: "Solar", Target: "Grid", Value: 12.5, ID: "r7"})

	tests := []struct {
		name string
		tmpl string
		rec  Record
		want string
	}{
		{"plain text", "no placeholders", link, "no placeholders"},
		{"link fields", "{source} → {target}: {value}", link, "Solar → Grid: 12.5"},
		{"id", "#{id}", link, "#r7"},
		{"link name", "{name}", link, "Solar → Grid"},
		{"deprecated alias", "{data.source}/{data.value}", link, "Solar/12.5"},
		{"unknown kept verbatim", "{source} {color}", link, "Solar {color}"},
		{"unknown data alias kept", "{data.color}", link, "{data.color}"},
		{"unterminated kept", "{source} {value", link, "Solar {value"},
		{"nested brace kept", "{a{source}", link, "{a{source}"},
		{"empty braces kept", "{}", link, "{}"},
		{"missing field is empty", "[{id}]", NodeRecord(flow.Node{Name: "Grid"}), "[]"},
		{"repeated", "{source}{source}", link, "SolarSolar"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Format(tt.tmpl, tt.rec); got != tt.want {
				t.Errorf("Format(%q) = %q, want %q", tt.tmpl, got, tt.want)
			}
		})
	}
}

func TestNodeRecord(t *testing.T) {
	v := 42.0
	rec := NodeRecord(flow.Node{Name: "Grid", Value: &v})
	if got := Format("{name} ({value})", rec); got != "Grid (42)" {
		t.Errorf("Format = %q", got)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		tmpl string
		want []string
	}{
		{"clean", "{source} → {target}: {value}", nil},
		{"no placeholders", "hello", nil},
		{"unknown", "{source} {colour}", []string{`unknown placeholder "{colour}"`}},
		{"deprecated", "{data.value}", []string{`placeholder "{data.value}" is deprecated, use "{value}"`}},
		{"unknown alias", "{data.colour}", []string{`unknown placeholder "{data.colour}"`}},
		{"reported once", "{x}{x}{x}", []string{`unknown placeholder "{x}"`}},
		{"unterminated", "ok {source} {value", []string{"unterminated placeholder at offset 12"}},
		{
			"mixed",
			"{foo} {data.id} {bar",
			[]string{
				`unknown placeholder "{foo}"`,
				`placeholder "{data.id}" is deprecated, use "{id}"`,
				"unterminated placeholder at offset 16",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Validate(tt.tmpl); !slices.Equal(got, tt.want) {
				t.Errorf("Validate(%q) = %q, want %q", tt.tmpl, got, tt.want)
			}
		})
	}
}
