// Package template substitutes node and link fields into label and tooltip
// templates.
//
// Templates use single-brace placeholders:
//
//	{source} → {target}: {value}
//
// Recognized placeholders are {source}, {target}, {value}, {id} and {name}.
// The {data.<field>} form is a deprecated alias for {<field>}. Unknown or
// malformed placeholders are left in the output verbatim; [Validate] reports
// them separately so that formatting itself never fails.
package template

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/valyala/fasttemplate"

	"github.com/matzehuels/sankeyflow/pkg/flow"
)

const (
	startTag = "{"
	endTag   = "}"

	deprecatedPrefix = "data."
)

// Fields lists the recognized placeholder names.
var Fields = []string{"source", "target", "value", "id", "name"}

var known = map[string]bool{
	"source": true,
	"target": true,
	"value":  true,
	"id":     true,
	"name":   true,
}

// Record holds the field values available to a template.
// Known fields missing from a Record substitute as the empty string.
type Record map[string]string

// NodeRecord builds a record from a node: name, and value when set.
func NodeRecord(n flow.Node) Record {
	r := Record{"name": n.Name}
	if n.Value != nil {
		r["value"] = formatValue(*n.Value)
	}
	return r
}

// LinkRecord builds a record from a link. Its name is "source → target".
func LinkRecord(e flow.Edge) Record {
	return Record{
		"source": e.Source,
		"target": e.Target,
		"value":  formatValue(e.Value),
		"id":     e.ID,
		"name":   e.Source + " → " + e.Target,
	}
}

func formatValue(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// resolve maps a raw placeholder tag to a known field name.
func resolve(tag string) (field string, deprecated, ok bool) {
	if rest, found := strings.CutPrefix(tag, deprecatedPrefix); found {
		return rest, true, known[rest]
	}
	return tag, false, known[tag]
}

// Format substitutes rec into tmpl. Unknown or unterminated placeholders are
// copied through unchanged.
func Format(tmpl string, rec Record) string {
	if !strings.Contains(tmpl, startTag) {
		return tmpl
	}
	return fasttemplate.ExecuteFuncString(tmpl, startTag, endTag, func(w io.Writer, tag string) (int, error) {
		field, _, ok := resolve(tag)
		if !ok {
			return io.WriteString(w, startTag+tag+endTag)
		}
		return io.WriteString(w, rec[field])
	})
}

// Validate lists advisory warnings for tmpl: unknown placeholders, deprecated
// {data.*} aliases and unterminated braces. Each distinct placeholder is
// reported once, in order of first appearance. An empty result means the
// template is clean.
func Validate(tmpl string) []string {
	var warnings []string
	seen := make(map[string]bool)

	rest := tmpl
	offset := 0
	for {
		start := strings.Index(rest, startTag)
		if start < 0 {
			break
		}
		end := strings.Index(rest[start+len(startTag):], endTag)
		if end < 0 {
			warnings = append(warnings, fmt.Sprintf("unterminated placeholder at offset %d", offset+start))
			break
		}
		tag := rest[start+len(startTag) : start+len(startTag)+end]
		consumed := start + len(startTag) + end + len(endTag)
		rest = rest[consumed:]
		offset += consumed

		if seen[tag] {
			continue
		}
		seen[tag] = true

		field, deprecated, ok := resolve(tag)
		switch {
		case !ok:
			warnings = append(warnings, fmt.Sprintf("unknown placeholder %q", startTag+tag+endTag))
		case deprecated:
			warnings = append(warnings, fmt.Sprintf("placeholder %q is deprecated, use %q",
				startTag+tag+endTag, startTag+field+endTag))
		}
	}
	return warnings
}
