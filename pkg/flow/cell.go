package flow

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// CellKind identifies which variant a [Cell] holds.
type CellKind uint8

const (
	// CellAbsent is a missing value (null, undefined or an empty slot).
	CellAbsent CellKind = iota
	// CellString holds text.
	CellString
	// CellNumber holds a float64.
	CellNumber
	// CellBool holds a boolean.
	CellBool
)

// String returns the lowercase variant name.
func (k CellKind) String() string {
	switch k {
	case CellString:
		return "string"
	case CellNumber:
		return "number"
	case CellBool:
		return "boolean"
	default:
		return "absent"
	}
}

// Cell is one scalar value from a host column.
// The zero value is an absent cell.
type Cell struct {
	kind CellKind
	str  string
	num  float64
	b    bool
}

// StringCell returns a text cell.
func StringCell(s string) Cell { return Cell{kind: CellString, str: s} }

// NumberCell returns a numeric cell.
func NumberCell(f float64) Cell { return Cell{kind: CellNumber, num: f} }

// BoolCell returns a boolean cell.
func BoolCell(b bool) Cell { return Cell{kind: CellBool, b: b} }

// AbsentCell returns a missing cell.
func AbsentCell() Cell { return Cell{} }

// Kind returns the variant held by the cell.
func (c Cell) Kind() CellKind { return c.kind }

// IsAbsent reports whether the cell holds no value.
func (c Cell) IsAbsent() bool { return c.kind == CellAbsent }

// Text coerces the cell to a string. Strings are returned verbatim, numbers
// in their shortest decimal form, booleans as "true"/"false" and absent
// cells as "".
func (c Cell) Text() string {
	switch c.kind {
	case CellString:
		return c.str
	case CellNumber:
		return strconv.FormatFloat(c.num, 'f', -1, 64)
	case CellBool:
		return strconv.FormatBool(c.b)
	default:
		return ""
	}
}

// Float coerces the cell to a finite number. Strings are trimmed and parsed,
// booleans map to 1/0, and anything unparseable, absent or non-finite
// becomes 0.
func (c Cell) Float() float64 {
	var f float64
	switch c.kind {
	case CellString:
		s := strings.TrimSpace(c.str)
		if s == "" {
			return 0
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0
		}
		f = v
	case CellNumber:
		f = c.num
	case CellBool:
		if c.b {
			f = 1
		}
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

// String implements fmt.Stringer for debugging output.
func (c Cell) String() string {
	if c.kind == CellAbsent {
		return "<absent>"
	}
	return c.Text()
}

// MarshalJSON encodes the cell as a JSON scalar. Absent cells and
// non-finite numbers encode as null.
func (c Cell) MarshalJSON() ([]byte, error) {
	switch c.kind {
	case CellString:
		return json.Marshal(c.str)
	case CellNumber:
		if math.IsNaN(c.num) || math.IsInf(c.num, 0) {
			return []byte("null"), nil
		}
		return json.Marshal(c.num)
	case CellBool:
		return json.Marshal(c.b)
	default:
		return []byte("null"), nil
	}
}

// UnmarshalJSON decodes a JSON scalar into the cell. Objects and arrays are
// rejected.
func (c *Cell) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*c = AbsentCell()
		return nil
	}
	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*c = StringCell(s)
	case 't', 'f':
		var b bool
		if err := json.Unmarshal(data, &b); err != nil {
			return err
		}
		*c = BoolCell(b)
	case '{', '[':
		return fmt.Errorf("cell must be a scalar, got %s", data[:1])
	default:
		var f float64
		if err := json.Unmarshal(data, &f); err != nil {
			return err
		}
		*c = NumberCell(f)
	}
	return nil
}

// CellOf converts a loosely typed Go value into a cell. Unsupported types
// are formatted with %v and stored as text.
func CellOf(v any) Cell {
	switch x := v.(type) {
	case nil:
		return AbsentCell()
	case Cell:
		return x
	case string:
		return StringCell(x)
	case bool:
		return BoolCell(x)
	case float64:
		return NumberCell(x)
	case float32:
		return NumberCell(float64(x))
	case int:
		return NumberCell(float64(x))
	case int64:
		return NumberCell(float64(x))
	case int32:
		return NumberCell(float64(x))
	case uint:
		return NumberCell(float64(x))
	case uint64:
		return NumberCell(float64(x))
	case uint32:
		return NumberCell(float64(x))
	case json.Number:
		f, err := x.Float64()
		if err != nil {
			return StringCell(x.String())
		}
		return NumberCell(f)
	default:
		return StringCell(fmt.Sprint(x))
	}
}

// Cells converts a slice of loosely typed values with [CellOf].
func Cells(values ...any) []Cell {
	out := make([]Cell, len(values))
	for i, v := range values {
		out[i] = CellOf(v)
	}
	return out
}
