// Package patch computes diff-only updates and renders them as multipart
// form bodies.
package patch

import (
	"encoding/json"
	"fmt"
	"reflect"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cast"
)

// Patch maps multipart field names to string values. Array elements are
// keyed as name[i].
type Patch map[string]string

// readOnly fields are never sent back to the backend.
var readOnly = map[string]bool{
	"_id":       true,
	"__v":       true,
	"createdAt": true,
	"updatedAt": true,
}

// Compute returns only the fields of edited whose values differ from
// original. Both arguments may be structs or maps; they are compared by
// their JSON field names. Values compare by string form, or numerically
// when a stored number meets a numeric string, so 4500 and "4500.00" are
// equal.
// Document fields are skipped; their changes travel as files.
func Compute(original, edited interface{}) (Patch, error) {
	before, err := toMap(original)
	if err != nil {
		return nil, fmt.Errorf("original: %w", err)
	}
	after, err := toMap(edited)
	if err != nil {
		return nil, fmt.Errorf("edited: %w", err)
	}

	p := Patch{}
	for name, value := range after {
		if readOnly[name] || IsFileField(name) {
			continue
		}

		if items, ok := value.([]interface{}); ok {
			if equalLists(items, before[name]) {
				continue
			}
			for i, item := range items {
				p[fmt.Sprintf("%s[%d]", name, i)] = stringify(item)
			}
			continue
		}

		old, existed := before[name]
		if existed && sameValue(old, value) {
			continue
		}
		if !existed && stringify(value) == "" {
			continue
		}
		p[name] = stringify(value)
	}
	return p, nil
}

// Set adds a single field, used for one-off mutations such as verification.
func (p Patch) Set(name string, value interface{}) Patch {
	p[name] = stringify(value)
	return p
}

func (p Patch) IsEmpty() bool {
	return len(p) == 0
}

// Fields returns the field names in a stable order; array elements sort by
// index.
func (p Patch) Fields() []string {
	names := make([]string, 0, len(p))
	for k := range p {
		names = append(names, k)
	}
	sort.Slice(names, func(i, j int) bool {
		bi, ii := splitIndex(names[i])
		bj, ij := splitIndex(names[j])
		if bi != bj {
			return bi < bj
		}
		return ii < ij
	})
	return names
}

// Changed reports whether name, or any element of array name, is in the patch.
func (p Patch) Changed(name string) bool {
	if _, ok := p[name]; ok {
		return true
	}
	for k := range p {
		if strings.HasPrefix(k, name+"[") {
			return true
		}
	}
	return false
}

func splitIndex(name string) (string, int) {
	open := strings.LastIndex(name, "[")
	if open < 0 || !strings.HasSuffix(name, "]") {
		return name, -1
	}
	idx, err := strconv.Atoi(name[open+1 : len(name)-1])
	if err != nil {
		return name, -1
	}
	return name[:open], idx
}

// Document returns v as a map keyed by JSON field name, the shape an
// editor draft is kept in.
func Document(v interface{}) (map[string]interface{}, error) {
	return toMap(v)
}

// toMap normalises v through JSON so structs, typed maps and []string all
// compare as plain JSON values.
func toMap(v interface{}) (map[string]interface{}, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	out := map[string]interface{}{}
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("not an object: %w", err)
	}
	return out, nil
}

func stringify(v interface{}) string {
	switch val := v.(type) {
	case nil:
		return ""
	case map[string]interface{}, []interface{}:
		raw, _ := json.Marshal(val)
		return string(raw)
	case fmt.Stringer:
		return val.String()
	}
	if s, err := cast.ToStringE(v); err == nil {
		return s
	}
	// named string types such as models.ProductType
	if rv := reflect.ValueOf(v); rv.Kind() == reflect.String {
		return rv.String()
	}
	return fmt.Sprint(v)
}

func sameValue(a, b interface{}) bool {
	if stringify(a) == stringify(b) {
		return true
	}
	// two strings stay textual, so "09876" and "9876" differ
	_, aText := a.(string)
	_, bText := b.(string)
	if aText && bText {
		return false
	}
	x, okA := number(a)
	y, okB := number(b)
	return okA && okB && x == y
}

// number reads JSON numbers and numeric strings; booleans are not numbers.
func number(v interface{}) (float64, bool) {
	switch v.(type) {
	case nil, bool:
		return 0, false
	}
	if s, ok := v.(string); ok && strings.TrimSpace(s) == "" {
		return 0, false
	}
	f, err := cast.ToFloat64E(v)
	return f, err == nil
}

func equalLists(items []interface{}, other interface{}) bool {
	var prev []string
	switch o := other.(type) {
	case []interface{}:
		for _, it := range o {
			prev = append(prev, stringify(it))
		}
	case nil:
	default:
		return false
	}
	if len(prev) != len(items) {
		return false
	}
	for i, it := range items {
		if !sameValue(it, prev[i]) {
			return false
		}
	}
	return true
}
