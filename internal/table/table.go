// Package table renders lists of records as header + rows, independent of
// the output format.
package table

import (
	"fmt"
	"reflect"
	"strings"
)

// Placeholder is the single row shown when there is no data.
const Placeholder = "No data available"

// Column reads one cell per row, either through Key (a struct field name, a
// JSON tag or a map key) or through Accessor. Hover, when set, lists extra
// values shown on hover.
type Column[T any] struct {
	Header   string
	Key      string
	Accessor func(T) string
	Hover    func(T) []string
	Class    string
}

func KeyColumn[T any](header, key string) Column[T] {
	return Column[T]{Header: header, Key: key}
}

func FuncColumn[T any](header string, fn func(T) string) Column[T] {
	return Column[T]{Header: header, Accessor: fn}
}

type Cell struct {
	Text  string
	Hover []string
	Class string
}

// Row.Key identifies the item the row was built from (empty unless the
// table has a key function).
type Row struct {
	Key   string
	Cells []Cell
}

// View is a rendered table. When Empty is set Rows holds exactly one row
// with a single placeholder cell spanning Span columns.
type View struct {
	Headers []string
	Rows    []Row
	Empty   bool
	Span    int
}

type Table[T any] struct {
	data    []T
	columns []Column[T]
	key     func(T) string
}

func New[T any](data []T, columns ...Column[T]) *Table[T] {
	return &Table[T]{data: data, columns: columns}
}

// WithKey sets the function filling Row.Key, used to link a row to its item.
func (t *Table[T]) WithKey(fn func(T) string) *Table[T] {
	t.key = fn
	return t
}

func (t *Table[T]) View() View {
	v := View{
		Headers: make([]string, 0, len(t.columns)),
		Span:    len(t.columns),
	}
	for _, c := range t.columns {
		v.Headers = append(v.Headers, c.Header)
	}

	if len(t.data) == 0 {
		v.Empty = true
		v.Rows = []Row{{Cells: []Cell{{Text: Placeholder}}}}
		return v
	}

	v.Rows = make([]Row, 0, len(t.data))
	for _, item := range t.data {
		row := Row{Cells: make([]Cell, 0, len(t.columns))}
		if t.key != nil {
			row.Key = t.key(item)
		}
		for _, c := range t.columns {
			cell := Cell{Text: cellValue(item, c), Class: c.Class}
			if c.Hover != nil {
				cell.Hover = c.Hover(item)
			}
			row.Cells = append(row.Cells, cell)
		}
		v.Rows = append(v.Rows, row)
	}
	return v
}

func cellValue[T any](item T, c Column[T]) string {
	if c.Accessor != nil {
		return c.Accessor(item)
	}
	return lookup(reflect.ValueOf(item), c.Key)
}

func lookup(v reflect.Value, key string) string {
	for v.Kind() == reflect.Pointer || v.Kind() == reflect.Interface {
		if v.IsNil() {
			return ""
		}
		v = v.Elem()
	}

	switch v.Kind() {
	case reflect.Struct:
		t := v.Type()
		for i := 0; i < t.NumField(); i++ {
			f := t.Field(i)
			if !f.IsExported() {
				continue
			}
			tag, _, _ := strings.Cut(f.Tag.Get("json"), ",")
			if f.Name == key || (tag != "" && tag == key) {
				return display(v.Field(i))
			}
		}
	case reflect.Map:
		if v.Type().Key().Kind() == reflect.String {
			mv := v.MapIndex(reflect.ValueOf(key).Convert(v.Type().Key()))
			if mv.IsValid() {
				return display(mv)
			}
		}
	}
	return ""
}

func display(v reflect.Value) string {
	for v.Kind() == reflect.Pointer || v.Kind() == reflect.Interface {
		if v.IsNil() {
			return ""
		}
		v = v.Elem()
	}
	return fmt.Sprint(v.Interface())
}
