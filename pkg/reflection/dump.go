package reflection

import (
	"context"
	"fmt"
	"io"
	"reflect"
	"strings"

	"github.com/a-h/templ"
)

type propertyRow struct {
	Name  string
	Value string
}

// DumpProperties renders the exported fields of obj and their values as an
// HTML table. A nil obj is rejected.
func DumpProperties(obj any) (string, error) {
	if obj == nil {
		return "", ErrNilObject
	}
	v := reflect.ValueOf(obj)
	for v.Kind() == reflect.Pointer || v.Kind() == reflect.Interface {
		if v.IsNil() {
			return "", ErrNilObject
		}
		v = v.Elem()
	}
	return render(propertiesTable(valueRows(v)))
}

// DumpType renders the exported fields of t and their type names as an HTML table.
func DumpType(t reflect.Type) (string, error) {
	if t == nil {
		return "", ErrNilType
	}
	return render(propertiesTable(typeRows(t)))
}

// DumpAssemblies renders every assembly registered in d with the fields of
// each of its types.
func DumpAssemblies(d *Domain) (string, error) {
	if d == nil {
		return "", nil
	}
	return render(assembliesDump(d.Assemblies()))
}

func valueRows(v reflect.Value) []propertyRow {
	if v.Kind() != reflect.Struct {
		return nil
	}
	t := v.Type()
	rows := make([]propertyRow, 0, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if !sf.IsExported() {
			continue
		}
		row := propertyRow{Name: sf.Name}
		if fv := v.Field(i); fv.CanInterface() {
			if isNil(fv) {
				row.Value = "null"
			} else {
				row.Value = fmt.Sprint(fv.Interface())
			}
		}
		rows = append(rows, row)
	}
	return rows
}

func typeRows(t reflect.Type) []propertyRow {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return nil
	}
	rows := make([]propertyRow, 0, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		if sf := t.Field(i); sf.IsExported() {
			rows = append(rows, propertyRow{Name: sf.Name, Value: TypeName(sf.Type)})
		}
	}
	return rows
}

func propertiesTable(rows []propertyRow) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, "<table><thead><tr><th>Property Name</th><th>Property Value</th></tr></thead><tbody>"); err != nil {
			return err
		}
		for _, row := range rows {
			if _, err := io.WriteString(w, "<tr><td>"+templ.EscapeString(row.Name)+"</td><td>"+templ.EscapeString(row.Value)+"</td></tr>"); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, "</tbody></table>")
		return err
	})
}

func assembliesDump(assemblies []*Assembly) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		for _, asm := range assemblies {
			if _, err := io.WriteString(w, "<strong>"+templ.EscapeString(asm.Name())+"</strong><br />"); err != nil {
				return err
			}
			for _, t := range asm.Types() {
				if _, err := io.WriteString(w, "<em>"+templ.EscapeString(TypeName(t))+"</em>"); err != nil {
					return err
				}
				if err := propertiesTable(typeRows(t)).Render(ctx, w); err != nil {
					return err
				}
			}
			if _, err := io.WriteString(w, "<br /><br />"); err != nil {
				return err
			}
		}
		return nil
	})
}

func render(c templ.Component) (string, error) {
	var sb strings.Builder
	if err := c.Render(context.Background(), &sb); err != nil {
		return "", err
	}
	return sb.String(), nil
}
