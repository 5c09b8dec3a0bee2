// Package sqlgen builds the SET clause of a parameterized partial UPDATE.
package sqlgen

import (
	"fmt"
	"strings"

	"jobly/api-service/internal/apperr"
)

// Field is one column assignment requested by the caller. Name is the
// caller-facing field name; the column name is resolved through the
// translation map at build time. Order matters: placeholder indices follow
// slice order so they stay in lock-step with the returned args.
type Field struct {
	Name  string
	Value any
}

// ForUpdate turns fields into a SET clause with 1-based positional
// placeholders plus the matching argument list.
//
//	fields  = [{firstName "Testio"} {favNo 10}]
//	columns = {firstName: "first_name"}
//	→ "first_name = $1, favNo = $2", ["Testio", 10]
//
// A field name missing from columns is used verbatim: the caller is trusted
// to pass only known names, and an invalid column only fails once the
// statement reaches the database. An empty fields slice is a client error,
// not a no-op.
func ForUpdate(fields []Field, columns map[string]string) (string, []any, error) {
	if len(fields) == 0 {
		return "", nil, apperr.BadRequest("no data supplied")
	}

	assignments := make([]string, len(fields))
	args := make([]any, len(fields))
	for i, f := range fields {
		col, ok := columns[f.Name]
		if !ok {
			col = f.Name
		}
		assignments[i] = fmt.Sprintf("%s = $%d", col, i+1)
		args[i] = f.Value
	}

	return strings.Join(assignments, ", "), args, nil
}
