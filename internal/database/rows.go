package database

import "database/sql"

// Row is one result row in column order. The dashboard renders rows
// positionally, so handlers return them without mapping to structs.
type Row []any

func scanRows(rows *sql.Rows) ([]Row, error) {
	cols, err := rows.Columns()
	if err != nil {
		return nil, err
	}
	out := make([]Row, 0)
	for rows.Next() {
		vals := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range vals {
			ptrs[i] = &vals[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, err
		}
		for i, v := range vals {
			// text-protocol drivers hand back raw bytes
			if b, ok := v.([]byte); ok {
				vals[i] = string(b)
			}
		}
		out = append(out, Row(vals))
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
