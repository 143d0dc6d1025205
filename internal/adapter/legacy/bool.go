package legacy

import "fmt"

// Bool scans the loosely-typed boolean columns of the legacy schema, where
// flags show up as ints, strings or NULL depending on the table. 1 and "1"
// mean true; 0 and "0" mean false; NULL leaves the value unset so the
// destination default applies; anything else is false.
type Bool struct {
	Bool  bool
	Valid bool
}

// Scan implements sql.Scanner.
func (b *Bool) Scan(src any) error {
	b.Bool, b.Valid = false, true

	switch v := src.(type) {
	case nil:
		b.Valid = false
	case bool:
		b.Bool = v
	case int64:
		b.Bool = v == 1
	case []byte:
		b.Bool = string(v) == "1"
	case string:
		b.Bool = v == "1"
	default:
		return fmt.Errorf("legacy.Bool: unsupported type %T", src)
	}
	return nil
}

// Ptr returns nil when the column was NULL, the value otherwise.
func (b Bool) Ptr() *bool {
	if !b.Valid {
		return nil
	}
	v := b.Bool
	return &v
}

// Or returns the value, or def when the column was NULL.
func (b Bool) Or(def bool) bool {
	if !b.Valid {
		return def
	}
	return b.Bool
}
