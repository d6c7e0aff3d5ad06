package metadata

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
)

// record is one catalog row keyed by lower-cased column alias. Engines disagree
// on alias case (Oracle upper-cases unquoted aliases) and on the Go types their
// drivers return, so values are converted on access.
type record map[string]any

func scanRecords(rows *sqlx.Rows) ([]record, error) {
	cols, err := rows.Columns()
	if err != nil {
		return nil, err
	}
	for i, c := range cols {
		cols[i] = strings.ToLower(c)
	}

	var out []record
	for rows.Next() {
		vals, err := rows.SliceScan()
		if err != nil {
			return nil, err
		}
		rec := make(record, len(cols))
		for i, c := range cols {
			rec[c] = vals[i]
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (r record) str(key string) string {
	switch v := r[key].(type) {
	case nil:
		return ""
	case string:
		return v
	case []byte:
		return string(v)
	case *string:
		if v == nil {
			return ""
		}
		return *v
	case time.Time:
		return v.Format(time.RFC3339Nano)
	default:
		return fmt.Sprint(v)
	}
}

// strPtr is nil for SQL NULL.
func (r record) strPtr(key string) *string {
	if r[key] == nil {
		return nil
	}
	s := r.str(key)
	return &s
}

func (r record) int64(key string) int64 {
	v := r[key]
	if v == nil {
		return 0
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int()
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return int64(rv.Uint())
	case reflect.Float32, reflect.Float64:
		return int64(rv.Float())
	case reflect.Bool:
		if rv.Bool() {
			return 1
		}
		return 0
	}
	s := strings.TrimSpace(r.str(key))
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return n
	}
	if d, err := decimal.NewFromString(s); err == nil {
		return d.IntPart()
	}
	return 0
}

func (r record) int(key string) int { return int(r.int64(key)) }

func (r record) bool(key string) bool {
	v := r[key]
	if b, ok := v.(bool); ok {
		return b
	}
	if v == nil {
		return false
	}
	switch strings.ToUpper(strings.TrimSpace(r.str(key))) {
	case "YES", "Y", "TRUE", "T":
		return true
	case "", "NO", "N", "FALSE", "F":
		return false
	}
	return r.int64(key) != 0
}

var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999999",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// time is nil for SQL NULL, zero times and unparseable text.
func (r record) time(key string) *time.Time {
	var t time.Time
	switch v := r[key].(type) {
	case nil:
		return nil
	case time.Time:
		t = v
	case *time.Time:
		if v == nil {
			return nil
		}
		t = *v
	default:
		s := strings.TrimSpace(r.str(key))
		for _, layout := range timeLayouts {
			if parsed, err := time.Parse(layout, s); err == nil {
				t = parsed
				break
			}
		}
	}
	if t.IsZero() {
		return nil
	}
	return &t
}

func (r record) decimal(key string) decimal.NullDecimal {
	v := r[key]
	if v == nil {
		return decimal.NullDecimal{}
	}
	if d, ok := v.(decimal.Decimal); ok {
		return decimal.NewNullDecimal(d)
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return decimal.NewNullDecimal(decimal.NewFromInt(rv.Int()))
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return decimal.NewNullDecimal(decimal.RequireFromString(strconv.FormatUint(rv.Uint(), 10)))
	case reflect.Float32, reflect.Float64:
		return decimal.NewNullDecimal(decimal.NewFromFloat(rv.Float()))
	}
	d, err := decimal.NewFromString(strings.TrimSpace(r.str(key)))
	if err != nil {
		return decimal.NullDecimal{}
	}
	return decimal.NewNullDecimal(d)
}
