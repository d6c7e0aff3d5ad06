package dialect

import (
	"fmt"
	"strings"
)

// Key identifies one supported engine. The set is closed; every Key has exactly
// one registered Dialect.
type Key int

const (
	Generic Key = iota
	MySQL
	PostgreSQL
	Oracle
	MSSQL
	ClickHouse
	DuckDB
)

// PluginKeyPrefix prefixes every plugin key.
const PluginKeyPrefix = "DATASOURCE_"

var keyNames = [...]string{
	Generic:    "generic",
	MySQL:      "mysql",
	PostgreSQL: "postgresql",
	Oracle:     "oracle",
	MSSQL:      "mssql",
	ClickHouse: "clickhouse",
	DuckDB:     "duckdb",
}

var keyAliases = map[string]Key{
	"ansi":      Generic,
	"postgres":  PostgreSQL,
	"pg":        PostgreSQL,
	"sqlserver": MSSQL,
}

// Keys returns every Key in declaration order.
func Keys() []Key {
	out := make([]Key, len(keyNames))
	for i := range keyNames {
		out[i] = Key(i)
	}
	return out
}

func (k Key) String() string {
	if k >= 0 && int(k) < len(keyNames) {
		return keyNames[k]
	}
	return fmt.Sprintf("Key(%d)", int(k))
}

// PluginKey returns the stable external identifier, e.g. DATASOURCE_MYSQL.
func (k Key) PluginKey() string {
	return PluginKeyPrefix + strings.ToUpper(k.String())
}

// ParseKey accepts an engine name ("mysql"), a common alias ("postgres") or a
// plugin key ("DATASOURCE_MYSQL"), case-insensitively.
func ParseKey(s string) (Key, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	name = strings.TrimPrefix(name, strings.ToLower(PluginKeyPrefix))
	for i, n := range keyNames {
		if n == name {
			return Key(i), nil
		}
	}
	if k, ok := keyAliases[name]; ok {
		return k, nil
	}
	return 0, fmt.Errorf("unknown dialect %q", s)
}
