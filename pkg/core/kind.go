package core

import (
	"fmt"
	"strings"
)

// ObjectKind identifies the kind of database object a handler serves.
type ObjectKind int

const (
	// KindCatalog is the top-level namespace (database on most engines).
	KindCatalog ObjectKind = iota
	// KindSchema is the namespace directly above objects.
	KindSchema
	KindTable
	KindView
	KindMaterializedView
	KindForeignTable
	KindIndex
	KindSequence
	KindFunction
	KindColumn
)

var objectKindNames = map[ObjectKind]string{
	KindCatalog:          "catalog",
	KindSchema:           "schema",
	KindTable:            "table",
	KindView:             "view",
	KindMaterializedView: "materialized_view",
	KindForeignTable:     "foreign_table",
	KindIndex:            "index",
	KindSequence:         "sequence",
	KindFunction:         "function",
	KindColumn:           "column",
}

// String returns the snake_case kind name.
func (k ObjectKind) String() string {
	if name, ok := objectKindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("ObjectKind(%d)", int(k))
}

// SQLKeyword returns the keyword used in DDL, e.g. "MATERIALIZED VIEW".
func (k ObjectKind) SQLKeyword() string {
	return strings.ToUpper(strings.ReplaceAll(k.String(), "_", " "))
}

// ObjectKinds returns the kinds that have a full handler capability set.
func ObjectKinds() []ObjectKind {
	return []ObjectKind{
		KindTable, KindView, KindMaterializedView, KindForeignTable,
		KindIndex, KindSequence, KindFunction,
	}
}

// ParseObjectKind resolves a kind name. Accepts snake_case, kebab-case, spaces
// and a trailing plural "s" (e.g. "tables", "materialized-views").
func ParseObjectKind(s string) (ObjectKind, error) {
	norm := strings.ToLower(strings.TrimSpace(s))
	norm = strings.NewReplacer("-", "_", " ", "_").Replace(norm)
	for k, name := range objectKindNames {
		if norm == name || norm == name+"s" || (name == "index" && norm == "indexes") {
			return k, nil
		}
	}
	switch norm {
	case "matview", "matviews", "mview", "mviews":
		return KindMaterializedView, nil
	case "indices":
		return KindIndex, nil
	case "routine", "routines":
		return KindFunction, nil
	}
	return 0, fmt.Errorf("unknown object kind %q", s)
}
