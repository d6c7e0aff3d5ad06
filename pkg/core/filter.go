package core

// Filter narrows a list call. Every field is optional; blank means "no filter".
//
// Schema, Name and Table are patterns: without wildcard characters they match
// exactly, with a wildcard ('%' or '*') they match the whole name the way
// LIKE does, so "ord%" is a prefix match and "%ord%" a substring match.
// Catalog is always an exact name.
type Filter struct {
	Catalog string
	Schema  string
	Name    string
	Table   string
}

// ForRef returns the exact filter that selects one object.
func ForRef(ref ObjectRef) Filter {
	return Filter{
		Catalog: ref.CatalogName,
		Schema:  ref.SchemaName,
		Name:    ref.ObjectName,
		Table:   ref.TableName,
	}
}
