package dialect

import "github.com/jmoiron/sqlx"

// NormalizationStrategy defines how unquoted identifiers are normalized.
type NormalizationStrategy int

const (
	// NormLowercase folds unquoted identifiers to lowercase (PostgreSQL, DuckDB).
	NormLowercase NormalizationStrategy = iota
	// NormUppercase folds unquoted identifiers to uppercase (Oracle, ANSI).
	NormUppercase
	// NormCaseSensitive preserves identifier case exactly (ClickHouse).
	NormCaseSensitive
	// NormCaseInsensitive compares identifiers without regard to case (MySQL, SQL Server).
	NormCaseInsensitive
)

// PlaceholderStyle defines how query parameters are formatted.
type PlaceholderStyle int

const (
	// PlaceholderQuestion uses ? for all parameters (MySQL, ClickHouse, DuckDB).
	PlaceholderQuestion PlaceholderStyle = iota
	// PlaceholderDollar uses $1, $2, etc. (PostgreSQL).
	PlaceholderDollar
	// PlaceholderAt uses @p1, @p2, etc. (SQL Server).
	PlaceholderAt
	// PlaceholderColon uses :1, :2, etc. (Oracle).
	PlaceholderColon
)

// BindType returns the matching sqlx bind type for Rebind.
func (s PlaceholderStyle) BindType() int {
	switch s {
	case PlaceholderDollar:
		return sqlx.DOLLAR
	case PlaceholderAt:
		return sqlx.AT
	case PlaceholderColon:
		return sqlx.NAMED
	default:
		return sqlx.QUESTION
	}
}

// IdentifierConfig defines how identifiers are quoted and normalized.
type IdentifierConfig struct {
	Quote         string                // Quote character: ", `, [
	QuoteEnd      string                // End quote character (usually same as Quote, ] for [)
	Escape        string                // Escape sequence: "", ``, ]]
	Normalization NormalizationStrategy // How to normalize unquoted identifiers
}

// CatalogMode describes how an engine exposes the catalog level.
type CatalogMode int

const (
	// CatalogPseudo engines have no catalog; a single pseudo-catalog named
	// after the configured database is reported (MySQL, Oracle, ClickHouse).
	CatalogPseudo CatalogMode = iota
	// CatalogCurrent engines report the connected database as the only
	// visible catalog (PostgreSQL, DuckDB, ANSI).
	CatalogCurrent
	// CatalogCross engines can address every database on the server through a
	// catalog prefix (SQL Server).
	CatalogCross
)

func (m CatalogMode) String() string {
	switch m {
	case CatalogPseudo:
		return "pseudo"
	case CatalogCurrent:
		return "current"
	case CatalogCross:
		return "cross"
	}
	return "unknown"
}

// PlaceholderForDriver returns the placeholder style a database/sql driver expects.
func PlaceholderForDriver(driverName string) PlaceholderStyle {
	switch sqlx.BindType(driverName) {
	case sqlx.DOLLAR:
		return PlaceholderDollar
	case sqlx.AT:
		return PlaceholderAt
	case sqlx.NAMED:
		return PlaceholderColon
	default:
		return PlaceholderQuestion
	}
}
