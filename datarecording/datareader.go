package datarecording

import (
	"context"
	"database/sql"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/pkg/errors"
)

// QueryParams selects and orders the rows of one table.
type QueryParams struct {
	// Where is a condition without the WHERE keyword, such as
	// "Cycle > ? AND Stall = ?".
	Where string
	Args  []any

	// OrderBy is an ordering without the ORDER BY keywords, such as
	// "Cycle DESC".
	OrderBy string

	// Limit caps the number of rows. Zero returns all rows.
	Limit  int
	Offset int
}

// DataReader reads back the tables written by a DataRecorder. Each result is
// a pointer to a new struct of the mapped type.
type DataReader interface {
	// MapTable tells the reader which struct the rows of a table scan into.
	// A table must be mapped before it is queried.
	MapTable(tableName string, sampleEntry any)

	// ListTables returns the mapped tables in name order.
	ListTables() []string

	// StoredTables returns the tables present in the database.
	StoredTables(ctx context.Context) ([]string, error)

	// Query returns the selected rows of one page and the number of rows that
	// match Where over all pages.
	Query(ctx context.Context, tableName string, params QueryParams) (
		results []any,
		totalCount int,
		err error,
	)

	Close() error
}

type sqliteReader struct {
	db      *sql.DB
	typeMap map[string]reflect.Type
}

// NewReader opens the SQLite file at path.
func NewReader(path string) DataReader {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		panic(err)
	}

	return NewReaderWithDB(db)
}

// NewReaderWithDB creates a DataReader on an open database.
func NewReaderWithDB(db *sql.DB) DataReader {
	return &sqliteReader{
		db:      db,
		typeMap: make(map[string]reflect.Type),
	}
}

func (r *sqliteReader) MapTable(tableName string, sampleEntry any) {
	r.typeMap[tableName] = reflect.TypeOf(sampleEntry)
}

func (r *sqliteReader) ListTables() []string {
	tables := make([]string, 0, len(r.typeMap))
	for table := range r.typeMap {
		tables = append(tables, table)
	}

	sort.Strings(tables)

	return tables
}

func (r *sqliteReader) StoredTables(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT name FROM sqlite_master WHERE type = 'table' ORDER BY name")
	if err != nil {
		return nil, errors.Wrap(err, "listing tables")
	}
	defer rows.Close()

	var tables []string

	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}

		tables = append(tables, name)
	}

	return tables, rows.Err()
}

func (r *sqliteReader) Query(
	ctx context.Context,
	tableName string,
	params QueryParams,
) ([]any, int, error) {
	structType, ok := r.typeMap[tableName]
	if !ok {
		return nil, 0, fmt.Errorf("no mapping found for table: %s", tableName)
	}

	var total int

	err := r.db.QueryRowContext(ctx,
		selectStatement("COUNT(*)", tableName, QueryParams{Where: params.Where}),
		params.Args...).Scan(&total)
	if err != nil {
		return nil, 0, errors.Wrapf(err, "counting rows of %s", tableName)
	}

	rows, err := r.db.QueryContext(ctx,
		selectStatement("*", tableName, params), params.Args...)
	if err != nil {
		return nil, 0, errors.Wrapf(err, "querying %s", tableName)
	}
	defer rows.Close()

	results, err := scanRows(rows, structType)
	if err != nil {
		return nil, 0, errors.Wrapf(err, "scanning %s", tableName)
	}

	return results, total, nil
}

func (r *sqliteReader) Close() error {
	return r.db.Close()
}

func selectStatement(columns, table string, p QueryParams) string {
	var b strings.Builder

	fmt.Fprintf(&b, "SELECT %s FROM %s", columns, quoteIdent(table))

	if p.Where != "" {
		b.WriteString(" WHERE " + p.Where)
	}

	if p.OrderBy != "" {
		b.WriteString(" ORDER BY " + p.OrderBy)
	}

	switch {
	case p.Limit > 0:
		fmt.Fprintf(&b, " LIMIT %d", p.Limit)
	case p.Offset > 0:
		// SQLite only takes OFFSET after LIMIT.
		b.WriteString(" LIMIT -1")
	}

	if p.Offset > 0 {
		fmt.Fprintf(&b, " OFFSET %d", p.Offset)
	}

	return b.String()
}

func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

// scanRows fills one new struct per row. Columns without a field of the same
// name are dropped.
func scanRows(rows *sql.Rows, structType reflect.Type) ([]any, error) {
	columns, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	fieldIndex := make(map[string]int, structType.NumField())
	for i := 0; i < structType.NumField(); i++ {
		fieldIndex[structType.Field(i).Name] = i
	}

	var results []any

	for rows.Next() {
		ptr := reflect.New(structType)
		targets := make([]any, len(columns))

		for i, col := range columns {
			idx, ok := fieldIndex[col]
			if !ok {
				targets[i] = new(any)
				continue
			}

			targets[i] = ptr.Elem().Field(idx).Addr().Interface()
		}

		if err := rows.Scan(targets...); err != nil {
			return nil, err
		}

		results = append(results, ptr.Interface())
	}

	return results, rows.Err()
}
