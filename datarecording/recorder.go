// Package datarecording stores bring-up traces in SQLite databases: the
// sequencing tasks, the register accesses, and the register file violations.
package datarecording

import (
	"database/sql"
	"fmt"
	"os"
	"reflect"
	"sort"
	"strings"

	"github.com/fatih/structs"

	// Registers the sqlite3 driver.
	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/xid"
	"github.com/tebeka/atexit"
)

// DataRecorder buffers flat struct entries per table and writes them into a
// database in batches.
type DataRecorder interface {
	// CreateTable creates a table whose columns are the fields of
	// sampleEntry.
	CreateTable(tableName string, sampleEntry any)

	// InsertData buffers an entry. The entry must have the type the table
	// was created with.
	InsertData(tableName string, entry any)

	// ListTables returns the names of the created tables, sorted.
	ListTables() []string

	Flush()

	// Close flushes and closes the database. Closing twice is a no-op.
	Close() error
}

const flushThreshold = 10000

type buffer struct {
	entryType reflect.Type
	entries   []any
}

type sqliteRecorder struct {
	db      *sql.DB
	buffers map[string]*buffer
	pending int
	closed  bool
}

// New creates a recorder writing into a new file named path.sqlite3, or
// sdram_trace_<xid>.sqlite3 when path is empty. It panics if the file
// exists. Buffered entries are flushed at exit.
func New(path string) DataRecorder {
	r := newRecorder(openNewFile(path))

	atexit.Register(r.Flush)

	return r
}

// NewWithDB creates a recorder writing into an open database.
func NewWithDB(db *sql.DB) DataRecorder {
	return newRecorder(db)
}

func newRecorder(db *sql.DB) *sqliteRecorder {
	return &sqliteRecorder{
		db:      db,
		buffers: make(map[string]*buffer),
	}
}

func openNewFile(path string) *sql.DB {
	if path == "" {
		path = "sdram_trace_" + xid.New().String()
	}

	filename := path + ".sqlite3"
	if _, err := os.Stat(filename); err == nil {
		panic(fmt.Sprintf("trace file %s already exists", filename))
	}

	db, err := sql.Open("sqlite3", filename)
	if err != nil {
		panic(err)
	}

	fmt.Fprintf(os.Stderr, "Recording trace into %s\n", filename)

	return db
}

// columnType maps a field kind to a SQLite storage class. An empty result
// means the kind cannot be stored.
func columnType(kind reflect.Kind) string {
	switch kind {
	case reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32,
		reflect.Uint64:
		return "INTEGER"
	case reflect.Float32, reflect.Float64:
		return "REAL"
	case reflect.String:
		return "TEXT"
	}

	return ""
}

func columnsOf(entry any) []string {
	typ := reflect.TypeOf(entry)
	if typ == nil || typ.Kind() != reflect.Struct {
		panic(fmt.Sprintf("entry of type %T is not a struct", entry))
	}

	cols := make([]string, 0, typ.NumField())

	for i := 0; i < typ.NumField(); i++ {
		f := typ.Field(i)

		sqlType := columnType(f.Type.Kind())
		if !f.IsExported() || sqlType == "" {
			panic(fmt.Sprintf("field %s of %s cannot be a column",
				f.Name, typ.Name()))
		}

		cols = append(cols, f.Name+" "+sqlType)
	}

	return cols
}

func (r *sqliteRecorder) CreateTable(tableName string, sampleEntry any) {
	cols := columnsOf(sampleEntry)

	if _, ok := r.buffers[tableName]; ok {
		panic(fmt.Sprintf("table %s already exists", tableName))
	}

	query := fmt.Sprintf("CREATE TABLE %s (%s)",
		tableName, strings.Join(cols, ", "))
	if _, err := r.db.Exec(query); err != nil {
		panic(fmt.Errorf("%s: %w", query, err))
	}

	r.buffers[tableName] = &buffer{entryType: reflect.TypeOf(sampleEntry)}
}

func (r *sqliteRecorder) InsertData(tableName string, entry any) {
	b, ok := r.buffers[tableName]
	if !ok {
		panic(fmt.Sprintf("table %s does not exist", tableName))
	}

	if t := reflect.TypeOf(entry); t != b.entryType {
		panic(fmt.Sprintf("table %s holds %s, not %s",
			tableName, b.entryType, t))
	}

	b.entries = append(b.entries, entry)
	r.pending++

	if r.pending >= flushThreshold {
		r.Flush()
	}
}

func (r *sqliteRecorder) ListTables() []string {
	names := make([]string, 0, len(r.buffers))
	for name := range r.buffers {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}

// Flush writes all buffered entries in one transaction.
func (r *sqliteRecorder) Flush() {
	if r.closed || r.pending == 0 {
		return
	}

	tx, err := r.db.Begin()
	if err != nil {
		panic(err)
	}

	for _, name := range r.ListTables() {
		b := r.buffers[name]
		if len(b.entries) == 0 {
			continue
		}

		if err := insertAll(tx, name, b.entries); err != nil {
			_ = tx.Rollback()
			panic(err)
		}

		b.entries = nil
	}

	if err := tx.Commit(); err != nil {
		panic(err)
	}

	r.pending = 0
}

func insertAll(tx *sql.Tx, tableName string, entries []any) error {
	marks := strings.TrimSuffix(
		strings.Repeat("?, ", len(structs.Names(entries[0]))), ", ")

	stmt, err := tx.Prepare(
		"INSERT INTO " + tableName + " VALUES (" + marks + ")")
	if err != nil {
		return fmt.Errorf("table %s: %w", tableName, err)
	}
	defer stmt.Close()

	for _, e := range entries {
		if _, err := stmt.Exec(structs.Values(e)...); err != nil {
			return fmt.Errorf("table %s: %w", tableName, err)
		}
	}

	return nil
}

func (r *sqliteRecorder) Close() error {
	if r.closed {
		return nil
	}

	r.Flush()
	r.closed = true

	return r.db.Close()
}
