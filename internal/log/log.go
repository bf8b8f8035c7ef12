// Package log provides audit logging for dtags commands.
// Entries are stored in <store>/log/dtags-log.db and record every command
// that reads or changes the mapping, along with what it changed.
//
// # Fluent API
//
// Use the fluent builder API to construct and write log entries:
//
//	log.Event("tag:tag", "tag").
//		Path(dir).
//		Detail("tags", tags).
//		Changes(len(diff)).
//		Write(err)
//
// The source parameter follows the format "{extension}:{command}".
// Examples: "tag:untag", "manage:tags", "nav:d".
//
// Logging is best effort. Before Open, or after Close, every call is a
// no-op, so packages can log unconditionally.
package log

import (
	"database/sql"
	"os"
	"os/user"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

// DBName is the audit database file inside the log directory.
const DBName = "dtags-log.db"

var (
	global *Logger
	mu     sync.Mutex
)

// Entry represents a single log entry.
type Entry struct {
	Source string // e.g. "tag:tag", "nav:d"
	User   string // login name of whoever ran the command
	Action string // verb: tag, untag, list, clean, purge, edit, cd, run

	Path    string // target directory, tag or destination
	Changes int    // directories changed by the operation

	// Timing
	Start int64 // unix timestamp when Event() called
	End   int64 // unix timestamp when Write() called

	Success bool           // whether operation succeeded
	Error   string         // error message if failed
	Detail  map[string]any // additional operation-specific data
}

// Builder constructs a log entry using a fluent API.
// Create with [Event], chain methods to set fields, then call [Builder.Write]
// to write the entry.
type Builder struct {
	entry Entry
}

// Event creates a new log entry builder for an operation.
//
// The action describes what was done: "tag", "untag", "list", "clean",
// "purge", "edit", "cd", "run".
func Event(source, action string) *Builder {
	return &Builder{
		entry: Entry{
			Source: source,
			User:   currentUser(),
			Action: action,
			Start:  time.Now().Unix(),
		},
	}
}

// Path sets the directory or tag this operation targets.
// Leave unset for operations over the whole mapping (e.g. purge).
func (b *Builder) Path(path string) *Builder {
	b.entry.Path = path
	return b
}

// Changes records how many directories the operation changed.
func (b *Builder) Changes(n int) *Builder {
	b.entry.Changes = n
	return b
}

// Detail adds a key-value pair to the log entry's detail map.
// Can be called multiple times to add multiple details.
//
// Example:
//
//	log.Event("run:run", "run").
//		Detail("command", args).
//		Detail("failed", failed)
func (b *Builder) Detail(key string, value any) *Builder {
	if b.entry.Detail == nil {
		b.entry.Detail = make(map[string]any)
	}
	b.entry.Detail[key] = value
	return b
}

// Write writes the log entry to the database, deriving success/failure from err.
//
// Example:
//
//	err := st.Save(next)
//	log.Event("tag:tag", "tag").Changes(len(d)).Write(err)
func (b *Builder) Write(err error) {
	b.entry.End = time.Now().Unix()
	b.entry.Success = err == nil
	if err != nil {
		b.entry.Error = err.Error()
	}
	Log(b.entry)
}

// Open initialises the global logger for the store at root.
// Safe to call multiple times; only the first call opens a database.
// Errors are returned but callers may choose to ignore them (best-effort logging).
func Open(root string) error {
	mu.Lock()
	defer mu.Unlock()

	if global != nil {
		return nil
	}

	p := DBPath(root)
	if err := os.MkdirAll(filepath.Dir(p), 0755); err != nil {
		return err
	}

	db, err := sql.Open("sqlite", p)
	if err != nil {
		return err
	}

	if err := migrate(db); err != nil {
		db.Close()
		return err
	}

	global = &Logger{db: db, store: hash(root)}
	return nil
}

// DBPath returns the audit database location for a store root.
func DBPath(root string) string {
	return filepath.Join(root, "log", DBName)
}

// Log writes an entry. Safe to call if logger not initialised (no-op).
func Log(e Entry) {
	mu.Lock()
	l := global
	mu.Unlock()

	if l == nil {
		return
	}
	l.log(e)
}

// Close closes the global logger.
func Close() {
	mu.Lock()
	defer mu.Unlock()
	if global != nil {
		global.db.Close()
		global = nil
	}
}

func currentUser() string {
	if u, err := user.Current(); err == nil {
		return u.Username
	}
	return os.Getenv("USER")
}
