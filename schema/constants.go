package schema

// Custom string types for type safety.
type (
	// OutputMode represents the format of the output.
	OutputMode string

	// DatabaseBackend represents the storage backend for caching.
	DatabaseBackend string

	// MergeAction represents how template content is written to the target file.
	MergeAction string
)

// All output modes supported.
const (
	TextOut OutputMode = "text" // default
	JSONOut OutputMode = "json"
	CSVOut  OutputMode = "csv"
)

// All cache backends supported.
const (
	FileBackend       DatabaseBackend = "file" // default
	SQLiteBackend     DatabaseBackend = "sqlite"
	MySQLBackend      DatabaseBackend = "mysql"
	PostgreSQLBackend DatabaseBackend = "postgresql"
	RedisBackend      DatabaseBackend = "redis"
	NoneBackend       DatabaseBackend = "none"
)

// All merge actions supported.
const (
	AppendAction    MergeAction = "Append"
	OverwriteAction MergeAction = "Overwrite"
)

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	TextOut: {},
	JSONOut: {},
	CSVOut:  {},
}

// ValidDatabaseBackends lists all valid cache backends.
var ValidDatabaseBackends = map[DatabaseBackend]struct{}{
	FileBackend:       {},
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
	RedisBackend:      {},
	NoneBackend:       {},
}

// ValidMergeActions lists all valid merge actions.
var ValidMergeActions = map[MergeAction]struct{}{
	AppendAction:    {},
	OverwriteAction: {},
}

// Filename is the name of the target file templates are merged into.
const Filename = ".gitignore"

// ListKey is the cache key and remote resource of the template catalog.
const ListKey = "list"
