package config

// Default paths for databases
const (
	// DefaultDatabasePath is the default path for the catalog database
	DefaultDatabasePath = "./library-books.db"

	// DefaultBackupDir is where database snapshots are written
	DefaultBackupDir = "./backups"
)
