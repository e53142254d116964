package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"gorm.io/gorm/logger"

	"github.com/mrlokans/library/internal/config"
	"github.com/mrlokans/library/internal/database"
	"github.com/mrlokans/library/internal/scheduler"
)

// BackupCommand writes one snapshot of the catalog database.
type BackupCommand struct {
	DatabasePath string
	Dir          string
	Keep         int

	Out io.Writer
}

func NewBackupCommand() *BackupCommand {
	return &BackupCommand{Out: os.Stdout}
}

func (cmd *BackupCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("backup", flag.ContinueOnError)

	fs.StringVar(&cmd.DatabasePath, "db", config.DefaultDatabasePath, "Path to the library database file")
	fs.StringVar(&cmd.Dir, "dir", config.DefaultBackupDir, "Directory for snapshots")
	fs.IntVar(&cmd.Keep, "keep", 0, "Number of snapshots to keep (0 keeps all)")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s backup [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Write a consistent snapshot of the library database.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return err
	}
	if cmd.Keep < 0 {
		return fmt.Errorf("-keep must not be negative")
	}
	return nil
}

func (cmd *BackupCommand) Run() error {
	db, err := database.Open(cmd.DatabasePath, logger.Silent)
	if err != nil {
		return err
	}
	defer db.Close()

	backups := scheduler.NewBackupScheduler(db, scheduler.BackupConfig{
		Dir:  cmd.Dir,
		Keep: cmd.Keep,
	})

	dest, err := backups.RunNow(context.Background())
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.Out, "Backup written to %s\n", dest)
	return nil
}
