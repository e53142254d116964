package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"text/tabwriter"

	"gorm.io/gorm/logger"

	"github.com/mrlokans/library/internal/config"
	"github.com/mrlokans/library/internal/database"
	"github.com/mrlokans/library/internal/database/books"
)

// ListCommand prints the catalog ordered by title.
type ListCommand struct {
	DatabasePath string

	Out io.Writer
}

func NewListCommand() *ListCommand {
	return &ListCommand{Out: os.Stdout}
}

func (cmd *ListCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("list", flag.ContinueOnError)

	fs.StringVar(&cmd.DatabasePath, "db", config.DefaultDatabasePath, "Path to the library database file")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s list [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Print every book in the library ordered by title.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
	}

	return fs.Parse(args)
}

func (cmd *ListCommand) Run() error {
	db, err := database.Open(cmd.DatabasePath, logger.Silent)
	if err != nil {
		return err
	}
	defer db.Close()

	all, err := books.NewRepository(db.DB).ListBooks(context.Background())
	if err != nil {
		return fmt.Errorf("failed to list books: %w", err)
	}

	if len(all) == 0 {
		fmt.Fprintln(cmd.Out, "Library is empty.")
		return nil
	}

	w := tabwriter.NewWriter(cmd.Out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTITLE\tAUTHOR\tRATING")
	for _, book := range all {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", book.ID, book.Title, book.Author, strconv.FormatFloat(book.Rating, 'f', -1, 64))
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Fprintf(cmd.Out, "\n%d books\n", len(all))
	return nil
}
