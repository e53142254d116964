package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"gorm.io/gorm/logger"

	"github.com/mrlokans/library/internal/config"
	"github.com/mrlokans/library/internal/database"
	"github.com/mrlokans/library/internal/database/books"
	"github.com/mrlokans/library/internal/entities"
)

// AddCommand inserts a single book from the command line.
type AddCommand struct {
	DatabasePath string
	Title        string
	Author       string
	Rating       float64

	rawRating string
	Out       io.Writer
}

func NewAddCommand() *AddCommand {
	return &AddCommand{Out: os.Stdout}
}

func (cmd *AddCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("add", flag.ContinueOnError)

	fs.StringVar(&cmd.DatabasePath, "db", config.DefaultDatabasePath, "Path to the library database file")
	fs.StringVar(&cmd.Title, "title", "", "Book title (required)")
	fs.StringVar(&cmd.Author, "author", "", "Book author (required)")
	fs.StringVar(&cmd.rawRating, "rating", "", "Book rating, any decimal number (required)")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s add -title <title> -author <author> -rating <rating> [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Add a book to the library.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExample:\n")
		fmt.Fprintf(os.Stderr, "  %s add -title \"Dune\" -author \"Frank Herbert\" -rating 4.8\n", os.Args[0])
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	cmd.Title = strings.TrimSpace(cmd.Title)
	cmd.Author = strings.TrimSpace(cmd.Author)

	switch {
	case cmd.Title == "":
		return fmt.Errorf("required flag -title not provided")
	case cmd.Author == "":
		return fmt.Errorf("required flag -author not provided")
	case strings.TrimSpace(cmd.rawRating) == "":
		return fmt.Errorf("required flag -rating not provided")
	}

	if entities.TextTooLong(cmd.Title) {
		return fmt.Errorf("title must be at most %d characters", entities.MaxTextLength)
	}
	if entities.TextTooLong(cmd.Author) {
		return fmt.Errorf("author must be at most %d characters", entities.MaxTextLength)
	}

	rating, err := entities.ParseRating(cmd.rawRating)
	if err != nil {
		return fmt.Errorf("invalid rating %q", cmd.rawRating)
	}
	cmd.Rating = rating

	return nil
}

func (cmd *AddCommand) Run() error {
	db, err := database.Open(cmd.DatabasePath, logger.Silent)
	if err != nil {
		return err
	}
	defer db.Close()

	book, err := books.NewRepository(db.DB).CreateBook(context.Background(), cmd.Title, cmd.Author, cmd.Rating)
	if errors.Is(err, entities.ErrDuplicateTitle) {
		return fmt.Errorf("%q is already in the library", cmd.Title)
	}
	if err != nil {
		return fmt.Errorf("failed to add book: %w", err)
	}

	fmt.Fprintf(cmd.Out, "Added %q by %s with id %d\n", book.Title, book.Author, book.ID)
	return nil
}
