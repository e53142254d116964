package entities

import "errors"

// ErrBookNotFound indicates no book exists with the requested ID
var ErrBookNotFound = errors.New("book not found")

// ErrDuplicateTitle indicates another book already uses the title
var ErrDuplicateTitle = errors.New("a book with this title already exists")
