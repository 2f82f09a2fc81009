// Package item holds the sortable item domain: the Item entity, the
// Repository contract storage backends implement, and the Catalog service
// used by the HTTP layer to list items and move one of them.
package item

import (
	"context"
	"errors"
)

var (
	// ErrNotFound is returned when no item exists for the requested id.
	ErrNotFound = errors.New("item not found")
	// ErrPersistence marks a storage failure while reading or writing items.
	ErrPersistence = errors.New("item persistence failed")
)

// Item is a named entry with an integer rank used for display ordering.
// Positions are neither unique nor contiguous.
type Item struct {
	ID       int64
	Name     string
	Position int
}

// Repository is the data-access contract every storage backend satisfies.
type Repository interface {
	// FindByID returns the item with the given id or ErrNotFound.
	FindByID(ctx context.Context, id int64) (*Item, error)
	// Save inserts the item when its ID is zero and assigns the generated
	// id, otherwise overwrites the stored name and position in a single
	// transaction. Saving an id that no longer exists returns ErrNotFound.
	Save(ctx context.Context, item *Item) error
	// List returns all items ordered by position, ties broken by id.
	List(ctx context.Context) ([]Item, error)
}

// Service is the item behaviour exposed to handlers.
type Service interface {
	List(ctx context.Context) ([]Item, error)
	UpdatePosition(ctx context.Context, id int64, position int) (*Item, error)
}
