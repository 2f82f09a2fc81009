package item

import (
	"context"
	"errors"
	"fmt"
)

// Catalog implements Service on top of a Repository.
//
// UpdatePosition overwrites the position of a single item. Siblings are never
// renumbered, so two items may share a position after a move; listing then
// falls back to id order for the tie.
type Catalog struct {
	repo Repository
}

// NewCatalog creates a Catalog backed by repo.
func NewCatalog(repo Repository) *Catalog {
	return &Catalog{repo: repo}
}

// List returns every item in display order.
func (c *Catalog) List(ctx context.Context) ([]Item, error) {
	items, err := c.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: list: %w", ErrPersistence, err)
	}
	return items, nil
}

// UpdatePosition loads the item, sets its position and persists it.
func (c *Catalog) UpdatePosition(ctx context.Context, id int64, position int) (*Item, error) {
	it, err := c.repo.FindByID(ctx, id)
	if err != nil {
		return nil, wrapStorageError("find", err)
	}

	it.Position = position
	if err := c.repo.Save(ctx, it); err != nil {
		return nil, wrapStorageError("save", err)
	}
	return it, nil
}

func wrapStorageError(op string, err error) error {
	if errors.Is(err, ErrNotFound) {
		return err
	}
	return fmt.Errorf("%w: %s: %w", ErrPersistence, op, err)
}

var _ Service = (*Catalog)(nil)
