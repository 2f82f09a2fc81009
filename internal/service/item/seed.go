package item

import (
	"context"
	"fmt"
)

// DefaultSeedCount is the number of fixture items created by Seed.
const DefaultSeedCount = 10

// Seed fills an empty repository with items named item1..itemN at positions
// 1..N. It does nothing when the repository already holds items and reports
// how many items it created. A negative count is rejected.
func Seed(ctx context.Context, repo Repository, count int) (int, error) {
	if count < 0 {
		return 0, fmt.Errorf("seed: count must not be negative, got %d", count)
	}

	existing, err := repo.List(ctx)
	if err != nil {
		return 0, fmt.Errorf("seed: list existing items: %w", err)
	}
	if len(existing) > 0 {
		return 0, nil
	}

	for i := 1; i <= count; i++ {
		it := &Item{Name: fmt.Sprintf("item%d", i), Position: i}
		if err := repo.Save(ctx, it); err != nil {
			return i - 1, fmt.Errorf("seed: save %s: %w", it.Name, err)
		}
	}
	return count, nil
}
