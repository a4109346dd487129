package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/usekaneo/kaneo-sub002/common"
	"github.com/usekaneo/kaneo-sub002/internal/store"
)

const maxSlugLength = 48

// ensureSlug slugifies input and appends -1..-20 until lookup reports the
// candidate as free (store.ErrNotFound).
func ensureSlug(ctx context.Context, input, fallback string, lookup func(ctx context.Context, slug string) error) (string, error) {
	base, err := common.SlugifyMax(input, fallback, maxSlugLength)
	if err != nil {
		return "", fmt.Errorf("generating slug: %w", err)
	}

	// Fast path
	if err := lookup(ctx, base); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return base, nil
		}
		return "", fmt.Errorf("checking slug availability: %w", err)
	}

	// Add numeric suffix until available
	for i := 1; i <= 20; i++ {
		candidate := fmt.Sprintf("%s-%d", base, i)
		err := lookup(ctx, candidate)
		if errors.Is(err, store.ErrNotFound) {
			return candidate, nil
		}
		if err != nil {
			return "", fmt.Errorf("checking slug availability: %w", err)
		}
	}

	return "", fmt.Errorf("%w: unable to find available slug for %q", ErrConflict, base)
}
