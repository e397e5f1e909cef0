package services

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"simplifytour/pkg/utils"
)

// checkMove walks the parents of newParentID and fails when it meets id, so
// a node is never placed under itself or one of its descendants.
func checkMove(id uuid.UUID, newParentID *uuid.UUID, parentOf func(uuid.UUID) (*uuid.UUID, error), what string) error {
	for current := newParentID; current != nil; {
		if *current == id {
			return fmt.Errorf("%w: %s cannot be moved under itself or its descendants", utils.ErrIllegalMove, what)
		}
		next, err := parentOf(*current)
		if err != nil {
			return err
		}
		current = next
	}
	return nil
}

func sameParent(a, b *uuid.UUID) bool {
	return (a == nil && b == nil) || (a != nil && b != nil && *a == *b)
}

// rebaseSlug keeps the last segment of slug and prefixes it with parentSlug.
func rebaseSlug(slug, parentSlug string) string {
	last := slug[strings.LastIndex(slug, "/")+1:]
	if parentSlug == "" {
		return last
	}
	return parentSlug + "/" + last
}
