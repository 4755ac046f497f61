// Package seed loads the demo catalog used by the in-memory backend and the
// seed command.
package seed

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/holawaleh/dreamspacefrontend/internal/store"
)

// Catalog is the subset of the store that seeding writes to.
type Catalog interface {
	store.TechPostStore
	store.TutorialStore
	store.SoftwareStore
	store.ProductStore
}

// Counts reports how many records of each kind were created.
type Counts struct {
	TechPosts int
	Tutorials int
	Software  int
	Products  int
}

// Seed inserts the demo catalog. Records are created in a fixed order so
// ids are stable on a fresh store. Seed does not check for existing data;
// see Empty.
func Seed(ctx context.Context, c Catalog) (Counts, error) {
	var counts Counts

	for _, p := range techPosts() {
		if _, err := c.CreateTechPost(ctx, p); err != nil {
			return counts, fmt.Errorf("seed tech post %q: %w", p.Title, err)
		}
		counts.TechPosts++
	}
	slog.Info("tech posts seeded", "count", counts.TechPosts)

	for _, t := range tutorials() {
		if _, err := c.CreateTutorial(ctx, t); err != nil {
			return counts, fmt.Errorf("seed tutorial %q: %w", t.Title, err)
		}
		counts.Tutorials++
	}
	slog.Info("tutorials seeded", "count", counts.Tutorials)

	for _, s := range software() {
		if _, err := c.CreateSoftware(ctx, s); err != nil {
			return counts, fmt.Errorf("seed software %q: %w", s.Name, err)
		}
		counts.Software++
	}
	slog.Info("software seeded", "count", counts.Software)

	for _, p := range products() {
		if _, err := c.CreateProduct(ctx, p); err != nil {
			return counts, fmt.Errorf("seed product %q: %w", p.Name, err)
		}
		counts.Products++
	}
	slog.Info("products seeded", "count", counts.Products)

	return counts, nil
}

// Empty reports whether every catalog collection has no records.
func Empty(ctx context.Context, c Catalog) (bool, error) {
	posts, err := c.ListTechPosts(ctx)
	if err != nil {
		return false, err
	}
	tuts, err := c.ListTutorials(ctx)
	if err != nil {
		return false, err
	}
	soft, err := c.ListSoftware(ctx)
	if err != nil {
		return false, err
	}
	prods, err := c.ListProducts(ctx)
	if err != nil {
		return false, err
	}
	return len(posts)+len(tuts)+len(soft)+len(prods) == 0, nil
}
