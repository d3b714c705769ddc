package content

import (
	"context"
	"log"

	"golang.org/x/sync/errgroup"
)

// Store reads the site content collections. Services and Projects return
// every record in insertion order; TechStacks, Faqs, and Testimonials return
// only active records sorted by display order.
type Store interface {
	Services(ctx context.Context) ([]Service, error)
	Projects(ctx context.Context) ([]Project, error)
	TechStacks(ctx context.Context) ([]TechStack, error)
	Faqs(ctx context.Context) ([]Faq, error)
	Testimonials(ctx context.Context) ([]Testimonial, error)
}

// Snapshot is one read of every collection.
type Snapshot struct {
	Services     []Service
	Projects     []Project
	TechStacks   []TechStack
	Faqs         []Faq
	Testimonials []Testimonial
}

// LoadSnapshot fetches all collections concurrently. A collection that
// cannot be fetched is logged and left empty; the assistant must keep
// answering with whatever content is reachable, so this never fails.
func LoadSnapshot(ctx context.Context, store Store) Snapshot {
	var snap Snapshot
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		items, err := store.Services(ctx)
		if err != nil {
			log.Printf("[WARN] fetching services: %v", err)
			return nil
		}
		snap.Services = items
		return nil
	})
	g.Go(func() error {
		items, err := store.Projects(ctx)
		if err != nil {
			log.Printf("[WARN] fetching projects: %v", err)
			return nil
		}
		snap.Projects = items
		return nil
	})
	g.Go(func() error {
		items, err := store.TechStacks(ctx)
		if err != nil {
			log.Printf("[WARN] fetching tech stacks: %v", err)
			return nil
		}
		snap.TechStacks = items
		return nil
	})
	g.Go(func() error {
		items, err := store.Faqs(ctx)
		if err != nil {
			log.Printf("[WARN] fetching faqs: %v", err)
			return nil
		}
		snap.Faqs = items
		return nil
	})
	g.Go(func() error {
		items, err := store.Testimonials(ctx)
		if err != nil {
			log.Printf("[WARN] fetching testimonials: %v", err)
			return nil
		}
		snap.Testimonials = items
		return nil
	})

	// goroutines absorb their own failures and never return errors
	_ = g.Wait()
	return snap
}
