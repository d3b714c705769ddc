// Package redisstore implements content.Store on Redis. Each collection is
// held as a single JSON document under a fixed key; the CMS writes whole
// collections at once and the assistant reads them back per conversation
// turn.
package redisstore

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/redis/go-redis/v9"

	"github.com/aivrasol/aiva/content"
)

const (
	servicesKey     = "content:services"
	projectsKey     = "content:projects"
	techStacksKey   = "content:techstacks"
	faqsKey         = "content:faqs"
	testimonialsKey = "content:testimonials"
)

type Store struct {
	rdb *redis.Client
}

func New(rdb *redis.Client) *Store {
	return &Store{rdb: rdb}
}

func (s *Store) Services(ctx context.Context) ([]content.Service, error) {
	var items []content.Service
	if err := s.get(ctx, servicesKey, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (s *Store) Projects(ctx context.Context) ([]content.Project, error) {
	var items []content.Project
	if err := s.get(ctx, projectsKey, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (s *Store) TechStacks(ctx context.Context) ([]content.TechStack, error) {
	var items []content.TechStack
	if err := s.get(ctx, techStacksKey, &items); err != nil {
		return nil, err
	}
	return activeTechStacks(items), nil
}

func (s *Store) Faqs(ctx context.Context) ([]content.Faq, error) {
	var items []content.Faq
	if err := s.get(ctx, faqsKey, &items); err != nil {
		return nil, err
	}
	return activeFaqs(items), nil
}

func (s *Store) Testimonials(ctx context.Context) ([]content.Testimonial, error) {
	var items []content.Testimonial
	if err := s.get(ctx, testimonialsKey, &items); err != nil {
		return nil, err
	}
	return activeTestimonials(items), nil
}

// Write half, used by the CMS side and the seeding tool.

func (s *Store) SetServices(ctx context.Context, items []content.Service) error {
	return s.set(ctx, servicesKey, items)
}

func (s *Store) SetProjects(ctx context.Context, items []content.Project) error {
	return s.set(ctx, projectsKey, items)
}

func (s *Store) SetTechStacks(ctx context.Context, items []content.TechStack) error {
	return s.set(ctx, techStacksKey, items)
}

func (s *Store) SetFaqs(ctx context.Context, items []content.Faq) error {
	return s.set(ctx, faqsKey, items)
}

func (s *Store) SetTestimonials(ctx context.Context, items []content.Testimonial) error {
	return s.set(ctx, testimonialsKey, items)
}

func (s *Store) get(ctx context.Context, key string, out any) error {
	data, err := s.rdb.Get(ctx, key).Bytes()
	if err == redis.Nil {
		// a collection that was never seeded is simply empty
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to load %s: %w", key, err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to unmarshal %s: %w", key, err)
	}
	return nil
}

func (s *Store) set(ctx context.Context, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", key, err)
	}
	if err := s.rdb.Set(ctx, key, data, 0).Err(); err != nil {
		return fmt.Errorf("failed to save %s: %w", key, err)
	}
	return nil
}

// The read filters mirror the CMS queries the site itself uses: active
// records only, ordered by their display order field.

func activeTechStacks(items []content.TechStack) []content.TechStack {
	out := make([]content.TechStack, 0, len(items))
	for _, item := range items {
		if item.Active {
			out = append(out, item)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Order < out[j].Order })
	return out
}

func activeFaqs(items []content.Faq) []content.Faq {
	out := make([]content.Faq, 0, len(items))
	for _, item := range items {
		if item.Active {
			out = append(out, item)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Order < out[j].Order })
	return out
}

func activeTestimonials(items []content.Testimonial) []content.Testimonial {
	out := make([]content.Testimonial, 0, len(items))
	for _, item := range items {
		if item.Active {
			out = append(out, item)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Order < out[j].Order })
	return out
}
