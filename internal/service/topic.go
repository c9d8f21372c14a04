package service

import (
	"context"
	"slices"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/deppfellow/topicsvc/internal/model"
	"github.com/deppfellow/topicsvc/internal/repository"
)

// TopicService answers topic queries against a TopicStore.
type TopicService struct {
	store  repository.TopicStore
	locale language.Tag
}

// NewTopicService creates a TopicService sorting with the collation of locale.
func NewTopicService(store repository.TopicStore, locale language.Tag) *TopicService {
	return &TopicService{store: store, locale: locale}
}

// List loads the store and returns the topics matching q.
//
// q must already be validated. Load failures are returned unchanged so the
// caller can tell them apart.
func (s *TopicService) List(ctx context.Context, q *model.ListTopicsQuery) ([]model.ProjectedTopic, error) {
	topics, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}

	topics = FilterByName(topics, q.SearchTerm())

	if q.SortsByName() {
		topics = SortByName(topics, s.locale)
	}

	return Project(topics), nil
}

// Count loads the store and reports how many topics it holds.
func (s *TopicService) Count(ctx context.Context) (int, error) {
	topics, err := s.store.Load(ctx)
	if err != nil {
		return 0, err
	}
	return len(topics), nil
}

// FilterByName keeps topics whose name contains term, ignoring case.
// An empty term returns topics unchanged.
func FilterByName(topics []model.Topic, term string) []model.Topic {
	if term == "" {
		return topics
	}

	// Casers are stateful, one per call.
	lower := cases.Lower(language.Und)
	needle := lower.String(term)

	filtered := make([]model.Topic, 0, len(topics))
	for _, t := range topics {
		if strings.Contains(lower.String(t.Name), needle) {
			filtered = append(filtered, t)
		}
	}

	return filtered
}

// SortByName returns a copy of topics ordered by name under the collation of
// locale. Equal names keep their relative order.
func SortByName(topics []model.Topic, locale language.Tag) []model.Topic {
	sorted := make([]model.Topic, len(topics))
	copy(sorted, topics)

	// Collators keep internal buffers, one per call.
	c := collate.New(locale)

	slices.SortStableFunc(sorted, func(a, b model.Topic) int {
		return c.CompareString(a.Name, b.Name)
	})

	return sorted
}

// Project maps topics to their public shape. The result is never nil.
func Project(topics []model.Topic) []model.ProjectedTopic {
	projected := make([]model.ProjectedTopic, 0, len(topics))
	for _, t := range topics {
		projected = append(projected, model.ProjectedTopic{
			ID:       t.ID,
			Name:     t.Name,
			Category: t.Category,
		})
	}
	return projected
}
