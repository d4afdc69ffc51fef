package testutil

import (
	"context"
	"sync"

	"github.com/samber/lo"

	"github.com/quoteflow/quote-service/internal/domain/template"
)

// InMemoryTemplateStore implements template.Repository
type InMemoryTemplateStore struct {
	*InMemoryStore[*template.Template]

	mu    sync.Mutex
	items map[string][]*template.LineItem
}

func NewInMemoryTemplateStore() *InMemoryTemplateStore {
	return &InMemoryTemplateStore{
		InMemoryStore: NewInMemoryStore[*template.Template](),
		items:         make(map[string][]*template.LineItem),
	}
}

func copyTemplate(t *template.Template) *template.Template {
	if t == nil {
		return nil
	}
	out := *t
	out.LineItems = lo.Map(t.LineItems, func(li *template.LineItem, _ int) *template.LineItem {
		c := *li
		return &c
	})
	return &out
}

func (s *InMemoryTemplateStore) Create(ctx context.Context, t *template.Template) error {
	return s.InMemoryStore.Create(ctx, t.ID, copyTemplate(t))
}

func (s *InMemoryTemplateStore) Get(ctx context.Context, id string) (*template.Template, error) {
	t, err := s.InMemoryStore.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return copyTemplate(t), nil
}

func (s *InMemoryTemplateStore) Update(ctx context.Context, t *template.Template) error {
	return s.InMemoryStore.Update(ctx, t.ID, copyTemplate(t))
}

func (s *InMemoryTemplateStore) Delete(ctx context.Context, id string) error {
	if err := s.InMemoryStore.Delete(ctx, id); err != nil {
		return err
	}
	s.mu.Lock()
	delete(s.items, id)
	s.mu.Unlock()
	return nil
}

func (s *InMemoryTemplateStore) List(ctx context.Context, userID string) ([]*template.Template, error) {
	templates, err := s.InMemoryStore.List(ctx, nil, func(_ context.Context, t *template.Template, _ interface{}) bool {
		return t.UserID == userID
	}, func(a, b *template.Template) bool {
		return a.Name < b.Name
	})
	if err != nil {
		return nil, err
	}
	return lo.Map(templates, func(t *template.Template, _ int) *template.Template {
		return copyTemplate(t)
	}), nil
}

func (s *InMemoryTemplateStore) ReplaceLineItems(ctx context.Context, templateID string, items []*template.LineItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items[templateID] = lo.Map(items, func(li *template.LineItem, _ int) *template.LineItem {
		c := *li
		c.TemplateID = templateID
		return &c
	})
	return nil
}

func (s *InMemoryTemplateStore) ListLineItems(ctx context.Context, templateID string) ([]*template.LineItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return lo.Map(s.items[templateID], func(li *template.LineItem, _ int) *template.LineItem {
		c := *li
		return &c
	}), nil
}

func (s *InMemoryTemplateStore) Clear() {
	s.InMemoryStore.Clear()
	s.mu.Lock()
	s.items = make(map[string][]*template.LineItem)
	s.mu.Unlock()
}
