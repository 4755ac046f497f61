package store

import (
	"cmp"
	"context"
	"slices"
	"sync"
	"time"

	"github.com/holawaleh/dreamspacefrontend/internal/types"
	"github.com/oklog/ulid/v2"
)

// collection is an ordered list of records with a sequential id counter.
// The counter only moves forward, so ids are not reused after delete.
type collection[T any] struct {
	items []T
	seq   int64
	id    func(*T) *int64
}

func newCollection[T any](id func(*T) *int64) collection[T] {
	return collection[T]{id: id}
}

func (c *collection[T]) add(item T) T {
	c.seq++
	*c.id(&item) = c.seq
	c.items = append(c.items, item)
	return item
}

func (c *collection[T]) index(id int64) int {
	for i := range c.items {
		if *c.id(&c.items[i]) == id {
			return i
		}
	}
	return -1
}

func (c *collection[T]) get(id int64) (*T, error) {
	i := c.index(id)
	if i < 0 {
		return nil, ErrNotFound
	}
	item := c.items[i]
	return &item, nil
}

func (c *collection[T]) update(id int64, apply func(*T)) (*T, error) {
	i := c.index(id)
	if i < 0 {
		return nil, ErrNotFound
	}
	item := c.items[i]
	apply(&item)
	c.items[i] = item
	return &item, nil
}

func (c *collection[T]) remove(id int64) {
	if i := c.index(id); i >= 0 {
		c.items = slices.Delete(c.items, i, i+1)
	}
}

func (c *collection[T]) all() []T {
	out := make([]T, len(c.items))
	copy(out, c.items)
	return out
}

// newestFirst sorts by date descending, then id descending. Zero dates
// sort last.
func newestFirst[T any](items []T, date func(*T) time.Time, id func(*T) *int64) []T {
	slices.SortStableFunc(items, func(a, b T) int {
		if c := date(&b).Compare(date(&a)); c != 0 {
			return c
		}
		return cmp.Compare(*id(&b), *id(&a))
	})
	return items
}

// MemoryStore implements Store with process-local collections. Data is
// lost when the process exits.
type MemoryStore struct {
	mu   sync.RWMutex
	opts options

	users     []types.User
	techPosts collection[types.TechPost]
	tutorials collection[types.Tutorial]
	software  collection[types.Software]
	products  collection[types.Product]
	note      *types.AdminNote
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore(opts ...Option) *MemoryStore {
	return &MemoryStore{
		opts:      buildOptions(opts),
		techPosts: newCollection(func(p *types.TechPost) *int64 { return &p.ID }),
		tutorials: newCollection(func(t *types.Tutorial) *int64 { return &t.ID }),
		software:  newCollection(func(s *types.Software) *int64 { return &s.ID }),
		products:  newCollection(func(p *types.Product) *int64 { return &p.ID }),
	}
}

// Ping always succeeds.
func (s *MemoryStore) Ping(ctx context.Context) error {
	return nil
}

// Close is a no-op.
func (s *MemoryStore) Close() error {
	return nil
}

// --- Users ---

func (s *MemoryStore) GetUser(ctx context.Context, id string) (*types.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if u.ID == id {
			return &u, nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemoryStore) GetUserByUsername(ctx context.Context, username string) (*types.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if u.Username == username {
			return &u, nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemoryStore) CreateUser(ctx context.Context, user types.NewUser) (*types.User, error) {
	if err := checkNewUser(user); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Username == user.Username {
			return nil, ErrDuplicateUsername
		}
	}
	created := types.User{
		ID:        ulid.Make().String(),
		Username:  user.Username,
		Password:  user.Password,
		CreatedAt: s.opts.stamp(),
	}
	if !user.CreatedAt.IsZero() {
		created.CreatedAt = types.NewTimestamp(user.CreatedAt).Time
	}
	s.users = append(s.users, created)
	return &created, nil
}

// --- Tech posts ---

func (s *MemoryStore) ListTechPosts(ctx context.Context) ([]types.TechPost, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return newestFirst(s.techPosts.all(),
		func(p *types.TechPost) time.Time { return p.Date.Time }, s.techPosts.id), nil
}

func (s *MemoryStore) GetTechPost(ctx context.Context, id int64) (*types.TechPost, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.techPosts.get(id)
}

func (s *MemoryStore) CreateTechPost(ctx context.Context, post types.NewTechPost) (*types.TechPost, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	created := s.techPosts.add(types.TechPost{
		Title:    post.Title,
		Category: post.Category,
		Excerpt:  post.Excerpt,
		Content:  post.Content,
		ImageURL: post.ImageURL,
		Date:     s.opts.dateOrNow(post.Date),
	})
	return &created, nil
}

func (s *MemoryStore) UpdateTechPost(ctx context.Context, id int64, patch types.TechPostPatch) (*types.TechPost, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.techPosts.update(id, func(p *types.TechPost) {
		patch.Apply(p)
		p.Date = types.NewTimestamp(p.Date.Time)
	})
}

func (s *MemoryStore) DeleteTechPost(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.techPosts.remove(id)
	return nil
}

// --- Tutorials ---

func (s *MemoryStore) ListTutorials(ctx context.Context) ([]types.Tutorial, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return newestFirst(s.tutorials.all(),
		func(t *types.Tutorial) time.Time { return t.Date.Time }, s.tutorials.id), nil
}

func (s *MemoryStore) GetTutorial(ctx context.Context, id int64) (*types.Tutorial, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.tutorials.get(id)
}

func (s *MemoryStore) CreateTutorial(ctx context.Context, tutorial types.NewTutorial) (*types.Tutorial, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	created := s.tutorials.add(types.Tutorial{
		Title:       tutorial.Title,
		Level:       tutorial.Level,
		Duration:    tutorial.Duration,
		Description: tutorial.Description,
		ImageURL:    tutorial.ImageURL,
		Date:        s.opts.dateOrNow(tutorial.Date),
	})
	return &created, nil
}

func (s *MemoryStore) UpdateTutorial(ctx context.Context, id int64, patch types.TutorialPatch) (*types.Tutorial, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tutorials.update(id, func(t *types.Tutorial) {
		patch.Apply(t)
		t.Date = types.NewTimestamp(t.Date.Time)
	})
}

func (s *MemoryStore) DeleteTutorial(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tutorials.remove(id)
	return nil
}

// --- Software ---

func (s *MemoryStore) ListSoftware(ctx context.Context) ([]types.Software, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return newestFirst(s.software.all(),
		func(soft *types.Software) time.Time { return soft.Date.Time }, s.software.id), nil
}

func (s *MemoryStore) GetSoftware(ctx context.Context, id int64) (*types.Software, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.software.get(id)
}

func (s *MemoryStore) CreateSoftware(ctx context.Context, soft types.NewSoftware) (*types.Software, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	created := s.software.add(types.Software{
		Name:        soft.Name,
		Version:     soft.Version,
		Description: soft.Description,
		Size:        soft.Size,
		DownloadURL: soft.DownloadURL,
		Date:        s.opts.dateOrNow(soft.Date),
	})
	return &created, nil
}

func (s *MemoryStore) UpdateSoftware(ctx context.Context, id int64, patch types.SoftwarePatch) (*types.Software, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.software.update(id, func(soft *types.Software) {
		patch.Apply(soft)
		soft.Date = types.NewTimestamp(soft.Date.Time)
	})
}

func (s *MemoryStore) DeleteSoftware(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.software.remove(id)
	return nil
}

// --- Products ---

func (s *MemoryStore) ListProducts(ctx context.Context) ([]types.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.products.all(), nil
}

func (s *MemoryStore) GetProduct(ctx context.Context, id int64) (*types.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.products.get(id)
}

func (s *MemoryStore) CreateProduct(ctx context.Context, product types.NewProduct) (*types.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	created := s.products.add(types.Product{
		Name:        product.Name,
		Price:       product.Price,
		Rating:      product.Rating,
		ImageURL:    product.ImageURL,
		Badge:       product.Badge,
		Description: product.Description,
	})
	return &created, nil
}

func (s *MemoryStore) UpdateProduct(ctx context.Context, id int64, patch types.ProductPatch) (*types.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.products.update(id, patch.Apply)
}

func (s *MemoryStore) DeleteProduct(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.products.remove(id)
	return nil
}

// --- Admin note ---

func (s *MemoryStore) GetAdminNote(ctx context.Context) (*types.AdminNote, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.note == nil {
		return nil, ErrNotFound
	}
	note := *s.note
	return &note, nil
}

func (s *MemoryStore) SaveAdminNote(ctx context.Context, content string) (*types.AdminNote, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.note == nil {
		s.note = &types.AdminNote{ID: 1}
	}
	s.note.Content = content
	s.note.UpdatedAt = s.opts.stamp()
	note := *s.note
	return &note, nil
}
