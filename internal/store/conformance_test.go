package store

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"testing"

	"github.com/holawaleh/dreamspacefrontend/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// step is one observable outcome of a scripted store call.
type step struct {
	name  string
	value any
	err   error
}

// trace records every outcome so two backends can be compared call by call.
type trace []step

func (tr *trace) add(name string, value any, err error) {
	*tr = append(*tr, step{name: name, value: value, err: err})
}

// runScript drives s through every operation of the Store contract.
func runScript(t *testing.T, s Store) trace {
	t.Helper()
	ctx := context.Background()
	var tr trace

	// Tech posts: explicit, tied and defaulted dates.
	for _, in := range []types.NewTechPost{
		{Title: "Go generics", Category: "Programming", Excerpt: "Type parameters", Date: types.MustParseTimestamp("2024-01-15")},
		{Title: "Edge AI", Category: "AI", Excerpt: "On device", Content: types.Ptr("body"), ImageURL: types.Ptr("/img/a.png"), Date: types.MustParseTimestamp("2024-02-01")},
		{Title: "Tied", Category: "AI", Excerpt: "Same day", Date: types.MustParseTimestamp("2024-02-01")},
		{Title: "Now", Category: "News", Excerpt: "Defaulted"},
	} {
		p, err := s.CreateTechPost(ctx, in)
		tr.add("create tech post", p, err)
	}
	posts, err := s.ListTechPosts(ctx)
	tr.add("list tech posts", posts, err)

	p, err := s.GetTechPost(ctx, 2)
	tr.add("get tech post", p, err)
	p, err = s.UpdateTechPost(ctx, 2, types.TechPostPatch{
		Title:    types.Some("Edge AI, revised"),
		Content:  types.Null[string](),
		ImageURL: types.Some("/img/b.png"),
	})
	tr.add("update tech post", p, err)
	p, err = s.UpdateTechPost(ctx, 2, types.TechPostPatch{})
	tr.add("empty tech post patch", p, err)
	p, err = s.UpdateTechPost(ctx, 99, types.TechPostPatch{Title: types.Some("ghost")})
	tr.add("update missing tech post", p, err)
	tr.add("delete tech post", nil, s.DeleteTechPost(ctx, 1))
	tr.add("delete tech post again", nil, s.DeleteTechPost(ctx, 1))
	p, err = s.GetTechPost(ctx, 1)
	tr.add("get deleted tech post", p, err)
	p, err = s.CreateTechPost(ctx, types.NewTechPost{Title: "After delete", Category: "c", Excerpt: "e"})
	tr.add("create after delete", p, err)

	// Tutorials.
	tu, err := s.CreateTutorial(ctx, types.NewTutorial{Title: "Intro", Level: "Beginner", Duration: "2h", Description: "Basics", Date: types.MustParseTimestamp("2024-04-01T10:30:00Z")})
	tr.add("create tutorial", tu, err)
	tu, err = s.CreateTutorial(ctx, types.NewTutorial{Title: "Advanced", Level: "Expert", Duration: "6h", Description: "Deep", ImageURL: types.Ptr("/t.png")})
	tr.add("create tutorial", tu, err)
	tu, err = s.UpdateTutorial(ctx, 2, types.TutorialPatch{ImageURL: types.Null[string](), Date: types.Some(types.MustParseTimestamp("2023-12-31"))})
	tr.add("update tutorial", tu, err)
	tutorials, err := s.ListTutorials(ctx)
	tr.add("list tutorials", tutorials, err)

	// Software.
	sw, err := s.CreateSoftware(ctx, types.NewSoftware{Name: "DevKit", Version: types.Ptr("1.0"), Size: types.Ptr("12 MB")})
	tr.add("create software", sw, err)
	sw, err = s.UpdateSoftware(ctx, 1, types.SoftwarePatch{Version: types.Some("1.1"), Size: types.Null[string](), DownloadURL: types.Some("/dl/devkit")})
	tr.add("update software", sw, err)
	sw, err = s.GetSoftware(ctx, 2)
	tr.add("get missing software", sw, err)
	tr.add("delete missing software", nil, s.DeleteSoftware(ctx, 2))
	software, err := s.ListSoftware(ctx)
	tr.add("list software", software, err)

	// Products keep insertion order.
	for _, in := range []types.NewProduct{
		{Name: "Keyboard", Price: types.Ptr("$120"), Rating: types.Ptr("4.8"), Badge: types.Ptr("Bestseller")},
		{Name: "Mouse", Price: types.Ptr("$40")},
		{Name: "Monitor", Description: types.Ptr("27 inch"), Badge: types.Ptr("New")},
	} {
		pr, err := s.CreateProduct(ctx, in)
		tr.add("create product", pr, err)
	}
	pr, err := s.UpdateProduct(ctx, 3, types.ProductPatch{Badge: types.Null[string](), Rating: types.Some("4.1")})
	tr.add("update product", pr, err)
	tr.add("delete product", nil, s.DeleteProduct(ctx, 2))
	products, err := s.ListProducts(ctx)
	tr.add("list products", products, err)

	// Admin note.
	n, err := s.GetAdminNote(ctx)
	tr.add("get empty note", n, err)
	n, err = s.SaveAdminNote(ctx, "first draft")
	tr.add("save note", n, err)
	n, err = s.SaveAdminNote(ctx, "")
	tr.add("save empty note", n, err)
	n, err = s.GetAdminNote(ctx)
	tr.add("get note", n, err)

	// Users. Ids are random per backend, so only their presence is traced.
	u, err := s.CreateUser(ctx, types.NewUser{Username: "admin", Password: "hash"})
	require.NoError(t, err)
	tr.add("create user", []any{u.Username, u.Password, u.CreatedAt}, nil)
	_, err = s.CreateUser(ctx, types.NewUser{Username: "admin", Password: "other"})
	tr.add("duplicate user", nil, err)
	byName, err := s.GetUserByUsername(ctx, "admin")
	tr.add("user by name", byName.ID == u.ID, err)
	byID, err := s.GetUser(ctx, u.ID)
	tr.add("user by id", byID.Username, err)
	_, err = s.GetUserByUsername(ctx, "nobody")
	tr.add("missing user", nil, err)
	_, err = s.CreateUser(ctx, types.NewUser{Username: "", Password: "hash"})
	tr.add("invalid user", errors.Is(err, ErrInvalidUser), nil)

	return tr
}

func openSQLiteMemory(t *testing.T, opts ...Option) *SQLStore {
	t.Helper()
	s, err := OpenSQLStore(context.Background(), "sqlite://:memory:", PoolConfig{}, opts...)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestBackends_BehaveIdentically(t *testing.T) {
	memory := runScript(t, NewMemoryStore(WithClock(stepClock(testEpoch))))
	sqlite := runScript(t, openSQLiteMemory(t, WithClock(stepClock(testEpoch))))

	require.Len(t, sqlite, len(memory))
	for i := range memory {
		want, got := memory[i], sqlite[i]
		assert.Equal(t, want.value, got.value, "step %d (%s) value", i, want.name)
		if want.err == nil {
			assert.NoError(t, got.err, "step %d (%s)", i, want.name)
			continue
		}
		assert.True(t, errors.Is(got.err, want.err), "step %d (%s): got %v, want %v", i, want.name, got.err, want.err)
	}
}

func TestScript_ExpectedOutcomes(t *testing.T) {
	tr := runScript(t, NewMemoryStore(WithClock(stepClock(testEpoch))))
	byName := func(name string) step {
		for _, s := range tr {
			if s.name == name {
				return s
			}
		}
		t.Fatalf("no step %q", name)
		return step{}
	}

	posts := byName("list tech posts").value.([]types.TechPost)
	ids := make([]int64, len(posts))
	for i, p := range posts {
		ids[i] = p.ID
	}
	assert.Equal(t, []int64{4, 3, 2, 1}, ids, "defaulted date is newest, ties break by id desc")

	updated := byName("update tech post").value.(*types.TechPost)
	assert.Equal(t, "Edge AI, revised", updated.Title)
	assert.Nil(t, updated.Content)
	assert.Equal(t, "/img/b.png", *updated.ImageURL)
	assert.Equal(t, "AI", updated.Category)

	assert.ErrorIs(t, byName("update missing tech post").err, ErrNotFound)
	assert.NoError(t, byName("delete tech post again").err)
	assert.ErrorIs(t, byName("get deleted tech post").err, ErrNotFound)
	assert.Equal(t, int64(5), byName("create after delete").value.(*types.TechPost).ID)

	products := byName("list products").value.([]types.Product)
	require.Len(t, products, 2)
	assert.Equal(t, int64(1), products[0].ID)
	assert.Equal(t, int64(3), products[1].ID)
	assert.Nil(t, products[1].Badge)

	assert.ErrorIs(t, byName("get empty note").err, ErrNotFound)
	note := byName("get note").value.(*types.AdminNote)
	assert.Equal(t, "", note.Content)
	assert.Equal(t, byName("save note").value.(*types.AdminNote).ID, note.ID)

	assert.ErrorIs(t, byName("duplicate user").err, ErrDuplicateUsername)
	assert.ErrorIs(t, byName("missing user").err, ErrNotFound)
	assert.Equal(t, true, byName("invalid user").value)
}

func TestSQLiteStore_ReopenKeepsData(t *testing.T) {
	ctx := context.Background()
	url := "sqlite://" + t.TempDir() + "/nested/site.db"

	s, err := OpenSQLStore(ctx, url, PoolConfig{})
	require.NoError(t, err)
	_, err = s.SaveAdminNote(ctx, "persisted")
	require.NoError(t, err)
	_, err = s.CreateProduct(ctx, types.NewProduct{Name: "Desk"})
	require.NoError(t, err)
	require.NoError(t, s.Close())

	s, err = OpenSQLStore(ctx, url, PoolConfig{})
	require.NoError(t, err)
	defer s.Close()

	note, err := s.GetAdminNote(ctx)
	require.NoError(t, err)
	assert.Equal(t, "persisted", note.Content)
	products, err := s.ListProducts(ctx)
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "Desk", products[0].Name)
}

func TestMigrations_Idempotent(t *testing.T) {
	s := openSQLiteMemory(t)

	require.NoError(t, RunMigrations(s.DB(), DialectSQLite))
	v, err := MigrationVersion(s.DB(), DialectSQLite)
	require.NoError(t, err)
	assert.Equal(t, int64(1), v)
}

func TestSQLiteStore_AdminNoteConcurrentSavesKeepOneRow(t *testing.T) {
	ctx := context.Background()
	url := "sqlite://" + filepath.Join(t.TempDir(), "site.db")
	s, err := OpenSQLStore(ctx, url, PoolConfig{})
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	var wg sync.WaitGroup
	errs := make(chan error, 50)
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if _, err := s.SaveAdminNote(ctx, fmt.Sprintf("note %d", i)); err != nil {
				errs <- err
			}
		}(i)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		assert.NoError(t, err)
	}

	var rows int
	require.NoError(t, s.DB().QueryRowContext(ctx, "SELECT COUNT(*) FROM admin_notes").Scan(&rows))
	assert.Equal(t, 1, rows)

	note, err := s.GetAdminNote(ctx)
	require.NoError(t, err)
	assert.Contains(t, note.Content, "note ")
}

func TestSQLiteSchema_RejectsSecondAdminNote(t *testing.T) {
	ctx := context.Background()
	s := openSQLiteMemory(t)
	_, err := s.SaveAdminNote(ctx, "first")
	require.NoError(t, err)

	_, err = s.DB().ExecContext(ctx,
		"INSERT INTO admin_notes (slot, content, updated_at) VALUES (2, 'second', '2024-03-01T12:00:00.000000Z')")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "CHECK constraint failed")

	_, err = s.DB().ExecContext(ctx,
		"INSERT INTO admin_notes (slot, content, updated_at) VALUES (1, 'second', '2024-03-01T12:00:00.000000Z')")
	require.Error(t, err)
	assert.True(t, s.Dialect().isUniqueViolation(err), "err = %v", err)

	var rows int
	require.NoError(t, s.DB().QueryRowContext(ctx, "SELECT COUNT(*) FROM admin_notes").Scan(&rows))
	assert.Equal(t, 1, rows)
}
