package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/holawaleh/dreamspacefrontend/internal/types"
	"github.com/oklog/ulid/v2"
)

const (
	userColumns      = "id, username, password, created_at"
	techPostColumns  = "id, title, category, excerpt, content, image_url, date"
	tutorialColumns  = "id, title, level, duration, description, image_url, date"
	softwareColumns  = "id, name, version, description, size, download_url, date"
	productColumns   = "id, name, price, rating, image_url, badge, description"
	adminNoteColumns = "id, content, updated_at"
)

// --- Users ---

func scanUser(row scanner) (*types.User, error) {
	var u types.User
	if err := row.Scan(&u.ID, &u.Username, &u.Password, timeScanner{&u.CreatedAt}); err != nil {
		return nil, err
	}
	u.CreatedAt = types.NewTimestamp(u.CreatedAt).Time
	return &u, nil
}

func (s *SQLStore) GetUser(ctx context.Context, id string) (*types.User, error) {
	return queryOne(ctx, s, "get user", scanUser,
		"SELECT "+userColumns+" FROM users WHERE id = ?", id)
}

func (s *SQLStore) GetUserByUsername(ctx context.Context, username string) (*types.User, error) {
	return queryOne(ctx, s, "get user by username", scanUser,
		"SELECT "+userColumns+" FROM users WHERE username = ?", username)
}

func (s *SQLStore) CreateUser(ctx context.Context, user types.NewUser) (*types.User, error) {
	if err := checkNewUser(user); err != nil {
		return nil, err
	}
	createdAt := s.opts.stamp()
	if !user.CreatedAt.IsZero() {
		createdAt = types.NewTimestamp(user.CreatedAt).Time
	}

	created, err := queryOne(ctx, s, "create user", scanUser,
		"INSERT INTO users ("+userColumns+") VALUES (?, ?, ?, ?) RETURNING "+userColumns,
		ulid.Make().String(), user.Username, user.Password, s.dialect.timeArg(createdAt))
	if err != nil && s.dialect.isUniqueViolation(err) {
		return nil, ErrDuplicateUsername
	}
	return created, err
}

// --- Tech posts ---

func scanTechPost(row scanner) (*types.TechPost, error) {
	var (
		p                 types.TechPost
		content, imageURL sql.NullString
		date              time.Time
	)
	if err := row.Scan(&p.ID, &p.Title, &p.Category, &p.Excerpt, &content, &imageURL, timeScanner{&date}); err != nil {
		return nil, err
	}
	p.Content = stringPtr(content)
	p.ImageURL = stringPtr(imageURL)
	p.Date = types.NewTimestamp(date)
	return &p, nil
}

func (s *SQLStore) ListTechPosts(ctx context.Context) ([]types.TechPost, error) {
	return queryAll(ctx, s, "list tech posts", scanTechPost,
		"SELECT "+techPostColumns+" FROM tech_posts ORDER BY date DESC, id DESC")
}

func (s *SQLStore) GetTechPost(ctx context.Context, id int64) (*types.TechPost, error) {
	return queryOne(ctx, s, "get tech post", scanTechPost,
		"SELECT "+techPostColumns+" FROM tech_posts WHERE id = ?", id)
}

func (s *SQLStore) CreateTechPost(ctx context.Context, post types.NewTechPost) (*types.TechPost, error) {
	return queryOne(ctx, s, "create tech post", scanTechPost,
		"INSERT INTO tech_posts (title, category, excerpt, content, image_url, date) VALUES (?, ?, ?, ?, ?, ?) RETURNING "+techPostColumns,
		post.Title, post.Category, post.Excerpt, nullable(post.Content), nullable(post.ImageURL),
		s.dialect.timeArg(s.opts.dateOrNow(post.Date).Time))
}

func (s *SQLStore) UpdateTechPost(ctx context.Context, id int64, patch types.TechPostPatch) (*types.TechPost, error) {
	var sets []assignment
	sets = setRequired(sets, "title", patch.Title)
	sets = setRequired(sets, "category", patch.Category)
	sets = setRequired(sets, "excerpt", patch.Excerpt)
	sets = setNullable(sets, "content", patch.Content)
	sets = setNullable(sets, "image_url", patch.ImageURL)
	sets = s.setDate(sets, "date", patch.Date)
	return updateOne(ctx, s, "update tech post", "tech_posts", techPostColumns, id, sets, scanTechPost)
}

func (s *SQLStore) DeleteTechPost(ctx context.Context, id int64) error {
	return s.deleteByID(ctx, "delete tech post", "tech_posts", id)
}

// --- Tutorials ---

func scanTutorial(row scanner) (*types.Tutorial, error) {
	var (
		t        types.Tutorial
		imageURL sql.NullString
		date     time.Time
	)
	if err := row.Scan(&t.ID, &t.Title, &t.Level, &t.Duration, &t.Description, &imageURL, timeScanner{&date}); err != nil {
		return nil, err
	}
	t.ImageURL = stringPtr(imageURL)
	t.Date = types.NewTimestamp(date)
	return &t, nil
}

func (s *SQLStore) ListTutorials(ctx context.Context) ([]types.Tutorial, error) {
	return queryAll(ctx, s, "list tutorials", scanTutorial,
		"SELECT "+tutorialColumns+" FROM tutorials ORDER BY date DESC, id DESC")
}

func (s *SQLStore) GetTutorial(ctx context.Context, id int64) (*types.Tutorial, error) {
	return queryOne(ctx, s, "get tutorial", scanTutorial,
		"SELECT "+tutorialColumns+" FROM tutorials WHERE id = ?", id)
}

func (s *SQLStore) CreateTutorial(ctx context.Context, tutorial types.NewTutorial) (*types.Tutorial, error) {
	return queryOne(ctx, s, "create tutorial", scanTutorial,
		"INSERT INTO tutorials (title, level, duration, description, image_url, date) VALUES (?, ?, ?, ?, ?, ?) RETURNING "+tutorialColumns,
		tutorial.Title, tutorial.Level, tutorial.Duration, tutorial.Description, nullable(tutorial.ImageURL),
		s.dialect.timeArg(s.opts.dateOrNow(tutorial.Date).Time))
}

func (s *SQLStore) UpdateTutorial(ctx context.Context, id int64, patch types.TutorialPatch) (*types.Tutorial, error) {
	var sets []assignment
	sets = setRequired(sets, "title", patch.Title)
	sets = setRequired(sets, "level", patch.Level)
	sets = setRequired(sets, "duration", patch.Duration)
	sets = setRequired(sets, "description", patch.Description)
	sets = setNullable(sets, "image_url", patch.ImageURL)
	sets = s.setDate(sets, "date", patch.Date)
	return updateOne(ctx, s, "update tutorial", "tutorials", tutorialColumns, id, sets, scanTutorial)
}

func (s *SQLStore) DeleteTutorial(ctx context.Context, id int64) error {
	return s.deleteByID(ctx, "delete tutorial", "tutorials", id)
}

// --- Software ---

func scanSoftware(row scanner) (*types.Software, error) {
	var (
		soft                                    types.Software
		version, description, size, downloadURL sql.NullString
		date                                    time.Time
	)
	if err := row.Scan(&soft.ID, &soft.Name, &version, &description, &size, &downloadURL, timeScanner{&date}); err != nil {
		return nil, err
	}
	soft.Version = stringPtr(version)
	soft.Description = stringPtr(description)
	soft.Size = stringPtr(size)
	soft.DownloadURL = stringPtr(downloadURL)
	soft.Date = types.NewTimestamp(date)
	return &soft, nil
}

func (s *SQLStore) ListSoftware(ctx context.Context) ([]types.Software, error) {
	return queryAll(ctx, s, "list software", scanSoftware,
		"SELECT "+softwareColumns+" FROM software ORDER BY date DESC, id DESC")
}

func (s *SQLStore) GetSoftware(ctx context.Context, id int64) (*types.Software, error) {
	return queryOne(ctx, s, "get software", scanSoftware,
		"SELECT "+softwareColumns+" FROM software WHERE id = ?", id)
}

func (s *SQLStore) CreateSoftware(ctx context.Context, soft types.NewSoftware) (*types.Software, error) {
	return queryOne(ctx, s, "create software", scanSoftware,
		"INSERT INTO software (name, version, description, size, download_url, date) VALUES (?, ?, ?, ?, ?, ?) RETURNING "+softwareColumns,
		soft.Name, nullable(soft.Version), nullable(soft.Description), nullable(soft.Size), nullable(soft.DownloadURL),
		s.dialect.timeArg(s.opts.dateOrNow(soft.Date).Time))
}

func (s *SQLStore) UpdateSoftware(ctx context.Context, id int64, patch types.SoftwarePatch) (*types.Software, error) {
	var sets []assignment
	sets = setRequired(sets, "name", patch.Name)
	sets = setNullable(sets, "version", patch.Version)
	sets = setNullable(sets, "description", patch.Description)
	sets = setNullable(sets, "size", patch.Size)
	sets = setNullable(sets, "download_url", patch.DownloadURL)
	sets = s.setDate(sets, "date", patch.Date)
	return updateOne(ctx, s, "update software", "software", softwareColumns, id, sets, scanSoftware)
}

func (s *SQLStore) DeleteSoftware(ctx context.Context, id int64) error {
	return s.deleteByID(ctx, "delete software", "software", id)
}

// --- Products ---

func scanProduct(row scanner) (*types.Product, error) {
	var (
		p                                           types.Product
		price, rating, imageURL, badge, description sql.NullString
	)
	if err := row.Scan(&p.ID, &p.Name, &price, &rating, &imageURL, &badge, &description); err != nil {
		return nil, err
	}
	p.Price = stringPtr(price)
	p.Rating = stringPtr(rating)
	p.ImageURL = stringPtr(imageURL)
	p.Badge = stringPtr(badge)
	p.Description = stringPtr(description)
	return &p, nil
}

func (s *SQLStore) ListProducts(ctx context.Context) ([]types.Product, error) {
	return queryAll(ctx, s, "list products", scanProduct,
		"SELECT "+productColumns+" FROM products ORDER BY id ASC")
}

func (s *SQLStore) GetProduct(ctx context.Context, id int64) (*types.Product, error) {
	return queryOne(ctx, s, "get product", scanProduct,
		"SELECT "+productColumns+" FROM products WHERE id = ?", id)
}

func (s *SQLStore) CreateProduct(ctx context.Context, product types.NewProduct) (*types.Product, error) {
	return queryOne(ctx, s, "create product", scanProduct,
		"INSERT INTO products (name, price, rating, image_url, badge, description) VALUES (?, ?, ?, ?, ?, ?) RETURNING "+productColumns,
		product.Name, nullable(product.Price), nullable(product.Rating), nullable(product.ImageURL),
		nullable(product.Badge), nullable(product.Description))
}

func (s *SQLStore) UpdateProduct(ctx context.Context, id int64, patch types.ProductPatch) (*types.Product, error) {
	var sets []assignment
	sets = setRequired(sets, "name", patch.Name)
	sets = setNullable(sets, "price", patch.Price)
	sets = setNullable(sets, "rating", patch.Rating)
	sets = setNullable(sets, "image_url", patch.ImageURL)
	sets = setNullable(sets, "badge", patch.Badge)
	sets = setNullable(sets, "description", patch.Description)
	return updateOne(ctx, s, "update product", "products", productColumns, id, sets, scanProduct)
}

func (s *SQLStore) DeleteProduct(ctx context.Context, id int64) error {
	return s.deleteByID(ctx, "delete product", "products", id)
}

// --- Admin note ---

func scanAdminNote(row scanner) (*types.AdminNote, error) {
	var n types.AdminNote
	if err := row.Scan(&n.ID, &n.Content, timeScanner{&n.UpdatedAt}); err != nil {
		return nil, err
	}
	n.UpdatedAt = types.NewTimestamp(n.UpdatedAt).Time
	return &n, nil
}

func (s *SQLStore) GetAdminNote(ctx context.Context) (*types.AdminNote, error) {
	return queryOne(ctx, s, "get admin note", scanAdminNote,
		"SELECT "+adminNoteColumns+" FROM admin_notes ORDER BY updated_at DESC, id DESC LIMIT 1")
}

// SaveAdminNote upserts on the single-row slot constraint, so concurrent
// first saves converge on one row instead of racing to insert two.
func (s *SQLStore) SaveAdminNote(ctx context.Context, content string) (*types.AdminNote, error) {
	note, err := queryOne(ctx, s, "save admin note", scanAdminNote,
		`INSERT INTO admin_notes (slot, content, updated_at) VALUES (1, ?, ?)
		ON CONFLICT (slot) DO UPDATE SET content = excluded.content, updated_at = excluded.updated_at
		RETURNING `+adminNoteColumns,
		content, s.dialect.timeArg(s.opts.stamp()))
	if errors.Is(err, ErrNotFound) {
		// RETURNING always yields the row; an empty result means the driver
		// swallowed it.
		return nil, fmt.Errorf("save admin note: no row returned")
	}
	return note, err
}
