package store

import (
	"context"
	"fmt"

	"github.com/holawaleh/dreamspacefrontend/internal/types"
	"github.com/holawaleh/dreamspacefrontend/internal/validation"
)

// UserStore persists accounts. Users are created and looked up only.
type UserStore interface {
	GetUser(ctx context.Context, id string) (*types.User, error)
	GetUserByUsername(ctx context.Context, username string) (*types.User, error)
	// CreateUser returns ErrInvalidUser for a blank or oversized username
	// or password.
	CreateUser(ctx context.Context, user types.NewUser) (*types.User, error)
}

// TechPostStore persists tech posts. ListTechPosts is newest first.
type TechPostStore interface {
	ListTechPosts(ctx context.Context) ([]types.TechPost, error)
	GetTechPost(ctx context.Context, id int64) (*types.TechPost, error)
	CreateTechPost(ctx context.Context, post types.NewTechPost) (*types.TechPost, error)
	UpdateTechPost(ctx context.Context, id int64, patch types.TechPostPatch) (*types.TechPost, error)
	DeleteTechPost(ctx context.Context, id int64) error
}

// TutorialStore persists tutorials. ListTutorials is newest first.
type TutorialStore interface {
	ListTutorials(ctx context.Context) ([]types.Tutorial, error)
	GetTutorial(ctx context.Context, id int64) (*types.Tutorial, error)
	CreateTutorial(ctx context.Context, tutorial types.NewTutorial) (*types.Tutorial, error)
	UpdateTutorial(ctx context.Context, id int64, patch types.TutorialPatch) (*types.Tutorial, error)
	DeleteTutorial(ctx context.Context, id int64) error
}

// SoftwareStore persists software packages. ListSoftware is newest first.
type SoftwareStore interface {
	ListSoftware(ctx context.Context) ([]types.Software, error)
	GetSoftware(ctx context.Context, id int64) (*types.Software, error)
	CreateSoftware(ctx context.Context, soft types.NewSoftware) (*types.Software, error)
	UpdateSoftware(ctx context.Context, id int64, patch types.SoftwarePatch) (*types.Software, error)
	DeleteSoftware(ctx context.Context, id int64) error
}

// ProductStore persists products. ListProducts is in id order.
type ProductStore interface {
	ListProducts(ctx context.Context) ([]types.Product, error)
	GetProduct(ctx context.Context, id int64) (*types.Product, error)
	CreateProduct(ctx context.Context, product types.NewProduct) (*types.Product, error)
	UpdateProduct(ctx context.Context, id int64, patch types.ProductPatch) (*types.Product, error)
	DeleteProduct(ctx context.Context, id int64) error
}

// AdminNoteStore persists the single admin note.
type AdminNoteStore interface {
	// GetAdminNote returns ErrNotFound until a note has been saved.
	GetAdminNote(ctx context.Context) (*types.AdminNote, error)
	// SaveAdminNote replaces the current note's content, creating it on
	// first use. It never produces a second note.
	SaveAdminNote(ctx context.Context, content string) (*types.AdminNote, error)
}

// Store defines the interface contract for all site storage operations.
//
// Get and Update return ErrNotFound for unknown ids; Delete of an unknown
// id returns nil. Ids are assigned by the store and never reused.
type Store interface {
	UserStore
	TechPostStore
	TutorialStore
	SoftwareStore
	ProductStore
	AdminNoteStore

	// Ping reports whether the backend is reachable.
	Ping(ctx context.Context) error
	Close() error
}

// checkNewUser rejects a user payload before it reaches a backend.
func checkNewUser(u types.NewUser) error {
	if errs := validation.ValidateNewUser(u); len(errs) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidUser, errs[0])
	}
	return nil
}
