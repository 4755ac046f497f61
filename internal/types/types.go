package types

import "time"

// User is an account record. Users are stored but not served by any route.
type User struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Password  string    `json:"-"`
	CreatedAt time.Time `json:"createdAt"`
}

// NewUser is the input type for creating users. A zero CreatedAt is
// replaced by the store's clock.
type NewUser struct {
	Username  string    `json:"username"`
	Password  string    `json:"password"`
	CreatedAt time.Time `json:"createdAt,omitempty"`
}

// TechPost is an article in the tech catalog.
type TechPost struct {
	ID       int64     `json:"id"`
	Title    string    `json:"title"`
	Category string    `json:"category"`
	Excerpt  string    `json:"excerpt"`
	Content  *string   `json:"content,omitempty"`
	ImageURL *string   `json:"imageUrl,omitempty"`
	Date     Timestamp `json:"date"`
}

// NewTechPost is the insert payload for a tech post.
type NewTechPost struct {
	Title    string    `json:"title"`
	Category string    `json:"category"`
	Excerpt  string    `json:"excerpt"`
	Content  *string   `json:"content,omitempty"`
	ImageURL *string   `json:"imageUrl,omitempty"`
	Date     Timestamp `json:"date"`
}

// TechPostPatch carries the fields of a partial tech post update.
type TechPostPatch struct {
	Title    Optional[string]    `json:"title"`
	Category Optional[string]    `json:"category"`
	Excerpt  Optional[string]    `json:"excerpt"`
	Content  Optional[string]    `json:"content"`
	ImageURL Optional[string]    `json:"imageUrl"`
	Date     Optional[Timestamp] `json:"date"`
}

// Apply merges the supplied fields onto post.
func (p TechPostPatch) Apply(post *TechPost) {
	p.Title.ApplyTo(&post.Title)
	p.Category.ApplyTo(&post.Category)
	p.Excerpt.ApplyTo(&post.Excerpt)
	p.Content.ApplyToPtr(&post.Content)
	p.ImageURL.ApplyToPtr(&post.ImageURL)
	p.Date.ApplyTo(&post.Date)
}

// Tutorial is a learning resource.
type Tutorial struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Level       string    `json:"level"`
	Duration    string    `json:"duration"`
	Description string    `json:"description"`
	ImageURL    *string   `json:"imageUrl,omitempty"`
	Date        Timestamp `json:"date"`
}

// NewTutorial is the insert payload for a tutorial.
type NewTutorial struct {
	Title       string    `json:"title"`
	Level       string    `json:"level"`
	Duration    string    `json:"duration"`
	Description string    `json:"description"`
	ImageURL    *string   `json:"imageUrl,omitempty"`
	Date        Timestamp `json:"date"`
}

// TutorialPatch carries the fields of a partial tutorial update.
type TutorialPatch struct {
	Title       Optional[string]    `json:"title"`
	Level       Optional[string]    `json:"level"`
	Duration    Optional[string]    `json:"duration"`
	Description Optional[string]    `json:"description"`
	ImageURL    Optional[string]    `json:"imageUrl"`
	Date        Optional[Timestamp] `json:"date"`
}

// Apply merges the supplied fields onto tutorial.
func (p TutorialPatch) Apply(tutorial *Tutorial) {
	p.Title.ApplyTo(&tutorial.Title)
	p.Level.ApplyTo(&tutorial.Level)
	p.Duration.ApplyTo(&tutorial.Duration)
	p.Description.ApplyTo(&tutorial.Description)
	p.ImageURL.ApplyToPtr(&tutorial.ImageURL)
	p.Date.ApplyTo(&tutorial.Date)
}

// Software is a downloadable package.
type Software struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Version     *string   `json:"version,omitempty"`
	Description *string   `json:"description,omitempty"`
	Size        *string   `json:"size,omitempty"`
	DownloadURL *string   `json:"downloadUrl,omitempty"`
	Date        Timestamp `json:"date"`
}

// NewSoftware is the insert payload for a software package.
type NewSoftware struct {
	Name        string    `json:"name"`
	Version     *string   `json:"version,omitempty"`
	Description *string   `json:"description,omitempty"`
	Size        *string   `json:"size,omitempty"`
	DownloadURL *string   `json:"downloadUrl,omitempty"`
	Date        Timestamp `json:"date"`
}

// SoftwarePatch carries the fields of a partial software update.
type SoftwarePatch struct {
	Name        Optional[string]    `json:"name"`
	Version     Optional[string]    `json:"version"`
	Description Optional[string]    `json:"description"`
	Size        Optional[string]    `json:"size"`
	DownloadURL Optional[string]    `json:"downloadUrl"`
	Date        Optional[Timestamp] `json:"date"`
}

// Apply merges the supplied fields onto soft.
func (p SoftwarePatch) Apply(soft *Software) {
	p.Name.ApplyTo(&soft.Name)
	p.Version.ApplyToPtr(&soft.Version)
	p.Description.ApplyToPtr(&soft.Description)
	p.Size.ApplyToPtr(&soft.Size)
	p.DownloadURL.ApplyToPtr(&soft.DownloadURL)
	p.Date.ApplyTo(&soft.Date)
}

// Product is an item in the store catalog. Badge is always serialized and
// may be null.
type Product struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Price       *string `json:"price,omitempty"`
	Rating      *string `json:"rating,omitempty"`
	ImageURL    *string `json:"imageUrl,omitempty"`
	Badge       *string `json:"badge"`
	Description *string `json:"description,omitempty"`
}

// NewProduct is the insert payload for a product.
type NewProduct struct {
	Name        string  `json:"name"`
	Price       *string `json:"price,omitempty"`
	Rating      *string `json:"rating,omitempty"`
	ImageURL    *string `json:"imageUrl,omitempty"`
	Badge       *string `json:"badge"`
	Description *string `json:"description,omitempty"`
}

// ProductPatch carries the fields of a partial product update.
type ProductPatch struct {
	Name        Optional[string] `json:"name"`
	Price       Optional[string] `json:"price"`
	Rating      Optional[string] `json:"rating"`
	ImageURL    Optional[string] `json:"imageUrl"`
	Badge       Optional[string] `json:"badge"`
	Description Optional[string] `json:"description"`
}

// Apply merges the supplied fields onto product.
func (p ProductPatch) Apply(product *Product) {
	p.Name.ApplyTo(&product.Name)
	p.Price.ApplyToPtr(&product.Price)
	p.Rating.ApplyToPtr(&product.Rating)
	p.ImageURL.ApplyToPtr(&product.ImageURL)
	p.Badge.ApplyToPtr(&product.Badge)
	p.Description.ApplyToPtr(&product.Description)
}

// AdminNote is the freeform note kept by site administrators. A store holds
// at most one.
type AdminNote struct {
	ID        int64     `json:"id"`
	Content   string    `json:"content"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// NewAdminNote is the payload for saving the admin note. Content is a
// pointer so a missing field can be told apart from an empty one.
type NewAdminNote struct {
	Content *string `json:"content"`
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status  string `json:"status"`
	Backend string `json:"backend"`
	Version string `json:"version"`
}

// Ptr returns a pointer to v.
func Ptr[T any](v T) *T {
	return &v
}
