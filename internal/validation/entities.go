package validation

import "github.com/holawaleh/dreamspacefrontend/internal/types"

// Field length limits.
const (
	MaxTitleLength       = 200
	MaxShortTextLength   = 100
	MaxExcerptLength     = 1000
	MaxDescriptionLength = 5000
	MaxContentLength     = 100_000
	MaxURLLength         = 2048
	MaxNoteLength        = 100_000
)

func required(c *Collector, field, value string, max int) {
	if err := ValidateRequired(field, value); err != nil {
		c.Add(err)
		return
	}
	ValidateText(c, field, value, max)
}

func optional(c *Collector, field string, value *string, max int) {
	if value != nil {
		ValidateText(c, field, *value, max)
	}
}

func patchRequired(c *Collector, field string, value types.Optional[string], max int) {
	if !value.Set {
		return
	}
	if err := ValidateNotNull(field, value.Null); err != nil {
		c.Add(err)
		return
	}
	required(c, field, value.Value, max)
}

func patchOptional(c *Collector, field string, value types.Optional[string], max int) {
	if value.Has() {
		ValidateText(c, field, value.Value, max)
	}
}

func patchDate(c *Collector, field string, value types.Optional[types.Timestamp]) {
	if !value.Set {
		return
	}
	if value.Null || value.Value.IsZero() {
		c.Add(&ValidationError{Field: field, Message: "must be a date"})
	}
}

// ValidateNewTechPost validates a tech post insert payload.
func ValidateNewTechPost(p types.NewTechPost) []ValidationError {
	var c Collector
	required(&c, "title", p.Title, MaxTitleLength)
	required(&c, "category", p.Category, MaxShortTextLength)
	required(&c, "excerpt", p.Excerpt, MaxExcerptLength)
	optional(&c, "content", p.Content, MaxContentLength)
	optional(&c, "imageUrl", p.ImageURL, MaxURLLength)
	return c.Errors()
}

// ValidateTechPostPatch validates a partial tech post update.
func ValidateTechPostPatch(p types.TechPostPatch) []ValidationError {
	var c Collector
	patchRequired(&c, "title", p.Title, MaxTitleLength)
	patchRequired(&c, "category", p.Category, MaxShortTextLength)
	patchRequired(&c, "excerpt", p.Excerpt, MaxExcerptLength)
	patchOptional(&c, "content", p.Content, MaxContentLength)
	patchOptional(&c, "imageUrl", p.ImageURL, MaxURLLength)
	patchDate(&c, "date", p.Date)
	return c.Errors()
}

// ValidateNewTutorial validates a tutorial insert payload.
func ValidateNewTutorial(p types.NewTutorial) []ValidationError {
	var c Collector
	required(&c, "title", p.Title, MaxTitleLength)
	required(&c, "level", p.Level, MaxShortTextLength)
	required(&c, "duration", p.Duration, MaxShortTextLength)
	required(&c, "description", p.Description, MaxDescriptionLength)
	optional(&c, "imageUrl", p.ImageURL, MaxURLLength)
	return c.Errors()
}

// ValidateTutorialPatch validates a partial tutorial update.
func ValidateTutorialPatch(p types.TutorialPatch) []ValidationError {
	var c Collector
	patchRequired(&c, "title", p.Title, MaxTitleLength)
	patchRequired(&c, "level", p.Level, MaxShortTextLength)
	patchRequired(&c, "duration", p.Duration, MaxShortTextLength)
	patchRequired(&c, "description", p.Description, MaxDescriptionLength)
	patchOptional(&c, "imageUrl", p.ImageURL, MaxURLLength)
	patchDate(&c, "date", p.Date)
	return c.Errors()
}

// ValidateNewSoftware validates a software insert payload.
func ValidateNewSoftware(p types.NewSoftware) []ValidationError {
	var c Collector
	required(&c, "name", p.Name, MaxTitleLength)
	optional(&c, "version", p.Version, MaxShortTextLength)
	optional(&c, "description", p.Description, MaxDescriptionLength)
	optional(&c, "size", p.Size, MaxShortTextLength)
	optional(&c, "downloadUrl", p.DownloadURL, MaxURLLength)
	return c.Errors()
}

// ValidateSoftwarePatch validates a partial software update.
func ValidateSoftwarePatch(p types.SoftwarePatch) []ValidationError {
	var c Collector
	patchRequired(&c, "name", p.Name, MaxTitleLength)
	patchOptional(&c, "version", p.Version, MaxShortTextLength)
	patchOptional(&c, "description", p.Description, MaxDescriptionLength)
	patchOptional(&c, "size", p.Size, MaxShortTextLength)
	patchOptional(&c, "downloadUrl", p.DownloadURL, MaxURLLength)
	patchDate(&c, "date", p.Date)
	return c.Errors()
}

// ValidateNewProduct validates a product insert payload.
func ValidateNewProduct(p types.NewProduct) []ValidationError {
	var c Collector
	required(&c, "name", p.Name, MaxTitleLength)
	optional(&c, "price", p.Price, MaxShortTextLength)
	optional(&c, "rating", p.Rating, MaxShortTextLength)
	optional(&c, "imageUrl", p.ImageURL, MaxURLLength)
	optional(&c, "badge", p.Badge, MaxShortTextLength)
	optional(&c, "description", p.Description, MaxDescriptionLength)
	return c.Errors()
}

// ValidateProductPatch validates a partial product update.
func ValidateProductPatch(p types.ProductPatch) []ValidationError {
	var c Collector
	patchRequired(&c, "name", p.Name, MaxTitleLength)
	patchOptional(&c, "price", p.Price, MaxShortTextLength)
	patchOptional(&c, "rating", p.Rating, MaxShortTextLength)
	patchOptional(&c, "imageUrl", p.ImageURL, MaxURLLength)
	patchOptional(&c, "badge", p.Badge, MaxShortTextLength)
	patchOptional(&c, "description", p.Description, MaxDescriptionLength)
	return c.Errors()
}

// ValidateNewAdminNote validates an admin note save. Empty content is
// allowed; a missing content field is not.
func ValidateNewAdminNote(n types.NewAdminNote) []ValidationError {
	var c Collector
	if n.Content == nil {
		c.Add(&ValidationError{Field: "content", Message: "is required"})
		return c.Errors()
	}
	ValidateText(&c, "content", *n.Content, MaxNoteLength)
	return c.Errors()
}

// ValidateNewUser validates a user insert payload.
func ValidateNewUser(u types.NewUser) []ValidationError {
	var c Collector
	required(&c, "username", u.Username, MaxShortTextLength)
	required(&c, "password", u.Password, MaxShortTextLength*2)
	return c.Errors()
}
