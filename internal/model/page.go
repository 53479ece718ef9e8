package model

import "time"

// Page statuses.
const (
	PageStatusDraft     = "draft"
	PageStatusPublished = "published"
)

// Page is an editable page composed of ordered regions.
type Page struct {
	ID        string    `json:"id" db:"id"`
	Title     string    `json:"title" db:"title"`
	Status    string    `json:"status" db:"status"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// Region variation tags recognized by the visibility filter. Regions with
// any other (or empty) variation always render.
const (
	VariationErrors              = "errors"
	VariationSuccess             = "success"
	VariationResetErrors         = "reset-errors"
	VariationResetRequestSuccess = "reset-request-success"
	VariationResetSuccess        = "reset-success"
	VariationActivationForm      = "activation-form"
	VariationResetForm           = "reset-form"
)

// Binding source names resolvable against the current outcomes.
const (
	BindingErrorMessage      = "error-message"
	BindingUsername          = "username"
	BindingUsernameMessage   = "username-message"
	BindingResetURL          = "reset-url"
	BindingResetErrorMessage = "reset-error-message"
)

// PageRegion is one ordered region of a page. Content is literal HTML;
// when Binding is set, the bound value replaces the %s slot in Content
// (or the whole content for link bindings).
type PageRegion struct {
	ID        string `json:"id" db:"id"`
	PageID    string `json:"page_id" db:"page_id"`
	Position  int    `json:"position" db:"position"`
	Variation string `json:"variation" db:"variation"`
	Binding   string `json:"binding" db:"binding"`
	Content   string `json:"content" db:"content"`
}
