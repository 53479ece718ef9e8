package core

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/edvin/accounts/internal/model"
	"github.com/edvin/accounts/internal/platform"
)

type PageService struct {
	db DB
}

func NewPageService(db DB) *PageService {
	return &PageService{db: db}
}

func (s *PageService) GetByID(ctx context.Context, id string) (*model.Page, error) {
	var p model.Page
	err := s.db.QueryRow(ctx,
		"SELECT id, title, status, created_at, updated_at FROM pages WHERE id = $1", id,
	).Scan(&p.ID, &p.Title, &p.Status, &p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get page %s: %w", id, err)
	}
	return &p, nil
}

func (s *PageService) Regions(ctx context.Context, pageID string) ([]model.PageRegion, error) {
	rows, err := s.db.Query(ctx,
		`SELECT id, page_id, position, variation, binding, content
		 FROM page_regions WHERE page_id = $1 ORDER BY position`, pageID,
	)
	if err != nil {
		return nil, fmt.Errorf("list regions for page %s: %w", pageID, err)
	}
	defer rows.Close()

	var regions []model.PageRegion
	for rows.Next() {
		var r model.PageRegion
		if err := rows.Scan(&r.ID, &r.PageID, &r.Position, &r.Variation, &r.Binding, &r.Content); err != nil {
			return nil, fmt.Errorf("scan region: %w", err)
		}
		regions = append(regions, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate regions: %w", err)
	}
	return regions, nil
}

func (s *PageService) Create(ctx context.Context, page *model.Page, regions []model.PageRegion) error {
	_, err := s.db.Exec(ctx,
		`INSERT INTO pages (id, title, status, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		page.ID, page.Title, page.Status, page.CreatedAt, page.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert page: %w", err)
	}

	for _, r := range regions {
		_, err := s.db.Exec(ctx,
			`INSERT INTO page_regions (id, page_id, position, variation, binding, content)
			 VALUES ($1, $2, $3, $4, $5, $6)`,
			r.ID, page.ID, r.Position, r.Variation, r.Binding, r.Content,
		)
		if err != nil {
			return fmt.Errorf("insert region %d for page %s: %w", r.Position, page.ID, err)
		}
	}
	return nil
}

// SeedDefaults creates the default activation and password-reset pages as
// drafts and points the page-id settings at them. Pages that are already
// configured and present are left untouched.
func (s *PageService) SeedDefaults(ctx context.Context, settings *SettingsService) error {
	if err := s.seedPage(ctx, settings, SettingActivationPageID, "Activate Your Account", DefaultActivationRegions()); err != nil {
		return err
	}
	return s.seedPage(ctx, settings, SettingPasswordResetPageID, "Reset Your Password", DefaultResetRegions())
}

func (s *PageService) seedPage(ctx context.Context, settings *SettingsService, settingKey, title string, regions []model.PageRegion) error {
	existingID, err := settings.Get(ctx, settingKey)
	if err != nil {
		return err
	}
	if existingID != "" {
		existing, err := s.GetByID(ctx, existingID)
		if err != nil {
			return err
		}
		if existing != nil {
			return nil
		}
	}

	now := time.Now()
	page := &model.Page{
		ID:        platform.NewID(),
		Title:     title,
		Status:    model.PageStatusDraft,
		CreatedAt: now,
		UpdatedAt: now,
	}
	for i := range regions {
		regions[i].ID = platform.NewID()
		regions[i].PageID = page.ID
		regions[i].Position = i
	}
	if err := s.Create(ctx, page, regions); err != nil {
		return err
	}
	return settings.Set(ctx, settingKey, page.ID)
}

// DefaultActivationRegions is the activation page layout used when seeding
// and when no page has been configured yet.
func DefaultActivationRegions() []model.PageRegion {
	return []model.PageRegion{
		{Content: `<h1 class="page-title">Activate Your Account</h1>`},
		{Variation: model.VariationActivationForm},
		{
			Variation: model.VariationErrors,
			Binding:   model.BindingErrorMessage,
			Content:   `<div class="activation-errors"><p>%s</p></div>`,
		},
		{
			Variation: model.VariationSuccess,
			Content:   `<div class="activation-success"><p>Your account has been successfully activated.</p></div>`,
		},
		{
			Variation: model.VariationSuccess,
			Binding:   model.BindingUsernameMessage,
			Content:   `<p>%s</p>`,
		},
		{
			Variation: model.VariationSuccess,
			Binding:   model.BindingResetURL,
			Content:   `<p><a class="button" href="%s">Set your password</a></p>`,
		},
	}
}

// DefaultResetRegions is the password-reset page layout used when seeding
// and when no page has been configured yet.
func DefaultResetRegions() []model.PageRegion {
	return []model.PageRegion{
		{Content: `<h1 class="page-title">Reset Your Password</h1>`},
		{Variation: model.VariationResetForm},
		{
			Variation: model.VariationResetErrors,
			Binding:   model.BindingResetErrorMessage,
			Content:   `<div class="reset-errors"><p>%s</p></div>`,
		},
		{
			Variation: model.VariationResetRequestSuccess,
			Content:   `<div class="reset-request-success"><p>If an account exists with that email address or username, you will receive a password reset link shortly. Please check your inbox.</p></div>`,
		},
		{
			Variation: model.VariationResetSuccess,
			Content:   `<div class="reset-success"><p>Your password has been set. You can now log in.</p></div>`,
		},
	}
}
