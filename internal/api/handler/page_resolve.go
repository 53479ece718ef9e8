package handler

import (
	"context"

	"github.com/edvin/accounts/internal/core"
	"github.com/edvin/accounts/internal/model"
)

// resolvePage loads the configured page and its regions. When no page is
// configured, or the configured page is gone, the built-in layout is used
// so the flow keeps working.
func resolvePage(ctx context.Context, pages *core.PageService, pageID, fallbackTitle string, fallback []model.PageRegion) (*model.Page, []model.PageRegion, error) {
	if pageID != "" {
		page, err := pages.GetByID(ctx, pageID)
		if err != nil {
			return nil, nil, err
		}
		if page != nil {
			regions, err := pages.Regions(ctx, page.ID)
			if err != nil {
				return nil, nil, err
			}
			return page, regions, nil
		}
	}
	return &model.Page{Title: fallbackTitle}, fallback, nil
}
