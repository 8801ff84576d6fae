package app

import (
	"webbuilder/internal/domain"
	"webbuilder/internal/service"
)

// ============================================================
// Preview mode
// ============================================================

// PreviewClick follows a button's page link and runs its API call. The
// formatted response is in the result's Message.
func (a *App) PreviewClick(elementID string) (service.PreviewResult, error) {
	return a.preview.Click(a.ctx, elementID)
}

func (a *App) ListAPICalls(limit int) ([]domain.APICall, error) {
	calls, err := a.preview.RecentCalls(limit)
	if err != nil {
		return nil, err
	}
	if calls == nil {
		calls = []domain.APICall{}
	}
	return calls, nil
}

// PruneAPICalls runs the retention job now and returns the number of rows
// removed.
func (a *App) PruneAPICalls() (int64, error) {
	if a.retention == nil {
		return 0, nil
	}
	return a.retention.PruneNow()
}
