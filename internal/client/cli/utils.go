package cli

import (
	"context"
	"errors"

	"github.com/sarojnow24/smart-budget-tracker/internal/common"
)

// describeError turns sentinel errors into translated, user-facing text.
// Unrecognized errors pass through verbatim.
func (a *App) describeError(ctx context.Context, err error) string {
	switch {
	case errors.Is(err, common.ErrOffline):
		return a.tr(ctx, "error.offline")
	case errors.Is(err, common.ErrPayloadTooLarge):
		return a.tr(ctx, "error.too_large")
	case errors.Is(err, common.ErrTimeout):
		return a.tr(ctx, "error.timeout")
	case errors.Is(err, common.ErrorUnauthorized):
		return a.tr(ctx, "error.unauthorized")
	default:
		return err.Error()
	}
}
