package cli

import (
	"context"
	"fmt"

	"github.com/sarojnow24/smart-budget-tracker/internal/client/syncer"
)

func (a *App) Backup(ctx context.Context) error {
	updatedAt, err := a.sync.Backup(ctx)
	if err != nil {
		fmt.Fprintln(a.out, a.describeError(ctx, err))
		return err
	}
	fmt.Fprintln(a.out, a.tr(ctx, "backup.done"), "at", updatedAt.Format("2006-01-02 15:04:05"))
	return nil
}

func (a *App) Restore(ctx context.Context, strategy string) error {
	s := syncer.Strategy(strategy)
	if !s.Valid() {
		fmt.Fprintln(a.out, "Usage: restore merge|replace|skip")
		return nil
	}

	applied, err := a.sync.Restore(ctx, s)
	if err != nil {
		fmt.Fprintln(a.out, a.describeError(ctx, err))
		return err
	}
	if !applied {
		fmt.Fprintln(a.out, "Nothing applied: no remote backup, or the server is unreachable")
		return nil
	}

	switch s {
	case syncer.StrategyMerge:
		fmt.Fprintln(a.out, a.tr(ctx, "restore.merged"))
	case syncer.StrategyReplace:
		fmt.Fprintln(a.out, a.tr(ctx, "restore.replaced"))
	case syncer.StrategySkip:
		fmt.Fprintln(a.out, a.tr(ctx, "restore.skipped"))
	}
	return nil
}

func (a *App) CheckBackup(ctx context.Context) error {
	if a.sync.CheckForNewerBackup(ctx) {
		fmt.Fprintln(a.out, a.tr(ctx, "backup.available"))
	} else {
		fmt.Fprintln(a.out, "Local data is up to date")
	}
	return nil
}

func (a *App) Export(ctx context.Context) error {
	url, err := a.client.Export(ctx)
	if err != nil {
		fmt.Fprintln(a.out, a.describeError(ctx, err))
		return err
	}
	fmt.Fprintln(a.out, "Export ready:", url)
	return nil
}
