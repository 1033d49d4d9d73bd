package cli

import (
	"context"
	"fmt"

	"github.com/sarojnow24/smart-budget-tracker/internal/client/i18n"
	"github.com/sarojnow24/smart-budget-tracker/internal/client/syncer"
	"github.com/sarojnow24/smart-budget-tracker/internal/common"
)

func (a *App) Register(ctx context.Context) error {
	email, err := GetSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		fmt.Fprintln(a.out, err.Error())
		return err
	}

	password, err := GetPassword(a.out, "Enter password (min 8 characters)")
	if err != nil {
		fmt.Fprintln(a.out, err.Error())
		return err
	}
	defer common.WipeByteArray(password)

	if err := a.client.Register(ctx, email, string(password)); err != nil {
		fmt.Fprintln(a.out, a.describeError(ctx, err))
		return err
	}

	fmt.Fprintln(a.out, "Account created, you can log in now")
	return nil
}

// Login authenticates and immediately runs the backup conflict check:
// when the server holds a backup newer than the last sync, the user picks
// merge, replace, or skip before getting back to the prompt.
func (a *App) Login(ctx context.Context) error {
	email, err := GetSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		fmt.Fprintln(a.out, err.Error())
		return err
	}

	password, err := GetPassword(a.out, "Enter password")
	if err != nil {
		fmt.Fprintln(a.out, err.Error())
		return err
	}
	defer common.WipeByteArray(password)

	a.userEmail = email
	if err := a.client.Login(ctx, email, string(password)); err != nil {
		a.userEmail = ""
		fmt.Fprintln(a.out, a.describeError(ctx, err))
		return err
	}

	fmt.Fprintln(a.out, a.tr(ctx, "login.ok"))

	if a.sync.CheckForNewerBackup(ctx) {
		fmt.Fprintln(a.out, a.tr(ctx, "backup.available"))
		choice := GetChoice(a.reader, "Apply it?",
			[]string{string(syncer.StrategyMerge), string(syncer.StrategyReplace), string(syncer.StrategySkip)},
			string(syncer.StrategySkip), a.out)
		return a.Restore(ctx, choice)
	}
	return nil
}

func (a *App) Logout(ctx context.Context) error {
	if err := a.client.Logout(ctx); err != nil {
		a.logger.Warn(ctx, "logout request failed", "error", err)
	}
	a.store.ClearSession(ctx)
	a.userEmail = ""
	fmt.Fprintln(a.out, a.tr(ctx, "logout.ok"))
	return nil
}

// FactoryReset erases everything the client keeps on this device:
// working data, the personal baseline, downloaded language packs, and the
// auth session. The server-side backup is not touched.
func (a *App) FactoryReset(ctx context.Context) error {
	choice := GetChoice(a.reader, "Erase ALL local data and sign out? The remote backup stays on the server.",
		[]string{"yes", "no"}, "no", a.out)
	if choice != "yes" {
		fmt.Fprintln(a.out, "Cancelled")
		return nil
	}

	if a.isLoggedIn() {
		if err := a.client.Logout(ctx); err != nil {
			a.logger.Warn(ctx, "logout request failed", "error", err)
		}
	}

	a.store.ClearAll(ctx)
	a.client.SetSession("", "")
	a.userEmail = ""
	a.registry = i18n.NewRegistry(i18n.Builtin()...)

	fmt.Fprintln(a.out, "Local data erased")
	return nil
}

func (a *App) ChangePassword(ctx context.Context) error {
	current, err := GetPassword(a.out, "Current password")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(current)

	next, err := GetPassword(a.out, "New password (min 8 characters)")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(next)

	if err := a.client.UpdatePassword(ctx, string(current), string(next)); err != nil {
		fmt.Fprintln(a.out, a.describeError(ctx, err))
		return err
	}
	fmt.Fprintln(a.out, "Password updated, other sessions were signed out")
	return nil
}

// ResetPassword drives the two-step reset: request a token by email, then
// confirm it together with the new password.
func (a *App) ResetPassword(ctx context.Context) error {
	email, err := GetSimpleText(a.reader, "Enter account email", a.out)
	if err != nil {
		return err
	}

	token, err := a.client.RequestPasswordReset(ctx, email)
	if err != nil {
		fmt.Fprintln(a.out, a.describeError(ctx, err))
		return err
	}
	if token != "" {
		fmt.Fprintln(a.out, "Reset token:", token)
	}

	token, err = GetSimpleText(a.reader, "Enter reset token", a.out)
	if err != nil {
		return err
	}

	next, err := GetPassword(a.out, "New password (min 8 characters)")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(next)

	if err := a.client.ConfirmPasswordReset(ctx, token, string(next)); err != nil {
		fmt.Fprintln(a.out, a.describeError(ctx, err))
		return err
	}
	fmt.Fprintln(a.out, "Password reset, you can log in now")
	return nil
}
