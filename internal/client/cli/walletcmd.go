package cli

import (
	"context"
	"fmt"

	"github.com/sarojnow24/smart-budget-tracker/internal/client/wallet"
	"github.com/sarojnow24/smart-budget-tracker/internal/common"
)

func (a *App) Wallets(ctx context.Context) error {
	list, err := a.wallets.List(ctx)
	if err != nil {
		fmt.Fprintln(a.out, a.describeError(ctx, err))
		return err
	}
	if len(list) == 0 {
		fmt.Fprintln(a.out, "No shared wallets")
		return nil
	}
	active := a.wallets.Active(ctx)
	for _, w := range list {
		marker := " "
		if w.ID == active {
			marker = "*"
		}
		fmt.Fprintf(a.out, "%s %s  %s (%s)\n", marker, w.ID, w.Name, w.Currency)
	}
	return nil
}

func (a *App) CreateWallet(ctx context.Context) error {
	name, err := GetSimpleText(a.reader, "Wallet name", a.out)
	if err != nil {
		return err
	}
	currency, err := GetSimpleText(a.reader, "Currency code (e.g. EUR)", a.out)
	if err != nil {
		return err
	}

	w, err := a.wallets.Create(ctx, name, currency)
	if err != nil {
		fmt.Fprintln(a.out, a.describeError(ctx, err))
		return err
	}
	fmt.Fprintln(a.out, "Created wallet", w.ID)
	return nil
}

func (a *App) DeleteWallet(ctx context.Context, id string) error {
	answer := GetChoice(a.reader, "Delete wallet "+id+" and all its shared data?",
		[]string{"yes", "no"}, "no", a.out)
	if answer != "yes" {
		return nil
	}

	if err := a.wallets.Delete(ctx, id); err != nil {
		fmt.Fprintln(a.out, a.describeError(ctx, err))
		return err
	}
	fmt.Fprintln(a.out, "Wallet deleted")
	return nil
}

func (a *App) SwitchWallet(ctx context.Context, id string) error {
	if id == "personal" {
		id = wallet.PersonalWalletID
	}
	if err := a.wallets.Switch(ctx, id); err != nil {
		fmt.Fprintln(a.out, a.describeError(ctx, err))
		return err
	}
	fmt.Fprintln(a.out, a.tr(ctx, "wallet.switched"))
	return nil
}

func (a *App) InviteMember(ctx context.Context) error {
	walletID := a.wallets.Active(ctx)
	if walletID == wallet.PersonalWalletID {
		fmt.Fprintln(a.out, "Switch to a shared wallet first")
		return nil
	}

	email, err := GetSimpleText(a.reader, "Email of the user to invite", a.out)
	if err != nil {
		return err
	}
	role := GetChoice(a.reader, "Role",
		[]string{string(common.RoleEditor), string(common.RoleViewer)},
		string(common.RoleViewer), a.out)

	m, err := a.wallets.Invite(ctx, walletID, email, role)
	if err != nil {
		fmt.Fprintln(a.out, a.describeError(ctx, err))
		return err
	}
	fmt.Fprintf(a.out, "Invited %s as %s\n", m.UserID, m.Role)
	return nil
}

func (a *App) RemoveWalletMember(ctx context.Context) error {
	walletID := a.wallets.Active(ctx)
	if walletID == wallet.PersonalWalletID {
		fmt.Fprintln(a.out, "Switch to a shared wallet first")
		return nil
	}

	userID, err := GetSimpleText(a.reader, "User id to remove", a.out)
	if err != nil {
		return err
	}

	if err := a.wallets.RemoveMember(ctx, walletID, userID); err != nil {
		fmt.Fprintln(a.out, a.describeError(ctx, err))
		return err
	}
	fmt.Fprintln(a.out, "Member removed")
	return nil
}

func (a *App) ListMembers(ctx context.Context) error {
	walletID := a.wallets.Active(ctx)
	if walletID == wallet.PersonalWalletID {
		fmt.Fprintln(a.out, "Switch to a shared wallet first")
		return nil
	}

	members, err := a.wallets.Members(ctx, walletID)
	if err != nil {
		fmt.Fprintln(a.out, a.describeError(ctx, err))
		return err
	}
	for _, m := range members {
		fmt.Fprintf(a.out, "%s  %s\n", m.UserID, m.Role)
	}
	return nil
}

func (a *App) PublishWallet(ctx context.Context) error {
	updatedAt, err := a.wallets.Publish(ctx)
	if err != nil {
		fmt.Fprintln(a.out, a.describeError(ctx, err))
		return err
	}
	fmt.Fprintln(a.out, "Wallet data published at", updatedAt.Format("2006-01-02 15:04:05"))
	return nil
}

func (a *App) PullWallet(ctx context.Context) error {
	if err := a.wallets.Pull(ctx); err != nil {
		fmt.Fprintln(a.out, a.describeError(ctx, err))
		return err
	}
	fmt.Fprintln(a.out, "Wallet data refreshed")
	return nil
}
