// Package wallet manages shared wallets on the client: membership
// operations and switching the working state between the personal data set
// and a shared wallet's data set.
package wallet

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/sarojnow24/smart-budget-tracker/internal/client/localstore"
	"github.com/sarojnow24/smart-budget-tracker/internal/client/models"
	"github.com/sarojnow24/smart-budget-tracker/internal/client/remote"
	"github.com/sarojnow24/smart-budget-tracker/internal/client/syncer"
	"github.com/sarojnow24/smart-budget-tracker/internal/common"
	"github.com/sarojnow24/smart-budget-tracker/internal/logging"
)

// PersonalWalletID is the sentinel for the personal (non-shared) data set.
const PersonalWalletID = ""

type Controller struct {
	client remote.Client
	store  *localstore.Store
	sync   *syncer.Coordinator
	logger logging.Logger
}

func NewController(client remote.Client, store *localstore.Store,
	sync *syncer.Coordinator, logger logging.Logger) *Controller {
	return &Controller{client: client, store: store, sync: sync, logger: logger}
}

// Active returns the wallet the working state currently belongs to.
func (c *Controller) Active(ctx context.Context) string {
	return c.sync.State(ctx).ActiveWalletID
}

func (c *Controller) setActive(ctx context.Context, walletID string) {
	c.sync.SetActiveWallet(ctx, walletID)
}

// Switch changes the working state to the given wallet. Switching away
// from the personal set first saves it as the baseline; switching back to
// PersonalWalletID restores that baseline. Only the shareable fields move
// on a switch, device settings stay as they are. When a shared wallet has
// no data yet the working state is left as-is so the first publish seeds
// it.
func (c *Controller) Switch(ctx context.Context, walletID string) error {
	current := c.Active(ctx)
	if current == walletID {
		return nil
	}

	if current == PersonalWalletID {
		snap := localstore.LoadSnapshot(ctx, c.store)
		snap.Settings = nil
		localstore.Set(ctx, c.store, localstore.KeyPersonalBaseline, &snap)
	}

	if walletID == PersonalWalletID {
		baseline := localstore.Get[*models.Snapshot](ctx, c.store, localstore.KeyPersonalBaseline, nil)
		if baseline != nil {
			localstore.SaveWalletData(ctx, c.store, *baseline)
		} else {
			c.logger.Warn(ctx, "no personal baseline saved, keeping working state")
		}
		c.setActive(ctx, PersonalWalletID)
		return nil
	}

	rec, err := c.client.GetWalletData(ctx, walletID)
	switch {
	case errors.Is(err, common.ErrorNotFound):
		c.logger.Warn(ctx, "wallet has no data yet, keeping working state", "wallet", walletID)
	case err != nil:
		return err
	default:
		var snap models.Snapshot
		if err := json.Unmarshal(rec.Data, &snap); err != nil {
			return err
		}
		localstore.SaveWalletData(ctx, c.store, snap)
	}

	c.setActive(ctx, walletID)
	return nil
}

// Publish uploads the working state as the active wallet's shared data.
// It is an error while on the personal set; that data goes through the
// backup flow instead.
func (c *Controller) Publish(ctx context.Context) (time.Time, error) {
	walletID := c.Active(ctx)
	if walletID == PersonalWalletID {
		return time.Time{}, common.ErrorNotFound
	}

	snap := localstore.LoadSnapshot(ctx, c.store)
	snap.Settings = nil
	payload, err := json.Marshal(snap)
	if err != nil {
		return time.Time{}, err
	}
	return c.client.PutWalletData(ctx, walletID, payload)
}

// Pull refreshes the working state from the active wallet's shared data.
func (c *Controller) Pull(ctx context.Context) error {
	walletID := c.Active(ctx)
	if walletID == PersonalWalletID {
		return common.ErrorNotFound
	}

	rec, err := c.client.GetWalletData(ctx, walletID)
	if err != nil {
		return err
	}

	var snap models.Snapshot
	if err := json.Unmarshal(rec.Data, &snap); err != nil {
		return err
	}
	localstore.SaveWalletData(ctx, c.store, snap)
	return nil
}

func (c *Controller) List(ctx context.Context) ([]remote.Wallet, error) {
	return c.client.ListWallets(ctx)
}

func (c *Controller) Create(ctx context.Context, name, currency string) (*remote.Wallet, error) {
	return c.client.CreateWallet(ctx, name, currency)
}

// Delete removes a wallet remotely. If it was the active one the working
// state falls back to the personal baseline.
func (c *Controller) Delete(ctx context.Context, walletID string) error {
	if err := c.client.DeleteWallet(ctx, walletID); err != nil {
		return err
	}
	if c.Active(ctx) == walletID {
		return c.Switch(ctx, PersonalWalletID)
	}
	return nil
}

func (c *Controller) Invite(ctx context.Context, walletID, email, role string) (*remote.Member, error) {
	return c.client.InviteMember(ctx, walletID, email, role)
}

func (c *Controller) RemoveMember(ctx context.Context, walletID, userID string) error {
	return c.client.RemoveMember(ctx, walletID, userID)
}

func (c *Controller) Members(ctx context.Context, walletID string) ([]remote.Member, error) {
	return c.client.ListMembers(ctx, walletID)
}
