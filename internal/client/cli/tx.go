package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/sarojnow24/smart-budget-tracker/internal/client/config"
	"github.com/sarojnow24/smart-budget-tracker/internal/client/localstore"
	"github.com/sarojnow24/smart-budget-tracker/internal/client/models"
)

func (a *App) AddTransaction(ctx context.Context) error {
	kind := GetChoice(a.reader, "Transaction type",
		[]string{string(models.TransactionExpense), string(models.TransactionIncome)},
		string(models.TransactionExpense), a.out)

	amountStr, err := GetSimpleText(a.reader, "Amount", a.out)
	if err != nil {
		return err
	}
	amount, err := decimal.NewFromString(amountStr)
	if err != nil {
		fmt.Fprintln(a.out, "Invalid amount:", amountStr)
		return err
	}

	note, err := GetSimpleText(a.reader, "Note (optional)", a.out)
	if err != nil {
		return err
	}

	tx := models.Transaction{
		ID:     uuid.NewString(),
		Type:   models.TransactionType(kind),
		Amount: amount,
		Note:   note,
		Date:   time.Now().UTC(),
	}

	txs := localstore.Get[[]models.Transaction](ctx, a.store, localstore.KeyTransactions, nil)
	txs = append(txs, tx)
	localstore.Set(ctx, a.store, localstore.KeyTransactions, txs)
	a.sync.MarkLocalChange(ctx)

	fmt.Fprintln(a.out, "Added", tx.ID)
	return nil
}

func (a *App) ListTransactions(ctx context.Context) error {
	txs := localstore.Get[[]models.Transaction](ctx, a.store, localstore.KeyTransactions, nil)
	if len(txs) == 0 {
		fmt.Fprintln(a.out, "No transactions yet")
		return nil
	}

	var income, expense decimal.Decimal
	for _, tx := range txs {
		fmt.Fprintf(a.out, "%s  %-7s %10s  %s\n",
			tx.Date.Format("2006-01-02"), tx.Type, tx.Amount.StringFixed(2), tx.Note)
		if tx.Type == models.TransactionIncome {
			income = income.Add(tx.Amount)
		} else {
			expense = expense.Add(tx.Amount)
		}
	}
	fmt.Fprintf(a.out, "Total: %d entries, income %s, expense %s\n",
		len(txs), income.StringFixed(2), expense.StringFixed(2))

	if budget := localstore.Get[*decimal.Decimal](ctx, a.store, localstore.KeyBudget, nil); budget != nil {
		fmt.Fprintf(a.out, "Budget: %s, remaining %s\n",
			budget.StringFixed(2), budget.Sub(expense).StringFixed(2))
	}
	return nil
}

func (a *App) SetBudget(ctx context.Context) error {
	amountStr, err := GetSimpleText(a.reader, "Monthly budget amount (empty to clear)", a.out)
	if err != nil {
		return err
	}

	if amountStr == "" {
		localstore.Set[*decimal.Decimal](ctx, a.store, localstore.KeyBudget, nil)
		a.sync.MarkLocalChange(ctx)
		fmt.Fprintln(a.out, "Budget cleared")
		return nil
	}

	amount, err := decimal.NewFromString(amountStr)
	if err != nil {
		fmt.Fprintln(a.out, "Invalid amount:", amountStr)
		return err
	}

	localstore.Set(ctx, a.store, localstore.KeyBudget, &amount)
	a.sync.MarkLocalChange(ctx)
	fmt.Fprintln(a.out, "Budget set to", amount.StringFixed(2))
	return nil
}

func (a *App) SetAutoBackup(ctx context.Context, interval string) error {
	switch interval {
	case config.AutoBackupOff, config.AutoBackupDaily, config.AutoBackupWeekly:
	default:
		fmt.Fprintln(a.out, "Usage: autobackup off|daily|weekly")
		return nil
	}

	settings := localstore.Get[*models.Settings](ctx, a.store, localstore.KeySettings, nil)
	if settings == nil {
		settings = &models.Settings{}
	}
	settings.AutoBackup = interval
	localstore.Set(ctx, a.store, localstore.KeySettings, settings)
	a.sync.MarkLocalChange(ctx)
	fmt.Fprintln(a.out, "Auto backup set to", interval)
	return nil
}

func (a *App) SetLanguage(ctx context.Context, lang string) error {
	settings := localstore.Get[*models.Settings](ctx, a.store, localstore.KeySettings, nil)
	if settings == nil {
		settings = &models.Settings{}
	}
	settings.Language = lang
	localstore.Set(ctx, a.store, localstore.KeySettings, settings)
	a.sync.MarkLocalChange(ctx)
	fmt.Fprintln(a.out, "Language set to", lang)
	return nil
}
