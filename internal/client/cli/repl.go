package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output.
var printlnFn = fmt.Println

// execIface defines the command surface the REPL needs. App satisfies it;
// tests can provide a stub.
type execIface interface {
	isLoggedIn() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	FactoryReset(ctx context.Context) error
	ChangePassword(ctx context.Context) error
	ResetPassword(ctx context.Context) error
	AddTransaction(ctx context.Context) error
	ListTransactions(ctx context.Context) error
	SetBudget(ctx context.Context) error
	Backup(ctx context.Context) error
	Restore(ctx context.Context, strategy string) error
	CheckBackup(ctx context.Context) error
	Export(ctx context.Context) error
	Wallets(ctx context.Context) error
	CreateWallet(ctx context.Context) error
	DeleteWallet(ctx context.Context, id string) error
	SwitchWallet(ctx context.Context, id string) error
	InviteMember(ctx context.Context) error
	RemoveWalletMember(ctx context.Context) error
	ListMembers(ctx context.Context) error
	PublishWallet(ctx context.Context) error
	PullWallet(ctx context.Context) error
	SetLanguage(ctx context.Context, lang string) error
	SetAutoBackup(ctx context.Context, interval string) error
}

// runREPL reads a line, parses the first token as the command, and
// dispatches to methods on 'a'. The loop exits on EOF or "exit"/"quit".
// Handler errors are reported by the handlers themselves so one failed
// command never kills the loop.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("budget> %s > ", statusFn()))
		if !scanner.Scan() {
			return
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]
		args := parts[1:]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: add, (l)ist, budget, backup, restore [merge|replace|skip], check, export,")
				printlnFn("  wallets, createwallet, deletewallet <id>, switch <id|personal>, invite, members, removemember,")
				printlnFn("  publish, pull, lang <code>, autobackup off|daily|weekly, passwd, logout, wipe, exit")
			} else {
				printlnFn("Available commands: register, login, reset, add, (l)ist, budget, lang <code>, wipe, exit")
			}

		case "register":
			_ = a.Register(ctx)

		case "login":
			_ = a.Login(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "passwd":
			_ = a.ChangePassword(ctx)

		case "reset":
			_ = a.ResetPassword(ctx)

		case "wipe":
			_ = a.FactoryReset(ctx)

		case "add":
			_ = a.AddTransaction(ctx)

		case "l", "list":
			_ = a.ListTransactions(ctx)

		case "budget":
			_ = a.SetBudget(ctx)

		case "backup":
			_ = a.Backup(ctx)

		case "restore":
			strategy := ""
			if len(args) > 0 {
				strategy = args[0]
			}
			_ = a.Restore(ctx, strategy)

		case "check":
			_ = a.CheckBackup(ctx)

		case "export":
			_ = a.Export(ctx)

		case "wallets":
			_ = a.Wallets(ctx)

		case "createwallet":
			_ = a.CreateWallet(ctx)

		case "deletewallet":
			if len(args) == 0 {
				printlnFn("Usage: deletewallet <id>")
				continue
			}
			_ = a.DeleteWallet(ctx, args[0])

		case "switch":
			if len(args) == 0 {
				printlnFn("Usage: switch <id|personal>")
				continue
			}
			_ = a.SwitchWallet(ctx, args[0])

		case "invite":
			_ = a.InviteMember(ctx)

		case "members":
			_ = a.ListMembers(ctx)

		case "removemember":
			_ = a.RemoveWalletMember(ctx)

		case "publish":
			_ = a.PublishWallet(ctx)

		case "pull":
			_ = a.PullWallet(ctx)

		case "lang":
			if len(args) == 0 {
				printlnFn("Usage: lang <code>")
				continue
			}
			_ = a.SetLanguage(ctx, args[0])

		case "autobackup":
			if len(args) == 0 {
				printlnFn("Usage: autobackup off|daily|weekly")
				continue
			}
			_ = a.SetAutoBackup(ctx, args[0])

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
