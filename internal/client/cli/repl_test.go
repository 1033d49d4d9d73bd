package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

// stubExec records which commands the REPL dispatched.
type stubExec struct {
	loggedIn bool
	calls    []string
}

func (s *stubExec) record(name string, args ...string) error {
	call := name
	if len(args) > 0 {
		call += " " + strings.Join(args, " ")
	}
	s.calls = append(s.calls, call)
	return nil
}

func (s *stubExec) isLoggedIn() bool                   { return s.loggedIn }
func (s *stubExec) Register(ctx context.Context) error { return s.record("register") }
func (s *stubExec) Login(ctx context.Context) error    { return s.record("login") }
func (s *stubExec) Logout(ctx context.Context) error   { return s.record("logout") }
func (s *stubExec) ChangePassword(ctx context.Context) error {
	return s.record("passwd")
}
func (s *stubExec) ResetPassword(ctx context.Context) error { return s.record("reset") }
func (s *stubExec) FactoryReset(ctx context.Context) error  { return s.record("wipe") }
func (s *stubExec) AddTransaction(ctx context.Context) error {
	return s.record("add")
}
func (s *stubExec) ListTransactions(ctx context.Context) error { return s.record("list") }
func (s *stubExec) SetBudget(ctx context.Context) error        { return s.record("budget") }
func (s *stubExec) Backup(ctx context.Context) error           { return s.record("backup") }
func (s *stubExec) Restore(ctx context.Context, strategy string) error {
	return s.record("restore", strategy)
}
func (s *stubExec) CheckBackup(ctx context.Context) error { return s.record("check") }
func (s *stubExec) Export(ctx context.Context) error      { return s.record("export") }
func (s *stubExec) Wallets(ctx context.Context) error     { return s.record("wallets") }
func (s *stubExec) CreateWallet(ctx context.Context) error {
	return s.record("createwallet")
}
func (s *stubExec) DeleteWallet(ctx context.Context, id string) error {
	return s.record("deletewallet", id)
}
func (s *stubExec) SwitchWallet(ctx context.Context, id string) error {
	return s.record("switch", id)
}
func (s *stubExec) InviteMember(ctx context.Context) error { return s.record("invite") }
func (s *stubExec) RemoveWalletMember(ctx context.Context) error {
	return s.record("removemember")
}
func (s *stubExec) ListMembers(ctx context.Context) error   { return s.record("members") }
func (s *stubExec) PublishWallet(ctx context.Context) error { return s.record("publish") }
func (s *stubExec) PullWallet(ctx context.Context) error    { return s.record("pull") }
func (s *stubExec) SetLanguage(ctx context.Context, lang string) error {
	return s.record("lang", lang)
}
func (s *stubExec) SetAutoBackup(ctx context.Context, interval string) error {
	return s.record("autobackup", interval)
}

func runWithInput(t *testing.T, input string, loggedIn bool) (*stubExec, []string) {
	t.Helper()

	var printed []string
	orig := printlnFn
	printlnFn = func(a ...any) (int, error) {
		printed = append(printed, fmt.Sprintln(a...))
		return 0, nil
	}
	defer func() { printlnFn = orig }()

	stub := &stubExec{loggedIn: loggedIn}
	scanner := bufio.NewScanner(strings.NewReader(input))
	runREPL(context.Background(), stub, func() string { return "test" }, scanner)
	return stub, printed
}

func TestREPLDispatchesCommands(t *testing.T) {
	stub, _ := runWithInput(t, "login\nadd\nlist\nbackup\nexit\n", true)
	assert.Equal(t, []string{"login", "add", "list", "backup"}, stub.calls)
}

func TestREPLRestorePassesStrategy(t *testing.T) {
	stub, _ := runWithInput(t, "restore merge\nrestore\nexit\n", true)
	assert.Equal(t, []string{"restore merge", "restore "}, stub.calls)
}

func TestREPLSwitchRequiresArgument(t *testing.T) {
	stub, printed := runWithInput(t, "switch\nswitch w1\nexit\n", true)

	assert.Equal(t, []string{"switch w1"}, stub.calls)
	assert.Contains(t, strings.Join(printed, ""), "Usage: switch")
}

func TestREPLUnknownCommand(t *testing.T) {
	stub, printed := runWithInput(t, "frobnicate\nexit\n", true)

	assert.Empty(t, stub.calls)
	assert.Contains(t, strings.Join(printed, ""), "Unknown command")
}

func TestREPLAutoBackupPassesInterval(t *testing.T) {
	stub, _ := runWithInput(t, "autobackup daily\nexit\n", true)
	assert.Equal(t, []string{"autobackup daily"}, stub.calls)
}

func TestREPLWipeDispatchesFactoryReset(t *testing.T) {
	stub, _ := runWithInput(t, "wipe\nexit\n", false)
	assert.Equal(t, []string{"wipe"}, stub.calls)
}

func TestREPLListShortcut(t *testing.T) {
	stub, _ := runWithInput(t, "l\nexit\n", true)
	assert.Equal(t, []string{"list"}, stub.calls)
}

func TestREPLExitsOnEOF(t *testing.T) {
	stub, _ := runWithInput(t, "wallets\n", true)
	assert.Equal(t, []string{"wallets"}, stub.calls)
}

func TestREPLHelpDependsOnLoginState(t *testing.T) {
	_, printedOut := runWithInput(t, "help\nexit\n", false)
	assert.Contains(t, strings.Join(printedOut, ""), "register, login")

	_, printedIn := runWithInput(t, "help\nexit\n", true)
	assert.Contains(t, strings.Join(printedIn, ""), "backup")
}

func TestREPLIgnoresBlankLines(t *testing.T) {
	stub, _ := runWithInput(t, "\n\nwallets\nexit\n", true)
	assert.Equal(t, []string{"wallets"}, stub.calls)
}
