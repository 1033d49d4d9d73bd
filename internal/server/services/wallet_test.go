package services

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"

	"github.com/sarojnow24/smart-budget-tracker/internal/common"
	"github.com/sarojnow24/smart-budget-tracker/internal/dbx"
	"github.com/sarojnow24/smart-budget-tracker/internal/logging"
	"github.com/sarojnow24/smart-budget-tracker/internal/server/config"
	"github.com/sarojnow24/smart-budget-tracker/internal/server/models"
	"github.com/sarojnow24/smart-budget-tracker/internal/server/repositories/backups"
	"github.com/sarojnow24/smart-budget-tracker/internal/server/repositories/memberships"
	"github.com/sarojnow24/smart-budget-tracker/internal/server/repositories/profiles"
	"github.com/sarojnow24/smart-budget-tracker/internal/server/repositories/refreshtokens"
	"github.com/sarojnow24/smart-budget-tracker/internal/server/repositories/repomanager"
	"github.com/sarojnow24/smart-budget-tracker/internal/server/repositories/resettokens"
	"github.com/sarojnow24/smart-budget-tracker/internal/server/repositories/users"
	"github.com/sarojnow24/smart-budget-tracker/internal/server/repositories/wallets"
)

func testLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.NewTextHandler(os.Stderr, nil)))
}

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.LoadDefaults()
	return cfg
}

func newSQLMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db, mock
}

// Create runs the wallet insert and the owner-membership insert inside one
// transaction; a failing membership insert must roll the wallet insert back.
func TestWalletService_Create_RollsBackOnMembershipFailure(t *testing.T) {
	db, mock := newSQLMockDB(t)
	svc := NewWalletService(db, repomanager.NewPostgresRepositoryManager(), testConfig(), testLogger())

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO wallets`).
		WillReturnRows(sqlmock.NewRows([]string{"created_at"}).AddRow(time.Now()))
	mock.ExpectExec(`INSERT INTO wallet_members`).
		WillReturnError(errors.New("membership insert failed"))
	mock.ExpectRollback()

	_, err := svc.Create(context.Background(), "owner-1", "Family", "EUR")
	require.Error(t, err)
	require.NoError(t, mock.ExpectationsWereMet(), "wallet insert must be rolled back, not committed")
}

func TestWalletService_Create_CommitsBothRows(t *testing.T) {
	db, mock := newSQLMockDB(t)
	svc := NewWalletService(db, repomanager.NewPostgresRepositoryManager(), testConfig(), testLogger())

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO wallets`).
		WillReturnRows(sqlmock.NewRows([]string{"created_at"}).AddRow(time.Now()))
	mock.ExpectExec(`INSERT INTO wallet_members`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	w, err := svc.Create(context.Background(), "owner-1", "Family", "EUR")
	require.NoError(t, err)
	require.Equal(t, "Family", w.Name)
	require.Equal(t, "owner-1", w.CreatedBy)
	require.NotEmpty(t, w.ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

// --- fakes for the role-gating and invite flows ---

type fakeMembershipsRepo struct {
	rows      map[string]*models.Membership // key walletID|userID
	createErr error
	created   []*models.Membership
	deleted   [][2]string
}

func membershipKey(walletID, userID string) string { return walletID + "|" + userID }

func (f *fakeMembershipsRepo) Create(ctx context.Context, m *models.Membership) error {
	if f.createErr != nil {
		return f.createErr
	}
	if _, ok := f.rows[membershipKey(m.WalletID, m.UserID)]; ok {
		return common.ErrorAlreadyExists
	}
	f.created = append(f.created, m)
	return nil
}

func (f *fakeMembershipsRepo) Get(ctx context.Context, walletID, userID string) (*models.Membership, error) {
	m, ok := f.rows[membershipKey(walletID, userID)]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return m, nil
}

func (f *fakeMembershipsRepo) List(ctx context.Context, walletID string) ([]*models.Membership, error) {
	var out []*models.Membership
	for _, m := range f.rows {
		if m.WalletID == walletID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (f *fakeMembershipsRepo) Delete(ctx context.Context, walletID, userID string) error {
	f.deleted = append(f.deleted, [2]string{walletID, userID})
	return nil
}

func (f *fakeMembershipsRepo) DeleteAllForWallet(ctx context.Context, walletID string) error {
	return nil
}

type fakeProfilesRepo struct {
	byEmail map[string]*models.Profile // lower-cased key
}

func (f *fakeProfilesRepo) Upsert(ctx context.Context, p *models.Profile) error { return nil }

func (f *fakeProfilesRepo) GetByEmail(ctx context.Context, email string) (*models.Profile, error) {
	p, ok := f.byEmail[lower(email)]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return p, nil
}

func (f *fakeProfilesRepo) GetByUserID(ctx context.Context, userID string) (*models.Profile, error) {
	return nil, common.ErrorNotFound
}

func lower(s string) string {
	b := []byte(s)
	for i := range b {
		if b[i] >= 'A' && b[i] <= 'Z' {
			b[i] += 'a' - 'A'
		}
	}
	return string(b)
}

type fakeWalletsRepo struct {
	deleteErr     error
	deleted       []string
	deletedData   []string
	deleteDataErr error
}

func (f *fakeWalletsRepo) Create(ctx context.Context, w *models.Wallet) error { return nil }
func (f *fakeWalletsRepo) GetByID(ctx context.Context, id string) (*models.Wallet, error) {
	return nil, common.ErrorNotFound
}
func (f *fakeWalletsRepo) ListForUser(ctx context.Context, userID string) ([]*models.Wallet, error) {
	return nil, nil
}
func (f *fakeWalletsRepo) Delete(ctx context.Context, id string) error {
	f.deleted = append(f.deleted, id)
	return f.deleteErr
}
func (f *fakeWalletsRepo) UpsertData(ctx context.Context, rec *models.WalletDataRecord) (time.Time, error) {
	return time.Now(), nil
}
func (f *fakeWalletsRepo) GetData(ctx context.Context, walletID string) (*models.WalletDataRecord, error) {
	return nil, common.ErrorNotFound
}
func (f *fakeWalletsRepo) DeleteData(ctx context.Context, walletID string) error {
	f.deletedData = append(f.deletedData, walletID)
	return f.deleteDataErr
}

// fakeRM satisfies repomanager.RepositoryManager with canned repos.
type fakeRM struct {
	memberships *fakeMembershipsRepo
	profiles    *fakeProfilesRepo
	wallets     *fakeWalletsRepo
}

func (f *fakeRM) Users(db dbx.DBTX) users.Repository                 { return nil }
func (f *fakeRM) RefreshTokens(db dbx.DBTX) refreshtokens.Repository { return nil }
func (f *fakeRM) ResetTokens(db dbx.DBTX) resettokens.Repository     { return nil }
func (f *fakeRM) Profiles(db dbx.DBTX) profiles.Repository           { return f.profiles }
func (f *fakeRM) Backups(db dbx.DBTX) backups.Repository             { return nil }
func (f *fakeRM) Wallets(db dbx.DBTX) wallets.Repository             { return f.wallets }
func (f *fakeRM) Memberships(db dbx.DBTX) memberships.Repository     { return f.memberships }

func newFakeRM() *fakeRM {
	return &fakeRM{
		memberships: &fakeMembershipsRepo{rows: map[string]*models.Membership{}},
		profiles:    &fakeProfilesRepo{byEmail: map[string]*models.Profile{}},
		wallets:     &fakeWalletsRepo{},
	}
}

func (f *fakeRM) addMembership(walletID, userID string, role common.MembershipRole) {
	f.memberships.rows[membershipKey(walletID, userID)] = &models.Membership{
		WalletID: walletID, UserID: userID, Role: role,
	}
}

func TestWalletService_Invite_UserNotFound(t *testing.T) {
	rm := newFakeRM()
	rm.addMembership("w1", "owner-1", common.RoleOwner)
	svc := NewWalletService(nil, rm, testConfig(), testLogger())

	_, err := svc.Invite(context.Background(), "owner-1", "w1", "user@example.com", common.RoleEditor)
	require.ErrorIs(t, err, common.ErrorNotFound)
	require.Empty(t, rm.memberships.created, "no membership row may be created")
}

func TestWalletService_Invite_AlreadyMember_DistinctFromNotFound(t *testing.T) {
	rm := newFakeRM()
	rm.addMembership("w1", "owner-1", common.RoleOwner)
	rm.addMembership("w1", "user-2", common.RoleEditor)
	rm.profiles.byEmail["user@example.com"] = &models.Profile{UserID: "user-2", Email: "User@Example.com"}
	svc := NewWalletService(nil, rm, testConfig(), testLogger())

	_, err := svc.Invite(context.Background(), "owner-1", "w1", "USER@EXAMPLE.COM", common.RoleViewer)
	require.ErrorIs(t, err, common.ErrorAlreadyExists)
	require.NotErrorIs(t, err, common.ErrorNotFound)
}

func TestWalletService_Invite_CaseInsensitiveLookup(t *testing.T) {
	rm := newFakeRM()
	rm.addMembership("w1", "owner-1", common.RoleOwner)
	rm.profiles.byEmail["user@example.com"] = &models.Profile{UserID: "user-2"}
	svc := NewWalletService(nil, rm, testConfig(), testLogger())

	m, err := svc.Invite(context.Background(), "owner-1", "w1", "User@Example.COM", common.RoleViewer)
	require.NoError(t, err)
	require.Equal(t, "user-2", m.UserID)
	require.Equal(t, common.RoleViewer, m.Role)
}

func TestWalletService_Invite_NonOwnerRejected(t *testing.T) {
	rm := newFakeRM()
	rm.addMembership("w1", "editor-1", common.RoleEditor)
	svc := NewWalletService(nil, rm, testConfig(), testLogger())

	_, err := svc.Invite(context.Background(), "editor-1", "w1", "user@example.com", common.RoleEditor)
	require.ErrorIs(t, err, common.ErrorUnauthorized)
}

func TestWalletService_Invite_OwnerRoleRejected(t *testing.T) {
	rm := newFakeRM()
	rm.addMembership("w1", "owner-1", common.RoleOwner)
	rm.profiles.byEmail["user@example.com"] = &models.Profile{UserID: "user-2"}
	svc := NewWalletService(nil, rm, testConfig(), testLogger())

	_, err := svc.Invite(context.Background(), "owner-1", "w1", "user@example.com", common.RoleOwner)
	require.Error(t, err)
}

func TestWalletService_RemoveMember_OwnerCannotRemoveSelf(t *testing.T) {
	rm := newFakeRM()
	rm.addMembership("w1", "owner-1", common.RoleOwner)
	svc := NewWalletService(nil, rm, testConfig(), testLogger())

	err := svc.RemoveMember(context.Background(), "owner-1", "w1", "owner-1")
	require.ErrorIs(t, err, common.ErrorUnauthorized)
	require.Empty(t, rm.memberships.deleted)
}

func TestWalletService_RemoveMember_NonOwnerMemberRemoved(t *testing.T) {
	rm := newFakeRM()
	rm.addMembership("w1", "owner-1", common.RoleOwner)
	rm.addMembership("w1", "viewer-1", common.RoleViewer)
	svc := NewWalletService(nil, rm, testConfig(), testLogger())

	require.NoError(t, svc.RemoveMember(context.Background(), "owner-1", "w1", "viewer-1"))
	require.Equal(t, [][2]string{{"w1", "viewer-1"}}, rm.memberships.deleted)
}

func TestWalletService_Delete_RequiresOwner(t *testing.T) {
	rm := newFakeRM()
	rm.addMembership("w1", "viewer-1", common.RoleViewer)
	svc := NewWalletService(nil, rm, testConfig(), testLogger())

	err := svc.Delete(context.Background(), "viewer-1", "w1")
	require.ErrorIs(t, err, common.ErrorUnauthorized)
	require.Empty(t, rm.wallets.deleted)
}

func TestWalletService_Delete_ToleratesEarlyStepFailure(t *testing.T) {
	rm := newFakeRM()
	rm.addMembership("w1", "owner-1", common.RoleOwner)
	rm.wallets.deleteDataErr = errors.New("data delete failed")
	svc := NewWalletService(nil, rm, testConfig(), testLogger())

	require.NoError(t, svc.Delete(context.Background(), "owner-1", "w1"),
		"data-blob cleanup failure is best-effort")
	require.Equal(t, []string{"w1"}, rm.wallets.deleted)
}

func TestWalletService_Delete_SurfacesWalletRowFailure(t *testing.T) {
	rm := newFakeRM()
	rm.addMembership("w1", "owner-1", common.RoleOwner)
	rm.wallets.deleteErr = errors.New("wallet delete failed")
	svc := NewWalletService(nil, rm, testConfig(), testLogger())

	require.Error(t, svc.Delete(context.Background(), "owner-1", "w1"))
}

func TestWalletService_PutData_ViewerRejected(t *testing.T) {
	rm := newFakeRM()
	rm.addMembership("w1", "viewer-1", common.RoleViewer)
	svc := NewWalletService(nil, rm, testConfig(), testLogger())

	_, err := svc.PutData(context.Background(), "viewer-1", "w1", json.RawMessage(`{}`))
	require.ErrorIs(t, err, common.ErrorUnauthorized)
}

func TestWalletService_PutData_EditorAllowed(t *testing.T) {
	rm := newFakeRM()
	rm.addMembership("w1", "editor-1", common.RoleEditor)
	svc := NewWalletService(nil, rm, testConfig(), testLogger())

	_, err := svc.PutData(context.Background(), "editor-1", "w1", json.RawMessage(`{"transactions":[]}`))
	require.NoError(t, err)
}
