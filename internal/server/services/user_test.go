package services

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"

	"github.com/sarojnow24/smart-budget-tracker/internal/common"
	sc "github.com/sarojnow24/smart-budget-tracker/internal/server/auth"
	"github.com/sarojnow24/smart-budget-tracker/internal/server/repositories/repomanager"
)

func TestUserService_Register_CreatesUserAndProfileInOneTx(t *testing.T) {
	db, mock := newSQLMockDB(t)
	svc := NewUserService(db, repomanager.NewPostgresRepositoryManager(), testConfig())

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO users`).
		WillReturnRows(sqlmock.NewRows([]string{"created_at"}).AddRow(time.Now()))
	mock.ExpectExec(`INSERT INTO profiles`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	user, err := svc.Register(context.Background(), "a@b.c", []byte("hunter2"))
	require.NoError(t, err)
	require.Equal(t, "a@b.c", user.Email)
	require.NotEmpty(t, user.ID)
	require.True(t, sc.CheckPassword(user.PasswordHash, []byte("hunter2")))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUserService_Register_RollsBackOnProfileFailure(t *testing.T) {
	db, mock := newSQLMockDB(t)
	svc := NewUserService(db, repomanager.NewPostgresRepositoryManager(), testConfig())

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO users`).
		WillReturnRows(sqlmock.NewRows([]string{"created_at"}).AddRow(time.Now()))
	mock.ExpectExec(`INSERT INTO profiles`).
		WillReturnError(context.DeadlineExceeded)
	mock.ExpectRollback()

	_, err := svc.Register(context.Background(), "a@b.c", []byte("hunter2"))
	require.Error(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUserService_Login_UnknownUserIsUnauthorized(t *testing.T) {
	db, mock := newSQLMockDB(t)
	svc := NewUserService(db, repomanager.NewPostgresRepositoryManager(), testConfig())

	mock.ExpectQuery(`SELECT id, email, password_hash`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "password_hash", "verified", "created_at"}))

	_, err := svc.Login(context.Background(), "nobody@example.com", []byte("pw"))
	require.ErrorIs(t, err, common.ErrorUnauthorized)
}

func TestUserService_Login_WrongPasswordIsUnauthorized(t *testing.T) {
	db, mock := newSQLMockDB(t)
	svc := NewUserService(db, repomanager.NewPostgresRepositoryManager(), testConfig())

	hash, err := sc.HashPassword([]byte("right"))
	require.NoError(t, err)

	mock.ExpectQuery(`SELECT id, email, password_hash`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "password_hash", "verified", "created_at"}).
			AddRow("u1", "a@b.c", hash, false, time.Now()))

	_, err = svc.Login(context.Background(), "a@b.c", []byte("wrong"))
	require.ErrorIs(t, err, common.ErrorUnauthorized)
}

func TestUserService_Login_IssuesTokenPair(t *testing.T) {
	db, mock := newSQLMockDB(t)
	svc := NewUserService(db, repomanager.NewPostgresRepositoryManager(), testConfig())

	hash, err := sc.HashPassword([]byte("right"))
	require.NoError(t, err)

	mock.ExpectQuery(`SELECT id, email, password_hash`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "password_hash", "verified", "created_at"}).
			AddRow("u1", "a@b.c", hash, false, time.Now()))
	mock.ExpectExec(`INSERT INTO refresh_tokens`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	pair, err := svc.Login(context.Background(), "a@b.c", []byte("right"))
	require.NoError(t, err)
	require.NotEmpty(t, pair.AccessToken)
	require.NotEmpty(t, pair.RefreshToken)
}

func TestUserService_Refresh_ExpiredTokenRejectedAndDeleted(t *testing.T) {
	db, mock := newSQLMockDB(t)
	svc := NewUserService(db, repomanager.NewPostgresRepositoryManager(), testConfig())

	mock.ExpectQuery(`SELECT token, user_id, expires_at FROM refresh_tokens`).
		WillReturnRows(sqlmock.NewRows([]string{"token", "user_id", "expires_at"}).
			AddRow("rt", "u1", time.Now().Add(-time.Hour)))
	mock.ExpectExec(`DELETE FROM refresh_tokens`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	_, err := svc.Refresh(context.Background(), "rt")
	require.ErrorIs(t, err, common.ErrRefreshTokenExpired)
	require.NoError(t, mock.ExpectationsWereMet())
}
