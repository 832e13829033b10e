package integrity

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"blockcheck/core/fingerprint"
	"blockcheck/core/history"
	"blockcheck/core/reconcile"
	"blockcheck/core/storage/mocks"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

// setupMockDB creates a mock GORM DB for testing.
func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("Failed to open mock sql db: %v", err)
	}

	dialector := mysql.New(mysql.Config{
		Conn:                      db,
		SkipInitializeWithVersion: true,
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to open gorm db: %v", err)
	}

	return gormDB, mock
}

func writeStore(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	return p
}

func TestService_Compare(t *testing.T) {
	dir := t.TempDir()
	ref := writeStore(t, dir, "ref.txt", "h1  a/1.dat\nh2  a/2.dat\nh3  a/3.dat\n")
	cmp := writeStore(t, dir, "cmp.txt", "h1  a/1.dat\nXX  a/2.dat\nh4  a/4.dat\n")

	svc := NewService(fingerprint.NewLoader(nil), nil, zap.NewNop())
	result, err := svc.Compare(context.Background(), ref, cmp)
	require.NoError(t, err)

	assert.Equal(t, []string{"a/3.dat"}, result.OnlyInReference)
	assert.Equal(t, []string{"a/4.dat"}, result.OnlyInComparison)
	assert.Equal(t, []string{"a/1.dat"}, result.Matched)
	require.Len(t, result.Mismatched, 1)
	assert.Equal(t, "a/2.dat", result.Mismatched[0].Path)
	assert.Equal(t, 2, result.Summary.Common)
}

func TestService_EmptyStore(t *testing.T) {
	dir := t.TempDir()
	ref := writeStore(t, dir, "ref.txt", "h1  1.dat\n")
	empty := writeStore(t, dir, "empty.txt", "\n   \njunk\n")

	svc := NewService(fingerprint.NewLoader(nil), nil, zap.NewNop())

	_, err := svc.Compare(context.Background(), ref, empty)
	assert.ErrorIs(t, err, ErrEmptyStore)
	assert.Contains(t, err.Error(), "empty.txt")

	_, err = svc.SyncPlan(context.Background(), empty, ref)
	assert.ErrorIs(t, err, ErrEmptyStore)
}

func TestService_SyncPlan(t *testing.T) {
	client := new(mocks.Client)
	client.On("GetObject", mock.Anything, "hashes", "donor.txt", mock.Anything).
		Return(io.NopCloser(strings.NewReader("h1  1.dat\nh2  2.dat\nh3  3.dat\nh9  9.dat\n")), nil)

	dir := t.TempDir()
	local := writeStore(t, dir, "local.txt", "h1  1.dat\nXX  9.dat\nh5  5.dat\n")

	svc := NewService(fingerprint.NewLoader(client), nil, zap.NewNop())
	plan, err := svc.SyncPlan(context.Background(), "s3://hashes/donor.txt", local)
	require.NoError(t, err)

	assert.Equal(t, []string{"2.dat", "3.dat", "9.dat"}, plan.Paths())
	assert.Equal(t, 2, plan.Summary.Missing)
	assert.Equal(t, 1, plan.Summary.Drifted)
	assert.Equal(t, reconcile.ActionRefetchDrifted, plan.Actions[2].Type)
	client.AssertExpectations(t)
}

func TestService_LoadError(t *testing.T) {
	client := new(mocks.Client)
	client.On("GetObject", mock.Anything, "hashes", "missing.txt", mock.Anything).Return(nil, errors.New("no such key"))

	dir := t.TempDir()
	local := writeStore(t, dir, "local.txt", "h1  1.dat\n")

	svc := NewService(fingerprint.NewLoader(client), nil, zap.NewNop())
	_, err := svc.Compare(context.Background(), local, "s3://hashes/missing.txt")
	assert.ErrorContains(t, err, "no such key")
}

func TestService_Record(t *testing.T) {
	t.Run("Without Database", func(t *testing.T) {
		svc := NewService(fingerprint.NewLoader(nil), nil, zap.NewNop())
		err := svc.Record(context.Background(), &history.Run{ID: "x"})
		assert.ErrorIs(t, err, history.ErrNoDatabase)

		_, err = svc.History(context.Background(), 10)
		assert.ErrorIs(t, err, history.ErrNoDatabase)
	})

	t.Run("With Database", func(t *testing.T) {
		db, sqlMock := setupMockDB(t)
		svc := NewService(fingerprint.NewLoader(nil), history.NewRepository(db), zap.NewNop())

		sqlMock.ExpectBegin()
		sqlMock.ExpectExec(regexp.QuoteMeta("INSERT INTO `blockcheck_runs`")).WillReturnResult(sqlmock.NewResult(1, 1))
		sqlMock.ExpectCommit()

		run := history.NewSyncRun("donor", "local", &reconcile.Plan{})
		require.NoError(t, svc.Record(context.Background(), run))
		assert.NoError(t, sqlMock.ExpectationsWereMet())
	})
}
