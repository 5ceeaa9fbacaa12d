package repository

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupMockDB opens gorm over a sqlmock connection so tests can assert
// the SQL the repositories emit.
func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	return db, mock
}

// The pinned search behavior: both sides lowered, so matching is
// case-insensitive regardless of backend collation.
func TestUserRepositorySearchLowersBothSides(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewUserRepository(db)

	mock.ExpectQuery("SELECT count\\(\\*\\) FROM `users` WHERE LOWER\\(name\\) LIKE").
		WithArgs("%alice%").
		WillReturnRows(sqlmock.NewRows([]string{"count(*)"}).AddRow(1))
	mock.ExpectQuery("SELECT \\* FROM `users` WHERE LOWER\\(name\\) LIKE").
		WithArgs("%alice%").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "email", "password"}).
			AddRow("u001", "Alice Anderson", "alice@x.com", "hash"))

	users, total, err := repo.Search(UserFilter{NameContains: "Alice"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, users, 1)
	assert.Equal(t, "u001", users[0].ID)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTaskRepositorySearchMatchesTitleAndDescription(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewTaskRepository(db)

	mock.ExpectQuery("SELECT count\\(\\*\\) FROM `tasks` WHERE \\(LOWER\\(title\\) LIKE \\? OR LOWER\\(description\\) LIKE \\?\\)").
		WithArgs("%report%", "%report%").
		WillReturnRows(sqlmock.NewRows([]string{"count(*)"}).AddRow(1))
	mock.ExpectQuery("SELECT \\* FROM `tasks` WHERE \\(LOWER\\(title\\) LIKE \\? OR LOWER\\(description\\) LIKE \\?\\)").
		WithArgs("%report%", "%report%").
		WillReturnRows(sqlmock.NewRows([]string{"id", "title", "description", "created_at", "status"}).
			AddRow("t001", "Write report now", "Quarterly report draft", "2024-01-01 10:00:00", 0))

	tasks, total, err := repo.Search(TaskFilter{Term: "Report"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, tasks, 1)
	assert.Equal(t, "t001", tasks[0].ID)

	assert.NoError(t, mock.ExpectationsWereMet())
}

// Deleting a task must remove its assignment rows and the task row inside
// one transaction.
func TestTaskRepositoryDeleteCascadesInTransaction(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewTaskRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM `task_assignments` WHERE task_id = \\?").
		WithArgs("t001").
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec("DELETE FROM `tasks` WHERE id = \\?").
		WithArgs("t001").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, repo.Delete("t001"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

// A failing assignment delete must roll the transaction back and leave
// the task row untouched.
func TestTaskRepositoryDeleteRollsBackOnError(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewTaskRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM `task_assignments` WHERE task_id = \\?").
		WithArgs("t001").
		WillReturnError(assert.AnError)
	mock.ExpectRollback()

	err := repo.Delete("t001")
	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepositoryDeleteDoesNotTouchAssignments(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewUserRepository(db)

	// A single DELETE against users, nothing else
	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM `users` WHERE id = \\?").
		WithArgs("u001").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, repo.Delete("u001"))
	assert.NoError(t, mock.ExpectationsWereMet())
}
