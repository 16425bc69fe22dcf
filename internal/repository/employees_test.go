package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var employeeRowColumns = []string{"id", "branch_id", "shift_id", "first_name", "last_name", "phone", "tc_no", "position",
	"hire_date", "annual_leave_days", "is_active", "created_at", "updated_at"}

func TestEmployeeRepository_List(t *testing.T) {
	db, mock := newMock(t)
	repo := NewEmployeeRepository(db)
	now := time.Now()
	branch, active := 3, true

	mock.ExpectQuery(regexp.QuoteMeta("FROM employees WHERE branch_id = $1 AND is_active = $2 ORDER BY last_name")).
		WithArgs(3, true).
		WillReturnRows(sqlmock.NewRows(employeeRowColumns).
			AddRow(1, 3, 2, "Mehmet", "Demir", "05321234567", "12345678901", "Kasiyer", now, 14, true, now, now).
			AddRow(2, 3, nil, "Ayşe", "Kaya", "", "10987654321", "", now, 14, true, now, now))

	list, err := repo.List(context.Background(), EmployeeFilter{BranchID: &branch, Active: &active})
	require.NoError(t, err)
	require.Len(t, list, 2)
	require.NotNil(t, list[0].ShiftID)
	assert.Equal(t, 2, *list[0].ShiftID)
	assert.Nil(t, list[1].ShiftID)

	mock.ExpectQuery(regexp.QuoteMeta("FROM employees ORDER BY last_name")).
		WillReturnRows(sqlmock.NewRows(employeeRowColumns))

	list, err = repo.List(context.Background(), EmployeeFilter{})
	require.NoError(t, err)
	assert.Empty(t, list)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEmployeeRepository_Deactivate(t *testing.T) {
	db, mock := newMock(t)
	repo := NewEmployeeRepository(db)

	mock.ExpectExec("UPDATE employees SET is_active = FALSE").WithArgs(1).WillReturnResult(sqlmock.NewResult(0, 1))
	assert.NoError(t, repo.Deactivate(context.Background(), 1))

	mock.ExpectExec("UPDATE employees SET is_active = FALSE").WithArgs(99).WillReturnResult(sqlmock.NewResult(0, 0))
	assert.ErrorIs(t, repo.Deactivate(context.Background(), 99), ErrNotFound)

	assert.NoError(t, mock.ExpectationsWereMet())
}
