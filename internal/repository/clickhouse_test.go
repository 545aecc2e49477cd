package repository

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"

	"FoodAppML/internal/model"
)

func TestBatchInsertEvents(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	repo := NewClickhouseRepo(db)
	defer db.Close()

	events := []model.ItemEvent{
		{ID: 1, Name: "Veg Burger", Price: 5.5, Demand: 10, Stock: 20, Action: "created"},
	}

	// Ожидаем начало транзакции
	mock.ExpectBegin()
	// Ожидаем подготовку запроса
	mock.ExpectPrepare("INSERT INTO item_events_log").
		ExpectExec().
		WithArgs(1, "Veg Burger", 5.5, 10, 20, "created", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))
	// Ожидаем коммит
	mock.ExpectCommit()

	err = repo.BatchInsertEvents(context.Background(), events)
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}
