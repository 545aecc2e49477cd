package repository

import (
	"context"
	"database/sql"
	"log"
	"time"

	"FoodAppML/internal/model"
)

// ClickhouseRepo реализует пакетную запись событий позиций меню в ClickHouse
type ClickhouseRepo struct {
	db *sql.DB
}

// NewClickhouseRepo создает новый репозиторий для ClickHouse
func NewClickhouseRepo(db *sql.DB) *ClickhouseRepo {
	return &ClickhouseRepo{db: db}
}

// BatchInsertEvents записывает пакет событий в таблицу item_events_log в ClickHouse
// Событие содержит данные из модели ItemEvent и текущее время
func (r *ClickhouseRepo) BatchInsertEvents(ctx context.Context, events []model.ItemEvent) error {
	// начинаем 'транзакцию' для batch insert (clickhouse-go собирает блок при PrepareContext)
	tx, err := r.db.Begin()
	if err != nil {
		return err
	}
	log.Printf("Начало пакетной вставки %d событий в ClickHouse", len(events))
	// PrepareContext для одной строки; clickhouse-go соберет несколько Exec в один блок
	query := `INSERT INTO item_events_log (Id, Name, Price, Demand, Stock, Action, EventTime) VALUES (?, ?, ?, ?, ?, ?, ?)`
	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		_ = tx.Rollback()
		return err
	}
	defer func() { _ = stmt.Close() }()
	for _, e := range events {
		_, err := stmt.ExecContext(ctx,
			e.ID, e.Name, e.Price,
			e.Demand, e.Stock, e.Action,
			time.Now(),
		)
		if err != nil {
			_ = tx.Rollback()
			return err
		}
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	log.Printf("Успешно вставлено %d событий в ClickHouse", len(events))
	return nil
}
