package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"FoodAppML/internal/model"
)

// ErrEmptyName возвращается при попытке создания позиции с пустым именем
var ErrEmptyName = errors.New("name cannot be empty")

// ItemRepository реализует доступ к таблице items и связанным таблицам
type ItemRepository struct {
	db *sql.DB
}

// NewItemRepository создает новый репозиторий позиций меню
func NewItemRepository(db *sql.DB) *ItemRepository {
	return &ItemRepository{db: db}
}

// CreateItem добавляет новую позицию в таблицу items
// image может быть nil, если изображение не загружалось
func (r *ItemRepository) CreateItem(ctx context.Context, name string, price float64, image *string, demand, stock int) (*model.Item, error) {
	if name == "" {
		return nil, ErrEmptyName
	}
	query := `INSERT INTO items(name, price, image, demand, stock) VALUES($1, $2, $3, $4, $5)
		RETURNING id`
	var id int
	err := r.db.QueryRowContext(ctx, query, name, price, image, demand, stock).Scan(&id)
	if err != nil {
		return nil, fmt.Errorf("failed to insert item: %w", err)
	}
	return &model.Item{
		ID:     id,
		Name:   name,
		Price:  price,
		Image:  image,
		Demand: demand,
		Stock:  stock,
	}, nil
}

// ListItems возвращает все строки таблицы items без обогащения рейтингами и тегами
func (r *ItemRepository) ListItems(ctx context.Context) ([]model.Item, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name, price, image, demand, stock FROM items ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to select items: %w", err)
	}
	defer rows.Close()
	items := make([]model.Item, 0)
	for rows.Next() {
		var it model.Item
		if err := rows.Scan(&it.ID, &it.Name, &it.Price, &it.Image, &it.Demand, &it.Stock); err != nil {
			return nil, fmt.Errorf("failed to scan item: %w", err)
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate items: %w", err)
	}
	return items, nil
}

// UpdateItem перезаписывает demand, stock и price позиции по идентификатору
// Возвращает число затронутых строк: 0 для несуществующего id, без ошибки
func (r *ItemRepository) UpdateItem(ctx context.Context, id, demand, stock int, price float64) (int64, error) {
	res, err := r.db.ExecContext(ctx, `UPDATE items SET demand=$1, stock=$2, price=$3 WHERE id=$4`, demand, stock, price, id)
	if err != nil {
		return 0, fmt.Errorf("failed to update item: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get affected rows: %w", err)
	}
	return affected, nil
}

// ListCatalog возвращает каталог: все позиции с агрегированными тегами и средним рейтингом
// Коррелированные подзапросы исключают размножение строк при JOIN отзывов и тегов:
// string_agg сохраняет порядок исходных строк тегов, AVG считается ровно по отзывам позиции
func (r *ItemRepository) ListCatalog(ctx context.Context) ([]model.CatalogItem, error) {
	query := `SELECT i.id, i.name, i.price,
		COALESCE((SELECT string_agg(t.tags, ',' ORDER BY t.id) FROM item_tags t WHERE t.item_id = i.id), '') AS tags,
		COALESCE((SELECT AVG(r.rating) FROM item_review r WHERE r.item_id = i.id), 0) AS average_rating
		FROM items i ORDER BY i.id`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to select catalog: %w", err)
	}
	defer rows.Close()
	items := make([]model.CatalogItem, 0)
	for rows.Next() {
		var it model.CatalogItem
		var rawTags string
		if err := rows.Scan(&it.ID, &it.Name, &it.Price, &rawTags, &it.AverageRating); err != nil {
			return nil, fmt.Errorf("failed to scan catalog item: %w", err)
		}
		it.Tags = model.SplitTags(rawTags)
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate catalog: %w", err)
	}
	return items, nil
}

// UserHistory возвращает идентификаторы позиций из прошлых заказов пользователя по email
// Неизвестный пользователь или отсутствие заказов дают пустой список, это не ошибка
func (r *ItemRepository) UserHistory(ctx context.Context, email string) ([]int, error) {
	query := `SELECT oi.item_id
		FROM orders o
		JOIN order_item oi ON o.id = oi.orders_id
		JOIN ourusers u ON o.user_id = u.id
		WHERE u.email = $1`
	rows, err := r.db.QueryContext(ctx, query, email)
	if err != nil {
		return nil, fmt.Errorf("failed to select user history: %w", err)
	}
	defer rows.Close()
	ids := make([]int, 0)
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan history item id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate user history: %w", err)
	}
	return ids, nil
}
