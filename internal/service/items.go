package service

import (
	"context"
	"encoding/json"
	"os"
	"time"

	"FoodAppML/internal/model"
)

// ItemsRepo определяет интерфейс репозитория для операций с позициями меню
// Реализация может быть на основе базы данных Postgres
type ItemsRepo interface {
	CreateItem(ctx context.Context, name string, price float64, image *string, demand, stock int) (*model.Item, error)
	ListItems(ctx context.Context) ([]model.Item, error)
	UpdateItem(ctx context.Context, id, demand, stock int, price float64) (int64, error)
}

// Cache определяет интерфейс кэширования результатов операций (Redis)
// Методы позволяют записывать, читать и инвалидировать кэш по ключу
type Cache interface {
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Get(ctx context.Context, key string) ([]byte, error)
	Invalidate(ctx context.Context, key string) error
}

// Publisher определяет интерфейс публикации событий изменения позиций (NATS)
type Publisher interface {
	PublishEvent(data []byte) error
}

// itemsListKey — ключ кэша списка позиций
const itemsListKey = "items:list"

// cacheTTL задаёт время жизни записей в кэше (Redis), по умолчанию 1 минута или из REDIS_TTL
var cacheTTL = time.Minute

func init() {
	if v := os.Getenv("REDIS_TTL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cacheTTL = d
		}
	}
}

// ItemsService реализует бизнес-логику для позиций меню:
// - вызовы репозитория для создания, списка и обновления
// - кэширование списка позиций и инвалидирование при изменениях
// - публикация событий изменения в NATS
// Кэш и публикация работают по принципу best-effort: их ошибки не валят запрос
type ItemsService struct {
	repo   ItemsRepo
	cache  Cache
	events Publisher
}

// NewItemsService создаёт новый сервис позиций меню
func NewItemsService(r ItemsRepo, c Cache, p Publisher) *ItemsService {
	return &ItemsService{repo: r, cache: c, events: p}
}

// Create создаёт новую позицию и возвращает её:
// 1. Вызывает метод репозитория CreateItem
// 2. Инвалидирует кэш списка позиций
// 3. Публикует событие created в NATS
func (s *ItemsService) Create(ctx context.Context, name string, price float64, image *string, demand, stock int) (*model.Item, error) {
	item, err := s.repo.CreateItem(ctx, name, price, image, demand, stock)
	if err != nil {
		return nil, err
	}
	_ = s.cache.Invalidate(ctx, itemsListKey)
	s.publish(item, "created")
	return item, nil
}

// List возвращает все позиции меню:
// 1. Пытается получить из кэша Redis
// 2. При промахе кэша запрашивает из репозитория
// 3. Кэширует результат
func (s *ItemsService) List(ctx context.Context) ([]model.Item, error) {
	if bytes, err := s.cache.Get(ctx, itemsListKey); err == nil {
		items := make([]model.Item, 0)
		_ = json.Unmarshal(bytes, &items)
		return items, nil
	}
	items, err := s.repo.ListItems(ctx)
	if err != nil {
		return nil, err
	}
	data, _ := json.Marshal(items)
	_ = s.cache.Set(ctx, itemsListKey, data, cacheTTL)
	return items, nil
}

// Update перезаписывает demand, stock и price позиции:
// 1. Вызывает метод репозитория UpdateItem
// 2. Несуществующий id дает 0 затронутых строк и не считается ошибкой
// 3. Инвалидирует кэш списка и публикует событие updated
func (s *ItemsService) Update(ctx context.Context, id, demand, stock int, price float64) error {
	if _, err := s.repo.UpdateItem(ctx, id, demand, stock, price); err != nil {
		return err
	}
	_ = s.cache.Invalidate(ctx, itemsListKey)
	s.publish(&model.Item{ID: id, Price: price, Demand: demand, Stock: stock}, "updated")
	return nil
}

// publish сериализует событие изменения позиции и отправляет его в NATS
func (s *ItemsService) publish(item *model.Item, action string) {
	data, _ := json.Marshal(model.ItemEvent{
		ID:     item.ID,
		Name:   item.Name,
		Price:  item.Price,
		Demand: item.Demand,
		Stock:  item.Stock,
		Action: action,
	})
	_ = s.events.PublishEvent(data)
}
