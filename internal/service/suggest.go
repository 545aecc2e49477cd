package service

import (
	"context"

	"FoodAppML/internal/model"
)

// CatalogRepo определяет интерфейс чтения каталога и истории заказов для подбора
// Реализация может быть на основе базы данных Postgres
type CatalogRepo interface {
	ListCatalog(ctx context.Context) ([]model.CatalogItem, error)
	UserHistory(ctx context.Context, email string) ([]int, error)
}

// SuggestService реализует конвейер подбора позиций по текстовому запросу:
// - чтение каталога с рейтингами и тегами
// - чтение истории заказов пользователя
// - нечеткое сопоставление запроса с именами и тегами
// - ранжирование каждого набора кандидатов
// Конвейер не кэширует данные: каждый запрос перечитывает полное состояние
type SuggestService struct {
	repo  CatalogRepo
	email string
}

// NewSuggestService создаёт сервис подбора для пользователя с заданным email
func NewSuggestService(repo CatalogRepo, email string) *SuggestService {
	return &SuggestService{repo: repo, email: email}
}

// Suggest возвращает два независимо ранжированных списка совпадений для запроса:
// 1. Пустой запрос дает пустые списки без обращения к хранилищу, это не ошибка
// 2. Читает полный каталог и историю заказов пользователя
// 3. Отбирает кандидатов по имени и по тегам нечетким сопоставлением
// 4. Ранжирует оба набора одним и тем же множеством купленных позиций
// Любая ошибка чтения дает единственную ошибку без частичного результата
func (s *SuggestService) Suggest(ctx context.Context, query string) (*model.Suggestions, error) {
	if query == "" {
		return &model.Suggestions{
			NameMatches: []model.CatalogItem{},
			TagMatches:  []model.CatalogItem{},
		}, nil
	}
	catalog, err := s.repo.ListCatalog(ctx)
	if err != nil {
		return nil, err
	}
	history, err := s.repo.UserHistory(ctx, s.email)
	if err != nil {
		return nil, err
	}
	purchased := make(map[int]struct{}, len(history))
	for _, id := range history {
		purchased[id] = struct{}{}
	}
	nameMatches, tagMatches := matchCandidates(query, catalog)
	return &model.Suggestions{
		NameMatches: RankItems(nameMatches, purchased),
		TagMatches:  RankItems(tagMatches, purchased),
	}, nil
}
