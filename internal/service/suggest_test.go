package service

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"FoodAppML/internal/model"
)

// mockCatalogRepo реализует интерфейс CatalogRepo для тестирования SuggestService.
// Поля-функции позволяют настроить возвращаемые значения и ошибки:
// - catalogFn: поведение ListCatalog
// - historyFn: поведение UserHistory
type mockCatalogRepo struct {
	catalogFn func(ctx context.Context) ([]model.CatalogItem, error)
	historyFn func(ctx context.Context, email string) ([]int, error)
}

func (m *mockCatalogRepo) ListCatalog(ctx context.Context) ([]model.CatalogItem, error) {
	return m.catalogFn(ctx)
}
func (m *mockCatalogRepo) UserHistory(ctx context.Context, email string) ([]int, error) {
	return m.historyFn(ctx, email)
}

// TestSuggest_EmptyQuery проверяет, что пустой запрос дает пустые списки без обращения к хранилищу
func TestSuggest_EmptyQuery(t *testing.T) {
	repo := &mockCatalogRepo{
		catalogFn: func(ctx context.Context) ([]model.CatalogItem, error) {
			t.Fatal("catalog should not be read for empty query")
			return nil, nil
		},
		historyFn: func(ctx context.Context, email string) ([]int, error) {
			t.Fatal("history should not be read for empty query")
			return nil, nil
		},
	}
	s := NewSuggestService(repo, "test12@gmail.com")
	got, err := s.Suggest(context.Background(), "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := &model.Suggestions{NameMatches: []model.CatalogItem{}, TagMatches: []model.CatalogItem{}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %+v, want %+v", got, want)
	}
}

// TestSuggest_BurgerScenario проверяет сквозной сценарий:
// каталог из Veg Burger (теги spicy,veg, рейтинг 4.5) и Burger King Combo (без тегов, рейтинг 3.0),
// история содержит Veg Burger, запрос 'burger' — купленная позиция первая несмотря на рейтинги
func TestSuggest_BurgerScenario(t *testing.T) {
	itemA := model.CatalogItem{ID: 1, Name: "Veg Burger", Tags: []string{"spicy", "veg"}, AverageRating: 4.5}
	itemB := model.CatalogItem{ID: 2, Name: "Burger King Combo", Tags: []string{}, AverageRating: 3.0}
	repo := &mockCatalogRepo{
		catalogFn: func(ctx context.Context) ([]model.CatalogItem, error) {
			return []model.CatalogItem{itemA, itemB}, nil
		},
		historyFn: func(ctx context.Context, email string) ([]int, error) {
			// проверяем, что история читается для заданного пользователя
			if email != "test12@gmail.com" {
				t.Fatalf("unexpected email: %s", email)
			}
			return []int{1}, nil
		},
	}
	s := NewSuggestService(repo, "test12@gmail.com")
	got, err := s.Suggest(context.Background(), "burger")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(got.NameMatches, []model.CatalogItem{itemA, itemB}) {
		t.Errorf("unexpected name matches: %+v", got.NameMatches)
	}
	// ни один тег не похож на 'burger'
	if len(got.TagMatches) != 0 {
		t.Errorf("unexpected tag matches: %+v", got.TagMatches)
	}
}

// TestSuggest_HistoryReordersBothLists проверяет, что оба списка ранжируются одним множеством покупок
func TestSuggest_HistoryReordersBothLists(t *testing.T) {
	itemA := model.CatalogItem{ID: 1, Name: "Veg Burger", Tags: []string{"veg"}, AverageRating: 4.5}
	itemB := model.CatalogItem{ID: 2, Name: "Veg Roll", Tags: []string{"veg"}, AverageRating: 3.0}
	repo := &mockCatalogRepo{
		catalogFn: func(ctx context.Context) ([]model.CatalogItem, error) {
			return []model.CatalogItem{itemA, itemB}, nil
		},
		historyFn: func(ctx context.Context, email string) ([]int, error) {
			return []int{2}, nil
		},
	}
	s := NewSuggestService(repo, "test12@gmail.com")
	got, err := s.Suggest(context.Background(), "veg")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// купленный Veg Roll впереди в обоих списках, хотя его рейтинг ниже
	if !reflect.DeepEqual(got.NameMatches, []model.CatalogItem{itemB, itemA}) {
		t.Errorf("unexpected name matches: %+v", got.NameMatches)
	}
	if !reflect.DeepEqual(got.TagMatches, []model.CatalogItem{itemB, itemA}) {
		t.Errorf("unexpected tag matches: %+v", got.TagMatches)
	}
}

// TestSuggest_CatalogError проверяет, что ошибка чтения каталога прокидывается без частичного результата
func TestSuggest_CatalogError(t *testing.T) {
	testErr := errors.New("catalog error")
	repo := &mockCatalogRepo{
		catalogFn: func(ctx context.Context) ([]model.CatalogItem, error) {
			return nil, testErr
		},
		historyFn: func(ctx context.Context, email string) ([]int, error) {
			return []int{}, nil
		},
	}
	s := NewSuggestService(repo, "test12@gmail.com")
	got, err := s.Suggest(context.Background(), "burger")
	if err != testErr {
		t.Fatalf("expected error %v, got %v", testErr, err)
	}
	if got != nil {
		t.Fatalf("expected no partial result, got %+v", got)
	}
}

// TestSuggest_HistoryError проверяет, что ошибка чтения истории прокидывается без частичного результата
func TestSuggest_HistoryError(t *testing.T) {
	testErr := errors.New("history error")
	repo := &mockCatalogRepo{
		catalogFn: func(ctx context.Context) ([]model.CatalogItem, error) {
			return []model.CatalogItem{}, nil
		},
		historyFn: func(ctx context.Context, email string) ([]int, error) {
			return nil, testErr
		},
	}
	s := NewSuggestService(repo, "test12@gmail.com")
	got, err := s.Suggest(context.Background(), "burger")
	if err != testErr {
		t.Fatalf("expected error %v, got %v", testErr, err)
	}
	if got != nil {
		t.Fatalf("expected no partial result, got %+v", got)
	}
}
