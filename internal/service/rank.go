package service

import (
	"sort"

	"FoodAppML/internal/model"
)

// RankItems упорядочивает кандидатов по истории покупок и рейтингу:
// 1. Разбивает список на купленные ранее и остальные по принадлежности id множеству purchased
// 2. Каждую часть сортирует по average_rating по убыванию (стабильно, равные сохраняют исходный порядок)
// 3. Склеивает: сначала купленные, затем остальные
// Принадлежность истории всегда важнее рейтинга; рейтинг не влияет на разбиение
func RankItems(items []model.CatalogItem, purchased map[int]struct{}) []model.CatalogItem {
	bought := make([]model.CatalogItem, 0, len(items))
	rest := make([]model.CatalogItem, 0, len(items))
	for _, it := range items {
		if _, ok := purchased[it.ID]; ok {
			bought = append(bought, it)
		} else {
			rest = append(rest, it)
		}
	}
	sort.SliceStable(bought, func(i, j int) bool {
		return bought[i].AverageRating > bought[j].AverageRating
	})
	sort.SliceStable(rest, func(i, j int) bool {
		return rest[i].AverageRating > rest[j].AverageRating
	})
	return append(bought, rest...)
}
