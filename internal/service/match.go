package service

import (
	"strings"

	fuzzy "github.com/paul-mannino/go-fuzzywuzzy"

	"FoodAppML/internal/model"
)

// matchThreshold — порог partial-ratio, строго выше которого позиция считается совпадением
const matchThreshold = 70

// NameScore возвращает partial-ratio (0-100) запроса к имени позиции
// Обе строки приводятся к нижнему регистру; стемминга и токенизации нет
func NameScore(query string, item model.CatalogItem) int {
	return fuzzy.PartialRatio(strings.ToLower(query), strings.ToLower(item.Name))
}

// TagScore возвращает максимальный partial-ratio запроса к тегам позиции
// Для позиции без тегов возвращается 0
func TagScore(query string, item model.CatalogItem) int {
	best := 0
	for _, tag := range item.Tags {
		if s := fuzzy.PartialRatio(strings.ToLower(query), strings.ToLower(tag)); s > best {
			best = s
		}
	}
	return best
}

// matchCandidates отбирает кандидатов по имени и по тегам независимо
// Оба набора считаются по всему каталогу и могут пересекаться
func matchCandidates(query string, items []model.CatalogItem) (nameMatches, tagMatches []model.CatalogItem) {
	nameMatches = make([]model.CatalogItem, 0)
	tagMatches = make([]model.CatalogItem, 0)
	for _, it := range items {
		if NameScore(query, it) > matchThreshold {
			nameMatches = append(nameMatches, it)
		}
		if TagScore(query, it) > matchThreshold {
			tagMatches = append(tagMatches, it)
		}
	}
	return nameMatches, tagMatches
}
