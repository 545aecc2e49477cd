package model

import "strings"

// Item представляет позицию меню (таблица items)
type Item struct {
	ID     int     `db:"id" json:"id"`
	Name   string  `db:"name" json:"name"`
	Price  float64 `db:"price" json:"price"`
	Image  *string `db:"image" json:"image,omitempty"`
	Demand int     `db:"demand" json:"demand"`
	Stock  int     `db:"stock" json:"stock"`
}

// CatalogItem представляет позицию каталога, обогащенную средним рейтингом и тегами
// Tags получается разбиением агрегированной строки тегов, AverageRating — среднее по отзывам (0 без отзывов)
type CatalogItem struct {
	ID            int      `db:"id" json:"id"`
	Name          string   `db:"name" json:"name"`
	Price         float64  `db:"price" json:"price"`
	Tags          []string `db:"tags" json:"tags"`
	AverageRating float64  `db:"average_rating" json:"average_rating"`
}

// Suggestions представляет результат подбора: два независимо ранжированных списка
type Suggestions struct {
	NameMatches []CatalogItem `json:"name_matches"`
	TagMatches  []CatalogItem `json:"tag_matches"`
}

// ItemEvent представляет событие изменения позиции, публикуемое в NATS
// Action принимает значения "created" или "updated"
type ItemEvent struct {
	ID     int     `json:"id"`
	Name   string  `json:"name"`
	Price  float64 `json:"price"`
	Demand int     `json:"demand"`
	Stock  int     `json:"stock"`
	Action string  `json:"action"`
}

// SplitTags разбивает агрегированную строку тегов по запятым
// Пустая строка дает пустой список, никогда не список с пустой строкой
func SplitTags(raw string) []string {
	if raw == "" {
		return []string{}
	}
	return strings.Split(raw, ",")
}
