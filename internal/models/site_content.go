package models

import (
	"time"

	"github.com/google/uuid"
)

// SiteContent элемент редактируемого текста сайта, уникален по паре (section, key).
type SiteContent struct {
	ID        uuid.UUID `db:"id" json:"id"`
	Section   string    `db:"section" json:"section"`
	Key       string    `db:"content_key" json:"key"`
	Value     string    `db:"content_value" json:"value"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}

// GroupSiteContent собирает элементы в вид {section: {key: value}}.
func GroupSiteContent(items []SiteContent) map[string]map[string]string {
	grouped := make(map[string]map[string]string)
	for _, item := range items {
		if _, ok := grouped[item.Section]; !ok {
			grouped[item.Section] = make(map[string]string)
		}
		grouped[item.Section][item.Key] = item.Value
	}
	return grouped
}
