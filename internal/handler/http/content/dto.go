package content

import (
	"time"

	"content-service/internal/domain/entity"
)

// ItemDTO is the wire representation of a content item.
type ItemDTO struct {
	ID              int64    `json:"id" example:"1"`
	Title           string   `json:"title" example:"Release notes"`
	Content         string   `json:"content" example:"What changed this week"`
	Author          int64    `json:"author" example:"1"`
	PublicationDate *string  `json:"publication_date" example:"2025-10-26T10:00:00Z"`
	Tags            []string `json:"tags" example:"go,release"`
}

// Serialize maps item to its wire representation. A missing publication
// date renders as null and tags are never null.
func Serialize(item *entity.ContentItem) ItemDTO {
	dto := ItemDTO{
		ID:      item.ID,
		Title:   item.Title,
		Content: item.Content,
		Author:  item.AuthorID,
		Tags:    entity.CopyTags(item.Tags),
	}
	if item.PublicationDate != nil {
		s := item.PublicationDate.UTC().Format(time.RFC3339)
		dto.PublicationDate = &s
	}
	return dto
}

// SerializeMany maps items element-wise; the result is never nil.
func SerializeMany(items []*entity.ContentItem) []ItemDTO {
	out := make([]ItemDTO, 0, len(items))
	for _, item := range items {
		out = append(out, Serialize(item))
	}
	return out
}
