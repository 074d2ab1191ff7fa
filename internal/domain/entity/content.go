// Package entity defines the core domain entities and validation logic for the application.
// It contains the ContentItem record, the input shapes used to create and patch it,
// and the domain-specific errors returned when those inputs are rejected.
package entity

import "time"

// ContentItem represents a piece of published content (an article).
// ID and PublicationDate are assigned by the repository on creation and never change.
type ContentItem struct {
	ID              int64
	Title           string
	Content         string
	AuthorID        int64
	PublicationDate *time.Time
	Tags            []string
}

// Clone returns a deep copy so callers can hand items across layers without sharing slices.
func (c *ContentItem) Clone() *ContentItem {
	if c == nil {
		return nil
	}
	out := *c
	if c.PublicationDate != nil {
		t := *c.PublicationDate
		out.PublicationDate = &t
	}
	out.Tags = CopyTags(c.Tags)
	return &out
}

// ContentFields holds the client-settable fields of a new content item.
type ContentFields struct {
	Title    string
	Content  string
	AuthorID int64
	Tags     []string
}

// ContentPatch describes a partial update. Nil fields are left untouched;
// a non-nil Tags replaces the whole tag list.
type ContentPatch struct {
	Title   *string
	Content *string
	Tags    *[]string
}

// IsEmpty reports whether the patch carries no recognized field.
func (p ContentPatch) IsEmpty() bool {
	return p.Title == nil && p.Content == nil && p.Tags == nil
}

// Apply writes the present fields of p onto item.
func (p ContentPatch) Apply(item *ContentItem) {
	if p.Title != nil {
		item.Title = *p.Title
	}
	if p.Content != nil {
		item.Content = *p.Content
	}
	if p.Tags != nil {
		item.Tags = CopyTags(*p.Tags)
	}
}

// CopyTags returns a copy of tags that is never nil.
func CopyTags(tags []string) []string {
	out := make([]string, len(tags))
	copy(out, tags)
	return out
}
