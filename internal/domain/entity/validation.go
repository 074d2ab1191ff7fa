package entity

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// MaxTitleLength bounds the title in runes.
const MaxTitleLength = 255

// Validate checks the invariants a stored item must satisfy:
// title and content are non-blank and every tag is non-blank.
func (f ContentFields) Validate() error {
	if err := validateTitle(f.Title); err != nil {
		return err
	}
	if err := validateContent(f.Content); err != nil {
		return err
	}
	if f.AuthorID < 0 {
		return &ValidationError{Field: "author_id", Message: "must not be negative"}
	}
	return validateTags(f.Tags)
}

// Validate checks only the fields present in the patch.
func (p ContentPatch) Validate() error {
	if p.Title != nil {
		if err := validateTitle(*p.Title); err != nil {
			return err
		}
	}
	if p.Content != nil {
		if err := validateContent(*p.Content); err != nil {
			return err
		}
	}
	if p.Tags != nil {
		return validateTags(*p.Tags)
	}
	return nil
}

func validateTitle(title string) error {
	if strings.TrimSpace(title) == "" {
		return &ValidationError{Field: "title", Message: "title is required"}
	}
	if utf8.RuneCountInString(title) > MaxTitleLength {
		return &ValidationError{
			Field:   "title",
			Message: fmt.Sprintf("title must not exceed %d characters", MaxTitleLength),
		}
	}
	return nil
}

func validateContent(content string) error {
	if strings.TrimSpace(content) == "" {
		return &ValidationError{Field: "content", Message: "content is required"}
	}
	return nil
}

func validateTags(tags []string) error {
	for i, tag := range tags {
		if strings.TrimSpace(tag) == "" {
			return &ValidationError{
				Field:   "tags",
				Message: fmt.Sprintf("tag at index %d is invalid: must not be blank", i),
			}
		}
	}
	return nil
}
