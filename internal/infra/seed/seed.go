// Package seed loads initial content items from a YAML file.
//
// The file is a list of items:
//
//	- title: Welcome
//	  content: First post
//	  author_id: 1
//	  tags: [intro]
package seed

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"content-service/internal/domain/entity"
	"content-service/internal/repository"
)

// Item is one seed entry.
type Item struct {
	Title    string   `yaml:"title"`
	Content  string   `yaml:"content"`
	AuthorID int64    `yaml:"author_id"`
	Tags     []string `yaml:"tags"`
}

// LoadFile reads and validates the items in path.
func LoadFile(path string) ([]Item, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates seed YAML. Unknown keys are rejected so a
// typo does not silently drop a field.
func Parse(data []byte) ([]Item, error) {
	var items []Item
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&items); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("parse seed file: %w", err)
	}
	for i, it := range items {
		if err := it.fields(0).Validate(); err != nil {
			return nil, fmt.Errorf("seed item %d: %w", i, err)
		}
	}
	return items, nil
}

func (it Item) fields(defaultAuthor int64) entity.ContentFields {
	author := it.AuthorID
	if author == 0 {
		author = defaultAuthor
	}
	return entity.ContentFields{
		Title:    it.Title,
		Content:  it.Content,
		AuthorID: author,
		Tags:     entity.CopyTags(it.Tags),
	}
}

// Apply creates items in order. Items without author_id get defaultAuthor.
// It returns the number of items created.
func Apply(ctx context.Context, repo repository.ContentRepository, items []Item, defaultAuthor int64) (int, error) {
	for i, it := range items {
		if _, err := repo.Create(ctx, it.fields(defaultAuthor)); err != nil {
			return i, fmt.Errorf("create seed item %d: %w", i, err)
		}
	}
	return len(items), nil
}
