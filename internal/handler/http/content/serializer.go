// Package content provides the HTTP resource handlers for /content and
// the serializer mapping stored items to and from their JSON shape.
package content

import (
	"errors"
	"strings"

	jsoniter "github.com/json-iterator/go"

	"content-service/internal/domain/entity"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Outcome is the result of deserializing a payload: Valid, ValidPatch or Invalid.
type Outcome interface {
	outcome()
}

// Valid carries the fields of an acceptable create payload.
type Valid struct {
	Fields entity.ContentFields
}

// ValidPatch carries the fields of an acceptable update payload.
type ValidPatch struct {
	Patch entity.ContentPatch
}

// Invalid explains why a payload was rejected.
type Invalid struct {
	Reason string
}

func (Valid) outcome()      {}
func (ValidPatch) outcome() {}
func (Invalid) outcome()    {}

// createRequest accepts body as an alias of content.
type createRequest struct {
	Title    *string   `json:"title"`
	Content  *string   `json:"content"`
	Body     *string   `json:"body"`
	AuthorID *int64    `json:"author_id"`
	Tags     *[]string `json:"tags"`
}

type updateRequest struct {
	Title   *string   `json:"title"`
	Content *string   `json:"content"`
	Body    *string   `json:"body"`
	Tags    *[]string `json:"tags"`
}

// DeserializeCreate validates a create payload. author_id in the payload
// overrides defaultAuthor; tags default to empty.
func DeserializeCreate(payload []byte, defaultAuthor int64) Outcome {
	var req createRequest
	if reason := decode(payload, &req); reason != "" {
		return Invalid{Reason: reason}
	}

	content := pick(req.Content, req.Body)
	if req.Title == nil || strings.TrimSpace(*req.Title) == "" {
		return Invalid{Reason: "title is required"}
	}
	if content == nil || strings.TrimSpace(*content) == "" {
		return Invalid{Reason: "content is required"}
	}

	fields := entity.ContentFields{
		Title:    *req.Title,
		Content:  *content,
		AuthorID: defaultAuthor,
		Tags:     []string{},
	}
	if req.AuthorID != nil {
		fields.AuthorID = *req.AuthorID
	}
	if req.Tags != nil {
		fields.Tags = entity.CopyTags(*req.Tags)
	}
	if err := fields.Validate(); err != nil {
		return Invalid{Reason: reasonOf(err)}
	}
	return Valid{Fields: fields}
}

// DeserializeUpdate keeps only title, content (or body) and tags.
// A payload with none of them is Invalid.
func DeserializeUpdate(payload []byte) Outcome {
	var req updateRequest
	if reason := decode(payload, &req); reason != "" {
		return Invalid{Reason: reason}
	}

	patch := entity.ContentPatch{
		Title:   req.Title,
		Content: pick(req.Content, req.Body),
	}
	if req.Tags != nil {
		tags := entity.CopyTags(*req.Tags)
		patch.Tags = &tags
	}
	if patch.IsEmpty() {
		return Invalid{Reason: "no updatable fields provided: expected title, content or tags"}
	}
	if err := patch.Validate(); err != nil {
		return Invalid{Reason: reasonOf(err)}
	}
	return ValidPatch{Patch: patch}
}

func decode(payload []byte, v any) string {
	if len(strings.TrimSpace(string(payload))) == 0 {
		return "request body is required"
	}
	if err := json.Unmarshal(payload, v); err != nil {
		return "invalid JSON payload"
	}
	return ""
}

// pick prefers content over its body alias.
func pick(content, body *string) *string {
	if content != nil {
		return content
	}
	return body
}

func reasonOf(err error) string {
	var vErr *entity.ValidationError
	if errors.As(err, &vErr) {
		return vErr.Message
	}
	return err.Error()
}
