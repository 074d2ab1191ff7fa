package content

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"content-service/internal/domain/entity"
)

func strPtr(s string) *string { return &s }

func TestSerialize(t *testing.T) {
	ts := time.Date(2025, 10, 26, 10, 0, 0, 0, time.FixedZone("JST", 9*3600))
	item := &entity.ContentItem{
		ID: 3, Title: "T", Content: "B", AuthorID: 9,
		PublicationDate: &ts, Tags: []string{"go"},
	}

	want := ItemDTO{
		ID: 3, Title: "T", Content: "B", Author: 9,
		PublicationDate: strPtr("2025-10-26T01:00:00Z"),
		Tags:            []string{"go"},
	}
	if diff := cmp.Diff(want, Serialize(item)); diff != "" {
		t.Errorf("Serialize() mismatch (-want +got):\n%s", diff)
	}
}

func TestSerialize_NullDateAndEmptyTags(t *testing.T) {
	b, err := json.Marshal(Serialize(&entity.ContentItem{ID: 1, Title: "T", Content: "B"}))
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":1,"title":"T","content":"B","author":0,"publication_date":null,"tags":[]}`, string(b))
}

func TestSerializeMany_NeverNil(t *testing.T) {
	b, err := json.Marshal(SerializeMany(nil))
	require.NoError(t, err)
	assert.Equal(t, "[]", string(b))
}

func TestDeserializeCreate(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		want    Outcome
	}{
		{
			name:    "title and body alias",
			payload: `{"title":"T","body":"B"}`,
			want:    Valid{Fields: entity.ContentFields{Title: "T", Content: "B", AuthorID: 5, Tags: []string{}}},
		},
		{
			name:    "content wins over body",
			payload: `{"title":"T","content":"C","body":"B","tags":["a"],"author_id":8,"extra":true}`,
			want:    Valid{Fields: entity.ContentFields{Title: "T", Content: "C", AuthorID: 8, Tags: []string{"a"}}},
		},
		{name: "missing title", payload: `{"body":"B"}`, want: Invalid{Reason: "title is required"}},
		{name: "blank title", payload: `{"title":"  ","content":"B"}`, want: Invalid{Reason: "title is required"}},
		{name: "missing content", payload: `{"title":"T"}`, want: Invalid{Reason: "content is required"}},
		{name: "null content", payload: `{"title":"T","content":null}`, want: Invalid{Reason: "content is required"}},
		{name: "wrong type", payload: `{"title":5,"content":"B"}`, want: Invalid{Reason: "invalid JSON payload"}},
		{name: "not an object", payload: `["T","B"]`, want: Invalid{Reason: "invalid JSON payload"}},
		{name: "malformed", payload: `{"title":`, want: Invalid{Reason: "invalid JSON payload"}},
		{name: "empty", payload: ``, want: Invalid{Reason: "request body is required"}},
		{
			name:    "blank tag",
			payload: `{"title":"T","content":"B","tags":[""]}`,
			want:    Invalid{Reason: "tag at index 0 is invalid: must not be blank"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DeserializeCreate([]byte(tt.payload), 5)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("DeserializeCreate() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestDeserializeUpdate(t *testing.T) {
	t.Run("body alias only", func(t *testing.T) {
		out, ok := DeserializeUpdate([]byte(`{"body":"X"}`)).(ValidPatch)
		require.True(t, ok)
		require.NotNil(t, out.Patch.Content)
		assert.Equal(t, "X", *out.Patch.Content)
		assert.Nil(t, out.Patch.Title)
		assert.Nil(t, out.Patch.Tags)
	})

	t.Run("empty tags replace", func(t *testing.T) {
		out, ok := DeserializeUpdate([]byte(`{"tags":[]}`)).(ValidPatch)
		require.True(t, ok)
		require.NotNil(t, out.Patch.Tags)
		assert.Empty(t, *out.Patch.Tags)
	})

	invalid := map[string]string{
		"no recognized field": `{"author_id":3,"id":9}`,
		"empty object":        `{}`,
		"blank title":         `{"title":""}`,
		"malformed":           `nope`,
	}
	for name, payload := range invalid {
		t.Run(name, func(t *testing.T) {
			_, ok := DeserializeUpdate([]byte(payload)).(Invalid)
			assert.True(t, ok)
		})
	}
}
