package seed

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"content-service/internal/infra/adapter/persistence/memory"
	"content-service/internal/repository"
)

const sample = `
- title: Welcome
  content: First post
  author_id: 4
  tags: [intro, news]
- title: Second
  content: Another post
`

func TestLoadFileAndApply(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seed.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sample), 0o600))

	items, err := LoadFile(path)
	require.NoError(t, err)
	require.Len(t, items, 2)

	repo := memory.NewContentRepo()
	n, err := Apply(context.Background(), repo, items, 9)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	stored, err := repo.List(context.Background(), repository.ContentFilter{})
	require.NoError(t, err)
	require.Len(t, stored, 2)
	assert.Equal(t, int64(1), stored[0].ID)
	assert.Equal(t, "Welcome", stored[0].Title)
	assert.Equal(t, int64(4), stored[0].AuthorID)
	assert.Equal(t, []string{"intro", "news"}, stored[0].Tags)
	assert.Equal(t, int64(9), stored[1].AuthorID, "default author")
	assert.Equal(t, []string{}, stored[1].Tags)
}

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		want    int
		wantErr string
	}{
		{name: "empty file", yaml: "", want: 0},
		{name: "empty list", yaml: "[]", want: 0},
		{name: "missing content", yaml: "- title: T\n", wantErr: "seed item 0"},
		{name: "blank tag", yaml: "- title: T\n  content: B\n  tags: ['']\n", wantErr: "seed item 0"},
		{name: "unknown key", yaml: "- title: T\n  content: B\n  body: X\n", wantErr: "parse seed file"},
		{name: "not a list", yaml: "title: T\n", wantErr: "parse seed file"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			items, err := Parse([]byte(tt.yaml))
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Len(t, items, tt.want)
		})
	}
}

func TestLoadFile_Missing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read seed file")
}
