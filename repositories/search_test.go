package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func testIndex(t *testing.T) *SearchIndex {
	t.Helper()
	index, err := NewSearchIndex(testLogger(), t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { _ = index.Close() })
	return index
}

func TestSearchIndex_Match_Scoped_To_Room(t *testing.T) {
	req := require.New(t)
	index := testIndex(t)
	at := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	req.NoError(index.Index(DiskMessage{
		ID: uuid.New(), Room: "r1", Author: "alice",
		Content: "the quarterly invoice is ready", At: at,
	}))
	req.NoError(index.Index(DiskMessage{
		ID: uuid.New(), Room: "r2", Author: "bob",
		Content: "another invoice in another room", At: at,
	}))
	req.NoError(index.Index(DiskMessage{
		ID: uuid.New(), Room: "r1", Author: "bob",
		Content: "lunch at noon?", At: at,
	}))

	hits, err := index.Search(context.Background(), "r1", "invoice", 10)
	req.NoError(err)
	req.Len(hits, 1)
	req.Equal("alice", hits[0].Author)
	req.Equal("the quarterly invoice is ready", hits[0].Content)
	req.Equal("r1", hits[0].Room)
}

func TestSearchIndex_No_Match(t *testing.T) {
	req := require.New(t)
	index := testIndex(t)

	req.NoError(index.Index(DiskMessage{
		ID: uuid.New(), Room: "r1", Author: "alice",
		Content: "hello world", At: time.Now(),
	}))

	hits, err := index.Search(context.Background(), "r1", "xyzzy", 10)
	req.NoError(err)
	req.Empty(hits)
}
