package repositories

import (
	"context"
	"log/slog"
	"time"

	"github.com/blugelabs/bluge"
)

// SearchIndex maintains a full-text index over relayed messages, queried by
// the history API. Indexing is best effort: a failed index write never blocks
// message delivery.
type SearchIndex struct {
	writer *bluge.Writer
	log    *slog.Logger
}

// SearchHit is one matching message.
type SearchHit struct {
	MessageID string
	Room      string
	Author    string
	Content   string
	SentAt    time.Time
}

func NewSearchIndex(log *slog.Logger, path string) (*SearchIndex, error) {
	writer, err := bluge.OpenWriter(bluge.DefaultConfig(path))
	if err != nil {
		return nil, err
	}
	return &SearchIndex{writer: writer, log: log}, nil
}

func (s *SearchIndex) Close() error {
	return s.writer.Close()
}

// Index adds or replaces one message document.
func (s *SearchIndex) Index(msg DiskMessage) error {
	doc := bluge.NewDocument(msg.ID.String()).
		AddField(bluge.NewTextField("content", msg.Content).StoreValue()).
		AddField(bluge.NewKeywordField("room", msg.Room).StoreValue()).
		AddField(bluge.NewKeywordField("author", msg.Author).StoreValue()).
		AddField(bluge.NewDateTimeField("sent_at", msg.At).StoreValue())
	return s.writer.Update(doc.ID(), doc)
}

// Search runs a room-scoped match query over message content and returns the
// best matches first.
func (s *SearchIndex) Search(ctx context.Context, room, terms string, limit int) ([]SearchHit, error) {
	reader, err := s.writer.Reader()
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := reader.Close(); err != nil {
			s.log.Warn("Failed to close index reader", "error", err)
		}
	}()

	query := bluge.NewBooleanQuery().
		AddMust(bluge.NewMatchQuery(terms).SetField("content")).
		AddMust(bluge.NewTermQuery(room).SetField("room"))

	iterator, err := reader.Search(ctx, bluge.NewTopNSearch(limit, query))
	if err != nil {
		return nil, err
	}

	var hits []SearchHit
	for {
		match, err := iterator.Next()
		if err != nil {
			return nil, err
		}
		if match == nil {
			break
		}

		var hit SearchHit
		err = match.VisitStoredFields(func(field string, value []byte) bool {
			switch field {
			case "_id":
				hit.MessageID = string(value)
			case "room":
				hit.Room = string(value)
			case "author":
				hit.Author = string(value)
			case "content":
				hit.Content = string(value)
			case "sent_at":
				if ts, err := bluge.DecodeDateTime(value); err == nil {
					hit.SentAt = ts
				}
			}
			return true
		})
		if err != nil {
			return nil, err
		}
		hits = append(hits, hit)
	}
	return hits, nil
}
