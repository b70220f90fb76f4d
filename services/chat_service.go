//go:generate go run go.uber.org/mock/mockgen -source=chat_service.go -destination=../mocks/mock_chat_service.go -package=mocks
package services

import (
	"context"
	"log/slog"

	"chat-relay/contract"
	"chat-relay/domain"
	"chat-relay/moderation"
	"chat-relay/repositories"

	"github.com/abadojack/whatlanggo"
	"github.com/samber/lo"
)

type IChatService interface {
	contract.IDispatcher
	History(room domain.RoomID, cursor *string) ([]domain.Message, *string, error)
	Search(ctx context.Context, room domain.RoomID, terms string, limit int) ([]repositories.SearchHit, error)
}

// ChatService sits between the transport and the relay core: it moderates
// inbound content, records history, feeds the search index, and hands the
// message to the router for fan-out.
type ChatService struct {
	log       *slog.Logger
	moderator *moderation.Moderator
	messages  repositories.IMessageRepository
	search    *repositories.SearchIndex
	router    contract.IRouter
}

func NewChatService(log *slog.Logger, moderator *moderation.Moderator,
	messages repositories.IMessageRepository, search *repositories.SearchIndex,
	router contract.IRouter) *ChatService {
	return &ChatService{
		log:       log,
		moderator: moderator,
		messages:  messages,
		search:    search,
		router:    router,
	}
}

// Dispatch processes one inbound message: censor, persist, index, fan out.
// History and index writes are best effort; delivery to online peers is
// never held back by a failing disk or index.
func (s *ChatService) Dispatch(ctx context.Context, msg domain.Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	msg.Content = s.moderator.Censor(msg.Content)

	stored := repositories.DiskMessage{
		ID:      msg.ID,
		Room:    string(msg.Room),
		Author:  string(msg.Sender),
		Content: msg.Content,
		Lang:    whatlanggo.LangToString(whatlanggo.Detect(msg.Content).Lang),
		At:      msg.SentAt,
	}
	if err := s.messages.StoreMessage(stored); err != nil {
		s.log.Error("Failed to persist message", "room", msg.Room, "error", err)
	}
	if s.search != nil {
		if err := s.search.Index(stored); err != nil {
			s.log.Warn("Failed to index message", "room", msg.Room, "error", err)
		}
	}

	s.router.Route(msg)
	return nil
}

// History pages through a room's stored messages, newest first.
func (s *ChatService) History(room domain.RoomID, cursor *string) ([]domain.Message, *string, error) {
	stored, next, err := s.messages.GetMessages(room, cursor)
	if err != nil {
		return nil, nil, err
	}
	messages := lo.Map(stored, func(item repositories.DiskMessage, _ int) domain.Message {
		return domain.Message{
			ID:      item.ID,
			Room:    domain.RoomID(item.Room),
			Sender:  domain.UserID(item.Author),
			Content: item.Content,
			SentAt:  item.At,
		}
	})
	return messages, next, err
}

// Search runs a full-text query over the room's message history.
func (s *ChatService) Search(ctx context.Context, room domain.RoomID, terms string, limit int) ([]repositories.SearchHit, error) {
	return s.search.Search(ctx, string(room), terms, limit)
}
