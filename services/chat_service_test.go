package services_test

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"chat-relay/domain"
	"chat-relay/mocks"
	"chat-relay/moderation"
	"chat-relay/repositories"
	"chat-relay/services"

	"github.com/google/uuid"
	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newChatService(t *testing.T, messages repositories.IMessageRepository, router *mocks.MockIRouter) *services.ChatService {
	t.Helper()
	moderator, err := moderation.NewModerator([]string{"darn"}, '*')
	require.NoError(t, err)
	return services.NewChatService(logs.GetLoggerFromLevel(slog.LevelError), moderator, messages, nil, router)
}

func TestChatService_Dispatch_Censors_Before_Store_And_Route(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)

	// Given
	messages := mocks.NewMockIMessageRepository(ctrl)
	router := mocks.NewMockIRouter(ctrl)
	service := newChatService(t, messages, router)

	var stored repositories.DiskMessage
	var routed domain.Message
	messages.EXPECT().StoreMessage(gomock.Any()).
		Do(func(m repositories.DiskMessage) { stored = m }).
		Return(nil)
	router.EXPECT().Route(gomock.Any()).
		Do(func(m domain.Message) { routed = m })

	msg := domain.NewMessage("room-1", "u-1", "oh darn it")

	// When
	err := service.Dispatch(context.Background(), msg)

	// Then the forbidden word never reaches disk or peers
	req.NoError(err)
	req.Equal("oh **** it", stored.Content)
	req.Equal("oh **** it", routed.Content)
	req.Equal(msg.ID, stored.ID)
	req.Equal("room-1", stored.Room)
	req.Equal("u-1", stored.Author)
}

func TestChatService_Dispatch_Routes_Even_When_Store_Fails(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)

	// Given a repository that rejects every write
	messages := mocks.NewMockIMessageRepository(ctrl)
	router := mocks.NewMockIRouter(ctrl)
	service := newChatService(t, messages, router)

	messages.EXPECT().StoreMessage(gomock.Any()).Return(context.DeadlineExceeded)
	router.EXPECT().Route(gomock.Any())

	// When
	err := service.Dispatch(context.Background(), domain.NewMessage("room-1", "u-1", "hello"))

	// Then delivery still happens
	req.NoError(err)
}

func TestChatService_Dispatch_Honors_Cancelled_Context(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)

	// Given a context already cancelled; neither store nor route may run
	messages := mocks.NewMockIMessageRepository(ctrl)
	router := mocks.NewMockIRouter(ctrl)
	service := newChatService(t, messages, router)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// When
	err := service.Dispatch(ctx, domain.NewMessage("room-1", "u-1", "hello"))

	// Then
	req.ErrorIs(err, context.Canceled)
}

func TestChatService_History_Maps_Stored_Messages(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)

	// Given
	messages := mocks.NewMockIMessageRepository(ctrl)
	router := mocks.NewMockIRouter(ctrl)
	service := newChatService(t, messages, router)

	id := uuid.New()
	at := time.Now().UTC().Truncate(time.Second)
	cursor := "next-page"
	messages.EXPECT().GetMessages(domain.RoomID("room-1"), nil).Return(
		[]repositories.DiskMessage{{
			ID:      id,
			Room:    "room-1",
			Author:  "u-2",
			Content: "bonjour",
			Lang:    "fra",
			At:      at,
		}},
		&cursor, nil,
	)

	// When
	history, next, err := service.History("room-1", nil)

	// Then
	req.NoError(err)
	req.Len(history, 1)
	req.Equal(domain.Message{
		ID:      id,
		Room:    "room-1",
		Sender:  "u-2",
		Content: "bonjour",
		SentAt:  at,
	}, history[0])
	req.Equal("next-page", *next)
}
