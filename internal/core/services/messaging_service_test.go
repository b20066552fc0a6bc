package services_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/AchilleasB/salon-booking/booking-service/internal/core/domain"
	"github.com/AchilleasB/salon-booking/booking-service/internal/core/services"
	"github.com/AchilleasB/salon-booking/booking-service/internal/mocks"
)

func newMessaging(t *testing.T) (*services.MessagingService, *mocks.MockMessageRepository) {
	t.Helper()
	repo := mocks.NewMockMessageRepository()
	repo.SeedUser("alice", "alice@salon.test")
	repo.SeedUser("bob", "bob@salon.test")
	repo.SeedUser("carol", "carol@salon.test")
	return services.NewMessagingService(repo, zap.NewNop()), repo
}

func TestMessagingService_Send(t *testing.T) {
	tests := []struct {
		name      string
		session   *domain.Session
		receiver  string
		content   string
		expectErr error
	}{
		{name: "stores_message", session: customerSession("alice"), receiver: "bob", content: "Merhaba"},
		{name: "self_message_allowed", session: customerSession("alice"), receiver: "alice", content: "not"},
		{name: "anonymous", receiver: "bob", content: "x", expectErr: domain.ErrUnauthenticated},
		{name: "missing_receiver", session: customerSession("alice"), content: "x", expectErr: domain.ErrInvalidInput},
		{name: "missing_content", session: customerSession("alice"), receiver: "bob", expectErr: domain.ErrInvalidInput},
		{name: "unknown_receiver", session: customerSession("alice"), receiver: "ghost", content: "x", expectErr: domain.ErrInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo := newMessaging(t)

			m, err := svc.Send(context.Background(), tt.session, tt.receiver, tt.content)
			if tt.expectErr != nil {
				require.ErrorIs(t, err, tt.expectErr)
				assert.Empty(t, repo.Outbox)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.session.UserID, m.SenderID)
			assert.Equal(t, tt.receiver, m.ReceiverID)
			assert.Equal(t, tt.content, m.Content)
		})
	}
}

func TestMessagingService_Send_WritesOutboxEvent(t *testing.T) {
	svc, repo := newMessaging(t)

	m, err := svc.Send(context.Background(), customerSession("alice"), "bob", "Randevu?")
	require.NoError(t, err)
	require.Len(t, repo.Outbox, 1)
	assert.Equal(t, domain.EventMessageSent, repo.Outbox[0].Type)

	var payload domain.MessageSentPayload
	require.NoError(t, json.Unmarshal(repo.Outbox[0].Payload, &payload))
	assert.Equal(t, domain.MessageSentPayload{MessageID: m.ID, SenderID: "alice", ReceiverID: "bob"}, payload)
}

func TestMessagingService_ListForCaller_Directions(t *testing.T) {
	svc, _ := newMessaging(t)
	ctx := context.Background()

	_, err := svc.Send(ctx, customerSession("alice"), "bob", "a->b")
	require.NoError(t, err)
	_, err = svc.Send(ctx, customerSession("bob"), "alice", "b->a")
	require.NoError(t, err)
	_, err = svc.Send(ctx, customerSession("bob"), "carol", "b->c")
	require.NoError(t, err)

	all, err := svc.ListForCaller(ctx, customerSession("alice"), "")
	require.NoError(t, err)
	require.Len(t, all, 2)
	for _, m := range all {
		switch m.Content {
		case "a->b":
			assert.Equal(t, domain.DirectionOutgoing, m.Direction)
			assert.Equal(t, "bob@salon.test", m.Receiver.Email)
		case "b->a":
			assert.Equal(t, domain.DirectionIncoming, m.Direction)
			assert.Equal(t, "bob@salon.test", m.Sender.Email)
		default:
			t.Errorf("alice sees a message she is not part of: %q", m.Content)
		}
	}

	incoming, err := svc.ListForCaller(ctx, customerSession("alice"), domain.DirectionIncoming)
	require.NoError(t, err)
	require.Len(t, incoming, 1)
	assert.Equal(t, "b->a", incoming[0].Content)

	outgoing, err := svc.ListForCaller(ctx, customerSession("bob"), domain.DirectionOutgoing)
	require.NoError(t, err)
	assert.Len(t, outgoing, 2)
}

func TestMessagingService_ListForCaller_Rejects(t *testing.T) {
	svc, _ := newMessaging(t)

	_, err := svc.ListForCaller(context.Background(), nil, "")
	require.ErrorIs(t, err, domain.ErrUnauthenticated)

	_, err = svc.ListForCaller(context.Background(), customerSession("alice"), domain.Direction("archive"))
	require.ErrorIs(t, err, domain.ErrInvalidInput)
}
