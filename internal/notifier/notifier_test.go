package notifier_test

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inorbyt/chain-sync/internal/domain"
	"github.com/inorbyt/chain-sync/internal/logger"
	mockspkg "github.com/inorbyt/chain-sync/internal/mocks"
	"github.com/inorbyt/chain-sync/internal/notifier"
	"github.com/inorbyt/chain-sync/internal/store"
	"github.com/inorbyt/chain-sync/internal/store/schema"
)

func TestMain(m *testing.M) {
	err := logger.Initialize(logger.Config{
		Debug: false,
	})
	if err != nil {
		panic(err)
	}

	code := m.Run()
	os.Exit(code)
}

func TestNotifier_Notify_StoresAndPublishes(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx := context.Background()
	st := mockspkg.NewMockStore(ctrl)
	pub := mockspkg.NewMockPublisher(ctrl)
	n := notifier.NewNotifier(notifier.Config{PublishTimeout: time.Second}, st, pub)

	userID := uuid.New()
	notification := domain.Notification{
		UserID:  userID.String(),
		Type:    domain.NotificationTypeTransactionConfirmed,
		Title:   "Purchase confirmed",
		Message: "You bought 10 ALICE",
		Data:    map[string]interface{}{"amount": "10"},
	}

	st.EXPECT().CreateNotification(ctx, gomock.Any()).DoAndReturn(
		func(_ context.Context, input store.CreateNotificationInput) (*schema.Notification, error) {
			assert.Equal(t, userID, input.UserID)
			assert.Equal(t, domain.NotificationTypeTransactionConfirmed, input.Type)
			assert.JSONEq(t, `{"amount":"10"}`, string(input.Data))
			return &schema.Notification{ID: uuid.New(), UserID: userID, Type: input.Type}, nil
		})
	pub.EXPECT().PublishNotification(gomock.Any(), notification).Return(nil)

	row, err := n.Notify(ctx, notification)
	require.NoError(t, err)
	assert.Equal(t, userID, row.UserID)

	n.Close()
}

func TestNotifier_Notify_PublishRetries(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx := context.Background()
	st := mockspkg.NewMockStore(ctrl)
	pub := mockspkg.NewMockPublisher(ctrl)
	n := notifier.NewNotifier(notifier.Config{PublishTimeout: 5 * time.Second}, st, pub)

	notification := domain.Notification{UserID: uuid.New().String(), Type: domain.NotificationTypeSystemUpdate}
	st.EXPECT().CreateNotification(ctx, gomock.Any()).Return(&schema.Notification{ID: uuid.New()}, nil)
	gomock.InOrder(
		pub.EXPECT().PublishNotification(gomock.Any(), notification).Return(errors.New("no responders")),
		pub.EXPECT().PublishNotification(gomock.Any(), notification).Return(nil),
	)

	_, err := n.Notify(ctx, notification)
	require.NoError(t, err)

	n.Close()
}

func TestNotifier_Notify_WithoutPublisher(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx := context.Background()
	st := mockspkg.NewMockStore(ctrl)
	n := notifier.NewNotifier(notifier.Config{}, st, nil)

	st.EXPECT().CreateNotification(ctx, gomock.Any()).Return(&schema.Notification{ID: uuid.New()}, nil)

	_, err := n.Notify(ctx, domain.Notification{UserID: uuid.New().String(), Type: domain.NotificationTypeWalletConnected})
	require.NoError(t, err)
	n.Close()
}

func TestNotifier_Notify_Errors(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx := context.Background()
	st := mockspkg.NewMockStore(ctrl)
	pub := mockspkg.NewMockPublisher(ctrl)
	n := notifier.NewNotifier(notifier.Config{}, st, pub)
	defer n.Close()

	_, err := n.Notify(ctx, domain.Notification{UserID: "not-a-uuid"})
	assert.True(t, errors.Is(err, domain.ErrValidation))

	dbErr := errors.New("deadlock detected")
	st.EXPECT().CreateNotification(ctx, gomock.Any()).Return(nil, dbErr)
	_, err = n.Notify(ctx, domain.Notification{UserID: uuid.New().String()})
	assert.ErrorIs(t, err, dbErr)
}
