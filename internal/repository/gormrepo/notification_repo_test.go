package gormrepo

import (
	"context"
	"fmt"
	"testing"

	"farmer-market/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotificationRepo_ListRecent(t *testing.T) {
	db := newTestDB(t)
	repo := NewNotificationRepository(db)
	ctx := context.Background()

	for i := 0; i < 25; i++ {
		require.NoError(t, repo.Create(ctx, &domain.Notification{UserID: 7, Message: fmt.Sprintf("m%d", i)}))
	}
	require.NoError(t, repo.Create(ctx, &domain.Notification{UserID: 8, Message: "other"}))

	got, err := repo.ListRecent(ctx, 7, 20)
	require.NoError(t, err)
	require.Len(t, got, 20)
	assert.Equal(t, "m24", got[0].Message)
	assert.False(t, got[0].IsRead)
}
