package kafka

import (
	"testing"

	"farmer-market/internal/domain"

	"github.com/stretchr/testify/assert"
)

func TestPartitionKey(t *testing.T) {
	assert.Equal(t, []byte("42"), partitionKey(domain.OrderPlacedEvent{OrderID: 42}))
	assert.Nil(t, partitionKey(map[string]any{"orderId": 42}))
}
