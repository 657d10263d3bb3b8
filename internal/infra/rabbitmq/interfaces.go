package rabbitmq

import "farmer-market/internal/infra/events"

var _ events.Publisher = (*Publisher)(nil)
