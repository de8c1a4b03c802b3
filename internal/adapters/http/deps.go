package http

import (
	"time"

	"github.com/nats-io/nats.go"

	"github.com/samirrijal/maplink/internal/adapters/valkey"
	"github.com/samirrijal/maplink/internal/core/usecases"
)

// Dependencies holds all services needed by HTTP handlers.
// NATS and Cache are optional.
type Dependencies struct {
	Links          *usecases.LinkService
	Samples        *usecases.SampleService
	NATS           *nats.Conn
	Cache          *valkey.Cache
	RequestTimeout time.Duration
	Version        string
}
