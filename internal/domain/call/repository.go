package call

import (
	"context"
	"time"
)

// ListFilter narrows List queries. A zero Limit means no cap.
type ListFilter struct {
	From  *time.Time
	To    *time.Time
	Limit int
}

// Repository is the port to the call platform.
type Repository interface {
	FindByID(ctx context.Context, id ID) (*Call, error)
	List(ctx context.Context, filter ListFilter) ([]*Call, error)
	GetTranscript(ctx context.Context, id ID) (*Transcript, error)
}
