// Package call contains the call catalog use cases.
package call

import (
	"context"
	"time"

	domain "github.com/ebeckman/gong-mcp/internal/domain/call"
)

type ListCallsInput struct {
	From  *time.Time
	To    *time.Time
	Limit int
}

type ListCallsOutput struct {
	Calls []*domain.Call
}

// ListCalls fetches and normalizes every call in the requested window,
// capped at Limit when it is positive.
type ListCalls struct {
	repo domain.Repository
}

func NewListCalls(repo domain.Repository) *ListCalls {
	return &ListCalls{repo: repo}
}

func (uc *ListCalls) Execute(ctx context.Context, input ListCallsInput) (*ListCallsOutput, error) {
	calls, err := uc.repo.List(ctx, domain.ListFilter{
		From:  input.From,
		To:    input.To,
		Limit: input.Limit,
	})
	if err != nil {
		return nil, err
	}
	if calls == nil {
		calls = []*domain.Call{}
	}
	return &ListCallsOutput{Calls: calls}, nil
}
