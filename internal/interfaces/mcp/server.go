// Package mcp implements the MCP server interface layer.
// It translates between MCP protocol concepts (tools, resources)
// and application use cases, following the Ports & Adapters pattern.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	mcpfw "github.com/felixgeelhaar/mcp-go"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	callapp "github.com/ebeckman/gong-mcp/internal/application/call"
	transcriptapp "github.com/ebeckman/gong-mcp/internal/application/transcript"
	userapp "github.com/ebeckman/gong-mcp/internal/application/user"
	domain "github.com/ebeckman/gong-mcp/internal/domain/call"
	userdomain "github.com/ebeckman/gong-mcp/internal/domain/user"
)

// ServerOptions groups the use cases passed to NewServer.
type ServerOptions struct {
	ListCalls *callapp.ListCalls
	GetCall   *callapp.GetCall
	FindUsers *userapp.FindUsers
}

// Server wraps the mcp-go server and exposes Gong call data as MCP tools
// and resources.
type Server struct {
	inner *mcpfw.Server

	listCalls *callapp.ListCalls
	getCall   *callapp.GetCall
	findUsers *userapp.FindUsers

	name    string
	version string
	logger  zerolog.Logger
}

// NewServer creates a new MCP server wired to application use cases.
func NewServer(name, version string, logger zerolog.Logger, opts ServerOptions) *Server {
	s := &Server{
		name:      name,
		version:   version,
		logger:    logger,
		listCalls: opts.ListCalls,
		getCall:   opts.GetCall,
		findUsers: opts.FindUsers,
	}

	srv := mcpfw.NewServer(mcpfw.ServerInfo{
		Name:    name,
		Version: version,
	})

	s.registerTools(srv)
	s.registerResources(srv)

	s.inner = srv
	return s
}

func (s *Server) Name() string    { return s.name }
func (s *Server) Version() string { return s.version }

// Inner returns the underlying mcp-go server for transport integration.
func (s *Server) Inner() *mcpfw.Server { return s.inner }

// ServeStdio starts the MCP server on stdio transport.
func (s *Server) ServeStdio(ctx context.Context) error {
	return mcpfw.ServeStdio(ctx, s.inner)
}

// ServeHTTP starts the MCP server on HTTP+SSE transport.
// extraRoutes allows mounting additional HTTP handlers (e.g., health).
func (s *Server) ServeHTTP(ctx context.Context, addr string, extraRoutes func(mux *http.ServeMux)) error {
	mux := http.NewServeMux()

	// Health check endpoint
	mux.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = fmt.Fprintf(w, `{"status":"ok","server":"%s","version":"%s"}`, s.name, s.version)
	})

	if extraRoutes != nil {
		extraRoutes(mux)
	}

	srv := &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		return err
	}
}

// --- Tool registration ---

func (s *Server) registerTools(srv *mcpfw.Server) {
	srv.Tool("list_calls").
		Description("List Gong calls, optionally bounded by a date range").
		Handler(s.HandleListCalls)

	srv.Tool("get_call_details").
		Description("Get details for a call, optionally with its formatted transcript").
		Handler(s.HandleGetCallDetails)

	srv.Tool("find_users").
		Description("Find Gong users by name, email address or user id").
		Handler(s.HandleFindUsers)
}

// --- Resource registration ---

func (s *Server) registerResources(srv *mcpfw.Server) {
	srv.Resource("call://{id}").
		Name("Call").
		Description("A Gong call with metadata and participants").
		MimeType("application/json").
		Handler(func(ctx context.Context, uri string, params map[string]string) (*mcpfw.ResourceContent, error) {
			out, err := s.getCall.Execute(ctx, callapp.GetCallInput{
				CallID: domain.ID(params["id"]),
			})
			if err != nil {
				return nil, err
			}
			data, _ := json.Marshal(toCallResult(out.Call))
			return &mcpfw.ResourceContent{
				URI:      uri,
				MimeType: "application/json",
				Text:     string(data),
			}, nil
		})

	srv.Resource("transcript://{call_id}").
		Name("Transcript").
		Description("Topic-grouped transcript sections for a call").
		MimeType("application/json").
		Handler(func(ctx context.Context, uri string, params map[string]string) (*mcpfw.ResourceContent, error) {
			out, err := s.getCall.Execute(ctx, callapp.GetCallInput{
				CallID:            domain.ID(params["call_id"]),
				IncludeTranscript: true,
			})
			if err != nil {
				return nil, err
			}
			if out.Transcript == nil {
				return nil, domain.ErrTranscriptNotFound
			}
			data, _ := json.Marshal(out.Transcript.Payload())
			return &mcpfw.ResourceContent{
				URI:      uri,
				MimeType: "application/json",
				Text:     string(data),
			}, nil
		})
}

// --- Tool Input Types ---

type ListCallsToolInput struct {
	FromDateTime *string `json:"fromDateTime,omitempty"`
	ToDateTime   *string `json:"toDateTime,omitempty"`
	Limit        *int    `json:"limit,omitempty"`
}

type GetCallDetailsToolInput struct {
	CallID            string  `json:"callId"`
	IncludeTranscript *bool   `json:"includeTranscript,omitempty"`
	TranscriptFormat  *string `json:"transcriptFormat,omitempty"`
	MaxSegments       *int    `json:"maxSegments,omitempty"`
	MaxSentences      *int    `json:"maxSentences,omitempty"`
}

type FindUsersToolInput struct {
	Name  *string `json:"name,omitempty"`
	Email *string `json:"email,omitempty"`
	ID    *string `json:"id,omitempty"`
}

// --- Tool Output Types ---

type CallResult struct {
	ID            string              `json:"id"`
	Title         string              `json:"title"`
	Scheduled     string              `json:"scheduled,omitempty"`
	Started       string              `json:"started,omitempty"`
	Duration      int                 `json:"duration"`
	Direction     string              `json:"direction,omitempty"`
	System        string              `json:"system,omitempty"`
	Scope         string              `json:"scope,omitempty"`
	Media         string              `json:"media,omitempty"`
	Language      string              `json:"language,omitempty"`
	URL           string              `json:"url,omitempty"`
	HasTranscript bool                `json:"hasTranscript"`
	Participants  []ParticipantResult `json:"participants"`
}

type ParticipantResult struct {
	ID      string `json:"id,omitempty"`
	Name    string `json:"name,omitempty"`
	Email   string `json:"email,omitempty"`
	Role    string `json:"role,omitempty"`
	Company string `json:"company,omitempty"`
}

type CallDetailsResult struct {
	Call       CallResult  `json:"call"`
	Transcript interface{} `json:"transcript,omitempty"`
}

type UserResult struct {
	ID           string `json:"id"`
	FirstName    string `json:"firstName"`
	LastName     string `json:"lastName"`
	EmailAddress string `json:"emailAddress"`
	Title        string `json:"title,omitempty"`
	Active       bool   `json:"active"`
	Created      string `json:"created,omitempty"`
}

// --- Tool Handlers ---

func (s *Server) HandleListCalls(ctx context.Context, input ListCallsToolInput) ([]CallResult, error) {
	appInput := callapp.ListCallsInput{}

	if input.FromDateTime != nil {
		t, err := time.Parse(time.RFC3339, *input.FromDateTime)
		if err != nil {
			return nil, fmt.Errorf("invalid 'fromDateTime': %w", err)
		}
		appInput.From = &t
	}
	if input.ToDateTime != nil {
		t, err := time.Parse(time.RFC3339, *input.ToDateTime)
		if err != nil {
			return nil, fmt.Errorf("invalid 'toDateTime': %w", err)
		}
		appInput.To = &t
	}
	if input.Limit != nil {
		appInput.Limit = *input.Limit
	}

	out, err := s.listCalls.Execute(ctx, appInput)
	if err != nil {
		return nil, err
	}

	results := make([]CallResult, len(out.Calls))
	for i, c := range out.Calls {
		results[i] = toCallResult(c)
	}
	return results, nil
}

func (s *Server) HandleGetCallDetails(ctx context.Context, input GetCallDetailsToolInput) (*CallDetailsResult, error) {
	appInput := callapp.GetCallInput{
		CallID: domain.ID(input.CallID),
	}
	if input.IncludeTranscript != nil {
		appInput.IncludeTranscript = *input.IncludeTranscript
	}
	if input.TranscriptFormat != nil {
		appInput.TranscriptFormat = transcriptapp.Format(*input.TranscriptFormat)
	}
	if input.MaxSegments != nil {
		appInput.MaxSegments = *input.MaxSegments
	}
	if input.MaxSentences != nil {
		appInput.MaxSentences = *input.MaxSentences
	}

	out, err := s.getCall.Execute(ctx, appInput)
	if err != nil {
		return nil, err
	}

	result := &CallDetailsResult{Call: toCallResult(out.Call)}
	if out.Transcript != nil {
		result.Transcript = out.Transcript.Payload()
	}
	return result, nil
}

func (s *Server) HandleFindUsers(ctx context.Context, input FindUsersToolInput) ([]UserResult, error) {
	appInput := userapp.FindUsersInput{}
	if input.Name != nil {
		appInput.Name = *input.Name
	}
	if input.Email != nil {
		appInput.Email = *input.Email
	}
	if input.ID != nil {
		appInput.ID = *input.ID
	}

	out, err := s.findUsers.Execute(ctx, appInput)
	if err != nil {
		return nil, err
	}

	results := make([]UserResult, len(out.Users))
	for i, u := range out.Users {
		results[i] = toUserResult(u)
	}
	return results, nil
}

// --- Result to JSON helper ---

// HandleToolJSON dispatches a raw tool invocation by name. Each invocation
// gets a request id for log correlation.
func (s *Server) HandleToolJSON(ctx context.Context, tool string, rawInput json.RawMessage) (json.RawMessage, error) {
	logger := s.logger.With().
		Str("tool", tool).
		Str("request_id", uuid.NewString()).
		Logger()
	start := time.Now()

	result, err := s.dispatch(ctx, tool, rawInput)
	if err != nil {
		logger.Error().Err(err).Dur("elapsed", time.Since(start)).Msg("tool call failed")
		return nil, err
	}
	logger.Info().Dur("elapsed", time.Since(start)).Msg("tool call completed")
	return result, nil
}

func (s *Server) dispatch(ctx context.Context, tool string, rawInput json.RawMessage) (json.RawMessage, error) {
	switch tool {
	case "list_calls":
		var input ListCallsToolInput
		if err := json.Unmarshal(rawInput, &input); err != nil {
			return nil, fmt.Errorf("invalid input: %w", err)
		}
		result, err := s.HandleListCalls(ctx, input)
		if err != nil {
			return nil, err
		}
		return json.Marshal(result)

	case "get_call_details":
		var input GetCallDetailsToolInput
		if err := json.Unmarshal(rawInput, &input); err != nil {
			return nil, fmt.Errorf("invalid input: %w", err)
		}
		result, err := s.HandleGetCallDetails(ctx, input)
		if err != nil {
			return nil, err
		}
		return json.Marshal(result)

	case "find_users":
		var input FindUsersToolInput
		if err := json.Unmarshal(rawInput, &input); err != nil {
			return nil, fmt.Errorf("invalid input: %w", err)
		}
		result, err := s.HandleFindUsers(ctx, input)
		if err != nil {
			return nil, err
		}
		return json.Marshal(result)

	default:
		return nil, fmt.Errorf("unknown tool: %s", tool)
	}
}

// --- Mappers (interface layer → output DTOs) ---

func toCallResult(c *domain.Call) CallResult {
	participants := make([]ParticipantResult, len(c.Participants()))
	for i, p := range c.Participants() {
		participants[i] = ParticipantResult{
			ID:      p.ID(),
			Name:    p.DisplayName(),
			Email:   p.Email(),
			Role:    p.Role(),
			Company: p.Company(),
		}
	}
	return CallResult{
		ID:            string(c.ID()),
		Title:         c.Title(),
		Scheduled:     c.Scheduled(),
		Started:       c.Started(),
		Duration:      c.Duration(),
		Direction:     c.Direction(),
		System:        c.System(),
		Scope:         c.Scope(),
		Media:         c.Media(),
		Language:      c.Language(),
		URL:           c.URL(),
		HasTranscript: c.HasTranscript(),
		Participants:  participants,
	}
}

func toUserResult(u userdomain.User) UserResult {
	return UserResult{
		ID:           u.ID(),
		FirstName:    u.FirstName(),
		LastName:     u.LastName(),
		EmailAddress: u.Email(),
		Title:        u.Title(),
		Active:       u.Active(),
		Created:      u.Created(),
	}
}
