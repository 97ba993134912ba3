package directory_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ebeckman/gong-mcp/internal/domain/user"
	"github.com/ebeckman/gong-mcp/internal/infrastructure/directory"
)

type stubSource struct {
	users   []user.User
	err     error
	fetches int
}

func (s *stubSource) FetchAll(ctx context.Context) ([]user.User, error) {
	s.fetches++
	if s.err != nil {
		return nil, s.err
	}
	return s.users, nil
}

func directoryUsers() []user.User {
	return []user.User{
		user.New("u-1", "Alice", "Chen", "alice@acme.io", "AE", true, ""),
		user.New("u-2", "Bob", "Lee", "bob@acme.io", "SE", true, ""),
		user.New("u-3", "Carol", "Jones", "carol@acme.io", "CSM", false, ""),
	}
}

func TestGetAllUsers_CachesWithinTTL(t *testing.T) {
	source := &stubSource{users: directoryUsers()}
	dir := directory.New(source, time.Hour, zerolog.Nop())

	for i := 0; i < 3; i++ {
		users, err := dir.GetAllUsers(context.Background(), false)
		require.NoError(t, err)
		assert.Len(t, users, 3)
	}
	assert.Equal(t, 1, source.fetches, "repeated reads within the TTL must hit the cache")
}

func TestGetAllUsers_ForceRefresh(t *testing.T) {
	source := &stubSource{users: directoryUsers()}
	dir := directory.New(source, time.Hour, zerolog.Nop())

	_, err := dir.GetAllUsers(context.Background(), false)
	require.NoError(t, err)
	_, err = dir.GetAllUsers(context.Background(), true)
	require.NoError(t, err)

	assert.Equal(t, 2, source.fetches)
}

func TestGetAllUsers_RefetchesAfterExpiry(t *testing.T) {
	source := &stubSource{users: directoryUsers()}
	dir := directory.New(source, 20*time.Millisecond, zerolog.Nop())

	_, err := dir.GetAllUsers(context.Background(), false)
	require.NoError(t, err)

	time.Sleep(40 * time.Millisecond)

	_, err = dir.GetAllUsers(context.Background(), false)
	require.NoError(t, err)
	assert.Equal(t, 2, source.fetches)
}

func TestGetAllUsers_FetchErrorSurfaces(t *testing.T) {
	boom := errors.New("boom")
	dir := directory.New(&stubSource{err: boom}, time.Hour, zerolog.Nop())

	_, err := dir.GetAllUsers(context.Background(), false)
	assert.ErrorIs(t, err, boom)
}

func TestFindUsers_IDShortCircuit(t *testing.T) {
	source := &stubSource{users: directoryUsers()}
	dir := directory.New(source, time.Hour, zerolog.Nop())

	// An exact id hit returns that single user even when other criteria
	// would match more.
	users, err := dir.FindUsers(context.Background(), user.Criteria{ID: "u-2", Email: "@acme.io"})
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "u-2", users[0].ID())
}

func TestFindUsers_ScanMatches(t *testing.T) {
	source := &stubSource{users: directoryUsers()}
	dir := directory.New(source, time.Hour, zerolog.Nop())

	users, err := dir.FindUsers(context.Background(), user.Criteria{Email: "@acme.io"})
	require.NoError(t, err)
	assert.Len(t, users, 3)

	users, err = dir.FindUsers(context.Background(), user.Criteria{Name: "bob"})
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "Bob Lee", users[0].FullName())

	users, err = dir.FindUsers(context.Background(), user.Criteria{Name: "nobody"})
	require.NoError(t, err)
	assert.Empty(t, users)

	// All three lookups share the same snapshot fetch.
	assert.Equal(t, 1, source.fetches)
}
