package user

import "context"

type RefreshDirectoryOutput struct {
	Users int
}

// RefreshDirectory forces a full re-fetch of the user directory,
// replacing the cached snapshot.
type RefreshDirectory struct {
	directory Directory
}

func NewRefreshDirectory(directory Directory) *RefreshDirectory {
	return &RefreshDirectory{directory: directory}
}

func (uc *RefreshDirectory) Execute(ctx context.Context) (*RefreshDirectoryOutput, error) {
	users, err := uc.directory.GetAllUsers(ctx, true)
	if err != nil {
		return nil, err
	}
	return &RefreshDirectoryOutput{Users: len(users)}, nil
}
