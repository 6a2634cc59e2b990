package client

import (
	"errors"
	"fmt"
)

// ErrInvalidCredentials is the single login failure the user ever sees;
// 401, 403 and 500 all collapse into it so a guesser learns nothing from
// the response.
var ErrInvalidCredentials = errors.New("Invalid admin credentials")

// ErrNotAdmin means a mutating operation was attempted without a session.
var ErrNotAdmin = errors.New("admin login required")

// FetchError reports a failed listing load with its HTTP status.
type FetchError struct {
	Status int
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetching games failed: HTTP %d", e.Status)
}

// MutationError reports a rejected create, update or delete. Status and
// body are carried for every operation, delete included.
type MutationError struct {
	Op     string
	Status int
	Body   string
}

func (e *MutationError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("%s failed: HTTP %d", e.Op, e.Status)
	}
	return fmt.Sprintf("%s failed: HTTP %d: %s", e.Op, e.Status, e.Body)
}
