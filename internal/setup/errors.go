package setup

import "fmt"

type BackendError struct {
	Backend string
	Err     error
}

func (e BackendError) Error() string {
	return fmt.Sprintf("storage backend %q: %v", e.Backend, e.Err)
}

func (e BackendError) Unwrap() error {
	return e.Err
}

func NewBackendError(backend string, err error) *BackendError {
	return &BackendError{
		Backend: backend,
		Err:     err,
	}
}
