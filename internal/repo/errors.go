package repo

import "fmt"

// StorageError wraps a database failure so the handler boundary can tell it
// apart from programming errors. Not-found is never wrapped: repositories
// return gorm.ErrRecordNotFound as-is.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage: %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

func storageErr(op string, err error) error {
	if err == nil {
		return nil
	}
	return &StorageError{Op: op, Err: err}
}
