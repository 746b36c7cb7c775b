package schedule

import "errors"

var (
	ErrBadRequest     = errors.New("bad request")
	ErrAlreadyBlocked = errors.New("already blocked")
	ErrNotBlocked     = errors.New("not blocked")
)

func IsErrBadRequest(err error) bool {
	return errors.Is(err, ErrBadRequest)
}

func IsErrAlreadyBlocked(err error) bool {
	return errors.Is(err, ErrAlreadyBlocked)
}

func IsErrNotBlocked(err error) bool {
	return errors.Is(err, ErrNotBlocked)
}
