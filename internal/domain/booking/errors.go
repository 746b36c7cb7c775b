package booking

import "errors"

var (
	ErrInvalidInput     = errors.New("invalid input")
	ErrSlotUnavailable  = errors.New("slot unavailable")
	ErrPastSlot         = errors.New("slot is in the past")
	ErrNothingToCancel  = errors.New("nothing to cancel")
	ErrPartialFailure   = errors.New("booking partially failed")
	ErrStoreUnavailable = errors.New("store unavailable")
)

func IsErrInvalidInput(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}

func IsErrSlotUnavailable(err error) bool {
	return errors.Is(err, ErrSlotUnavailable)
}

func IsErrPastSlot(err error) bool {
	return errors.Is(err, ErrPastSlot)
}

func IsErrNothingToCancel(err error) bool {
	return errors.Is(err, ErrNothingToCancel)
}

func IsErrPartialFailure(err error) bool {
	return errors.Is(err, ErrPartialFailure)
}

func IsErrStoreUnavailable(err error) bool {
	return errors.Is(err, ErrStoreUnavailable)
}
