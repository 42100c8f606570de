package service

import (
	"errors"
	"fmt"

	"github.com/Freeeeeet/reservation_bot/internal/repository"
)

var (
	ErrNotAuthorized   = errors.New("not authorized")
	ErrSlotUnavailable = errors.New("slot unavailable")
	ErrRequestNotFound = errors.New("pending request not found")
	ErrMalformedInput  = errors.New("malformed date or time")
	ErrAlreadyReserved = errors.New("slot already reserved")

	// ErrConflict нарушение уникальности журнала при подтверждении
	ErrConflict = repository.ErrConflict

	// errStaleRequest заявка жива, но слот уже отдан другому заявителю
	errStaleRequest = fmt.Errorf("%w: %w", ErrRequestNotFound, ErrSlotUnavailable)
)

// IsExpected ошибки, которые являются обычным исходом конкуренции
// и не требуют логирования как ошибки
func IsExpected(err error) bool {
	return errors.Is(err, ErrNotAuthorized) ||
		errors.Is(err, ErrSlotUnavailable) ||
		errors.Is(err, ErrRequestNotFound) ||
		errors.Is(err, ErrMalformedInput) ||
		errors.Is(err, ErrAlreadyReserved)
}
