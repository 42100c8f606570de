package repository

import "errors"

// ErrConflict запись на этот слот уже есть в журнале.
// При правильной блокировке слота недостижима.
var ErrConflict = errors.New("reservation already exists for slot")
