package apperr

import (
	"errors"
	"fmt"
)

var (
	ErrValidation       = errors.New("validation error")
	ErrAuthentication   = errors.New("authentication error")
	ErrRegistration     = errors.New("registration error")
	ErrNotFound         = errors.New("not found")
	ErrNotAuthenticated = errors.New("not authenticated")
	ErrPersistence      = errors.New("persistence error")
	ErrDecode           = errors.New("decode error")
	ErrForbidden        = errors.New("forbidden")
	ErrPolicy           = errors.New("booking policy violation")
)

// tagged keeps the underlying message verbatim while still matching its tag
// through errors.Is.
type tagged struct {
	tag error
	err error
}

func (e *tagged) Error() string { return e.err.Error() }

func (e *tagged) Unwrap() []error { return []error{e.tag, e.err} }

// Wrap tags err with tag. A nil err stays nil and an err that already carries
// tag is returned unchanged.
func Wrap(tag, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, tag) {
		return err
	}
	return &tagged{tag: tag, err: err}
}

func New(tag error, msg string) error {
	return &tagged{tag: tag, err: errors.New(msg)}
}

func Newf(tag error, format string, args ...any) error {
	return &tagged{tag: tag, err: fmt.Errorf(format, args...)}
}

// Persistence tags a raw backend error unless it is already part of the
// taxonomy.
func Persistence(err error) error {
	if err == nil {
		return nil
	}
	if Tagged(err) {
		return err
	}
	return &tagged{tag: ErrPersistence, err: err}
}

// Tagged reports whether err already carries one of the taxonomy tags.
func Tagged(err error) bool {
	var t *tagged
	return errors.As(err, &t)
}

func IsErrValidation(err error) bool       { return errors.Is(err, ErrValidation) }
func IsErrAuthentication(err error) bool   { return errors.Is(err, ErrAuthentication) }
func IsErrRegistration(err error) bool     { return errors.Is(err, ErrRegistration) }
func IsErrNotFound(err error) bool         { return errors.Is(err, ErrNotFound) }
func IsErrNotAuthenticated(err error) bool { return errors.Is(err, ErrNotAuthenticated) }
func IsErrPersistence(err error) bool      { return errors.Is(err, ErrPersistence) }
func IsErrDecode(err error) bool           { return errors.Is(err, ErrDecode) }
func IsErrForbidden(err error) bool        { return errors.Is(err, ErrForbidden) }
func IsErrPolicy(err error) bool           { return errors.Is(err, ErrPolicy) }
