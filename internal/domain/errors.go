package domain

import "errors"

var ErrValidation = errors.New("validation failed")

// MsgInvalidStatus is returned for any status other than the two known ones.
const MsgInvalidStatus = "Status inválido. Use 'Pendente' ou 'Concluída'."

// ValidationError describes a rejected input. Msg is safe to show to the
// client. It matches ErrValidation under errors.Is.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

func Invalid(msg string) error { return &ValidationError{Msg: msg} }
