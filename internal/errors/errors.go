package errors

import (
	"errors"
	"fmt"
)

// ErrCode klassifiziert Fehler in fatale und degradierbare Kategorien.
type ErrCode string

const (
	ErrCodeUnauthorized ErrCode = "UNAUTHORIZED" // Token fehlt/ungültig — bricht den Lauf ab
	ErrCodeForbidden    ErrCode = "FORBIDDEN"    // Token darf Ressource nicht sehen — degradiert
	ErrCodeNetwork      ErrCode = "NETWORK"      // Verbindungs-/API-Fehler — bricht den Lauf ab
	ErrCodeDataShape    ErrCode = "DATA_SHAPE"   // unerwartete Antwortstruktur — degradiert
)

type AppError struct {
	Code    ErrCode
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func NewUnauthorizedError(message string) *AppError {
	return &AppError{Code: ErrCodeUnauthorized, Message: message}
}

func NewForbiddenError(message string) *AppError {
	return &AppError{Code: ErrCodeForbidden, Message: message}
}

func NewNetworkError(message string, err error) *AppError {
	return &AppError{Code: ErrCodeNetwork, Message: message, Err: err}
}

func NewDataShapeError(message string, err error) *AppError {
	return &AppError{Code: ErrCodeDataShape, Message: message, Err: err}
}

// IsUnauthorized prüft auch gewrappte Fehlerketten.
func IsUnauthorized(err error) bool {
	return hasCode(err, ErrCodeUnauthorized)
}

func IsForbidden(err error) bool {
	return hasCode(err, ErrCodeForbidden)
}

func IsNetwork(err error) bool {
	return hasCode(err, ErrCodeNetwork)
}

func hasCode(err error, code ErrCode) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code == code
	}
	return false
}
