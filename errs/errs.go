// SPDX-FileCopyrightText: 2021 Alvar Penning
//
// SPDX-License-Identifier: GPL-3.0-or-later

// Package errs defines the closed error taxonomy shared by every layer of
// the opvault importer: bad input on disk, malformed or forged ciphertext,
// a wrong master password, and I/O or precondition failures are each
// distinguishable by callers via errors.Is, not by matching error strings.
package errs

import (
	"errors"
	"fmt"
)

// Kind identifies which of the closed set of failure categories an Error
// belongs to.
type Kind int

const (
	// KindFileNotFound marks a required file as absent.
	KindFileNotFound Kind = iota

	// KindFormat marks any structural violation: bad base64, a malformed
	// container, an unrecognized JSON key, a UUID mismatch, and so on.
	KindFormat

	// KindIntegrity marks an HMAC mismatch during a payload decrypt. This
	// kind is internal: it must never escape Profile.Unlock as itself.
	KindIntegrity

	// KindPassword marks a profile unwrap that failed its MAC check,
	// interpreted as a wrong master password.
	KindPassword

	// KindIO marks an underlying stream read failure.
	KindIO

	// KindInternal marks a violated precondition in a primitive, signaling
	// a bug rather than bad user input.
	KindInternal
)

// String renders a Kind's name for log lines and error messages.
func (k Kind) String() string {
	switch k {
	case KindFileNotFound:
		return "file not found"
	case KindFormat:
		return "format error"
	case KindIntegrity:
		return "integrity error"
	case KindPassword:
		return "password error"
	case KindIO:
		return "io error"
	case KindInternal:
		return "internal error"
	default:
		return fmt.Sprintf("unknown error kind %d", int(k))
	}
}

// Error is the concrete error type carrying a Kind plus an optional wrapped
// cause. It implements Unwrap so errors.Is/errors.As compose through it.
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Msg, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether err, or any error it wraps, is an *Error of the given
// Kind. It is the primary way callers should branch on the taxonomy.
func Is(err error, kind Kind) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}

// FileNotFound builds a KindFileNotFound error for the given path.
func FileNotFound(path string) error {
	return &Error{Kind: KindFileNotFound, Msg: fmt.Sprintf("%q does not exist", path)}
}

// Format builds a KindFormat error from a message, formatted like fmt.Errorf.
func Format(format string, args ...interface{}) error {
	return &Error{Kind: KindFormat, Msg: fmt.Sprintf(format, args...)}
}

// WrapFormat builds a KindFormat error wrapping an underlying cause.
func WrapFormat(err error, format string, args ...interface{}) error {
	return &Error{Kind: KindFormat, Msg: fmt.Sprintf(format, args...), Err: err}
}

// Integrity builds a KindIntegrity error. Callers in the profile unlock path
// MUST translate this into a Password error before it reaches the host.
func Integrity(format string, args ...interface{}) error {
	return &Error{Kind: KindIntegrity, Msg: fmt.Sprintf(format, args...)}
}

// Password builds a KindPassword error, optionally wrapping the integrity
// failure that triggered it.
func Password(cause error) error {
	return &Error{Kind: KindPassword, Msg: "incorrect master password", Err: cause}
}

// IO builds a KindIO error wrapping an underlying stream failure.
func IO(err error) error {
	return &Error{Kind: KindIO, Msg: "stream read failed", Err: err}
}

// Internal builds a KindInternal error for a violated precondition.
func Internal(format string, args ...interface{}) error {
	return &Error{Kind: KindInternal, Msg: fmt.Sprintf(format, args...)}
}
