/*
 * errors.go, part of ligfit.
 *
 *
 * Copyright 2024 Raul Mera <rauldotmeraatusachdotcl>
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 *
 * ligfit is currently developed at the Universidad de Santiago de Chile
 * (USACH)
 *
 */

package ligfit

import "fmt"

//This error system predates the "wrapping" errors of Go (the "%w" directive
//and the errors package). It is kept for compatibility with goChem, where
//the Decorate method lets callers add information while passing an error up
//without changing its type.

// Error is the interface for errors that all packages in this library
// implement. Decorate adds information to the error and returns the
// resulting decoration slice. If passed an empty string it just returns
// the current value.
type Error interface {
	Error() string
	Decorate(string) []string
}

// The error "classes" of the library. Every CError carries one of these,
// so callers can tell what stage of a run went wrong without string
// matching against the full message.
const (
	ParseError               = "ligfit: parse error"
	EmbeddingError           = "ligfit: no template embedding obtained"
	ConformerGenerationError = "ligfit: no constrained conformers produced"
	AlignmentError           = "ligfit: point-set mismatch in superposition"
)

// CError is the concrete error type of the library.
type CError struct {
	class string
	msg   string
	deco  []string
}

// NewError returns a CError of the given class (one of the constants
// above) with a free-form message.
func NewError(class, msg string) *CError {
	return &CError{class: class, msg: msg}
}

func (err *CError) Error() string {
	return fmt.Sprintf("%s: %s", err.class, err.msg)
}

// Class returns the error class constant of the error.
func (err *CError) Class() string { return err.class }

// Decorate adds the dec string to the decoration slice of the error
// and returns the resulting slice.
func (err *CError) Decorate(dec string) []string {
	if dec != "" {
		err.deco = append(err.deco, dec)
	}
	return err.deco
}

// IsClass reports whether err is a ligfit error of the given class.
func IsClass(err error, class string) bool {
	c, ok := err.(*CError)
	return ok && c.class == class
}

// errDecorate asserts that err implements ligfit.Error and decorates it
// with the caller's name before returning it. Calling it on a non-ligfit
// error is a programming mistake, so it panics.
func errDecorate(err error, caller string) error {
	err2 := err.(Error)
	err2.Decorate(caller)
	return err2
}
