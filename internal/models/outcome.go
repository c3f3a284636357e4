// Bookmarket - Book Recommendation and Pricing Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookmarket

package models

// Outcome is the result kind of a single engine stage. Stages never return
// errors to the request path; they report an Outcome and the caller decides
// which stage runs next.
type Outcome int

const (
	// OutcomeOK means the stage produced a usable result.
	OutcomeOK Outcome = iota
	// OutcomeNotFound means the subject (title, user, record) is absent.
	OutcomeNotFound
	// OutcomeUnavailable means a dependency (store, artifact, remote API) failed.
	OutcomeUnavailable
	// OutcomeTimeout means a dependency did not answer in time.
	OutcomeTimeout
)

// String returns the label used in logs and metrics.
func (o Outcome) String() string {
	switch o {
	case OutcomeOK:
		return "ok"
	case OutcomeNotFound:
		return "not_found"
	case OutcomeUnavailable:
		return "unavailable"
	case OutcomeTimeout:
		return "timeout"
	default:
		return "unknown"
	}
}

// OK reports whether the outcome is OutcomeOK.
func (o Outcome) OK() bool {
	return o == OutcomeOK
}
