// Bookmarket - Book Recommendation and Pricing Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookmarket

// Package logging provides the zerolog-based structured logger used across
// Bookmarket.
//
// A single global logger is configured once from main:
//
//	logging.Init(logging.Config{Level: "info", Format: "json"})
//	logging.Info().Str("addr", addr).Msg("HTTP server listening")
//
// Components derive child loggers with a component field:
//
//	log := logging.WithComponent("pricing")
//
// Request handlers log through Ctx, which attaches the request_id stored by
// the request-id middleware:
//
//	logging.Ctx(r.Context()).Warn().Err(err).Msg("Market lookup failed")
//
// Libraries that expect log/slog (suture's event hook, watermill) are given
// NewSlogLogger, which forwards records to the same zerolog output.
//
// Always terminate chains with Msg or Send; an unterminated event is never
// written.
package logging
