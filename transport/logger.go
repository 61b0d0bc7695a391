// Copyright (C) 2024 Kirk Diggler
// SPDX-License-Identifier: GPL-3.0-or-later

// Package transport implements the automation engine's ChatTransport
// contract as structured zerolog lines, for embedding in a host that has
// not yet wired a real chat backend (or in tests asserting on delivered
// PM content).
package transport

import (
	"context"

	"github.com/rs/zerolog"
)

// Logger renders PM bursts as structured log lines rather than delivering
// them anywhere, logging (never returning) per-recipient failures — which
// for this transport never occur, since logging cannot itself fail in a
// way the caller needs to react to.
type Logger struct {
	log zerolog.Logger
}

// NewLogger wraps l as a ChatTransport.
func NewLogger(l zerolog.Logger) *Logger {
	return &Logger{log: l}
}

// SendPM implements automation.ChatTransport.
func (t *Logger) SendPM(ctx context.Context, userID string, title string, lines []string) error {
	evt := t.log.Info().Str("user", userID)
	if title != "" {
		evt = evt.Str("title", title)
	}
	evt.Strs("lines", lines).Msg("pm delivered")
	return nil
}

// Recorder is a test-oriented ChatTransport that captures every delivered
// PM burst in order, for assertions against the automation's PM fan-out
// rather than against log output.
type Recorder struct {
	Sent []RecordedPM
}

// RecordedPM is one captured SendPM call.
type RecordedPM struct {
	UserID string
	Title  string
	Lines  []string
}

// NewRecorder returns an empty Recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// SendPM implements automation.ChatTransport.
func (r *Recorder) SendPM(ctx context.Context, userID string, title string, lines []string) error {
	r.Sent = append(r.Sent, RecordedPM{UserID: userID, Title: title, Lines: append([]string(nil), lines...)})
	return nil
}
