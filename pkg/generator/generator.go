// SPDX-License-Identifier: Apache-2.0

// Package generator provides a client for an external text generation
// service that can synthesize fake personal data on demand. Callers are
// expected to treat the service as best effort and keep a local fallback,
// since availability is never guaranteed.
package generator

import (
	"context"
	"errors"
)

type Generator interface {
	Generate(ctx context.Context, kind Kind) (string, error)
	Close() error
}

// Kind identifies the class of value requested from the generation service.
type Kind string

const (
	Name  Kind = "name"
	Email Kind = "email"
)

var (
	// ErrGeneratorUnavailable covers unreachable services, timeouts and
	// malformed responses. Callers recover from it locally.
	ErrGeneratorUnavailable = errors.New("generation service unavailable")
	ErrUnsupportedKind      = errors.New("unsupported generation kind")
)
