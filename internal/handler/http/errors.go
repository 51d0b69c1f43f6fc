// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import "errors"

var (
	// errNoIdentity is returned when a protected handler runs without the
	// identity the auth middleware attaches to the request context.
	errNoIdentity = errors.New("no identity in request context")

	errPanicRecovered = errors.New("panic recovered")
)
