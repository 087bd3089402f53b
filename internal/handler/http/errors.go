// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import "errors"

// Sentinel errors of the authentication middleware.
var (
	// ErrEmptyAuthorizationHeader is returned when the request carries no
	// "Authorization" header.
	ErrEmptyAuthorizationHeader = errors.New("empty `Authorization` header")

	// ErrNoUserInContext is returned by handlers that require a caller id
	// when the auth middleware did not store one.
	ErrNoUserInContext = errors.New("no user id in request context")

	errRateLimited = errors.New("rate limit exceeded")
)
