// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package app contains shared application-layer constants used across the
// go-task-keeper server handlers and middleware.
//
// All Msg* constants are human-readable message strings that are written into
// HTTP response bodies to describe the outcome of an operation.
package app

const (
	// MsgInvalidJSON is returned when the request body is not a single
	// well-formed JSON document.
	MsgInvalidJSON = "invalid JSON was passed"

	// MsgRouteNotFound is returned for unknown paths and unsupported methods.
	MsgRouteNotFound = "route not found"

	// MsgInternalServerError is returned when an unexpected server-side
	// failure occurs that the client cannot resolve.
	MsgInternalServerError = "internal server error"

	MsgRegistered  = "registration successful"
	MsgLoggedIn    = "login successful"
	MsgTaskCreated = "task created"
	MsgTaskUpdated = "task updated"
	MsgTaskDeleted = "task deleted"

	// MsgHealthOK is the status reported by the health endpoint.
	MsgHealthOK = "ok"
)
