// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package app contains the client-facing message strings written into the
// JSON error bodies of the notes API.
package app

const (
	MsgInvalidRequest     = "Invalid request"
	MsgInvalidNoteID      = "Invalid note ID"
	MsgInvalidPagination  = "Invalid pagination parameters"
	MsgNoteNotFound       = "Note not found"
	MsgUnauthorized       = "Unauthorized"
	MsgNotOwner           = "Unauthorized user. Note not belongs to this user"
	MsgTooManyRequests    = "Too many requests"
	MsgServiceUnavailable = "Service unavailable"
	MsgRequestTimedOut    = "Request timed out"
	MsgNotFound           = "Not found"

	// Storage failures are reported per operation; the cause is only logged.
	MsgFailedToLoadNotes  = "Failed to load notes"
	MsgFailedToLoadNote   = "Failed to load note"
	MsgFailedToCreateNote = "Failed to create note"
	MsgFailedToToggleStar = "Failed to toggle star"
	MsgFailedToUpdateNote = "Failed to update note"
	MsgFailedToDeleteNote = "Failed to delete note"
)
