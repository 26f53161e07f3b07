package domain

import "strings"

// MessageType identifies a message crossing the worker boundary.
type MessageType string

const (
	MessageCompress MessageType = "compress" // Caller to worker.
	MessageProgress MessageType = "progress" // Worker to caller, informational.
	MessageResult   MessageType = "result"   // Worker to caller, terminal.
	MessageError    MessageType = "error"    // Worker to caller, terminal.
)

// Request asks the worker to shrink a file. Buffer ownership moves to the
// worker when the request is posted; the caller must not touch it afterwards.
type Request struct {
	ID     string      `json:"id,omitempty"`
	Type   MessageType `json:"type"`
	Buffer []byte      `json:"buffer"`
	Name   string      `json:"name"`
	Mime   string      `json:"mime"`
	Preset Preset      `json:"preset"`
}

// Response is emitted by the worker. For one request the worker sends zero
// or more progress responses followed by exactly one result or error.
// A result Blob is handed to the receiver; the worker keeps no reference.
type Response struct {
	RequestID string      `json:"id,omitempty"`
	Type      MessageType `json:"type"`

	// Progress.
	Text string `json:"text,omitempty"`

	// Result.
	Blob         []byte `json:"blob,omitempty"`
	Mime         string `json:"mime,omitempty"`
	OriginalMime string `json:"originalMime,omitempty"`
	OriginalName string `json:"originalName,omitempty"`
	IsArchive    bool   `json:"isArchive,omitempty"`

	// Error.
	Error string `json:"error,omitempty"`
}

// IsTerminal reports whether no further response follows this one.
func (r *Response) IsTerminal() bool {
	return r.Type == MessageResult || r.Type == MessageError
}

// IsImageMime reports whether a MIME type takes the image re-encode path.
func IsImageMime(mime string) bool {
	return strings.HasPrefix(mime, "image/")
}

// FileKind is a coarse content category used for display.
type FileKind string

const (
	KindImage        FileKind = "image"
	KindPDF          FileKind = "pdf"
	KindDocument     FileKind = "document"
	KindSpreadsheet  FileKind = "spreadsheet"
	KindPresentation FileKind = "presentation"
	KindText         FileKind = "text"
	KindOther        FileKind = "other"
)

// KindOf classifies a MIME type. Checks run in order, so a PDF is never
// reported as a document.
func KindOf(mime string) FileKind {
	switch {
	case IsImageMime(mime):
		return KindImage
	case strings.Contains(mime, "pdf"):
		return KindPDF
	case strings.Contains(mime, "word"), strings.Contains(mime, "document"):
		return KindDocument
	case strings.Contains(mime, "excel"), strings.Contains(mime, "spreadsheet"):
		return KindSpreadsheet
	case strings.Contains(mime, "powerpoint"), strings.Contains(mime, "presentation"):
		return KindPresentation
	case strings.Contains(mime, "text"):
		return KindText
	default:
		return KindOther
	}
}
