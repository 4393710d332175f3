package core

// # Error Codes Reference
//
// This file defines user-friendly error messages with codes for support
// reference. Users can quote the code to support staff for faster diagnosis.
//
// # Data Source Errors (SRC001-SRC003)
//
//	SRC001 - Unexpected payload: The data source returned data in an unexpected shape
//	         Patterns: "unexpected payload"
//	SRC002 - Unknown endpoint: The data source does not provide this list
//	         Patterns: "unknown endpoint"
//	SRC003 - Unreachable: Unable to reach the data source
//	         Patterns: "dial tcp", "no such host", "connection refused"
//
// # View Errors (VIEW001-VIEW005)
//
//	VIEW001 - Unknown view                 Patterns: "unknown view"
//	VIEW002 - Page expired                 Patterns: "view instance not found"
//	VIEW003 - Unknown column or filter     Patterns: "unknown filter key", "unknown column"
//	VIEW004 - Invalid recommendation       Patterns: "invalid recommendation"
//	VIEW005 - Read-only view               Patterns: "read-only"
//
// # Export Errors (EXP001-EXP003)
//
//	EXP001 - Busy                          Patterns: "too many concurrent exports"
//	EXP002 - Unsupported format            Patterns: "unsupported export format"
//	EXP003 - Rendering failed              Patterns: "export failed"
//
// # Database Errors (DB001-DB004)
//
//	DB001 - Busy                           Patterns: "deadlock", "database is locked"
//	DB002 - Connection failed              Patterns: "failed to connect"
//	DB003 - Record missing                 Patterns: "record not found", ": not found"
//	DB004 - Query rejected                 Patterns: "sqlstate", "sql logic error"
//
// # Request, Rate and Auth Errors
//
//	REQ001  - Cancelled                    Patterns: "context canceled"
//	REQ002  - Timed out                    Patterns: "context deadline exceeded", "timeout"
//	REQ003  - Malformed request            Patterns: "invalid request parameter"
//	RATE001 - Too many requests            Patterns: "rate limit"
//	AUTH001 - Missing API key              Patterns: "missing api key"
//	AUTH002 - Invalid API key              Patterns: "invalid api key"
//
// Fallback when no specific pattern matches:
//
//	ERR000 - Unknown error: An unexpected error occurred
//
// Patterns are matched case-insensitively with strings.Contains and the first
// match wins, so specific patterns come before general ones. When a user
// reports ERR000, check the application log for the technical error.

import (
	"fmt"
	"strings"
)

// UserMessage provides user-friendly error information with actionable guidance.
type UserMessage struct {
	Message string // What happened (user-friendly)
	Action  string // What to do about it
	Code    string // Error code for support reference
}

type errorPattern struct {
	pattern string
	msg     UserMessage
}

var errorPatterns = []errorPattern{
	// Export
	{
		pattern: "too many concurrent exports",
		msg: UserMessage{
			Message: "Other exports are still being prepared",
			Action:  "Please wait a moment and try the export again",
			Code:    "EXP001",
		},
	},
	{
		pattern: "unsupported export format",
		msg: UserMessage{
			Message: "This export format is not available",
			Action:  "Choose Excel, PDF or CSV",
			Code:    "EXP002",
		},
	},
	{
		pattern: "export failed",
		msg: UserMessage{
			Message: "The export file could not be created",
			Action:  "Try again, or narrow the table with filters first",
			Code:    "EXP003",
		},
	},

	// Views
	{
		pattern: "unknown view",
		msg: UserMessage{
			Message: "This list does not exist",
			Action:  "Pick a list from the home page",
			Code:    "VIEW001",
		},
	},
	{
		pattern: "view instance not found",
		msg: UserMessage{
			Message: "This page has expired",
			Action:  "Reload the page to start over",
			Code:    "VIEW002",
		},
	},
	{
		pattern: "unknown filter key",
		msg: UserMessage{
			Message: "That filter is not available for this list",
			Action:  "Reload the page and use the filters shown",
			Code:    "VIEW003",
		},
	},
	{
		pattern: "unknown column",
		msg: UserMessage{
			Message: "That column cannot be sorted",
			Action:  "Reload the page and sort by a visible column",
			Code:    "VIEW003",
		},
	},
	{
		pattern: "invalid recommendation",
		msg: UserMessage{
			Message: "That recommendation is not allowed",
			Action:  "Choose one of the listed positions",
			Code:    "VIEW004",
		},
	},
	{
		pattern: "read-only",
		msg: UserMessage{
			Message: "This list cannot be edited",
			Action:  "Use the Applicant Review list to record recommendations",
			Code:    "VIEW005",
		},
	},

	// Data source
	{
		pattern: "unexpected payload",
		msg: UserMessage{
			Message: "The data source returned data in an unexpected shape",
			Action:  "Please try again later or contact support",
			Code:    "SRC001",
		},
	},
	{
		pattern: "unknown endpoint",
		msg: UserMessage{
			Message: "The data source does not provide this list",
			Action:  "Contact support to check the deployment",
			Code:    "SRC002",
		},
	},

	// Database
	{
		pattern: "deadlock",
		msg: UserMessage{
			Message: "Database was busy with conflicting operations",
			Action:  "Please try again",
			Code:    "DB001",
		},
	},
	{
		pattern: "database is locked",
		msg: UserMessage{
			Message: "Database was busy with conflicting operations",
			Action:  "Please try again",
			Code:    "DB001",
		},
	},
	{
		pattern: "failed to connect",
		msg: UserMessage{
			Message: "Unable to connect to database",
			Action:  "Please try again in a few moments",
			Code:    "DB002",
		},
	},
	{
		pattern: "record not found",
		msg: UserMessage{
			Message: "The record no longer exists",
			Action:  "Refresh the list to see current data",
			Code:    "DB003",
		},
	},
	{
		pattern: ": not found",
		msg: UserMessage{
			Message: "The record no longer exists",
			Action:  "Refresh the list to see current data",
			Code:    "DB003",
		},
	},
	{
		pattern: "sqlstate",
		msg: UserMessage{
			Message: "The database rejected the request",
			Action:  "Please try again or contact support",
			Code:    "DB004",
		},
	},
	{
		pattern: "sql logic error",
		msg: UserMessage{
			Message: "The database rejected the request",
			Action:  "Please try again or contact support",
			Code:    "DB004",
		},
	},

	// Reachability (after failed to connect so database dial errors keep DB002)
	{
		pattern: "dial tcp",
		msg: UserMessage{
			Message: "Unable to reach the data source",
			Action:  "Please try again in a few moments",
			Code:    "SRC003",
		},
	},
	{
		pattern: "no such host",
		msg: UserMessage{
			Message: "Unable to reach the data source",
			Action:  "Please try again in a few moments",
			Code:    "SRC003",
		},
	},
	{
		pattern: "connection refused",
		msg: UserMessage{
			Message: "Unable to reach the data source",
			Action:  "Please try again in a few moments",
			Code:    "SRC003",
		},
	},

	// Request
	{
		pattern: "context canceled",
		msg: UserMessage{
			Message: "Request was cancelled",
			Action:  "Please try again",
			Code:    "REQ001",
		},
	},
	{
		pattern: "context deadline exceeded",
		msg: UserMessage{
			Message: "Request timed out",
			Action:  "Please try again",
			Code:    "REQ002",
		},
	},
	{
		pattern: "timeout",
		msg: UserMessage{
			Message: "Request timed out",
			Action:  "Please try again",
			Code:    "REQ002",
		},
	},

	{
		pattern: "invalid request parameter",
		msg: UserMessage{
			Message: "The request was not understood",
			Action:  "Reload the page and try again",
			Code:    "REQ003",
		},
	},

	// Rate limiting and auth
	{
		pattern: "rate limit",
		msg: UserMessage{
			Message: "Too many requests",
			Action:  "Please wait a moment before trying again",
			Code:    "RATE001",
		},
	},
	{
		pattern: "missing api key",
		msg: UserMessage{
			Message: "An API key is required",
			Action:  "Send the key in the X-API-Key header",
			Code:    "AUTH001",
		},
	},
	{
		pattern: "invalid api key",
		msg: UserMessage{
			Message: "The API key was not accepted",
			Action:  "Check the key with your administrator",
			Code:    "AUTH002",
		},
	},
}

var defaultMessage = UserMessage{
	Message: "An unexpected error occurred",
	Action:  "Please try again or contact support",
	Code:    "ERR000",
}

// MapError converts a technical error to a user-friendly message.
// If no pattern matches, the ERR000 fallback is returned.
//
//	msg := MapError(fmt.Errorf("render: %w", ErrTooManyExports))
//	// msg.Code == "EXP001"
func MapError(err error) UserMessage {
	if err == nil {
		return UserMessage{}
	}

	errStr := strings.ToLower(err.Error())

	for _, ep := range errorPatterns {
		if strings.Contains(errStr, ep.pattern) {
			return ep.msg
		}
	}

	return defaultMessage
}

// FormatUserError creates a formatted error string for display.
// The format is: "Message (Code: XXX). Action"
func FormatUserError(err error) string {
	msg := MapError(err)
	if msg.Message == "" {
		return ""
	}
	return fmt.Sprintf("%s (Code: %s). %s", msg.Message, msg.Code, msg.Action)
}

// IsUserFacing reports whether err matches a known pattern rather than the
// ERR000 fallback.
func IsUserFacing(err error) bool {
	if err == nil {
		return false
	}
	return MapError(err).Code != defaultMessage.Code
}

// UserError pairs a technical error with the message shown to users.
type UserError struct {
	Technical error       // Original technical error for logging
	User      UserMessage // User-friendly message for display
}

func (e *UserError) Error() string {
	return e.User.Message
}

func (e *UserError) Unwrap() error {
	return e.Technical
}

// NewUserError maps err to a UserError. Returns nil if err is nil.
func NewUserError(err error) *UserError {
	if err == nil {
		return nil
	}
	return &UserError{
		Technical: err,
		User:      MapError(err),
	}
}
