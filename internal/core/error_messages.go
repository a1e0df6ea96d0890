package core

// error_messages.go maps technical errors to user-friendly messages with codes
// for support reference.
//
// # Network Errors (NET001-NET099)
//
//	NET001 - Upstream status: The product service rejected the request
//	         Action: Check the request and try again
//	         Match: *NetworkError with a status code
//
//	NET002 - Connection refused: Unable to reach the product service
//	         Action: Please try again in a few moments
//	         Patterns: "connection refused", "no such host"
//
//	NET003 - Timeout: The product service did not answer in time
//	         Action: Please try again
//	         Patterns: "timeout", "deadline exceeded"
//
// # Lookup Errors (NF001-NF099)
//
//	NF001 - Not found: Item not found
//	        Action: Refresh the table and try again
//	        Match: *NotFoundError, pattern "not found"
//
// # View Errors (VIEW001-VIEW099)
//
//	VIEW001 - Nothing to export: No data to export
//	          Action: Change the search or page so rows are visible
//	          Patterns: "no data to export"
//
//	VIEW002 - Unknown sort field: The table cannot be sorted by that column
//	          Action: Sort by title or price
//	          Patterns: "unknown sort field"
//
// # Access Errors
//
//	RATE001 - Rate limited: Too many requests
//	AUTH001 - Missing or invalid API key
//
// # Default Error (ERR000)
//
// Fallback when no specific pattern matches. Support staff should check the
// application logs for the original technical error.
//
// Typed errors are checked first; after that patterns are matched
// case-insensitively with strings.Contains and the first match wins.

import (
	"errors"
	"fmt"
	"strings"
)

// UserMessage provides user-friendly error information with actionable guidance.
type UserMessage struct {
	Message string // What happened (user-friendly)
	Action  string // What to do about it
	Code    string // Error code for support reference
}

// errorPattern defines a pattern to match and its corresponding user message.
type errorPattern struct {
	pattern string
	msg     UserMessage
}

var (
	msgUpstreamStatus = UserMessage{
		Message: "The product service rejected the request",
		Action:  "Check the request and try again",
		Code:    "NET001",
	}
	msgNotFound = UserMessage{
		Message: "Item not found",
		Action:  "Refresh the table and try again",
		Code:    "NF001",
	}
)

// errorPatterns maps technical error patterns (case-insensitive) to user messages.
// More specific patterns must come before general ones.
var errorPatterns = []errorPattern{
	{
		pattern: "connection refused",
		msg: UserMessage{
			Message: "Unable to reach the product service",
			Action:  "Please try again in a few moments",
			Code:    "NET002",
		},
	},
	{
		pattern: "no such host",
		msg: UserMessage{
			Message: "Unable to reach the product service",
			Action:  "Please try again in a few moments",
			Code:    "NET002",
		},
	},
	{
		pattern: "timeout",
		msg: UserMessage{
			Message: "The product service did not answer in time",
			Action:  "Please try again",
			Code:    "NET003",
		},
	},
	{
		pattern: "deadline exceeded",
		msg: UserMessage{
			Message: "The product service did not answer in time",
			Action:  "Please try again",
			Code:    "NET003",
		},
	},
	{
		pattern: "not found",
		msg:     msgNotFound,
	},
	{
		pattern: "no data to export",
		msg: UserMessage{
			Message: "No data to export",
			Action:  "Change the search or page so rows are visible",
			Code:    "VIEW001",
		},
	},
	{
		pattern: "unknown sort field",
		msg: UserMessage{
			Message: "The table cannot be sorted by that column",
			Action:  "Sort by title or price",
			Code:    "VIEW002",
		},
	},
	{
		pattern: "session expired",
		msg: UserMessage{
			Message: "Your session has expired",
			Action:  "Reload the page to start a new session",
			Code:    "SESS001",
		},
	},
	{
		pattern: "rate limit",
		msg: UserMessage{
			Message: "Too many requests",
			Action:  "Please wait a moment before trying again",
			Code:    "RATE001",
		},
	},
	{
		pattern: "api key",
		msg: UserMessage{
			Message: "Missing or invalid API key",
			Action:  "Send a configured key in the X-API-Key header",
			Code:    "AUTH001",
		},
	},
}

// defaultMessage is returned when no pattern matches (ERR000).
var defaultMessage = UserMessage{
	Message: "An unexpected error occurred",
	Action:  "Please try again or contact support",
	Code:    "ERR000",
}

// MapError converts a technical error to a user-friendly message.
//
// Example:
//
//	msg := MapError(&NetworkError{Op: "update", Status: 500})
//	// msg.Code == "NET001"
func MapError(err error) UserMessage {
	if err == nil {
		return UserMessage{}
	}

	var nf *NotFoundError
	if errors.As(err, &nf) {
		return msgNotFound
	}
	var ne *NetworkError
	if errors.As(err, &ne) && ne.Status != 0 {
		msg := msgUpstreamStatus
		msg.Message = fmt.Sprintf("%s (HTTP %d)", msg.Message, ne.Status)
		return msg
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

// IsUserFacing reports whether err maps to a specific message rather than ERR000.
func IsUserFacing(err error) bool {
	if err == nil {
		return false
	}
	return MapError(err).Code != defaultMessage.Code
}
