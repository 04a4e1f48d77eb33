package domain

import (
	"context"
	"errors"
	"time"
)

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

type Turn struct {
	Role    Role
	Content string
	At      time.Time
}

type FailureKind string

const (
	FailureNone        FailureKind = ""
	FailureTimeout     FailureKind = "timeout"
	FailureAuth        FailureKind = "auth"
	FailureQuota       FailureKind = "quota"
	FailureBlocked     FailureKind = "blocked"
	FailureEmptyReply  FailureKind = "empty_reply"
	FailureUnavailable FailureKind = "unavailable"
	FailureInternal    FailureKind = "internal"
)

const (
	ApologyReply       = "I apologize, but I'm having trouble connecting to my styling brain right now. Please try again in a moment."
	InternalErrorReply = "I'm sorry, I encountered an internal error. Please check the console."
)

// ClassifyFailure maps a backend error onto the failure kinds the
// conversation layer knows how to phrase.
func ClassifyFailure(err error) FailureKind {
	switch {
	case err == nil:
		return FailureNone
	case errors.Is(err, ErrBackendTimeout), errors.Is(err, context.DeadlineExceeded):
		return FailureTimeout
	case errors.Is(err, ErrBackendAuth), errors.Is(err, ErrCredentialMissing):
		return FailureAuth
	case errors.Is(err, ErrBackendQuota):
		return FailureQuota
	case errors.Is(err, ErrReplyBlocked):
		return FailureBlocked
	case errors.Is(err, ErrEmptyReply):
		return FailureEmptyReply
	default:
		return FailureUnavailable
	}
}

func FallbackText(kind FailureKind) string {
	switch kind {
	case FailureNone:
		return ""
	case FailureInternal:
		return InternalErrorReply
	default:
		return ApologyReply
	}
}
