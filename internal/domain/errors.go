package domain

import "errors"

var (
	ErrCorruptWardrobe   = errors.New("wardrobe document is corrupt")
	ErrCredentialMissing = errors.New("credential not configured")
	ErrSecretNotFound    = errors.New("secret not found")

	ErrBackendTimeout     = errors.New("backend timed out")
	ErrBackendAuth        = errors.New("backend rejected credentials")
	ErrBackendQuota       = errors.New("backend quota exhausted")
	ErrBackendUnavailable = errors.New("backend unavailable")
	ErrReplyBlocked       = errors.New("reply blocked by safety filters")
	ErrEmptyReply         = errors.New("backend returned an empty reply")

	ErrNoSpeech     = errors.New("no speech detected")
	ErrUnrecognized = errors.New("speech not recognized")

	ErrDeviceUnavailable = errors.New("capture device unavailable")
)
