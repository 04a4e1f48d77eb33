package domain

import "time"

type ListenKind string

const (
	ListenUtterance    ListenKind = "utterance"
	ListenTimeout      ListenKind = "timeout"
	ListenUnrecognized ListenKind = "unrecognized"
	ListenServiceError ListenKind = "service_error"
)

const (
	DefaultListenTimeout = 5 * time.Second
	DefaultPhraseLimit   = 10 * time.Second
)

const (
	RepromptSentence = "I didn't quite catch that. Could you repeat your question, or look at a clothing item for me to scan?"
	AckSentence      = "One moment, let me check your style options..."
	GoodbyeSentence  = "Goodbye! I hope you look great today."
	VoiceWelcome     = "Hello! I'm MiraAI, your live personal stylist. Look through your wardrobe, or just ask me for an outfit!"
	ChatWelcome      = "Hello! I'm MiraAI, your personal AI fashion stylist. What fashion question do you have for me?"
)

type ListenResult struct {
	Kind ListenKind
	Text string
	Err  error
}

// AudioClip is mono signed 16-bit little-endian PCM.
type AudioClip struct {
	PCM        []byte
	SampleRate int
}

func (c AudioClip) Duration() time.Duration {
	if c.SampleRate <= 0 {
		return 0
	}

	samples := len(c.PCM) / 2
	return time.Duration(samples) * time.Second / time.Duration(c.SampleRate)
}
