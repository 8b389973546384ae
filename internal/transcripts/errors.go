package transcripts

import "errors"

var (
	ErrUnknownContentType = errors.New("unknown content type")
	ErrMissingQAGoal      = errors.New("qa goal is required")
)
