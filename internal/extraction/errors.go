package extraction

import "errors"

var (
	// ErrUnsupportedType indicates a MIME type no parser handles.
	ErrUnsupportedType = errors.New("unsupported document type")
	// ErrUnreadable indicates the document bytes could not be decoded at all.
	ErrUnreadable = errors.New("document is unreadable")
)
