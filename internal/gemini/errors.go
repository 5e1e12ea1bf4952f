package gemini

import "errors"

var (
	// ErrEmptyResponse means the API returned no candidates at all.
	ErrEmptyResponse = errors.New("model returned an empty response")

	// ErrNoImageData means candidates came back with neither image nor
	// text content.
	ErrNoImageData = errors.New("model returned no image data")
)

// RefusedError means the model answered with explanatory text instead of
// an image. The text is carried verbatim so callers can show it.
type RefusedError struct {
	Text string
}

func (e *RefusedError) Error() string {
	return "model declined to generate an image: " + e.Text
}

// TransportError wraps a failed call to the API itself (network, auth,
// rate limit). The cause is not classified further; callers get a fixed
// generic message and can unwrap for logging.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return "image service request failed"
}

func (e *TransportError) Unwrap() error {
	return e.Err
}
