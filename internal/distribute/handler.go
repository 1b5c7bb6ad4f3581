package distribute

import "context"

// Request describes one upload to one destination.
type Request struct {
	VideoPath string
	Caption   string
	// Profile selects a named browser profile for automation handlers.
	Profile string
}

// Handler uploads a video to a single destination.
type Handler interface {
	Name() string
	Upload(ctx context.Context, req Request) error
}

// Job pairs a destination handler with its prepared request.
type Job struct {
	Handler Handler
	Request Request
}
