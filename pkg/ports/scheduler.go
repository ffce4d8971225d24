package ports

// Scheduler posts work to the next frame of the host's single-threaded loop.
type Scheduler interface {
	Post(fn func())
}
