package outbound

// TaskDispatcher abstracts the worker pool every streaming producer runs on.
type TaskDispatcher interface {
	Submit(task func()) error
}
