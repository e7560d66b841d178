package ports

// Notifier surfaces transient user-facing notices, the host analog of a
// toast. Notices are fire-and-forget; no condition surfaced here is fatal.
type Notifier interface {
	Notify(message string)
}
