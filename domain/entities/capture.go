package entities

// CaptureTarget is a freshly created, empty destination file handed to the
// camera subsystem as its write target, plus the shareable locator derived
// for it. The bridge owns the target for the duration of one camera
// round-trip; a target the camera never writes is orphaned, not cleaned up.
type CaptureTarget struct {
	Path    string
	Locator Locator
}
