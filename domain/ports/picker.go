package ports

import "github.com/hostview-dev/hostview-sdk/domain/entities"

// ChooserSpec describes one composite chooser launch: a single dialog
// offering camera capture and a content picker as equally weighted
// alternatives.
type ChooserSpec struct {
	Request entities.ChooserRequest

	// Capture is the pre-created camera destination. Nil means destination
	// creation failed and the camera option must be omitted from the dialog.
	Capture *entities.CaptureTarget

	// AcceptTypes restricts the content-picker alternative. Defaults to
	// image types when empty.
	AcceptTypes []string
}

// Picker presents the composite chooser dialog. Launch returns immediately;
// done is invoked exactly once on the bridge dispatcher when the dialog
// completes or is dismissed.
type Picker interface {
	Launch(spec ChooserSpec, done func(entities.PickerResult))
}
