package entities

// Locator is an opaque shareable resource locator handed back to the page.
// Content-picker locators are produced by the picker; capture locators by the
// share provider. The bridge never inspects locator contents.
type Locator string

// PickerCode is the result code of a composite chooser round-trip.
type PickerCode int

const (
	// PickerOK indicates the dialog completed with a user choice.
	PickerOK PickerCode = iota

	// PickerCancelled indicates the dialog was dismissed without a choice.
	PickerCancelled
)

// String returns the human-readable name of the result code.
func (c PickerCode) String() string {
	switch c {
	case PickerOK:
		return "ok"
	case PickerCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// PickerResult is the single result delivered for one composite chooser
// launch. A non-cancelled result without a data locator means the user took
// a photo: the pre-created capture destination holds the content.
type PickerResult struct {
	Code PickerCode
	Data Locator // locator returned by the content picker, empty when absent
}

// PromptResult is the user's answer to a capability consent prompt.
type PromptResult struct {
	// Granted is true if the user allowed the capability.
	Granted bool

	// Always is true if the user asked for the decision to persist.
	Always bool
}
