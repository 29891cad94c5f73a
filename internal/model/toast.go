package model

// ToastSeverity classifies a transient in-app toast.
type ToastSeverity string

const (
	ToastSuccess ToastSeverity = "success"
	ToastError   ToastSeverity = "error"
	ToastInfo    ToastSeverity = "info"
	ToastWarning ToastSeverity = "warning"
)

// Toast is a transient in-app message. Toasts are ephemeral: they are never
// persisted and expire from the UI after a few seconds.
type Toast struct {
	// ID is a locally generated unique identifier used for removal.
	ID string

	// Message is the text shown to the user.
	Message string

	// Severity selects the toast's visual treatment.
	Severity ToastSeverity
}
