package notify

// Variant selects how the front end renders a toast.
type Variant string

const (
	VariantDefault     Variant = "default"
	VariantDestructive Variant = "destructive"
)

// Notification is the toast payload embedded in API responses. Purely
// presentational; the front end fires and forgets it.
type Notification struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Variant     Variant `json:"variant"`
}

// Success builds a default-variant notification.
func Success(title, description string) Notification {
	return Notification{Title: title, Description: description, Variant: VariantDefault}
}

// Error builds a destructive-variant notification.
func Error(title, description string) Notification {
	return Notification{Title: title, Description: description, Variant: VariantDestructive}
}
