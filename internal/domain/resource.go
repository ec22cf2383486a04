package domain

import "fmt"

// Resource represents a fleet vehicle row on the calendar
type Resource struct {
	ID           string
	Label        string
	Plate        string
	Image        string
	Transmission string
	Fuel         string
	Year         int
	Type         string
	Color        string
}

// Validate returns an error when the record cannot be shown
func (r *Resource) Validate() error {
	if r.ID == "" {
		return fmt.Errorf("%w: resource id", ErrMissingID)
	}
	return nil
}
