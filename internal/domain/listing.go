package domain

// Listing is the subset of a marketplace item the promotion flow needs.
type Listing struct {
	ID         int64
	Title      string
	OwnerEmail string
	IsPromoted bool
}

// OwnedBy reports whether email is the listing owner.
func (l *Listing) OwnedBy(email string) bool {
	return l.OwnerEmail != "" && l.OwnerEmail == email
}

func (l *Listing) Promote() {
	l.IsPromoted = true
}

func (l *Listing) Demote() {
	l.IsPromoted = false
}
