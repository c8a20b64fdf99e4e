package persistence

// PersonRecord is the storage form of a roster entry. Value fields are kept
// in their display form ("1-6", "40") so the domain layer owns parsing.
type PersonRecord struct {
	// ID is 0 for records written without one; they are renumbered on restore.
	ID        int
	Role      string
	Name      string
	Phone     string
	Email     string
	Address   string
	Tags      []string
	Subject   string
	Level     string
	Price     string
	MatchedID int
	Session   *SessionRecord
}

// SessionRecord is the storage form of a scheduled session.
type SessionRecord struct {
	Day             string
	Time            string
	DurationMinutes int
	Subject         string
	Price           int
}
