package domain

// Todo is a single to-do item. UserID records the creator but is not used to
// restrict access to the record.
type Todo struct {
	ID        string
	Title     string
	Completed bool
	UserID    string
}
