package audit

import "time"

const (
	ActionCreate = "CREATE"
	ActionUpdate = "UPDATE"
	ActionDelete = "DELETE"
)

const (
	EntityTypeProduct = "Product"
	EntityTypeSale    = "Sale"
	EntityTypeUser    = "User"
)

// Entry is one append-only audit record. UserID and Username are
// snapshots of the acting user at write time, not live references.
type Entry struct {
	ID         int64
	UserID     int64
	Username   string
	Action     string
	EntityType string
	EntityID   int64
	OldValue   *string
	NewValue   *string
	Timestamp  time.Time
}
