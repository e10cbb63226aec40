package dashboard

import (
	"github.com/google/uuid"

	"github.com/winshop/winshop/internal/models"
)

// Snapshot is the in-memory copy of the order collection held between
// reloads. Reducers return a fresh snapshot instead of mutating in place,
// so a held reference never changes underneath its holder.
type Snapshot []models.Order

// WithStatus returns a snapshot where the order with the given id carries
// the new status. Unknown ids leave the snapshot unchanged.
func (s Snapshot) WithStatus(id uuid.UUID, status models.Status) Snapshot {
	next := make(Snapshot, len(s))
	copy(next, s)
	for i := range next {
		if next[i].ID == id {
			next[i].Status = status
		}
	}
	return next
}

// Without returns a snapshot with the order with the given id removed.
func (s Snapshot) Without(id uuid.UUID) Snapshot {
	next := make(Snapshot, 0, len(s))
	for _, o := range s {
		if o.ID != id {
			next = append(next, o)
		}
	}
	return next
}
