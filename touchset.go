package touch

import "time"

// ContactID identifies one finger or pointer for the lifetime of its contact.
type ContactID int

// mouseContactID is the contact used for the primary mouse button.
const mouseContactID ContactID = -1

// ContactPoint is one tracked contact position.
type ContactPoint struct {
	ID   ContactID
	X, Y float64
}

// Pos returns the point as a Vec2.
func (p ContactPoint) Pos() Vec2 {
	return Vec2{p.X, p.Y}
}

// TouchSet tracks the active contacts of one recognizer in insertion order.
// Sets are tiny (bounded by the required touch count), so every operation is
// a linear scan.
type TouchSet struct {
	points []ContactPoint

	// Timestamp is the time of the last mutation, taken from the raw event.
	Timestamp time.Time

	// OnAdd, if set, is called after a new contact is appended.
	OnAdd func(ContactPoint)
}

// Add appends p unless a contact with the same ID is already tracked.
func (t *TouchSet) Add(p ContactPoint) {
	if t.index(p.ID) >= 0 {
		return
	}
	t.points = append(t.points, p)
	if t.OnAdd != nil {
		t.OnAdd(p)
	}
}

// Update replaces the contact with p's ID. Unknown IDs are ignored.
func (t *TouchSet) Update(p ContactPoint) {
	if i := t.index(p.ID); i >= 0 {
		t.points[i] = p
	}
}

// Remove deletes the contact with the given ID if present.
func (t *TouchSet) Remove(id ContactID) {
	i := t.index(id)
	if i < 0 {
		return
	}
	copy(t.points[i:], t.points[i+1:])
	t.points = t.points[:len(t.points)-1]
}

// Clear drops every contact. The backing array is kept for reuse.
func (t *TouchSet) Clear() {
	t.points = t.points[:0]
}

// Find returns the contact with the given ID.
func (t *TouchSet) Find(id ContactID) (ContactPoint, bool) {
	if i := t.index(id); i >= 0 {
		return t.points[i], true
	}
	return ContactPoint{}, false
}

// Len returns the number of tracked contacts.
func (t *TouchSet) Len() int {
	return len(t.points)
}

// Points returns the tracked contacts in insertion order. The returned slice
// MUST NOT be mutated by the caller.
func (t *TouchSet) Points() []ContactPoint {
	return t.points
}

func (t *TouchSet) index(id ContactID) int {
	for i := range t.points {
		if t.points[i].ID == id {
			return i
		}
	}
	return -1
}
