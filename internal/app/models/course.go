package models

// Course represents a course record.
type Course struct {
	ID   int64  `json:"id" db:"id"`
	Name string `json:"name" db:"name"`
}

// CoursePatch holds the fields of a partial update. Nil fields are left unchanged.
type CoursePatch struct {
	Name *string
}

// IsEmpty reports whether the patch changes nothing
func (p CoursePatch) IsEmpty() bool {
	return p.Name == nil
}

// Apply writes the set fields of the patch onto c
func (p CoursePatch) Apply(c *Course) {
	if p.Name != nil {
		c.Name = *p.Name
	}
}
