// Package models holds the typed parameter sets and domain enumerations for
// CRM record creation.
package models

// Ref points at a record of another entry type, either by numeric id or by
// name. A name requires transitive resolution (and sometimes creation)
// before the referring record can be written.
type Ref struct {
	ID   int
	Name string
}

// RefID builds a reference by numeric id.
func RefID(id int) Ref { return Ref{ID: id} }

// RefName builds a reference by name.
func RefName(name string) Ref { return Ref{Name: name} }

// IsZero reports whether the reference carries neither an id nor a name.
func (r Ref) IsZero() bool { return r.ID == 0 && r.Name == "" }
