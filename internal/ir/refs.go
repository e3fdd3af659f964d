package ir

// Multivector is a named reference to a multivector.
// Two references denote the same object iff their names are equal.
type Multivector struct {
	Name string `json:"name"`
}

// Vector is a named reference to a vector.
// Same identity rule as Multivector.
type Vector struct {
	Name string `json:"name"`
}

// MV creates a multivector reference.
func MV(name string) Multivector {
	return Multivector{Name: name}
}

// Vec creates a vector reference.
func Vec(name string) Vector {
	return Vector{Name: name}
}

// IsZero reports whether the reference has not been populated.
func (m Multivector) IsZero() bool {
	return m.Name == ""
}

func (m Multivector) String() string {
	return m.Name
}

// IsZero reports whether the reference has not been populated.
func (v Vector) IsZero() bool {
	return v.Name == ""
}

func (v Vector) String() string {
	return v.Name
}
