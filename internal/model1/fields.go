package model1

// Fields represents a collection of row fields
type Fields []string

func (f Fields) Clone() Fields {
	out := make(Fields, len(f))
	copy(out, f)
	return out
}
