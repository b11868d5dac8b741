// Package ptr provides pointer helpers for optional API and annotation fields.
package ptr

// Bool returns a pointer to b.
func Bool(b bool) *bool { return &b }

// To returns a pointer to a copy of v.
func To[T any](v T) *T { return &v }

// Deref returns *p, or fallback when p is nil.
func Deref[T any](p *T, fallback T) T {
	if p == nil {
		return fallback
	}
	return *p
}
