package domain

// Opt is an explicitly optional value. The zero Opt is absent, so an unset
// filter and a filter set to the type's zero value stay distinguishable.
type Opt[T comparable] struct {
	v   T
	set bool
}

// Some returns a present Opt holding v.
func Some[T comparable](v T) Opt[T] {
	return Opt[T]{v: v, set: true}
}

// None returns an absent Opt.
func None[T comparable]() Opt[T] {
	return Opt[T]{}
}

// NonZero collapses the zero value of T to absent. The wire layer cannot tell
// "not sent" from "sent as zero", so request decoding goes through here.
func NonZero[T comparable](v T) Opt[T] {
	var zero T
	if v == zero {
		return Opt[T]{}
	}
	return Some(v)
}

// Get returns the value and whether it is present.
func (o Opt[T]) Get() (T, bool) {
	return o.v, o.set
}

// IsSet reports whether a value is present.
func (o Opt[T]) IsSet() bool {
	return o.set
}

// Or returns the value if present, def otherwise.
func (o Opt[T]) Or(def T) T {
	if o.set {
		return o.v
	}
	return def
}

// Ptr returns a pointer to a copy of the value, or nil when absent.
func (o Opt[T]) Ptr() *T {
	if !o.set {
		return nil
	}
	v := o.v
	return &v
}

// FromPtr converts a nil-able pointer into an Opt.
func FromPtr[T comparable](p *T) Opt[T] {
	if p == nil {
		return Opt[T]{}
	}
	return Some(*p)
}
