package typesystem

// AsInstance returns the instance-flagged form of t — "a value of this
// class" as opposed to "the class object itself" — memoizing the
// result in t's derivationCache so repeated conversions of the same
// class reference share one allocation (spec.md §5: the cache is
// written at most once per Type value).
func AsInstance(t Type) Type {
	c, ok := t.(*ClassType)
	if !ok {
		// Any, Unknown and None already carry both flags; Function
		// and TypeVar values are instance-flagged by construction.
		// Non-class values, Unions included (whose flags are the OR of
		// their members'), are returned as they are.
		return t
	}
	f := GetFlags(c)
	if f.Has(FlagInstance) && !f.Has(FlagInstantiable) {
		return c
	}
	if c.cache != nil && c.cache.instance != nil {
		return c.cache.instance
	}
	cp := c.clone()
	SetFlags(cp, FlagInstance)
	if c.cache == nil {
		c.cache = &derivationCache{}
	}
	c.cache.instance = cp
	return cp
}

// AsInstantiable returns "the class object itself" form of t, the
// inverse of AsInstance.
func AsInstantiable(t Type) Type {
	c, ok := t.(*ClassType)
	if !ok {
		return t
	}
	f := GetFlags(c)
	if f.Has(FlagInstantiable) && !f.Has(FlagInstance) {
		return c
	}
	if c.cache != nil && c.cache.instantiable != nil {
		return c.cache.instantiable
	}
	cp := c.clone()
	SetFlags(cp, FlagInstantiable)
	if c.cache == nil {
		c.cache = &derivationCache{}
	}
	c.cache.instantiable = cp
	return cp
}
