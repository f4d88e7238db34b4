package pruner

// Closure is the transitive set of components reachable from a root set.
// Membership only ever grows during resolution; insertion order is kept so
// diagnostics are deterministic.
type Closure struct {
	keys []ComponentKey
	seen map[ComponentKey]bool
}

// newClosure creates an empty closure.
func newClosure() *Closure {
	return &Closure{seen: make(map[ComponentKey]bool)}
}

// add inserts a key if not already present, reporting whether it was new.
func (c *Closure) add(key ComponentKey) bool {
	if c.seen[key] {
		return false
	}
	c.seen[key] = true
	c.keys = append(c.keys, key)
	return true
}

// Contains reports whether a component is in the closure.
func (c *Closure) Contains(key ComponentKey) bool {
	return c.seen[key]
}

// Len returns the number of components in the closure.
func (c *Closure) Len() int {
	return len(c.keys)
}

// Keys returns the components in insertion order. The returned slice is
// shared; callers must not modify it.
func (c *Closure) Keys() []ComponentKey {
	return c.keys
}

// resolveClosure computes the transitive closure of the root set over the
// index's refers-to edges. Breadth-first: each component is expanded at
// most once, so cycles and shared references terminate without repeat
// work. A self-edge is a no-op because the component is already a member
// when its edges are expanded.
func resolveClosure(roots []ComponentKey, idx *Index) *Closure {
	closure := newClosure()
	queue := make([]ComponentKey, 0, len(roots))

	for _, root := range roots {
		if closure.add(root) {
			queue = append(queue, root)
		}
	}

	for len(queue) > 0 {
		key := queue[0]
		queue = queue[1:]

		for _, target := range idx.DirectRefs(key) {
			if closure.add(target) {
				queue = append(queue, target)
			}
		}
	}

	return closure
}
