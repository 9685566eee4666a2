package pool

// Scope runs fn with a dedicated Pool and clears every bucket the pool
// built up once fn returns — spec.md §4.7's "scoped-allocation helper runs
// user code with a local pool whose contents are freed on scope exit."
// Buffers acquired but not explicitly Release-d by fn are still reclaimed
// normally by the garbage collector; Scope's guarantee is that the pool's
// retained free-lists don't outlive the call.
func Scope(fn func(p *Pool) error) error {
	p := New()
	err := fn(p)
	p.buckets.Range(func(key, _ any) bool {
		p.buckets.Delete(key)
		return true
	})
	return err
}
