package structbuf

// Batch chains writes to one record. After the first failure every later
// call is skipped and Err reports that failure.
//
//	err := rec.Batch().
//		Set("time", t).
//		Set("color", color).
//		Err()
type Batch struct {
	r   *Record
	err error
}

// Batch starts a chain of writes.
func (r *Record) Batch() *Batch {
	return &Batch{r: r}
}

// Set writes one field.
func (b *Batch) Set(path string, value any) *Batch {
	if b.err == nil {
		b.err = b.r.Set(path, value)
	}
	return b
}

// SetAll writes a value tree.
func (b *Batch) SetAll(values map[string]any) *Batch {
	if b.err == nil {
		b.err = b.r.SetAll(values)
	}
	return b
}

// Record returns the record being written.
func (b *Batch) Record() *Record {
	return b.r
}

// Err returns the first error encountered, if any.
func (b *Batch) Err() error {
	return b.err
}
