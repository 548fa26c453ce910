package jsondoc

// Merge returns the deep merge of src into dst. Neither input is modified.
//
// When both values are objects, members are merged key by key: keys present
// only in dst keep their value and position, keys present only in src are
// appended in src order, and keys present in both are merged recursively.
// In every other case src replaces dst, which means arrays are replaced
// wholesale rather than concatenated.
func Merge(dst, src any) any {
	d, dok := asObject(dst)
	s, sok := asObject(src)
	if !dok || !sok {
		return Clone(src)
	}

	out := NewObject()
	for _, k := range d.Keys() {
		v, _ := d.Get(k)
		out.Set(k, Clone(v))
	}
	for _, k := range s.Keys() {
		sv, _ := s.Get(k)
		if dv, ok := out.Get(k); ok {
			out.Set(k, Merge(dv, sv))
			continue
		}
		out.Set(k, Clone(sv))
	}
	return *out
}
