package store

import "slices"

// RecoveryCodes is a set of single-use recovery codes.
type RecoveryCodes map[string]struct{}

// NewRecoveryCodes builds a set from codes, dropping duplicates.
func NewRecoveryCodes(codes ...string) RecoveryCodes {
	rc := make(RecoveryCodes, len(codes))
	for _, c := range codes {
		rc.Add(c)
	}
	return rc
}

// Add inserts code and reports whether it was new.
func (rc RecoveryCodes) Add(code string) bool {
	if _, ok := rc[code]; ok {
		return false
	}
	rc[code] = struct{}{}
	return true
}

// Has reports whether code is in the set. Safe on a nil set.
func (rc RecoveryCodes) Has(code string) bool {
	_, ok := rc[code]
	return ok
}

// Remove deletes code and reports whether it was present.
func (rc RecoveryCodes) Remove(code string) bool {
	if _, ok := rc[code]; !ok {
		return false
	}
	delete(rc, code)
	return true
}

// Len returns the number of codes.
func (rc RecoveryCodes) Len() int {
	return len(rc)
}

// Slice returns the codes sorted, which is also the persisted form.
func (rc RecoveryCodes) Slice() []string {
	codes := make([]string, 0, len(rc))
	for c := range rc {
		codes = append(codes, c)
	}
	slices.Sort(codes)
	return codes
}

// Clone returns an independent copy.
func (rc RecoveryCodes) Clone() RecoveryCodes {
	if rc == nil {
		return nil
	}
	out := make(RecoveryCodes, len(rc))
	for c := range rc {
		out[c] = struct{}{}
	}
	return out
}
