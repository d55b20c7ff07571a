package protocol

// Patch updates the preview class of one rendered item, addressed by its
// stable key (the data-key attribute).
type Patch struct {
	Key     string `json:"key"`
	Class   string `json:"class"`
	Preview string `json:"preview,omitempty"`
}

// Coalesce keeps only the last patch per key, in order of first appearance.
func Coalesce(patches []Patch) []Patch {
	if len(patches) < 2 {
		return patches
	}
	index := make(map[string]int, len(patches))
	out := make([]Patch, 0, len(patches))
	for _, p := range patches {
		if i, ok := index[p.Key]; ok {
			out[i] = p
			continue
		}
		index[p.Key] = len(out)
		out = append(out, p)
	}
	return out
}
