// Package criteria builds the outgoing search criteria for a listing from
// layered parameter sets.
package criteria

import "github.com/johnwards/storefront/internal/domain"

// Build merges criteria over defaults and returns a new Criteria. Neither
// input is modified.
func Build(defaults, criteria domain.Criteria) domain.Criteria {
	return Merge(defaults, criteria)
}

// Merge deep-merges layers from left to right: for every key of a later
// layer, nested maps are merged recursively and any other value overwrites
// the earlier one. Keys present only in earlier layers are kept. The result
// shares no maps or slices with the inputs.
func Merge(layers ...domain.Criteria) domain.Criteria {
	out := domain.Criteria{}
	for _, layer := range layers {
		mergeInto(out, layer)
	}
	return out
}

func mergeInto(dst, src domain.Criteria) {
	for k, v := range src {
		srcMap, srcIsMap := asCriteria(v)
		if !srcIsMap {
			dst[k] = domain.CloneValue(v)
			continue
		}
		dstMap, dstIsMap := asCriteria(dst[k])
		if !dstIsMap {
			dstMap = domain.Criteria{}
		} else {
			dstMap = dstMap.Clone()
		}
		mergeInto(dstMap, srcMap)
		dst[k] = map[string]any(dstMap)
	}
}

func asCriteria(v any) (domain.Criteria, bool) {
	switch t := v.(type) {
	case domain.Criteria:
		return t, true
	case map[string]any:
		return domain.Criteria(t), true
	default:
		return nil, false
	}
}
