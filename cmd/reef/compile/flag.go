package compile

import (
	"fmt"

	"github.com/agnivade/levenshtein"
	"github.com/coraldb/reef/path"
)

var returnKinds = []struct {
	name  string
	flags path.Flags
}{
	{"tree", path.MatchingTree},
	{"leaf", path.LeafValue},
	{"keys", path.MapKeys},
	{"kv", path.LeafValue | path.MapKeys},
}

// returnFlag is the -return flag: one of the returnKinds names.
type returnFlag struct {
	kind string
}

func (r *returnFlag) String() string { return r.kind }

func (r *returnFlag) Set(s string) error {
	for _, k := range returnKinds {
		if k.name == s {
			r.kind = s
			return nil
		}
	}
	return fmt.Errorf("unknown return kind %q%s", s, suggestion(s))
}

func (r *returnFlag) flags() path.Flags {
	for _, k := range returnKinds {
		if k.name == r.kind {
			return k.flags
		}
	}
	return path.MatchingTree
}

// suggestion proposes the closest kind for a near miss like "leafs".
func suggestion(s string) string {
	best, bestDist := "", 4
	for _, k := range returnKinds {
		if d := levenshtein.ComputeDistance(s, k.name); d < bestDist {
			best, bestDist = k.name, d
		}
	}
	if best == "" {
		return ""
	}
	return fmt.Sprintf(" (did you mean %q?)", best)
}
