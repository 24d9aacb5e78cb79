package path

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/coraldb/reef"
)

// ErrBadPath indicates a path expression that does not parse.
var ErrBadPath = errors.New("malformed path expression")

// ParsePath compiles a dotted path expression into a Chain.  The
// grammar gives the commonly scripted step kinds a text form:
//
//	.key    map key (string)
//	[3]     list index; negative counts back from the end
//	[*]     all children
//
// so ".book[*].price" walks into the "book" map, then every child,
// then each child's "price" entry.  The empty string yields the empty
// chain.  Step kinds without a text form (map value, list value,
// filtered children) must be built with the step constructors.
func ParsePath(s string) (Chain, error) {
	chain := Chain{}
	for i := 0; i < len(s); {
		switch s[i] {
		case '.':
			j := i + 1
			for j < len(s) && s[j] != '.' && s[j] != '[' {
				j++
			}
			key := s[i+1 : j]
			if key == "" {
				return nil, fmt.Errorf("%w: empty key at offset %d", ErrBadPath, i)
			}
			chain = append(chain, MapKey(reef.NewString(key)))
			i = j
		case '[':
			j := strings.IndexByte(s[i:], ']')
			if j < 0 {
				return nil, fmt.Errorf("%w: unterminated index at offset %d", ErrBadPath, i)
			}
			inner := s[i+1 : i+j]
			if inner == "*" {
				chain = append(chain, AllChildren())
			} else {
				n, err := strconv.Atoi(inner)
				if err != nil {
					return nil, fmt.Errorf("%w: bad index %q at offset %d", ErrBadPath, inner, i)
				}
				chain = append(chain, ListIndex(n))
			}
			i += j + 1
		default:
			return nil, fmt.Errorf("%w: unexpected %q at offset %d", ErrBadPath, s[i], i)
		}
	}
	return chain, nil
}
