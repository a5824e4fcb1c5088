package host

import "fmt"

// State is the host's reachability state as seen by access rules.
type State interface {
	CanReachLocation(name string, player int) bool
	Has(item string, player int) bool
}

type RuleKind uint8

const (
	RuleAlways RuleKind = iota
	RuleCanReachLocation
	RuleHasItem
)

func (k RuleKind) String() string {
	switch k {
	case RuleAlways:
		return "always"
	case RuleCanReachLocation:
		return "can_reach_location"
	case RuleHasItem:
		return "has_item"
	default:
		return fmt.Sprintf("rule(%d)", uint8(k))
	}
}

func (k RuleKind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

func (k *RuleKind) UnmarshalText(b []byte) error {
	for _, c := range []RuleKind{RuleAlways, RuleCanReachLocation, RuleHasItem} {
		if c.String() == string(b) {
			*k = c
			return nil
		}
	}
	return fmt.Errorf("unknown rule kind %q", string(b))
}

// Rule is an access predicate. It is data, not a closure, so it can be
// inspected, compared and archived.
type Rule struct {
	Kind   RuleKind `json:"kind"`
	Target string   `json:"target,omitempty"`
}

func Always() Rule { return Rule{Kind: RuleAlways} }

func CanReachLocation(name string) Rule { return Rule{Kind: RuleCanReachLocation, Target: name} }

func HasItem(name string) Rule { return Rule{Kind: RuleHasItem, Target: name} }

// Eval evaluates r for player against s. Unknown kinds are never satisfied.
func (r Rule) Eval(s State, player int) bool {
	switch r.Kind {
	case RuleAlways:
		return true
	case RuleCanReachLocation:
		return s.CanReachLocation(r.Target, player)
	case RuleHasItem:
		return s.Has(r.Target, player)
	default:
		return false
	}
}

func (r Rule) String() string {
	if r.Kind == RuleAlways {
		return r.Kind.String()
	}
	return fmt.Sprintf("%s(%q)", r.Kind, r.Target)
}
