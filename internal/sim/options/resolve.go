package options

import (
	"fmt"
	"math/rand/v2"
	"sort"
	"strconv"
	"strings"

	"nonogram.ap/internal/protocol"
)

// Resolve turns a player's raw option document (as decoded from yaml) into a
// validated Options. Missing keys take their defaults. Range values accept an
// integer, "default", "random", "random-low" or "random-high"; toggles accept
// booleans and "on"/"off"/"true"/"false"/"default"/"random". rng is only
// consulted for random values.
func Resolve(raw map[string]any, rng *rand.Rand) (Options, error) {
	o := Defaults()

	known := map[string]bool{}
	for _, r := range Ranges {
		known[r.Key] = true
	}
	for _, t := range Toggles {
		known[t.Key] = true
	}
	var unknown []string
	for k := range raw {
		if !known[k] {
			unknown = append(unknown, k)
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return o, protocol.Configuration("unknown options", map[string]string{
			"options": strings.Join(unknown, ","),
		})
	}

	// Declaration order keeps random draws reproducible for a given seed.
	for _, r := range Ranges {
		v, ok := raw[r.Key]
		if !ok {
			continue
		}
		n, err := resolveRange(r, v, rng)
		if err != nil {
			return o, err
		}
		*o.intField(r.Key) = n
	}
	for _, t := range Toggles {
		v, ok := raw[t.Key]
		if !ok {
			continue
		}
		b, err := resolveToggle(t, v, rng)
		if err != nil {
			return o, err
		}
		*o.boolField(t.Key) = b
	}
	return o, o.Validate()
}

func resolveRange(r Range, v any, rng *rand.Rand) (int, error) {
	switch x := v.(type) {
	case int:
		return checkRange(r, x)
	case int64:
		return checkRange(r, int(x))
	case float64:
		if x != float64(int(x)) {
			return 0, badValue(r.Key, v)
		}
		return checkRange(r, int(x))
	case string:
		s := strings.ToLower(strings.TrimSpace(x))
		switch s {
		case "default":
			return r.Default, nil
		case "random":
			return r.Min + randIntN(rng, r.Max-r.Min+1), nil
		case "random-low":
			a, b := randIntN(rng, r.Max-r.Min+1), randIntN(rng, r.Max-r.Min+1)
			return r.Min + min(a, b), nil
		case "random-high":
			a, b := randIntN(rng, r.Max-r.Min+1), randIntN(rng, r.Max-r.Min+1)
			return r.Min + max(a, b), nil
		}
		n, err := strconv.Atoi(s)
		if err != nil {
			return 0, badValue(r.Key, v)
		}
		return checkRange(r, n)
	default:
		return 0, badValue(r.Key, v)
	}
}

func resolveToggle(t Toggle, v any, rng *rand.Rand) (bool, error) {
	switch x := v.(type) {
	case bool:
		return x, nil
	case int:
		if x == 0 || x == 1 {
			return x == 1, nil
		}
	case string:
		switch strings.ToLower(strings.TrimSpace(x)) {
		case "true", "on":
			return true, nil
		case "false", "off":
			return false, nil
		case "default":
			return t.Default, nil
		case "random":
			return randIntN(rng, 2) == 1, nil
		}
	}
	return false, badValue(t.Key, v)
}

func checkRange(r Range, n int) (int, error) {
	if !r.Contains(n) {
		return 0, protocol.Configuration(
			fmt.Sprintf("%s must be in [%d, %d]", r.Key, r.Min, r.Max),
			map[string]string{r.Key: strconv.Itoa(n)},
		)
	}
	return n, nil
}

func badValue(key string, v any) error {
	return protocol.Configuration(
		fmt.Sprintf("%s: unsupported value", key),
		map[string]string{key: fmt.Sprint(v)},
	)
}

func randIntN(rng *rand.Rand, n int) int {
	if rng == nil {
		return rand.IntN(n)
	}
	return rng.IntN(n)
}
