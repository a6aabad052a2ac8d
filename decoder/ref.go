package decoder

import (
	"strings"

	. "github.com/ttpr0/go-traffic/util"
)

//*******************************************
// road ref matching
//*******************************************

type _RefParserState byte

const (
	_STATE_WHITESPACE _RefParserState = iota
	_STATE_ALPHA
	_STATE_NUMERIC
)

// Splits a road ref into comparable tokens. Letter groups and digit
// groups become separate tokens even without a delimiter between
// them, letter tokens are lowercased. Delimiters are control
// characters, space, ',', '-', '.' and '/'.
func ParseRef(ref string) List[string] {
	res := NewList[string](4)
	curr := strings.Builder{}
	state := _STATE_WHITESPACE

	flush := func() {
		token := curr.String()
		if state == _STATE_ALPHA {
			token = strings.ToLower(token)
		}
		res.Add(token)
		curr.Reset()
	}

	for i := 0; i < len(ref); i++ {
		c := ref[i]
		if c <= 0x20 || c == ',' || c == '-' || c == '.' || c == '/' {
			if state != _STATE_WHITESPACE {
				flush()
			}
			state = _STATE_WHITESPACE
		} else if c >= '0' && c <= '9' {
			if state == _STATE_ALPHA {
				flush()
			}
			curr.WriteByte(c)
			state = _STATE_NUMERIC
		} else {
			// anything that is neither delimiter nor digit counts as a letter
			if state == _STATE_NUMERIC {
				flush()
			}
			curr.WriteByte(c)
			state = _STATE_ALPHA
		}
	}
	if curr.Len() > 0 {
		flush()
	}
	return res
}

// Penalty factor for a road carrying several shields separated by
// ';'. The best-matching shield wins.
func GetRoadRefPenalty(location_ref List[string], refs string) float64 {
	result := _ATTRIBUTE_PENALTY
	for _, ref := range strings.Split(refs, ";") {
		penalty := _SingleRefPenalty(location_ref, strings.TrimSpace(ref))
		if penalty < result {
			result = penalty
		}
		if result == 1 {
			break
		}
	}
	return result
}

func _SingleRefPenalty(location_ref List[string], ref string) float64 {
	if ref == "" {
		if location_ref.Length() == 0 {
			return 1
		}
		return _ATTRIBUTE_PENALTY
	}

	r := ParseRef(ref)

	if location_ref.Length() == 0 && r.Length() == 0 {
		return 1
	}
	if location_ref.Length() == 0 || r.Length() == 0 {
		return _ATTRIBUTE_PENALTY
	}

	l := List[string](make([]string, location_ref.Length()))
	copy(l, location_ref)

	if l.Length() > 1 && r.Length() > 1 && l[0] == r[0] {
		// Discard generic prefixes, which often only denote the road
		// class. This turns "A1" and "A2" into "1" and "2", making
		// them a mismatch rather than a partial match.
		l = l[1:]
		r = r[1:]
	}

	// for both sides, count items matched by the other side
	matches := 0
	for _, litem := range l {
		for _, ritem := range r {
			if litem == ritem {
				matches += 1
				break
			}
		}
	}
	for _, ritem := range r {
		for _, litem := range l {
			if litem == ritem {
				matches += 1
				break
			}
		}
	}

	if matches == 0 {
		return _ATTRIBUTE_PENALTY
	}
	if matches == l.Length()+r.Length() {
		return 1
	}
	return _REDUCED_ATTRIBUTE_PENALTY
}
