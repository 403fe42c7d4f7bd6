package types

import "strconv"

// Occurs is an occurrence bound. OccursUnbounded stands in for
// maxOccurs="unbounded" and compares greater than every finite bound.
type Occurs int

const OccursUnbounded Occurs = -1

// ParseMinOccurs interprets a minOccurs attribute value. Absence means
// 1 per XML Schema; a malformed value is read as 0, the permissive
// interpretation for a lower bound.
func ParseMinOccurs(value string) Occurs {
	if value == "" {
		return 1
	}
	n, err := strconv.Atoi(value)
	if err != nil || n < 0 {
		return 0
	}
	return Occurs(n)
}

// ParseMaxOccurs interprets a maxOccurs attribute value. Absence means
// 1; "unbounded" maps to the sentinel; a malformed value is read as 1.
func ParseMaxOccurs(value string) Occurs {
	if value == "" {
		return 1
	}
	if value == "unbounded" {
		return OccursUnbounded
	}
	n, err := strconv.Atoi(value)
	if err != nil || n < 0 {
		return 1
	}
	return Occurs(n)
}

func (o Occurs) Unbounded() bool {
	return o == OccursUnbounded
}

// Less orders bounds with unbounded as positive infinity.
func (o Occurs) Less(other Occurs) bool {
	if o.Unbounded() {
		return false
	}
	if other.Unbounded() {
		return true
	}
	return o < other
}

func (o Occurs) String() string {
	if o.Unbounded() {
		return "unbounded"
	}
	return strconv.Itoa(int(o))
}
