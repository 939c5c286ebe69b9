package argparse

// Shape identifies the value format expected after a flag marker.
type Shape int

const (
	// ShapeName is a 1-32 character string of letters, digits, spaces,
	// hyphens, and underscores.
	ShapeName Shape = iota + 1
	// ShapeDate is a DD/MM/YY calendar date.
	ShapeDate
	// ShapeTime is a HHMM 24-hour clock time.
	ShapeTime
	// ShapeReps is an integer between 1 and 1000.
	ShapeReps
	// ShapeIndex is a positive integer identifying a display row.
	ShapeIndex
	// ShapeMonth is a MM/YY calendar month.
	ShapeMonth
	// ShapePage is a positive integer page number.
	ShapePage
	// ShapeWeight is a positive decimal with at most one fractional digit.
	ShapeWeight
)

// Rule declares one flag of a command grammar. The order of rules within a
// grammar is the required relative order of the flags that are present.
type Rule struct {
	Flag     string
	Desc     string
	Shape    Shape
	Required bool
}

// Grammar is the declarative argument specification for one command family.
type Grammar struct {
	Command string
	Usage   string
	Rules   []Rule
}

func (g Grammar) rule(flag string) (Rule, bool) {
	for _, r := range g.Rules {
		if r.Flag == flag {
			return r, true
		}
	}

	return Rule{}, false
}
