// Package argparse implements the flag-based command-argument grammar used
// by every mutating command. A raw command string such as
// "n/Leg Day d/23/10/25 t/1900" is tokenized into (flag, value) spans and
// validated against a per-command declarative grammar.
package argparse

import (
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/grit-cli/grit/internal/apperr"
	"github.com/grit-cli/grit/internal/timeutil"
)

// maxYear is the upper bound for any date accepted by the grammar.
const maxYear = 2100

// maxFlagLen is the longest flag marker in the alphabet (e.g. "ym").
const maxFlagLen = 2

// Clock is a wall-clock time of day at minute resolution.
type Clock struct {
	Hour   int
	Minute int
}

// At applies the clock to the given date.
func (c Clock) At(date time.Time) time.Time {
	return time.Date(
		date.Year(),
		date.Month(),
		date.Day(),
		c.Hour,
		c.Minute,
		0,
		0,
		date.Location(),
	)
}

// Value is the typed result of validating one flag's value.
type Value struct {
	Str   string
	Int   int
	Float float64
	Date  time.Time
	Month timeutil.Month
	Clock Clock
}

// Result holds the typed values of a successfully parsed command.
type Result struct {
	values map[string]Value
}

// Has reports whether the flag was present in the input.
func (r *Result) Has(flag string) bool {
	_, ok := r.values[flag]
	return ok
}

// Str returns the string value of a name-shaped flag.
func (r *Result) Str(flag string) string {
	return r.values[flag].Str
}

// Int returns the integer value of a reps, index, or page-shaped flag.
func (r *Result) Int(flag string) int {
	return r.values[flag].Int
}

// Float returns the decimal value of a weight-shaped flag.
func (r *Result) Float(flag string) float64 {
	return r.values[flag].Float
}

// Date returns the date value of a date-shaped flag, at midnight local time.
func (r *Result) Date(flag string) time.Time {
	return r.values[flag].Date
}

// Month returns the month value of a month-shaped flag.
func (r *Result) Month(flag string) timeutil.Month {
	return r.values[flag].Month
}

// Clock returns the time-of-day value of a time-shaped flag.
func (r *Result) Clock(flag string) Clock {
	return r.values[flag].Clock
}

// Parser validates raw command strings against command grammars.
type Parser struct {
	// Earliest is the month the application was first run. Dates before it
	// are rejected.
	Earliest timeutil.Month
}

// token is one flag-shaped word found in the input: a run of at most two
// letters followed by a slash, at a whitespace boundary.
type token struct {
	flag       string
	start      int // index of the first letter
	valueStart int // index just past the slash
}

// Parse validates input against g and returns the typed flag values, or a
// single invalid-argument failure describing the first violation.
func (p *Parser) Parse(g Grammar, input string) (*Result, error) {
	fail := func(e *apperr.Error) error {
		return e.WithUsage(g.Usage)
	}

	tokens := scanTokens(input)

	var known, foreign []token

	for _, tok := range tokens {
		if _, ok := g.rule(tok.flag); ok {
			known = append(known, tok)
		} else {
			foreign = append(foreign, tok)
		}
	}

	// Cardinality: every required flag exactly once, every optional flag at
	// most once.
	counts := make(map[string]int)
	for _, tok := range known {
		counts[tok.flag]++
	}

	for _, rule := range g.Rules {
		if rule.Required && counts[rule.Flag] == 0 {
			return nil, fail(errFlagRequired.Fmt(rule.Flag))
		}

		if counts[rule.Flag] > 1 {
			return nil, fail(errDuplicateFlag.Fmt(rule.Flag))
		}
	}

	// Relative order: flags that are present must appear in rule order.
	lastIdx, lastFlag := -1, ""

	for _, rule := range g.Rules {
		tok, ok := findToken(known, rule.Flag)
		if !ok {
			continue
		}

		if tok.start < lastIdx {
			return nil, fail(errFlagOrder.Fmt(lastFlag, rule.Flag))
		}

		lastIdx, lastFlag = tok.start, rule.Flag
	}

	// Value extraction and shape validation. A value span runs from just
	// past the flag's slash to the start of the next flag-shaped token, or
	// to the end of the input.
	res := &Result{values: make(map[string]Value)}

	type spanRange struct{ start, end int }

	consumed := make([]spanRange, 0, len(known))

	for _, tok := range known {
		rule, _ := g.rule(tok.flag)

		end := len(input)
		if next, ok := tokenAfter(tokens, tok.valueStart); ok {
			end = next.start
		}

		raw := input[tok.valueStart:end]
		trimmed := strings.TrimSpace(raw)

		if trimmed == "" {
			return nil, fail(errMissingValue.Fmt(rule.Desc, rule.Flag))
		}

		// A space directly after the flag marker is reported as a spacing
		// mistake, distinct from a value that fails shape validation.
		if unicode.IsSpace(rune(raw[0])) {
			return nil, fail(errSpaceAfterFlag.Fmt(rule.Flag))
		}

		// Only name-shaped values may contain spaces. For every other
		// shape the value is the first word of the span; any remainder is
		// stray text.
		value, trailing := trimmed, ""
		if rule.Shape != ShapeName {
			value = firstWord(trimmed)
			trailing = strings.TrimSpace(trimmed[len(value):])
		}

		val, err := p.validate(rule, value)
		if err != nil {
			return nil, fail(err)
		}

		if trailing != "" {
			return nil, fail(errUnexpectedText.Fmt(firstWord(trailing), rule.Flag))
		}

		res.values[tok.flag] = val

		consumed = append(consumed, spanRange{start: tok.start, end: end})
	}

	// Everything outside the consumed spans must be whitespace. A
	// flag-shaped leftover is an unsupported flag; anything else is stray
	// text.
	pos := 0

	for _, span := range consumed {
		if leftover := strings.TrimSpace(input[pos:span.start]); leftover != "" {
			return nil, fail(p.leftoverError(g, foreign, pos, span.start, leftover, input))
		}

		pos = span.end
	}

	if leftover := strings.TrimSpace(input[pos:]); leftover != "" {
		return nil, fail(p.leftoverError(g, foreign, pos, len(input), leftover, input))
	}

	return res, nil
}

// leftoverError classifies non-whitespace text found outside every consumed
// value span.
func (p *Parser) leftoverError(
	g Grammar,
	foreign []token,
	start, end int,
	leftover, input string,
) *apperr.Error {
	for _, tok := range foreign {
		if tok.start >= start && tok.start < end {
			return errUnsupportedFlag.Fmt(tok.flag)
		}
	}

	prev, ok := lastTokenBefore(scanTokens(input), start, g)
	if !ok {
		return errUnexpectedLeadingText.Fmt(firstWord(leftover))
	}

	return errUnexpectedText.Fmt(firstWord(leftover), prev.flag)
}

func (p *Parser) validate(rule Rule, value string) (Value, *apperr.Error) {
	switch rule.Shape {
	case ShapeName:
		return validateName(rule.Desc, value)
	case ShapeDate:
		return p.validateDate(rule.Desc, value)
	case ShapeTime:
		return validateTime(rule.Desc, value)
	case ShapeReps:
		return validateReps(value)
	case ShapeIndex, ShapePage:
		return validateIndex(rule.Desc, value)
	case ShapeMonth:
		return p.validateMonth(rule.Desc, value)
	case ShapeWeight:
		return validateWeight(rule.Desc, value)
	}

	return Value{}, errBadInteger.Fmt(rule.Desc)
}

const nameMaxLen = 32

func validateName(desc, value string) (Value, *apperr.Error) {
	for _, r := range value {
		if !isNameRune(r) {
			return Value{}, errIllegalNameChar.Fmt(desc, string(r))
		}
	}

	if len(value) > nameMaxLen {
		return Value{}, errNameTooLong.Fmt(desc, nameMaxLen)
	}

	return Value{Str: value}, nil
}

func isNameRune(r rune) bool {
	return r == ' ' || r == '-' || r == '_' ||
		(r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') ||
		(r >= '0' && r <= '9')
}

func (p *Parser) validateDate(desc, value string) (Value, *apperr.Error) {
	parts := strings.Split(value, "/")
	if len(parts) != 3 || !allDigits(parts[0], 2) || !allDigits(parts[1], 2) ||
		!allDigits(parts[2], 2) {
		return Value{}, errBadDateFormat.Fmt(desc)
	}

	day, _ := strconv.Atoi(parts[0])
	month, _ := strconv.Atoi(parts[1])
	year := 2000 + mustAtoi(parts[2])

	if month < 1 || month > 12 {
		return Value{}, errMonthOutOfRange.Fmt(desc)
	}

	if year > maxYear {
		return Value{}, errDateTooLate.Fmt(desc)
	}

	ym := timeutil.Month{Year: year, Month: time.Month(month)}
	if ym.Before(p.Earliest) {
		return Value{}, errDateTooEarly.Fmt(value, p.Earliest)
	}

	if day < 1 || day > timeutil.DaysIn(year, time.Month(month)) {
		return Value{}, errDayOutOfRange.Fmt(day, month, year%100)
	}

	date := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.Local)

	return Value{Date: date}, nil
}

func (p *Parser) validateMonth(desc, value string) (Value, *apperr.Error) {
	parts := strings.Split(value, "/")
	if len(parts) != 2 || !allDigits(parts[0], 2) || !allDigits(parts[1], 2) {
		return Value{}, errBadMonthFormat.Fmt(desc)
	}

	month := mustAtoi(parts[0])
	year := 2000 + mustAtoi(parts[1])

	if month < 1 || month > 12 {
		return Value{}, errMonthOutOfRange.Fmt(desc)
	}

	if year > maxYear {
		return Value{}, errDateTooLate.Fmt(desc)
	}

	ym := timeutil.Month{Year: year, Month: time.Month(month)}
	if ym.Before(p.Earliest) {
		return Value{}, errDateTooEarly.Fmt(value, p.Earliest)
	}

	return Value{Month: ym}, nil
}

func validateTime(desc, value string) (Value, *apperr.Error) {
	if !allDigits(value, 4) {
		return Value{}, errBadTimeFormat.Fmt(desc)
	}

	hour := mustAtoi(value[:2])
	minute := mustAtoi(value[2:])

	if hour > 23 || minute > 59 {
		return Value{}, errClockOutOfRange.Fmt(value)
	}

	return Value{Clock: Clock{Hour: hour, Minute: minute}}, nil
}

const (
	repsMin = 1
	repsMax = 1000
)

func validateReps(value string) (Value, *apperr.Error) {
	if len(value) > 4 || !allDigits(value, len(value)) {
		return Value{}, errRepsOutOfRange
	}

	n := mustAtoi(value)
	if n < repsMin || n > repsMax {
		return Value{}, errRepsOutOfRange
	}

	return Value{Int: n}, nil
}

func validateIndex(desc, value string) (Value, *apperr.Error) {
	if len(value) > 4 || !allDigits(value, len(value)) {
		return Value{}, errBadInteger.Fmt(desc)
	}

	n := mustAtoi(value)
	if n < 1 {
		return Value{}, errBadInteger.Fmt(desc)
	}

	return Value{Int: n}, nil
}

func validateWeight(desc, value string) (Value, *apperr.Error) {
	whole, frac, hasFrac := strings.Cut(value, ".")

	if len(whole) < 1 || len(whole) > 3 || !allDigits(whole, len(whole)) {
		return Value{}, errBadWeight.Fmt(desc)
	}

	if hasFrac && !allDigits(frac, 1) {
		return Value{}, errBadWeight.Fmt(desc)
	}

	f, err := strconv.ParseFloat(value, 64)
	if err != nil || f <= 0 {
		return Value{}, errBadWeight.Fmt(desc)
	}

	return Value{Float: f}, nil
}

// scanTokens finds every flag-shaped word in the input: a run of one or two
// letters followed by a slash, starting at the beginning of the string or
// after whitespace.
func scanTokens(input string) []token {
	var tokens []token

	atBoundary := true

	for i := 0; i < len(input); i++ {
		c := input[i]

		if unicode.IsSpace(rune(c)) {
			atBoundary = true
			continue
		}

		if atBoundary {
			if tok, ok := tokenAt(input, i); ok {
				tokens = append(tokens, tok)
			}
		}

		atBoundary = false
	}

	return tokens
}

func tokenAt(input string, i int) (token, bool) {
	j := i
	for j < len(input) && isASCIILetter(input[j]) {
		j++
	}

	if j == i || j-i > maxFlagLen || j >= len(input) || input[j] != '/' {
		return token{}, false
	}

	return token{flag: input[i:j], start: i, valueStart: j + 1}, true
}

func isASCIILetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func findToken(tokens []token, flag string) (token, bool) {
	for _, tok := range tokens {
		if tok.flag == flag {
			return tok, true
		}
	}

	return token{}, false
}

func tokenAfter(tokens []token, pos int) (token, bool) {
	for _, tok := range tokens {
		if tok.start >= pos {
			return tok, true
		}
	}

	return token{}, false
}

func lastTokenBefore(tokens []token, pos int, g Grammar) (token, bool) {
	var (
		found bool
		last  token
	)

	for _, tok := range tokens {
		if _, ok := g.rule(tok.flag); !ok {
			continue
		}

		if tok.start < pos {
			last, found = tok, true
		}
	}

	return last, found
}

func firstWord(s string) string {
	if i := strings.IndexFunc(s, unicode.IsSpace); i != -1 {
		return s[:i]
	}

	return s
}

func allDigits(s string, n int) bool {
	if len(s) != n {
		return false
	}

	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}

	return true
}

func mustAtoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}
