package localized

import "strings"

// Lang selects the display language. Anything that is not "en" is Swedish.
type Lang string

const (
	Sv Lang = "sv"
	En Lang = "en"
)

// Parse maps a ?lang= query value to a Lang. "en" (any case) selects
// English; everything else, including the empty string, defaults to
// Swedish.
func Parse(q string) Lang {
	if strings.EqualFold(strings.TrimSpace(q), "en") {
		return En
	}
	return Sv
}

// Text is a dual-language value with a legacy single-language field kept
// for backward compatibility. The original data predates the sv/en split,
// so any of the three fields may be empty.
type Text struct {
	Sv     string
	En     string
	Legacy string
}

// Resolve returns the value for lang, falling back preferred -> other
// language -> legacy field.
func (t Text) Resolve(l Lang) string {
	if l == En {
		return first(t.En, t.Sv, t.Legacy)
	}
	return first(t.Sv, t.En, t.Legacy)
}

// RawSv returns the Swedish field backfilled from legacy, for responses
// that expose raw language fields for downstream persistence.
func (t Text) RawSv() string { return first(t.Sv, t.Legacy) }

// RawEn returns the English field backfilled from legacy.
func (t Text) RawEn() string { return first(t.En, t.Legacy) }

// Normalize fills every empty field from the others (legacy first, then
// the other language), so no value is persisted without a usable text in
// each exposed field.
func (t Text) Normalize() Text {
	return Text{
		Sv:     first(t.Sv, t.Legacy, t.En),
		En:     first(t.En, t.Legacy, t.Sv),
		Legacy: first(t.Legacy, t.Sv, t.En),
	}
}

// Empty reports whether no variant carries text.
func (t Text) Empty() bool {
	return t.Sv == "" && t.En == "" && t.Legacy == ""
}

func first(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
