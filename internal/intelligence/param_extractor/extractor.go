// Package param_extractor pulls candidate electrical parameters (candela,
// wattage, voltage, model number, capability flags) out of a device
// snapshot's free text and structured property bag.  Five independent
// strategies run in a fixed precedence order and are merged so that a
// higher-precedence strategy is never overwritten by a lower one.
//
// Extraction is a pure function over its input: it never errors and never
// mutates the snapshot.  Unparsable text simply yields no entry.
package param_extractor

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"

	"github.com/turtacn/FireCircuit-Intelligence/internal/domain/device"
	"github.com/turtacn/FireCircuit-Intelligence/internal/infrastructure/monitoring/logging"
)

// Name identifies one extracted parameter.  The set is closed: the engine
// reasons only about these keys, and vendor extensions stay in the
// snapshot's property bag.
type Name string

const (
	Candela     Name = "CANDELA"
	Wattage     Name = "WATTAGE"
	Voltage     Name = "VOLTAGE"
	Current     Name = "CURRENT"
	ModelNumber Name = "MODEL_NUMBER"
	HasStrobe   Name = "HAS_STROBE"
	HasSpeaker  Name = "HAS_SPEAKER"
	IsIsolator  Name = "IS_ISOLATOR"
	IsRepeater  Name = "IS_REPEATER"
)

// Strategy records which extraction pass produced a value.
type Strategy string

const (
	StrategyProperty   Strategy = "PROPERTY"
	StrategyFamilyText Strategy = "FAMILY_TEXT"
	StrategyTypeText   Strategy = "TYPE_TEXT"
	StrategyCapability Strategy = "CAPABILITY"
	StrategyInference  Strategy = "INFERENCE"
)

// Kind tags the payload type of a Value.
type Kind int

const (
	KindNumber Kind = iota
	KindString
	KindBool
)

// Value is one typed extracted parameter.
type Value struct {
	Kind   Kind     `json:"kind"`
	Num    float64  `json:"num,omitempty"`
	Str    string   `json:"str,omitempty"`
	Bool   bool     `json:"bool,omitempty"`
	Source Strategy `json:"source"`
}

// Parameters maps parameter names to extracted values for one device.
// Produced transiently per classification pass; never persisted.
type Parameters map[Name]Value

// Num returns the numeric value for name, if present and numeric.
func (p Parameters) Num(name Name) (float64, bool) {
	v, ok := p[name]
	if !ok || v.Kind != KindNumber {
		return 0, false
	}
	return v.Num, true
}

// Str returns the string value for name, if present.
func (p Parameters) Str(name Name) (string, bool) {
	v, ok := p[name]
	if !ok || v.Kind != KindString {
		return "", false
	}
	return v.Str, true
}

// Flag returns the boolean value for name; absent means false.
func (p Parameters) Flag(name Name) bool {
	v, ok := p[name]
	return ok && v.Kind == KindBool && v.Bool
}

// setIfAbsent merges a candidate in: the first strategy to fill a key wins.
func (p Parameters) setIfAbsent(name Name, v Value) {
	if _, exists := p[name]; !exists {
		p[name] = v
	}
}

// Text-scan patterns over uppercased, NFKC-normalized text.
var (
	reCandela = regexp.MustCompile(`(\d+(?:\.\d+)?)\s*(?:CD\b|CANDELA)`)
	reWattage = regexp.MustCompile(`(\d+(?:\.\d+)?)\s*(?:W\b|WATT)`)
	reVoltage = regexp.MustCompile(`(\d+(?:\.\d+)?)\s*(?:V\b|VDC\b|VOLT)`)

	// Model numbers look like "P2R", "SD-751", "MT4-12/24": a short alpha
	// prefix, an optional separator, then digits with an optional alpha
	// suffix.
	reModelNumber = regexp.MustCompile(`\b[A-Z]{1,4}[-_]?\d{2,5}(?:[A-Z]{1,3})?\b`)
)

// property-bag key aliases recognised by the structured strategy.
var propertyAliases = map[Name][]string{
	Candela:     {"CANDELA", "CD", "CANDELA_RATING"},
	Wattage:     {"WATTAGE", "WATTS", "TAP_WATTS"},
	Voltage:     {"VOLTAGE", "VOLTS", "RATED_VOLTAGE"},
	Current:     {"CURRENT", "AMPS", "ALARM_CURRENT"},
	ModelNumber: {"MODEL", "MODEL_NUMBER", "PART_NUMBER"},
}

// Extractor runs the five-strategy extraction pipeline.
type Extractor struct {
	log logging.Logger
}

// New constructs an Extractor.  A nil logger falls back to the no-op
// logger.
func New(log logging.Logger) *Extractor {
	if log == nil {
		log = logging.NewNopLogger()
	}
	return &Extractor{log: log.Named("param_extractor")}
}

// Extract produces the merged parameter map for the snapshot, applying the
// strategies in precedence order: structured properties, family-name text,
// type-name text, capability defaults, electrical inference.
func (e *Extractor) Extract(snap device.Snapshot) Parameters {
	params := make(Parameters)

	e.fromStructured(snap, params)
	e.fromText(normalizeText(snap.FamilyName), StrategyFamilyText, params)
	e.fromText(normalizeText(snap.TypeName), StrategyTypeText, params)
	e.fromCapabilities(snap, params)
	e.inferElectrical(params)

	e.log.Debug("extraction complete",
		logging.String("element", snap.ElementID),
		logging.Int("parameters", len(params)))
	return params
}

// fromStructured reads the authoritative host-model values: the snapshot's
// own electrical fields and any recognised property-bag keys.
func (e *Extractor) fromStructured(snap device.Snapshot, params Parameters) {
	if snap.Watts > 0 {
		params.setIfAbsent(Wattage, Value{Kind: KindNumber, Num: snap.Watts, Source: StrategyProperty})
	}
	if snap.Amps > 0 {
		params.setIfAbsent(Current, Value{Kind: KindNumber, Num: snap.Amps, Source: StrategyProperty})
	}

	for name, aliases := range propertyAliases {
		for _, alias := range aliases {
			raw, ok := lookupFold(snap.Properties, alias)
			if !ok {
				continue
			}
			if v, ok := coerce(name, raw); ok {
				params.setIfAbsent(name, v)
				break
			}
		}
	}
}

// fromText runs the regex scans over one text source, filling only gaps
// left by higher-precedence strategies.
func (e *Extractor) fromText(text string, source Strategy, params Parameters) {
	if text == "" {
		return
	}
	if m := reCandela.FindStringSubmatch(text); m != nil {
		if n, err := strconv.ParseFloat(m[1], 64); err == nil {
			params.setIfAbsent(Candela, Value{Kind: KindNumber, Num: n, Source: source})
		}
	}
	if m := reWattage.FindStringSubmatch(text); m != nil {
		if n, err := strconv.ParseFloat(m[1], 64); err == nil {
			params.setIfAbsent(Wattage, Value{Kind: KindNumber, Num: n, Source: source})
		}
	}
	if m := reVoltage.FindStringSubmatch(text); m != nil {
		if n, err := strconv.ParseFloat(m[1], 64); err == nil {
			params.setIfAbsent(Voltage, Value{Kind: KindNumber, Num: n, Source: source})
		}
	}
	if m := reModelNumber.FindString(text); m != "" && !looksLikeRating(m) {
		params.setIfAbsent(ModelNumber, Value{Kind: KindString, Str: m, Source: source})
	}
}

// fromCapabilities turns host-model capability flags into parameter
// entries so downstream classification sees one uniform view.
func (e *Extractor) fromCapabilities(snap device.Snapshot, params Parameters) {
	set := func(name Name, b bool) {
		if b {
			params.setIfAbsent(name, Value{Kind: KindBool, Bool: true, Source: StrategyCapability})
		}
	}
	set(HasStrobe, snap.Capabilities.HasStrobe)
	set(HasSpeaker, snap.Capabilities.HasSpeaker)
	set(IsIsolator, snap.Capabilities.IsIsolator)
	set(IsRepeater, snap.Capabilities.IsRepeater)
}

// inferElectrical fills whichever of current/wattage is missing from the
// other through the nominal 24 V relationship.
func (e *Extractor) inferElectrical(params Parameters) {
	watts, hasWatts := params.Num(Wattage)
	amps, hasAmps := params.Num(Current)

	switch {
	case hasWatts && !hasAmps && watts > 0:
		params.setIfAbsent(Current, Value{
			Kind: KindNumber, Num: device.AmpsFromWatts(watts), Source: StrategyInference,
		})
	case hasAmps && !hasWatts && amps > 0:
		params.setIfAbsent(Wattage, Value{
			Kind: KindNumber, Num: device.WattsFromAmps(amps), Source: StrategyInference,
		})
	}
}

// normalizeText uppercases and NFKC-normalizes a text source so the regex
// scans see a single canonical form (full-width digits, compatibility
// characters from vendor exports).
func normalizeText(s string) string {
	return strings.ToUpper(norm.NFKC.String(s))
}

// looksLikeRating rejects model-number candidates that are really rating
// tokens ("75CD", "24V", "2W") picked up by the loose pattern.
func looksLikeRating(s string) bool {
	trimmed := strings.TrimLeftFunc(s, unicode.IsLetter)
	switch {
	case strings.HasSuffix(trimmed, "CD"), strings.HasSuffix(trimmed, "V"),
		strings.HasSuffix(trimmed, "W"):
		return true
	}
	return false
}

// lookupFold finds a property-bag entry by case-insensitive key.
func lookupFold(props map[string]interface{}, key string) (interface{}, bool) {
	for k, v := range props {
		if strings.EqualFold(k, key) {
			return v, true
		}
	}
	return nil, false
}

// coerce converts a loosely-typed property value into a typed Value for
// the given parameter.  Unconvertible values are skipped silently.
func coerce(name Name, raw interface{}) (Value, bool) {
	switch name {
	case ModelNumber:
		if s, ok := raw.(string); ok && s != "" {
			return Value{Kind: KindString, Str: strings.ToUpper(s), Source: StrategyProperty}, true
		}
		return Value{}, false
	default:
		switch v := raw.(type) {
		case float64:
			if v > 0 {
				return Value{Kind: KindNumber, Num: v, Source: StrategyProperty}, true
			}
		case int:
			if v > 0 {
				return Value{Kind: KindNumber, Num: float64(v), Source: StrategyProperty}, true
			}
		case string:
			cleaned := strings.TrimFunc(v, func(r rune) bool { return !unicode.IsDigit(r) && r != '.' })
			if n, err := strconv.ParseFloat(cleaned, 64); err == nil && n > 0 {
				return Value{Kind: KindNumber, Num: n, Source: StrategyProperty}, true
			}
		}
		return Value{}, false
	}
}
