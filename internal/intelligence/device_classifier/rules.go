// Package device_classifier assigns a device identity (kind plus subtype)
// and physical characteristics from a snapshot's combined text and
// extracted parameters.
//
// Two ordered rule tables, one per device class, share a single matching
// engine: rules are tried top to bottom and the first rule whose keyword
// groups are all satisfied wins.  Rule order therefore encodes the
// combination hierarchy (speaker-strobe before speaker, multitone before
// plain horn) and must not be re-sorted.
package device_classifier

import (
	"strings"

	"github.com/turtacn/FireCircuit-Intelligence/internal/domain/device"
	"github.com/turtacn/FireCircuit-Intelligence/internal/intelligence/param_extractor"
)

// keywordGroup is a set of synonyms: the group matches when any member
// occurs in the text.
type keywordGroup []string

func (g keywordGroup) matches(text string) bool {
	for _, kw := range g {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}

// hasToken reports whether tok occurs as a standalone whitespace-delimited
// word.  Short tokens like "ION" need this; substring matching would find
// them inside "STATION" or "JUNCTION".
func hasToken(text, tok string) bool {
	for _, field := range strings.Fields(text) {
		if field == tok {
			return true
		}
	}
	return false
}

// smokeEvidence is the smoke keyword group plus the standalone "ION"
// token.
func smokeEvidence(text string) bool {
	return kwSmoke.matches(text) || hasToken(text, "ION")
}

// Synonym groups shared by both tables.  Members are uppercase because
// matching runs over the snapshot's uppercased combined text.
var (
	kwHorn      = keywordGroup{"HORN", "AUDIBLE"}
	kwSpeaker   = keywordGroup{"SPEAKER", "VOICE", "MASS NOTIFICATION"}
	kwStrobe    = keywordGroup{"STROBE", "FLASH", "BEACON", "VISUAL"}
	kwChime     = keywordGroup{"CHIME"}
	kwMultitone = keywordGroup{"MULTITONE", "MULTI-TONE", "MULTI TONE"}
	kwGenericAV = keywordGroup{"NOTIFICATION", "APPLIANCE", "AV DEVICE", "A/V"}

	kwSmoke       = keywordGroup{"SMOKE", "PHOTOELECTRIC", "PHOTO", "IONIZATION"}
	kwHeat        = keywordGroup{"HEAT", "THERMAL", "TEMPERATURE"}
	kwRateOfRise  = keywordGroup{"RATE OF RISE", "RATE-OF-RISE", "ROR"}
	kwBeam        = keywordGroup{"BEAM", "PROJECTED", "REFLECTED"}
	kwDuct        = keywordGroup{"DUCT"}
	kwMultiSensor = keywordGroup{"MULTI-SENSOR", "MULTI SENSOR", "MULTISENSOR", "MULTI-CRITERIA", "COMBINATION"}
	kwPull        = keywordGroup{"PULL", "MANUAL", "STATION", "CALL POINT"}
	kwPullStrong  = keywordGroup{"PULL", "CALL POINT", "BREAK GLASS", "BREAKGLASS"}
	kwDetector    = keywordGroup{"DETECTOR", "SENSOR"}
	kwBreakGlass  = keywordGroup{"BREAK GLASS", "BREAKGLASS", "GLASS"}

	kwIsolator = keywordGroup{"ISOLATOR", "ISOLATION"}
	kwRepeater = keywordGroup{"REPEATER"}
)

// Mounting and environment keyword groups for the characteristics step.
var (
	kwCeiling      = keywordGroup{"CEILING", "OVERHEAD", "RECESSED", "PENDANT", "FLUSH"}
	kwWall         = keywordGroup{"WALL", "SURFACE"}
	kwWeatherproof = keywordGroup{"WEATHERPROOF", "OUTDOOR", "NEMA", "MARINE", "SEALED"}
	kwHighCandela  = keywordGroup{"HIGH CANDELA", "HIGH-CANDELA"}
	kwHighTemp     = keywordGroup{"HIGH TEMP", "HIGH-TEMP", "HIGH TEMPERATURE"}
)

// matchContext carries the evidence a rule may consult: the uppercased
// combined text plus the extracted parameters (capability flags count as
// keyword evidence so host-model flags and free text behave alike).
type matchContext struct {
	text   string
	params param_extractor.Parameters
}

func (m matchContext) hasStrobe() bool {
	return kwStrobe.matches(m.text) || m.params.Flag(param_extractor.HasStrobe)
}

func (m matchContext) hasSpeaker() bool {
	return kwSpeaker.matches(m.text) || m.params.Flag(param_extractor.HasSpeaker)
}

func (m matchContext) hasHorn() bool {
	return kwHorn.matches(m.text)
}

// rule is one entry in an ordered table.  identify receives the match
// context so a rule can refine subtypes from the same evidence that
// triggered it.
type rule struct {
	name     string
	match    func(matchContext) bool
	identify func(matchContext) device.Identity
}

// firstMatch runs the shared engine over one ordered table.
func firstMatch(table []rule, m matchContext) (device.Identity, string, bool) {
	for _, r := range table {
		if r.match(m) {
			return r.identify(m), r.name, true
		}
	}
	return device.Unknown, "", false
}
