package device_classifier

import (
	"github.com/turtacn/FireCircuit-Intelligence/internal/domain/device"
	"github.com/turtacn/FireCircuit-Intelligence/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/FireCircuit-Intelligence/internal/intelligence/param_extractor"
	apperrors "github.com/turtacn/FireCircuit-Intelligence/pkg/errors"
)

// Classification bundles the classifier's verdict for one snapshot.
type Classification struct {
	Identity        device.Identity
	Characteristics device.Characteristics
	MatchedRule     string
}

// Classifier runs the four-step pipeline: primary identity detection over
// the ordered tables, characteristics detection, contradiction
// validation, result assembly.
type Classifier struct {
	log logging.Logger
}

// New constructs a Classifier.  A nil logger falls back to the no-op
// logger.
func New(log logging.Logger) *Classifier {
	if log == nil {
		log = logging.NewNopLogger()
	}
	return &Classifier{log: log.Named("device_classifier")}
}

// Classify determines the device identity and characteristics.  Text that
// matches no rule yields the Unknown identity without error; an identity
// whose evidence is self-contradictory yields Unknown with a
// CLS_002 error so callers can surface the conflict instead of mapping a
// wrong device.
func (c *Classifier) Classify(snap device.Snapshot, params param_extractor.Parameters) (Classification, error) {
	m := matchContext{text: snap.CombinedText(), params: params}

	// Step 1: primary detection.  Notification appliances first; their
	// vocabulary (horn, strobe, speaker) never overlaps the initiating
	// table's, so order between the tables only matters for empty text.
	identity, ruleName, ok := firstMatch(notificationTable, m)
	if !ok {
		identity, ruleName, ok = firstMatch(initiatingTable, m)
	}
	if !ok {
		c.log.Debug("no rule matched", logging.String("element", snap.ElementID))
		return Classification{Identity: device.Unknown}, nil
	}

	// Step 2: characteristics from the same evidence.
	chars := c.detectCharacteristics(identity, m)

	// Step 3: contradiction validation.
	if err := validateIdentity(identity, m); err != nil {
		c.log.Warn("identity evidence contradicts itself",
			logging.String("element", snap.ElementID),
			logging.String("identity", identity.String()),
			logging.Err(err))
		return Classification{Identity: device.Unknown}, err
	}

	// Step 4: assemble.
	c.log.Debug("classified",
		logging.String("element", snap.ElementID),
		logging.String("identity", identity.String()),
		logging.String("rule", ruleName))
	return Classification{
		Identity:        identity,
		Characteristics: chars,
		MatchedRule:     ruleName,
	}, nil
}

// detectCharacteristics resolves mounting and environmental rating from
// keywords, falling back to the per-class defaults.  Characteristic-level
// oddities (say, a duct keyword on a horn) are not grounds for rejection;
// they only steer which catalog pattern is probed first.
func (c *Classifier) detectCharacteristics(identity device.Identity, m matchContext) device.Characteristics {
	chars := device.DefaultCharacteristics(identity.Class())

	switch {
	case identity.Kind == device.KindDuctSmokeDetector, kwDuct.matches(m.text):
		chars.Mounting = device.MountDuct
	case kwCeiling.matches(m.text):
		chars.Mounting = device.MountCeiling
	case kwWall.matches(m.text):
		chars.Mounting = device.MountWall
	}

	switch {
	case kwWeatherproof.matches(m.text):
		chars.EnvironmentalRating = device.RatingWeatherproof
	case kwHighTemp.matches(m.text):
		chars.EnvironmentalRating = device.RatingHighTemp
	case environmentIsHighCandela(m):
		chars.EnvironmentalRating = device.RatingHighCandela
	}
	return chars
}

// environmentIsHighCandela reports whether the evidence names a
// high-output strobe: an explicit keyword or a candela rating at or above
// 110 cd.
func environmentIsHighCandela(m matchContext) bool {
	if kwHighCandela.matches(m.text) {
		return true
	}
	cd, ok := m.params.Num(param_extractor.Candela)
	return ok && cd >= 110
}

// validateIdentity rejects identities whose own evidence argues against
// them.  These are identity-level conflicts; anything softer stays a log
// entry upstream.
func validateIdentity(identity device.Identity, m matchContext) error {
	switch identity.Kind {
	case device.KindHorn, device.KindMultitoneHorn:
		if m.hasSpeaker() {
			return apperrors.New(apperrors.ErrCodeIdentityContradiction,
				"horn identity with speaker evidence in the same text")
		}
	case device.KindSpeaker:
		if m.hasHorn() {
			return apperrors.New(apperrors.ErrCodeIdentityContradiction,
				"speaker identity with horn evidence in the same text")
		}
	case device.KindPullStation:
		if smokeEvidence(m.text) || kwHeat.matches(m.text) || kwDetector.matches(m.text) {
			return apperrors.New(apperrors.ErrCodeIdentityContradiction,
				"pull station identity with detector evidence in the same text")
		}
	case device.KindSmokeDetector, device.KindHeatDetector,
		device.KindMultiSensorDetector, device.KindDuctSmokeDetector,
		device.KindBeamDetector:
		// "STATION" and "MANUAL" alone are too weak to count against a
		// detector match; an explicit pull keyword is not.
		if kwPullStrong.matches(m.text) {
			return apperrors.New(apperrors.ErrCodeIdentityContradiction,
				"detector identity with pull station evidence in the same text")
		}
	}
	return nil
}
