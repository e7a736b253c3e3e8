package device_classifier

import (
	"github.com/turtacn/FireCircuit-Intelligence/internal/domain/device"
)

// notificationTable is the ordered rule table for notification
// appliances.  Combinations sit above their components so "speaker
// strobe" never resolves to a bare speaker, and multitone variants sit
// above their plain counterparts.
var notificationTable = []rule{
	{
		name:  "speaker_strobe",
		match: func(m matchContext) bool { return m.hasSpeaker() && m.hasStrobe() },
		identify: func(matchContext) device.Identity {
			// A horn keyword alongside speaker+strobe is treated as
			// marketing noise: the speaker wins the audible channel.
			return device.NewIdentity(device.KindSpeakerStrobe, device.SubtypeNone)
		},
	},
	{
		name: "multitone_horn_strobe",
		match: func(m matchContext) bool {
			return kwMultitone.matches(m.text) && m.hasHorn() && m.hasStrobe()
		},
		identify: func(matchContext) device.Identity {
			return device.NewIdentity(device.KindMultitoneHornStrobe, device.SubtypeNone)
		},
	},
	{
		name:  "horn_strobe",
		match: func(m matchContext) bool { return m.hasHorn() && m.hasStrobe() },
		identify: func(matchContext) device.Identity {
			return device.NewIdentity(device.KindHornStrobe, device.SubtypeNone)
		},
	},
	{
		name:  "multitone_horn",
		match: func(m matchContext) bool { return kwMultitone.matches(m.text) && m.hasHorn() },
		identify: func(matchContext) device.Identity {
			return device.NewIdentity(device.KindMultitoneHorn, device.SubtypeNone)
		},
	},
	{
		name:  "speaker",
		match: func(m matchContext) bool { return m.hasSpeaker() },
		identify: func(matchContext) device.Identity {
			return device.NewIdentity(device.KindSpeaker, device.SubtypeNone)
		},
	},
	{
		name:  "horn",
		match: func(m matchContext) bool { return m.hasHorn() },
		identify: func(matchContext) device.Identity {
			return device.NewIdentity(device.KindHorn, device.SubtypeNone)
		},
	},
	{
		name:  "strobe",
		match: func(m matchContext) bool { return m.hasStrobe() },
		identify: func(matchContext) device.Identity {
			return device.NewIdentity(device.KindStrobe, device.SubtypeNone)
		},
	},
	{
		name:  "chime",
		match: func(m matchContext) bool { return kwChime.matches(m.text) },
		identify: func(matchContext) device.Identity {
			return device.NewIdentity(device.KindChime, device.SubtypeNone)
		},
	},
	{
		name:  "generic_notification",
		match: func(m matchContext) bool { return kwGenericAV.matches(m.text) },
		identify: func(m matchContext) device.Identity {
			// Ceiling-mounted generic appliances are most often
			// strobe-only; everything else defaults to the common
			// wall horn strobe.
			if kwCeiling.matches(m.text) {
				return device.NewIdentity(device.KindStrobe, device.SubtypeNone)
			}
			return device.NewIdentity(device.KindHornStrobe, device.SubtypeNone)
		},
	},
}
