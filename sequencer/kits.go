package sequencer

// Instrument binds a grid row to a percussion voice
type Instrument struct {
	Name  string
	Voice uint8 // MIDI key on the drum channel
}

// Kit maps the 16 grid rows to instruments
type Kit struct {
	Name        string
	Instruments [Rows]Instrument
}

// Voice returns the key played by row
func (k Kit) Voice(row int) uint8 {
	return k.Instruments[row].Voice
}

// Names returns the instrument names in row order
func (k Kit) Names() []string {
	names := make([]string, Rows)
	for i, inst := range k.Instruments {
		names[i] = inst.Name
	}
	return names
}

// Kits contains all available drum kit mappings
var Kits = map[string]Kit{
	"beatbox": {
		Name: "BeatBox",
		Instruments: [Rows]Instrument{
			{"Bass Drum", 35},
			{"Closed Hi-Hat", 42},
			{"Open Hi-Hat", 46},
			{"Acoustic Snare", 38},
			{"Crash Cymbal", 49},
			{"Hand Clap", 39},
			{"High Tom", 50},
			{"Hi Bongo", 60},
			{"Maracas", 70},
			{"Whistle", 72},
			{"Low Conga", 64},
			{"Cowbell", 56},
			{"Vibraslap", 58},
			{"Low-mid Tom", 47},
			{"High Agogo", 67},
			{"Open Hi Conga", 63},
		},
	},
	"gm": {
		Name: "General MIDI",
		Instruments: [Rows]Instrument{
			{"Kick", 36},
			{"Snare", 38},
			{"Closed HH", 42},
			{"Open HH", 46},
			{"Low Tom", 41},
			{"Mid Tom", 43},
			{"High Tom", 45},
			{"Crash", 49},
			{"Ride", 51},
			{"Clap", 39},
			{"Rimshot", 37},
			{"Cowbell", 56},
			{"Clave", 75},
			{"Maracas", 70},
			{"Low Conga", 64},
			{"High Conga", 63},
		},
	},
	"rd8": {
		Name: "Behringer RD-8",
		Instruments: [Rows]Instrument{
			{"Kick (BD)", 36},
			{"Snare (SD)", 40}, // RD-8 uses 40, not 38!
			{"Closed HH (CH)", 42},
			{"Open HH (OH)", 46},
			{"Low Tom (LT)", 45},
			{"Mid Tom (MT)", 48},
			{"High Tom (HT)", 50},
			{"Crash (CY)", 49},
			{"Ride (RC)", 51},
			{"Clap (CP)", 39},
			{"Rimshot (RS)", 37},
			{"Cowbell (CB)", 56},
			{"Clave (CL)", 75},
			{"Maracas (MA)", 70},
			{"Low Conga (LC)", 64},
			{"High Conga (HC)", 63},
		},
	},
	"tr8s": {
		Name: "Roland TR-8S",
		Instruments: [Rows]Instrument{
			{"Kick", 36},
			{"Snare", 38},
			{"Closed HH", 42},
			{"Open HH", 46},
			{"Low Tom", 41},
			{"Mid Tom", 43},
			{"High Tom", 45},
			{"Crash", 49},
			{"Ride", 51},
			{"Clap", 39},
			{"Rimshot", 37},
			{"Cowbell", 56},
			{"Clave", 75},
			{"Maracas", 70},
			{"Low Conga", 62},
			{"High Conga", 63},
		},
	},
}

// KitNames returns the list of available kit names
func KitNames() []string {
	return []string{"beatbox", "gm", "rd8", "tr8s"}
}

// GetKit returns a kit by name, defaulting to the BeatBox kit if not found
func GetKit(name string) Kit {
	if kit, ok := Kits[name]; ok {
		return kit
	}
	return Kits[DefaultKit]
}

// DefaultKit is the default kit name
const DefaultKit = "beatbox"
