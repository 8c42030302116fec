package scene

// Outcome tags what a choice does to the session when it is picked.
type Outcome string

const (
	OutcomeProgress Outcome = "progress" // advance to the next room
	OutcomeRestart  Outcome = "restart"  // reset the session and reshuffle rooms
	// Reserved for later use. The engine treats these as no-ops.
	OutcomeDeath    Outcome = "death"
	OutcomeItemGain Outcome = "item_gain"
)

// IsKnown reports whether o is one of the declared outcome tags.
func (o Outcome) IsKnown() bool {
	switch o {
	case OutcomeProgress, OutcomeRestart, OutcomeDeath, OutcomeItemGain:
		return true
	default:
		return false
	}
}

// Choice is a single player option shown as a button under a scene
type Choice struct {
	Label   string  `json:"label"`
	Outcome Outcome `json:"outcome"`
}

// Scene is one unit of narrative content with its player choices.
type Scene struct {
	ID       string   `json:"id"`                  // snake_case identifier, used in logs and events
	Text     string   `json:"text"`                // narrative shown to the player
	ImageRef string   `json:"image_ref,omitempty"` // optional opaque image identifier
	Choices  []Choice `json:"choices"`             // ordered, one button per choice
}

// Clone returns a copy of s that shares no slices with the original.
func (s Scene) Clone() Scene {
	c := s
	if s.Choices != nil {
		c.Choices = make([]Choice, len(s.Choices))
		copy(c.Choices, s.Choices)
	}
	return c
}

// Equal reports whether two scenes carry the same content.
func (s Scene) Equal(o Scene) bool {
	if s.ID != o.ID || s.Text != o.Text || s.ImageRef != o.ImageRef || len(s.Choices) != len(o.Choices) {
		return false
	}
	for i := range s.Choices {
		if s.Choices[i] != o.Choices[i] {
			return false
		}
	}
	return true
}
