package entity

// State is a fighter's combat state
type State uint8

const (
	Idle State = iota
	Run
	Jump
	LightAttack
	HeavyAttack
	Fall
	TakeLightHit
	TakeHeavyHit
	Death
	Dash

	StateCount // Must be last - used for table sizing
)

// stateNames doubles as the collider data file key of each state
var stateNames = [StateCount]string{
	Idle:         "Idle",
	Run:          "Run",
	Jump:         "Jump",
	LightAttack:  "LightAttack",
	HeavyAttack:  "HeavyAttack",
	Fall:         "Fall",
	TakeLightHit: "TakeLightHit",
	TakeHeavyHit: "TakeHeavyHit",
	Death:        "Death",
	Dash:         "Dash",
}

// stateClips maps each state to its animation clip. Both hit reactions share one clip.
var stateClips = [StateCount]string{
	Idle:         "idle",
	Run:          "run",
	Jump:         "jump",
	LightAttack:  "light_attack",
	HeavyAttack:  "heavy_attack",
	Fall:         "fall",
	TakeLightHit: "take_hit",
	TakeHeavyHit: "take_hit",
	Death:        "death",
	Dash:         "dash",
}

// Valid reports whether s is a known state
func (s State) Valid() bool {
	return s < StateCount
}

// String returns the string representation of the state
func (s State) String() string {
	if !s.Valid() {
		return "Unknown"
	}
	return stateNames[s]
}

// Clip returns the animation clip key the renderer should show
func (s State) Clip() string {
	if !s.Valid() {
		return ""
	}
	return stateClips[s]
}

// ColliderKey returns the key of the state's collider set in the data file
func (s State) ColliderKey() string {
	if !s.Valid() {
		return ""
	}
	return stateNames[s]
}

// IsAttack reports whether the state deals damage with its hitboxes
func (s State) IsAttack() bool {
	return s == LightAttack || s == HeavyAttack
}

// IsHitReaction reports whether the state is a reaction to a landed hit
func (s State) IsHitReaction() bool {
	return s == TakeLightHit || s == TakeHeavyHit
}

// ParseState converts a collider data file key to a State
func ParseState(key string) (State, bool) {
	for s, name := range stateNames {
		if name == key {
			return State(s), true
		}
	}
	return 0, false
}

// AllStates returns every state in enum order
func AllStates() []State {
	states := make([]State, 0, StateCount)
	for s := State(0); s < StateCount; s++ {
		states = append(states, s)
	}
	return states
}
