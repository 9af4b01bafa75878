// Package scenario replays scripted explanation steps for a page.
//
// A page supplies a fixed, ordered list of scenarios. The Stepper selects one
// of them and keeps a position inside its step list. Every input is clamped or
// defaulted, so none of the operations can fail.
package scenario

// NoStepsPlaceholder is returned by Current when the active scenario has no steps.
const NoStepsPlaceholder = "No steps available for this scenario."

// Scenario is a named walk-through of an algorithm.
type Scenario struct {
	ID      string   `yaml:"id"`
	Title   string   `yaml:"title"`
	Summary string   `yaml:"summary"`
	Steps   []string `yaml:"steps"`
}

// State is the in-memory position of a Stepper.
type State struct {
	ScenarioID string
	StepIndex  int
}

// Stepper tracks the active scenario and step. The scenario list is never modified.
type Stepper struct {
	scenarios []Scenario
	active    int
	step      int
}

// New returns a stepper positioned at step 0 of the first scenario.
func New(scenarios []Scenario) *Stepper {
	return &Stepper{scenarios: scenarios}
}

// Select activates the scenario with the given id, or the first scenario when
// id is unknown, and rewinds to step 0.
func (s *Stepper) Select(id string) {
	s.active = 0
	for i, sc := range s.scenarios {
		if sc.ID == id {
			s.active = i
			break
		}
	}
	s.step = 0
}

// Forward advances one step; a no-op on the last step.
func (s *Stepper) Forward() {
	if s.step < s.stepCount()-1 {
		s.step++
	}
}

// Backward goes back one step; a no-op on step 0.
func (s *Stepper) Backward() {
	if s.step > 0 {
		s.step--
	}
}

// Reset rewinds to step 0 without changing the scenario.
func (s *Stepper) Reset() {
	s.step = 0
}

// Next selects the following scenario, wrapping around.
func (s *Stepper) Next() {
	s.cycle(1)
}

// Prev selects the preceding scenario, wrapping around.
func (s *Stepper) Prev() {
	s.cycle(-1)
}

func (s *Stepper) cycle(delta int) {
	n := len(s.scenarios)
	if n == 0 {
		return
	}
	s.Select(s.scenarios[((s.active+delta)%n+n)%n].ID)
}

// Current returns the text of the current step.
func (s *Stepper) Current() string {
	if s.stepCount() == 0 {
		return NoStepsPlaceholder
	}
	return s.scenarios[s.active].Steps[s.step]
}

// Scenario returns the active scenario. ok is false when the list is empty.
func (s *Stepper) Scenario() (Scenario, bool) {
	if len(s.scenarios) == 0 {
		return Scenario{}, false
	}
	return s.scenarios[s.active], true
}

// Scenarios returns the scenario list in page order.
func (s *Stepper) Scenarios() []Scenario {
	return s.scenarios
}

// State returns the current scenario id and step index.
func (s *Stepper) State() State {
	sc, _ := s.Scenario()
	return State{ScenarioID: sc.ID, StepIndex: s.step}
}

// Position returns the step index and the number of steps in the active scenario.
func (s *Stepper) Position() (index, total int) {
	return s.step, s.stepCount()
}

// AtStart reports whether the stepper is on the first step.
func (s *Stepper) AtStart() bool {
	return s.step == 0
}

// AtEnd reports whether the stepper is on the last step (or there are none).
func (s *Stepper) AtEnd() bool {
	return s.step >= s.stepCount()-1
}

func (s *Stepper) stepCount() int {
	if len(s.scenarios) == 0 {
		return 0
	}
	return len(s.scenarios[s.active].Steps)
}
