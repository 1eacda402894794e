package statemachine_test

import (
	"fmt"

	"github.com/dmitrymomot/fsm/pkg/statemachine"
)

func Example() {
	sm := statemachine.New(statemachine.Config{
		Initial: "normal",
		States: []statemachine.StateConfig{
			{Name: "normal", Transitions: statemachine.Transitions{"flee": "hiding"}},
			{Name: "hiding", Transitions: statemachine.Transitions{"return": "normal"}},
		},
	})

	_ = sm.Trigger("flee")
	fmt.Println(sm.State())

	fmt.Println(sm.Undo(), sm.State())
	fmt.Println(sm.Redo(), sm.State())
	fmt.Println(sm.ListStatesFor("flee"), sm.ListStates())

	// Output:
	// hiding
	// true normal
	// true hiding
	// [normal] [normal hiding]
}

func ExampleMachine_Trigger() {
	sm := statemachine.NewBuilder("draft").
		Transition("draft", "submit", "in_review").
		State("in_review").
		MustBuild()

	if err := sm.Trigger("approve"); statemachine.IsInvalidTransitionError(err) {
		fmt.Println(err)
	}

	// Output:
	// no transition available from state 'draft' for event 'approve'
}

func ExampleParseConfig() {
	cfg, err := statemachine.ParseConfig([]byte(`
initial: locked
states:
  locked:
    transitions:
      coin: unlocked
  unlocked:
    transitions:
      push: locked
`))
	if err != nil {
		fmt.Println(err)
		return
	}

	sm := statemachine.New(cfg)
	_ = sm.Trigger("coin")
	sm.ClearHistory()
	fmt.Println(sm.State(), sm.Undo())

	// Output:
	// unlocked false
}
