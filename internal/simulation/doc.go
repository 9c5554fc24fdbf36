// Package simulation provides a scripted-game test harness for validating
// emergent dynamics of the full engine stack.
//
// The simulation exercises the real grid, activation engine, pattern
// detector and scorer through the game controller, with no mocks. Scenarios
// are Go builders that script player registrations and move sequences,
// capturing every turn result for property-based assertions.
//
// Usage:
//
//	func TestCliqueAwakens(t *testing.T) {
//	    r := simulation.NewRunner(t)
//	    result := r.Run(simulation.Scenario{
//	        Name:  "clique-awakens",
//	        Moves: simulation.Row("solo", models.NeuronProcessor, 0, 0, 5),
//	    })
//	    simulation.AssertLevelAbove(t, result, 4, 0)
//	}
package simulation
