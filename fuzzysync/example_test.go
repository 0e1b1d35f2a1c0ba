package fuzzysync_test

import (
	"fmt"

	"github.com/fuzzysync/fuzzysync"
)

// Example demonstrates driving a Pair through a fixed number of
// iterations. Normally A and B's critical sections would contain the code
// under test; here they do nothing, since the example only needs to show
// the wiring.
func Example() {
	var p fuzzysync.Pair
	p.Init()
	p.SetExecLoops(100)

	p.Reset(func(p *fuzzysync.Pair) {
		for p.RunB() {
			p.StartRaceB()
			p.EndRaceB()
		}
	})

	for p.RunA() {
		p.StartRaceA()
		p.EndRaceA()
	}
	p.Cleanup()

	fmt.Println(p.ExecLoop())

	// Output:
	// 100
}
