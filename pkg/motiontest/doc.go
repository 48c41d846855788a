// Package motiontest provides deterministic test drivers for choreographies.
//
// # Quick Start
//
// Create a tester, load a schedule, and pump frames on a fake clock:
//
//	func TestFade(t *testing.T) {
//	    tester := motiontest.NewTesterWithT(t)
//	    card := tester.Target("card")
//	    tester.Load(schedule)
//	    tester.Play()
//
//	    tester.PumpFor(150 * time.Millisecond)
//	    if got := card.Float(choreography.Alpha); got != 0.5 {
//	        t.Errorf("alpha = %v", got)
//	    }
//	}
//
// # Snapshot Testing
//
// Capture a schedule's windows and sampled values and compare them with a
// golden file:
//
//	snap, err := motiontest.Capture(schedule, 0, 0.5, 1)
//	snap.MatchesFile(t, "testdata/fade.snapshot.json")
//
// Update snapshots with:
//
//	CHOREO_UPDATE_SNAPSHOTS=1 go test ./...
package motiontest
