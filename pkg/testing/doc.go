// Package testing provides a presenter testing harness for Beacon.
//
// # Quick Start
//
// Create a harness, mount a presenter, and make assertions:
//
//	func TestCart(t *testing.T) {
//	    h := beacontest.NewHarness(t)
//	    p := &cartPresenter{}
//	    h.Mount(p)
//
//	    p.AddItem(item)
//	    h.Pump()
//
//	    if h.Renders() != 1 {
//	        t.Errorf("expected 1 render, got %d", h.Renders())
//	    }
//	}
//
// The harness binds a counting render trigger through a recording
// coalescing scheduler, so tests can assert both how many times a render
// was requested and how many render passes actually ran.
//
// The suggested import alias is beacontest.
package testing
