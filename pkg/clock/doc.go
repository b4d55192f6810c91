// Package clock abstracts the time source used to schedule deferred work.
//
// Production code uses Real, which delegates to time.Now and time.AfterFunc.
// Tests use Manual, a simulated clock that only moves when Advance is called
// and fires due timers synchronously in deadline order:
//
//	clk := clock.NewManual(time.Time{})
//	clk.AfterFunc(100*time.Millisecond, func() { fmt.Println("fired") })
//	clk.Advance(50 * time.Millisecond)  // nothing
//	clk.Advance(50 * time.Millisecond)  // prints "fired"
//
// Both implementations guarantee that a callback is never invoked from inside
// AfterFunc, so a zero delay still defers execution to the next tick.
package clock
