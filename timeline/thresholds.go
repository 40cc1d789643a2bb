package timeline

// Policy thresholds used by the renderers. These are fixed defaults today;
// they are variables rather than literals so a future per-vehicle
// configuration surface (manufacturer service intervals, tire spec) can
// override them without touching renderer logic.
var (
	// LowTreadThreshold is the tread depth, in 32nds of an inch, strictly
	// below which a tire-tread check gets a "Replace soon" badge. A reading
	// of exactly 4/32" does not trigger it.
	LowTreadThreshold = 4.0

	// LowPressureThreshold is the PSI strictly below which a tire-pressure
	// check gets a "Low pressure" badge.
	LowPressureThreshold = 30.0

	// MilestoneIntervals are odometer intervals that earn a milestone badge
	// when the reading is an exact multiple. Checked in order, first match
	// wins, so the larger interval takes precedence.
	MilestoneIntervals = []int{10000, 5000}

	// GoodMPGThreshold is the fuel economy at or above which the efficiency
	// row is highlighted.
	GoodMPGThreshold = 30.0
)

// compactRowThreshold is the row count above which a card switches to the
// dense layout. fallbackRowCap bounds how many rows the generic fallback
// renderer will emit from an arbitrary payload.
const (
	compactRowThreshold = 5
	fallbackRowCap      = 10
)
