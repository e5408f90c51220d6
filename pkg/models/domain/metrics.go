package domain

// EssentialMetrics are the top-level dashboard figures derived from a
// filtered view. Missing authoritative records degrade to formulaic
// derivations, never to an error.
type EssentialMetrics struct {
	Revenue         float64
	CostPercent     float64
	OperatingResult float64
	Margin          float64
	// ReferenceMonthRevenue is the revenue of the reference month (the latest
	// month with activity unless the caller anchors another one).
	ReferenceMonthRevenue float64
}

// Growth is a guarded period-over-period percentage change. IsValid is false
// when fewer than two months are populated or the operands are degenerate;
// Percentage is then 0, never NaN or Inf.
type Growth struct {
	Percentage float64
	IsValid    bool
}
