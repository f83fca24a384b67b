package engine

// Output is one slot's unapplied cycle contribution. TimeAdjustment is
// aggregated from the raw pass only; the modifier passes touch
// Resources and Sync.
type Output struct {
	Resources      float64
	Sync           float64
	TimeAdjustment int
}

// Add accumulates other into o.
func (o *Output) Add(other Output) {
	o.Resources += other.Resources
	o.Sync += other.Sync
	o.TimeAdjustment += other.TimeAdjustment
}

// AddScaled accumulates other's resource and sync contribution at the
// given factor. TimeAdjustment is never scaled.
func (o *Output) AddScaled(other Output, factor float64) {
	o.Resources += other.Resources * factor
	o.Sync += other.Sync * factor
	o.TimeAdjustment += other.TimeAdjustment
}
