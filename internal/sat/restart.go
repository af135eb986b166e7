package sat

// ema is an exponential moving average, used by the Glucose-style restart
// strategy to track recent vs. long-run learnt-clause LBD.
type ema struct {
	decay float64
	value float64
	init  bool
}

func newEMA(decay float64) ema {
	return ema{decay: decay}
}

func (e *ema) add(x float64) {
	if !e.init {
		e.init = true
		e.value = x
		return
	}
	e.value = e.decay*e.value + x*(1-e.decay)
}

func (e *ema) val() float64 {
	return e.value
}

// restartController combines a geometric restart schedule with a
// Glucose/LBD-based one by disjunction: either strategy firing triggers a
// restart.
type restartController struct {
	// Geometric strategy.
	threshold    float64
	first        float64
	inc          float64
	conflictsRun int64

	// Glucose strategy.
	fast           ema
	slow           ema
	minConflicts   int64
	postponeWindow int
	sinceStart     int64
}

func newRestartController(opts Options) *restartController {
	return &restartController{
		threshold:      float64(opts.RestartFirst),
		first:          float64(opts.RestartFirst),
		inc:            opts.RestartInc,
		fast:           newEMA(opts.GlucoseFastAlpha),
		slow:           newEMA(opts.GlucoseSlowAlpha),
		minConflicts:   opts.GlucoseMinConflicts,
		postponeWindow: opts.RestartPostpone,
	}
}

// onConflict records one conflict's LBD into the moving averages and the
// geometric counter.
func (r *restartController) onConflict(lbd uint32) {
	r.conflictsRun++
	r.sinceStart++
	r.fast.add(float64(lbd))
	r.slow.add(float64(lbd))
}

// shouldRestart reports whether either strategy wants to fire. trailLen is
// the current trail length, used by the postpone rule: a long trail
// indicates productive search and suppresses a Glucose-triggered restart.
func (r *restartController) shouldRestart(trailLen, avgTrailLen int) bool {
	geometric := float64(r.conflictsRun) >= r.threshold
	glucose := r.slow.init &&
		r.sinceStart >= r.minConflicts &&
		r.fast.val() > r.slow.val()

	if glucose && r.postponeWindow > 0 && trailLen > avgTrailLen*r.postponeWindow/10 {
		glucose = false
	}

	return geometric || glucose
}

// onRestart resets the per-run counters after a restart fires. The
// geometric threshold grows multiplicatively so restarts space out over
// time.
func (r *restartController) onRestart() {
	if float64(r.conflictsRun) >= r.threshold {
		r.threshold *= r.inc
	}
	r.conflictsRun = 0
	r.sinceStart = 0
}
