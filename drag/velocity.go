package drag

import (
	"time"

	"github.com/jmylchreest/scrim/geom"
)

// PredictionHorizon is how far ahead the release velocity is projected
// when estimating the predicted end translation.
const PredictionHorizon = 250 * time.Millisecond

// velocityWindow bounds how far back samples contribute to the estimate.
const velocityWindow = 100 * time.Millisecond

const maxVelocitySamples = 8

type velocitySample struct {
	at  time.Time
	pos geom.Offset
}

// VelocityTracker estimates pointer velocity from recent samples. Hosts
// whose input layer does not report a predicted end translation feed every
// movement sample through Add and call Predict on release.
//
// The zero value is ready to use.
type VelocityTracker struct {
	samples []velocitySample
}

// Add records one positioned sample at the given time.
func (t *VelocityTracker) Add(at time.Time, pos geom.Offset) {
	t.samples = append(t.samples, velocitySample{at: at, pos: pos})
	if len(t.samples) > maxVelocitySamples {
		t.samples = t.samples[len(t.samples)-maxVelocitySamples:]
	}
}

// Velocity returns the estimated velocity in units per second, measured
// across the samples inside the velocity window. Fewer than two usable
// samples estimate to zero.
func (t *VelocityTracker) Velocity() geom.Offset {
	if len(t.samples) < 2 {
		return geom.Offset{}
	}

	last := t.samples[len(t.samples)-1]
	first := t.samples[0]
	for _, s := range t.samples {
		if last.at.Sub(s.at) <= velocityWindow {
			first = s
			break
		}
	}

	dt := last.at.Sub(first.at).Seconds()
	if dt <= 0 {
		return geom.Offset{}
	}
	return last.pos.Sub(first.pos).Scale(1 / dt)
}

// Predict projects the release position forward by the prediction horizon
// at the current velocity estimate.
func (t *VelocityTracker) Predict(release geom.Offset) geom.Offset {
	return release.Add(t.Velocity().Scale(PredictionHorizon.Seconds()))
}

// Reset drops all recorded samples.
func (t *VelocityTracker) Reset() {
	t.samples = t.samples[:0]
}
