// Package drag implements the interactive dismissal state machine.
// A machine tracks one view's continuous drag: the axis-filtered offset,
// the partial-close percentage derived from it, and the end-of-drag
// decision between a velocity-predicted throw dismissal and a spring
// snap-back. It also provides the velocity tracker hosts use to estimate
// the predicted end translation when their input layer does not supply one.
package drag
