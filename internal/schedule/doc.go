// Package schedule reads team match schedules and derives season summaries:
// an overall win-loss record and a cumulative score series for charting a
// season's trajectory.
package schedule
