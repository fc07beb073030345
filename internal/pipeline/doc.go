// Package pipeline runs a compression check as an ordered list of steps.
//
// A check moves through four stages: the target is normalized, fetched,
// its body decoded and finally summarized in a report. Each stage is a Step
// that receives the shared *model.Check and fills in the fields it owns.
// Execution stops at the first step error; the decode step never fails, so
// a body that cannot be decoded still produces a report.
package pipeline
