// Package checker implements the validation check battery.
//
// Each checker focuses on one category of assertion (structure, navigation,
// link resolution, semantics, forms, accessibility, stylesheet, assets) and
// returns a list of independent CheckResults. The Runner executes the
// registered checkers in a fixed order and folds their results into the run
// report.
//
// Design decision: Checks are pure predicates over the loaded Site; they
// never abort the run. A missing page yields skipped results for its
// per-page checks while the absence itself is reported by the existence
// checker, matching the degrade-gracefully error model.
package checker
