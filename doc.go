// Package attrigo is an analytics toolkit for explaining and predicting
// voluntary employee attrition from a static tabular dataset.
//
// The pipeline encodes the mixed-type employee table into a numeric design
// matrix (preprocessing), filters the departed employees worth retaining
// (dataset), selects a binomial GLM by diagnostic-driven refinement (glm,
// selection), evaluates the selected model on a stratified holdout
// (evaluation) and ranks a retention shortlist by probability times
// performance (ranking). The attrition package ties the stages together and
// renders a text report; cmd/attrigo is a thin CSV-loading CLI around it.
//
// The whole computation is a single-threaded, deterministic batch: the only
// seeded randomness is the train/holdout split.
package attrigo
