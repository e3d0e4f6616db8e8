// Package pipeline provides a framework for executing validation steps in
// sequence.
//
// The pipeline pattern is used to process a site root through multiple
// stages: loading the pages from disk, then running the check battery.
// Each stage is implemented as a Step that receives the current run state
// and can modify it.
//
// Design decision: We use a pipeline pattern instead of direct function calls
// because:
// 1. It allows easy addition/removal of steps without modifying core logic
// 2. It provides consistent error handling and logging across steps
// 3. It supports cancellation via context
// 4. It enables potential parallelization of independent steps in the future
//
// The pipeline supports both single-root validation and batch processing
// with concurrency control using errgroup.
package pipeline
