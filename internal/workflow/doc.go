// Package workflow implements the journal entry lifecycle: a state machine
// that takes one draft from text accumulation through distortion analysis,
// reframe generation, and user reflection to persistence. Each workflow owns
// exactly one in-progress draft; a manager hands out one workflow per
// session and tears it down when the session ends.
package workflow
