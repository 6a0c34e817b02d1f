/*
Package core implements the client side of the GitHub Actions workflow-command
protocol: reading step inputs from the environment the runner injected, and
emitting structured commands (outputs, annotations, environment exports,
persisted state) back to the runner.

Two transports exist. Newer runners expose per-kind command files
(GITHUB_OUTPUT, GITHUB_ENV, GITHUB_STATE) that receive delimiter-framed
appends; older runners parse annotated "::name props::message" lines on
stdout. An Action detects which transport is available once, at construction,
and routes every operation accordingly.

# Usage

	act, err := core.New()
	if err != nil {
		// runner environment could not be resolved
	}
	ref, err := act.GetInput("uses", core.Required())
	if err != nil {
		act.SetFailed(err.Error())
		return
	}
	_ = act.SetOutput("resolved", ref)

The process environment is accessed through the Environment interface so
tests can run against an isolated map instead of mutating real process state.
*/
package core
