/*
Package envmap turns arbitrary externally supplied key/value pairs into safe
process environment variable assignments.

Normalize maps any textual key onto the shell-safe charset [A-Za-z0-9_],
splitting camelCase word boundaries, applying an optional prefix and case
transform, and collapsing the underscore noise that charset replacement
leaves behind:

	envmap.Normalize("😅helloWorld.LolHAHAOkay!", envmap.Options{})
	// "hello_world_lol_haha_okay"

Exporter applies a per-batch conflict policy (overwrite, preserve, error)
against names already defined in the environment, then delegates the actual
export to a core.Action so the assignment reaches both the live process and
the runner.
*/
package envmap
