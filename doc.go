/*
Package dynamicuses lets a workflow step invoke an action reference that is
only known at run time, working around the runner's requirement that `uses:`
be a static string.

It composes a composite-action manifest around the requested reference,
exports caller-supplied environment variables under normalized, conflict
checked names, and reports everything back to the runner over the workflow
command protocol.

The heavy lifting lives in the subpackages:

  - pkg/core: the workflow-command protocol client (inputs, outputs,
    annotations, env exports, state) over both the file-command and the
    legacy stdout transports.
  - pkg/envmap: key normalization and conflict-policy handling for
    environment exports.
  - pkg/manifest: composition of the generated sub-action manifest.

Run wires the three together as the action entrypoint; cmd/dynamic-uses is
the binary the action invokes.
*/
package dynamicuses
