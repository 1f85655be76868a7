/*
Package flow defines the per-resource configuration flows: the ordered steps a
session walks through in the resource_config state, the shared answer pipeline
(trim, default, menu resolution, validation, transform) and the assembly of
collected answers into a final resource configuration.

Flows are compiled in and resolved once at startup through NewRegistry; there
is no dynamic flow loading. Registry.Validate catches malformed step
definitions before the first conversation runs.
*/
package flow
