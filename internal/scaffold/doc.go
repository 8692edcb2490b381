// Package scaffold lays a project layout down on disk. It powers the
// "mlffkit new" command: a layout is turned into an ordered plan of mkdir,
// touch, write and git-init steps, which is then applied one step at a time.
// The first failing step aborts the run and leaves the partial tree in place.
// Verify checks an existing tree against a layout for "mlffkit check".
package scaffold
