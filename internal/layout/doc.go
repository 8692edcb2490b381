// Package layout describes the directory tree a scaffold run produces. A layout
// lists directories, empty placeholder files, and literal-content files such as
// .gitignore. The default MLFF benchmark layout is embedded in the binary;
// custom layouts are YAML files validated against an embedded JSON Schema.
// Directory and file entries may use shell-style brace shorthand
// ("src/{analysis,models}") which is expanded at load time.
package layout
