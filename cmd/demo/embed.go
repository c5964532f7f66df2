package main

import (
	_ "embed"
)

// The embedded scene keeps the demo self-contained: no files on disk, atlas
// generated at startup.

//go:embed scenes/default.yaml
var defaultSceneYAML []byte

//go:embed scenes/terrain.tengo
var terrainScript []byte
