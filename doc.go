// Package tilemap models a 2-D tile map for sprite-atlas rendering: a
// rectangular grid of tile indices into a texture atlas, an invertible
// projection from grid coordinates to world space, and a policy for
// resolving visual overlap ("overhang") between tiles whose artwork spills
// into neighboring cells.
//
// A map is described by a Config and finalized in one shot by Build,
// BuildWith or BuildEach: the atlas layout is derived and validated, the
// tile buffer is allocated, an optional initializer seeds the cells through
// a bounded Indexer, and the world size is computed last. The result is a
// Map whose geometry never changes again.
//
// A finalized Map is safe for any number of concurrent readers. Writers
// (SetTile, Fill, SetUserData) are not synchronized here; the owner must
// keep a single-writer discipline.
package tilemap
