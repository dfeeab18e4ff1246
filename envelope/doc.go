// Package envelope extracts hit records from raw search collaborator
// responses.
//
// The documented envelope is an object carrying a total count and a "hits"
// array; each hit has a source label, a numeric score, and a flat scalar
// payload. Parsing is tolerant by construction: the decoder streams the hit
// array one element at a time and each element is decoded independently, so
// malformed input degrades to fewer hits instead of an error.
//
// Known limitation: a syntax error inside the array ends extraction at that
// point, since JSON offers no way to resynchronize mid-stream. Elements that
// are well-formed JSON but semantically broken (wrong types, missing score,
// missing entity key) are handled per element.
package envelope
