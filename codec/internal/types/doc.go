// Package types defines the closed set of element type tags.
//
// Every element of an array has exactly one Tag. Integer tags whose width
// depends on the platform (int, long, longlong and their unsigned forms)
// are resolved to 4- or 8-byte codecs by the registry, not here.
//
// This package is internal to the codec.
package types
