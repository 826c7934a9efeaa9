// Package abi provides value coercion and layout helpers for the element
// codecs.
//
// # Contents
//
//   - coerce.go: conversion of arbitrary Go values to element representations
//   - helpers.go: alignment arithmetic, type names, sequence unpacking
//
// Coercion functions never panic and report failure with a false second
// result; the caller turns that into a structured error naming the Go type
// and target element type.
//
// This package is internal to the codec.
package abi
