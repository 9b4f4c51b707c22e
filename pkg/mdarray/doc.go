// Package mdarray provides dense multi-dimensional arrays for numeric element
// types.
//
// A Tensor owns a flat, row-major buffer together with a shape and strides.
// Factories such as Fill, Zeros, Ones and FromSlice allocate new tensors,
// while Reshape, Transpose, Permute and Slice return zero-copy views that
// share the underlying buffer with their base tensor. Mutating an element
// through a view is therefore visible through the base, and the other way
// around.
//
// Element-wise operations, reductions and matrix products always allocate a
// fresh contiguous result. Binary operations follow the usual trailing-axes
// broadcasting rule, so a row vector can be added to a matrix without copying
// it first. Operations accept a WithConcurrency option that splits the work
// across a bounded group of goroutines; by default everything runs on the
// calling goroutine.
//
// The expr subpackage builds lazy expression graphs on top of this package
// for workloads where the computation shape is known before the data is.
package mdarray
