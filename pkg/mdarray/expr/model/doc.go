// Package model holds the data structures shared between the expression
// graph and its observers: node metadata and the lifecycle interface graph
// options implement.
package model
