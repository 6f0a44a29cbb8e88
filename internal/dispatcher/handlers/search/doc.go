// Package search provides handlers for literal find and replace.
//
// Both actions scan from the start of the active document, so repeating
// search.find lands on the same match and each search.replace substitutes
// the current first occurrence. A missing match is a no-op, not an error.
package search
