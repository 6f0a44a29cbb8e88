// Package view provides handlers for presentation settings: the line
// number gutter, soft wrapping, font size, theme and scrolling.
package view
