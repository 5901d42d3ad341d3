// Package render groups the visual output formats for skeleton graphs.
//
// The [nodelink] subpackage draws a graph as a node-link diagram with each
// vertex pinned at its projected 3-D position, rendered to SVG in-process
// through Graphviz.
package render
