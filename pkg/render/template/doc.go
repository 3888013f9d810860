// Package template defines the renderer-agnostic template seam the HTML
// renderer relies on, decoupling markup generation from the concrete engine.
package template
