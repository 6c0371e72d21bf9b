// Package template defines the template engine seam used by the HTML
// renderer and the site shell. The pongo subpackage provides the default
// implementation.
package template
