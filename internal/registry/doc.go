// Package registry provides the central "glue" for the component system.
//
// The Registry maps the type tags used in design files (e.g., "image") to the
// compiled Go parts of a component: the factory that builds its default
// Descriptor and the Writer that emits its code for each phase.
//
// During application startup, the registry is populated by every compiled-in
// Module and then validated, so a factory whose Descriptor lacks a field its
// Writer needs is caught before any design is loaded.
package registry
