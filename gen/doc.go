// Package gen turns a validated [lang.Application] into scaffold output for
// each target platform.
//
// Emitters are deliberately thin: they lay out a project skeleton (manifest,
// screen stubs, model descriptors, expanded mock data) and leave everything
// beyond the skeleton to the developer. An emitter must tolerate an
// Application with absent optional sections, since validation reports those
// as warnings rather than refusing the document.
package gen
