// Package generation defines the boundary between the application core and
// the external language-model service that produces reading interpretations.
// The concrete Gemini-backed implementation lives in platform/gemini.
package generation
