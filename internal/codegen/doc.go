// Package codegen emits Delphi source units from resolved schema types.
//
// The emitter works in two steps: a unit builder turns the resolved
// representation (or the OpenAPI descriptors) into a render model, and
// the generator writes that model as a complete unit with interface and
// implementation sections.
package codegen
