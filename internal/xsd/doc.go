// Package xsd is the XML Schema front-end.
//
// It drives a streamed token source over one or more schema documents and
// turns xs:simpleType and xs:complexType declarations into IR types
// registered in the shared type registry, plus an AST of top-level
// element nodes the resolution phase assembles into the document class.
//
// Parsing is event-driven: each element parser consumes the decoder from
// just past its start tag through its matching end tag and nothing more,
// so parsers compose by delegation. Any text retained from the decoder is
// copied out before the next read, since the decoder reuses its internal
// buffer across Token calls.
package xsd
