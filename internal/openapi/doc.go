// Package openapi is the OpenAPI front-end: a minimal document model
// covering info, components.schemas and paths, loading from YAML or
// JSON chosen by file extension, and a schema collector that turns
// object schemas into class descriptors and string-enum schemas into
// enum descriptors.
//
// References ($ref) are resolved within the loaded document only;
// remote and cross-file references are out of scope.
package openapi
