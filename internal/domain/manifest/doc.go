// Package manifest builds Scoop application manifests.
//
// A manifest with a single architecture uses the flat url/hash/bin shape that
// Scoop treats as a single-binary package; several architectures use the
// nested "architecture" mapping. Both shapes carry an autoupdate section whose
// URLs have the version replaced by the $version placeholder.
package manifest
