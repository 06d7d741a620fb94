// Package catalog holds desktop metadata for installed applications.
//
// Catalog files are discovered under a root directory with a doublestar
// pattern and decoded by extension (YAML, TOML or JSON). Each file carries
// an `apps` list:
//
//	apps:
//	  - id: camera-app
//	    name: Camera
//	    icon: camera.png
//	    keywords: [photo, video]
//
// A Catalog is the launcher's MetadataResolver and backs the shell's
// applications category.
package catalog
