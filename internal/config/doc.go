// Package config loads the fmtargs.yaml generator configuration.
//
// The file lists the packages to generate and, per package, the record types
// to select in addition to the ones carrying a //fmtargs:derive directive:
//
//	version: "1"
//	output: fmtargs_gen.go
//	tags: [integration]
//	packages:
//	  - path: ./examples/records
//	    types:
//	      - name: Header
//	      - name: Span
//	        shape: positional
//
// Command-line flags override the file.
package config
