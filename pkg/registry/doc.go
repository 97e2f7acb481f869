// Package registry defines the agent registry data model and its on-disk
// document.
//
// A registry document lists agent records, each claiming a relative file
// location, plus optional category and alias tables:
//
//	categories:
//	  core-development: 01-core-development
//	aliases:
//	  engineering: core-development
//	agents:
//	  - name: api-designer
//	    category: core-development
//	    path: categories/01-core-development/api-designer.md
//	    description: REST and GraphQL API architect
//
// Documents are decoded by trying JSON, YAML and TOML in order (the file
// extension moves its own format to the front). Write-back keeps the format
// the document was loaded in and always leaves a .bak copy of the original.
package registry
