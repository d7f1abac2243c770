// Package definition loads declarative form definitions from JSON or YAML
// files. Each file describes one form:
//
//	name: registration
//	title: Create your account
//	fields:
//	  - name: email
//	    kind: email
//	    rules:
//	      - kind: required
//	      - kind: email
//
// Description and help text may carry a small subset of inline HTML; it is
// sanitized on load.
package definition
