// Package diag defines the issue model shared by every rule check: the kind
// taxonomy, the three-tier severity scale, and the Bag that collects issues
// in rule-execution order. Nothing in this package inspects titles; rules
// live in internal/detect and only emit values defined here.
package diag
