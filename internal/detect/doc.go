// Package detect implements the pure core of a detection run: set
// differencing between inventory and references, size accounting over
// the unused subset, duplicate grouping, and report assembly.
//
// Design decision: These are computation functions returning data, with
// no console output of their own. Presentation (text, JSON, Markdown)
// lives in the report package and consumes the immutable report, which
// is what keeps the set-algebra and sizing properties testable.
package detect
