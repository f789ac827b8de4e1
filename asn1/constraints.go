package asn1

/*
constraints.go carries this package's one use of golang.org/x/exp's
generic ordering constraint. The teacher library builds an entire
constraint/validation framework on top of constraints.Ordered
(constr.go's RangeConstraint); this package's decode-time field
validation (timeval.go) needs only the ordering check itself,
so that is what is kept and wired in place of the larger framework.
*/

import "golang.org/x/exp/constraints"

// inRange reports whether v falls within [lo, hi], inclusive.
func inRange[T constraints.Ordered](v, lo, hi T) bool {
	return v >= lo && v <= hi
}
