// Package qm minimizes boolean sum-of-products expressions using the
// Quine–McCluskey algorithm.
//
// The input is a list of minterms, i.e fully-specified conjunctions of
// literals such as A'BC'D, each literal either positive or negated.
// Minterms can be flagged as "don't care": they may be used to widen
// implicants but are never required to be covered.
//
// Minimization proceeds in three steps. First, terms differing in exactly
// one literal's polarity are iteratively combined, dropping that literal,
// until no combination is possible; terms never subsumed by a wider term
// are the prime implicants. Second, a coverage table from each minterm to
// the prime implicants covering it yields the essential implicants, and a
// bounded exhaustive search finds a smallest set of remaining implicants
// covering the leftover minterms. Third, when several equally small covers
// exist, all of them are retained: the primary result is the
// lexicographically smallest one and the others are reported as possibles.
//
// The computation is purely sequential and allocates everything per call.
// Term counts can grow exponentially with the number of variables, so a
// configurable ceiling aborts pathological inputs with ErrResourceLimit
// instead of hanging.
package qm
