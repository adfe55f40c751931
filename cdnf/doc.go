// Package cdnf converts between integers, canonical disjunctive normal
// forms and minimized boolean expressions.
//
// An integer denotes a truth table: bit i set means the function is true
// for the input pattern i. Canonical turns such an integer into the sum of
// its minterms, e.g Canonical(248) is "ABC' + ABC + AB'C' + AB'C + A'BC"
// with A as the high order bit. QuineMC goes the other way and reduces a
// canonical expression, given as an integer, a string or a minterm list,
// to a minimal equivalent form using package qm. ToCDNF re-expands a
// minimized expression back to a canonical one.
//
// Expressions use the usual boolean algebra shorthand: "AB" is A and B,
// "C'" is not C and "+" is or, so "AB + C'" reads (A and B) or (not C).
package cdnf
