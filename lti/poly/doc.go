// Package poly provides the polynomial helpers used by the transfer-function
// model: convolution, right-aligned addition, binomial expansion and
// reconstruction from roots.
//
// Polynomials are coefficient slices ordered highest power first:
//
//	p(x) = p[0]*x^n + p[1]*x^(n-1) + ... + p[n]
//
// No function in this package trims leading zeros implicitly. Call [Trim]
// before treating len(p)-1 as the degree.
package poly
