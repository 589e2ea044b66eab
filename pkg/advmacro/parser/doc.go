// Package parser reads scenario workbooks and the key=value lists that
// structured macro arguments are written in.
package parser
