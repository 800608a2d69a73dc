// Package token defines the lexical tokens of vecl source text.
package token
