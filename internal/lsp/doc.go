// Package lsp implements a stdio language server for vecl: diagnostics on
// every edit, hover with inferred types, go to definition, folding ranges
// and whole-document formatting.
//
// Каждый открытый документ анализируется отдельно; файлы на диске не читаются.
package lsp
