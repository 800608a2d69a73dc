// Package fuzztests houses Go fuzz harnesses for the vecl pipeline.
// They feed arbitrary bytes through the lexer, the parser and, for inputs
// that type check, through lowering, the assembly emitter and the VM.
//
// Назначение: ловить паники и зависания на произвольном входе.
//
// Не делает: генерацию корпусов, запись файлов, выполнение CLI.
package fuzztests
