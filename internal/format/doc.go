// Package format pretty-prints vecl source from its AST.
//
// Назначение: каноничные отступы, пробелы вокруг операторов, один пустой
// ряд между объявлениями. Комментарии между объявлениями сохраняются как
// есть; объявление, внутри которого есть комментарий, копируется без
// изменений.
//
// Не делает: IO и проверку типов.
package format
