// Package pytext разбирает одну физическую строку Python-кода на сегменты:
// код, строковые литералы, комментарий. Форматирующие проходы работают
// только с кодовыми сегментами, литералы и комментарии для них непрозрачны.
package pytext
