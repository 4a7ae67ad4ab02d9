// Package pep8 применяет к уже выровненному коду набор текстовых проходов
// в духе PEP 8: пробельные мелочи, расстановка пробелов вокруг операторов,
// нормализация комментариев, пустые строки вокруг определений, перенос
// длинных строк. Каждый проход — чистое преобразование строк документа;
// строковые литералы и комментарии для кодовых проходов непрозрачны.
package pep8
