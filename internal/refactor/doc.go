// Package refactor содержит консервативные переписывания, которые меняют
// токены и потому запускаются только по явной команде: удаление
// неиспользуемых импортов, упрощение булевых return-пар, перевод явно
// безопасных форматирований в f-строки. Всё, что не распознано со стопроцентной
// уверенностью, остаётся как есть.
package refactor
