// Package imports переупорядочивает верхнеуровневый блок импортов:
// stdlib, сторонние, локальные — группы через пустую строку, внутри группы
// стабильная сортировка по нормализованному тексту. Блок ищется после
// модульного докстринга и __future__-импортов; многострочные импорты в
// скобках проходят насквозь нетронутыми.
package imports
