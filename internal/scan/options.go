package scan

import (
	"retab/internal/diag"
)

// Options настраивают сканер.
type Options struct {
	// Reporter может быть nil — тогда диагностики игнорируем
	// (но продолжаем сканировать).
	Reporter diag.Reporter
}
