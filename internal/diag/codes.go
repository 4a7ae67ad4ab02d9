package diag

import (
	"fmt"
)

type Code uint16

const (
	// Неизвестная ошибка - на первое время
	UnknownCode Code = 0

	// Конфигурация
	CfgInfo          Code = 100
	CfgEmptyUnit     Code = 101
	CfgBadUnit       Code = 102
	CfgBadLineLength Code = 103
	CfgBadQuoteStyle Code = 104
	CfgBadManifest   Code = 105

	// Скан: физические и логические строки
	ScanInfo                Code = 1000
	ScanUnbalancedCloser    Code = 1001
	ScanUnterminatedBracket Code = 1002
	ScanUnterminatedString  Code = 1003
	ScanDanglingBackslash   Code = 1004

	// Ремонт структуры (один код на правило Healer)
	RepairInfo            Code = 2000
	RepairOrphanContinuer Code = 2001
	RepairIndentClamp     Code = 2002
	RepairDedentClamp     Code = 2003
	RepairTabNormalize    Code = 2004
	RepairContinuerAlign  Code = 2005
	RepairStrayStatement  Code = 2006
	RepairMethodAlign     Code = 2007

	// PEP 8 проход
	FmtInfo        Code = 3000
	FmtLineTooLong Code = 3001

	// Организация импортов
	ImpInfo        Code = 4000
	ImpReordered   Code = 4001
	ImpUnusedFound Code = 4002

	// Рефакторинг
	RefInfo          Code = 5000
	RefBoolReturn    Code = 5001
	RefFString       Code = 5002
	RefUnusedRemoved Code = 5003

	// I/O
	IOLoadFileError Code = 9001
	IOEncodingError Code = 9002
)

var codeDescription = map[Code]string{
	UnknownCode: "Unknown error",

	CfgInfo:          "Configuration information",
	CfgEmptyUnit:     "Canonical indentation unit is empty",
	CfgBadUnit:       "Canonical indentation unit must be whitespace",
	CfgBadLineLength: "Line length limit is out of range",
	CfgBadQuoteStyle: "Quote style must be auto, single or double",
	CfgBadManifest:   "pyproject.toml cannot be parsed",

	ScanInfo:                "Scan information",
	ScanUnbalancedCloser:    "Closing bracket without matching opener",
	ScanUnterminatedBracket: "Bracket is never closed before end of file",
	ScanUnterminatedString:  "Triple-quoted string is never closed",
	ScanDanglingBackslash:   "Line continuation at end of file",

	RepairInfo:            "Repair information",
	RepairOrphanContinuer: "Continuer clause has no compatible open block",
	RepairIndentClamp:     "Indent jump clamped to one unit",
	RepairDedentClamp:     "Dedent past root clamped to depth 0",
	RepairTabNormalize:    "Mixed tabs and spaces normalized",
	RepairContinuerAlign:  "Continuer clause realigned to its opener",
	RepairStrayStatement:  "Stray statement moved into the open block",
	RepairMethodAlign:     "def at class level realigned to method depth",

	FmtInfo:        "Formatting information",
	FmtLineTooLong: "Line exceeds the configured length",

	ImpInfo:        "Import information",
	ImpReordered:   "Import block reordered",
	ImpUnusedFound: "Unused import",

	RefInfo:          "Refactor information",
	RefBoolReturn:    "Boolean return simplified",
	RefFString:       "String formatting converted to f-string",
	RefUnusedRemoved: "Unused import removed",

	IOLoadFileError: "I/O load file error",
	IOEncodingError: "File content cannot be decoded",
}

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 100 && ic < 1000:
		return fmt.Sprintf("CFG%04d", ic)
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("SCN%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("REP%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("FMT%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("IMP%04d", ic)
	case ic >= 5000 && ic < 6000:
		return fmt.Sprintf("REF%04d", ic)
	case ic >= 9000 && ic < 10000:
		return fmt.Sprintf("IO%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[Code(0)]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
