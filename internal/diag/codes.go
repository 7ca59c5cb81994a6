package diag

import (
	"fmt"
)

type Code uint16

const (
	// Неизвестная ошибка - на первое время
	UnknownCode Code = 0

	// Ошибки I/O
	IOInfo          Code = 1000
	IOLoadFileError Code = 1001

	// Детекция диалекта (первая строка дампа)
	DetInfo             Code = 2000
	DetNoMarker         Code = 2001
	DetUnknownDialect   Code = 2002
	DetUnsupportedModel Code = 2003
	DetEmptyInput       Code = 2004

	// Построчный разбор
	ParseInfo            Code = 3000
	ParseUnparsableLine  Code = 3001
	ParseUnbalancedClose Code = 3002
	ParseUnclosedScope   Code = 3003
	ParseOrphanIndent    Code = 3004
	ParseInlineCluster   Code = 3005

	// Дисковый кеш деревьев (не фатально: дерево можно пересчитать)
	CacheInfo       Code = 4000
	CacheReadError  Code = 4001
	CacheWriteError Code = 4002

	// Observability
	ObsInfo    Code = 6000
	ObsTimings Code = 6001
)

var (
	codeDescription = map[Code]string{
		UnknownCode:          "Unknown error",
		IOInfo:               "I/O information",
		IOLoadFileError:      "I/O load file error",
		DetInfo:              "Dialect detection information",
		DetNoMarker:          "No dialect marker on the first line",
		DetUnknownDialect:    "Marker names a dialect missing from the registry",
		DetUnsupportedModel:  "Dialect excluded by the allow-list",
		DetEmptyInput:        "Dump contains no lines",
		ParseInfo:            "Parse information",
		ParseUnparsableLine:  "Line matches no rule of the dialect grammar",
		ParseUnbalancedClose: "Close marker with no open scope",
		ParseUnclosedScope:   "Scope still open at end of dump",
		ParseOrphanIndent:    "Indented line with no open section",
		ParseInlineCluster:   "Inline {...} cluster skipped",
		CacheInfo:            "Cache information",
		CacheReadError:       "Failed to read cached tree",
		CacheWriteError:      "Failed to write cached tree",
		ObsInfo:              "Observability information",
		ObsTimings:           "Pipeline timings",
	}
)

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("IO%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("DET%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("PRS%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("CCH%04d", ic)
	case ic >= 6000 && ic < 7000:
		return fmt.Sprintf("OBS%04d", ic)
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
