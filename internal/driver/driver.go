// Package driver связывает движок и проходы форматирования в конвейер
// обработки файлов: один файл — один прогон, директория — параллельные
// прогоны без общего изменяемого состояния.
package driver

import (
	"fmt"
	"strings"

	"retab/internal/config"
	"retab/internal/diag"
	"retab/internal/imports"
	"retab/internal/indent"
	"retab/internal/observ"
	"retab/internal/pep8"
	"retab/internal/refactor"
	"retab/internal/source"
)

// Passes selects which pipeline stages run after structural repair.
type Passes struct {
	// Indent is the structural repair and reindent stage; it always runs
	// first because later passes assume consistent indentation.
	Indent bool
	// Format applies the PEP 8 whitespace and wrapping passes.
	Format bool
	// Imports reorders the top import block.
	Imports bool
	// Refactor runs the token-changing rewrites (unused imports, boolean
	// returns, f-strings). Off unless explicitly requested.
	Refactor bool
}

// RefactorOps narrows the refactor stage to specific rewrites. The zero
// value means "all of them".
type RefactorOps struct {
	Unused      bool
	BoolReturns bool
	FStrings    bool
}

func (r RefactorOps) orAll() RefactorOps {
	if !r.Unused && !r.BoolReturns && !r.FStrings {
		return RefactorOps{Unused: true, BoolReturns: true, FStrings: true}
	}
	return r
}

// Options configures one driver invocation. The zero value is not usable;
// start from config.Default().
type Options struct {
	Settings       config.Settings
	Passes         Passes
	Refactors      RefactorOps
	MaxDiagnostics int
	// Jobs limits directory-level parallelism; <=0 means GOMAXPROCS.
	Jobs int
	// Cache, when non-nil, short-circuits files whose content and options
	// were seen before.
	Cache *DiskCache
	// Timings enables per-phase timing reports.
	Timings bool
	// Events, when non-nil, receives progress notifications during
	// directory runs. The caller owns the channel and must drain it.
	Events chan<- Event
}

// FileResult is the outcome of the pipeline over a single file.
type FileResult struct {
	Path   string
	FileID source.FileID
	Status indent.Status
	// Output is the final text after every enabled pass; nil on rejection
	// or load failure.
	Output []byte
	// Changed reports whether Output differs from the input bytes.
	Changed      bool
	Events       []indent.RepairEvent
	RejectLine   int
	RejectReason string
	Bag          *diag.Bag
	Timing       *observ.Report
	// FromCache marks results replayed from the disk cache.
	FromCache bool
}

// ProcessFile runs every enabled pass over one already-loaded file.
func ProcessFile(fileSet *source.FileSet, id source.FileID, opts Options) *FileResult {
	file := fileSet.Get(id)
	bag := diag.NewBag(opts.MaxDiagnostics)
	rep := &diag.BagReporter{Bag: bag}
	timer := observ.NewTimer()

	res := &FileResult{Path: file.Path, FileID: id, Bag: bag}

	if opts.Cache != nil {
		key := cacheKey(file, opts)
		var payload cachePayload
		if ok, err := opts.Cache.Get(key, &payload); err == nil && ok {
			replay(res, &payload)
			res.FromCache = true
			return res
		}
	}

	cfg := indent.Config{Unit: opts.Settings.Unit(), DetectTabs: true}
	ph := timer.Begin("indent")
	ires, err := indent.Run(file, cfg, indent.Options{Reporter: rep})
	if err != nil {
		timer.End(ph, "")
		diag.ReportError(rep, diag.CfgBadUnit, source.Span{File: id}, err.Error())
		res.Status = indent.StatusRejected
		res.RejectReason = err.Error()
		return res
	}
	timer.End(ph, fmt.Sprintf("%d events", len(ires.Events)))

	res.Status = ires.Status
	res.Events = ires.Events
	if ires.Status == indent.StatusRejected {
		res.RejectLine = ires.RejectLine
		res.RejectReason = ires.RejectReason
		finish(res, timer, opts)
		return res
	}

	out := ires.Output
	scratch := source.NewFileSet()

	if opts.Passes.Format {
		ph = timer.Begin("pep8")
		f := scratch.Get(scratch.AddVirtual(file.Path, out))
		out = pep8.Format(f, pep8.Options{
			LineLength:   opts.Settings.LineLength,
			CommentWidth: opts.Settings.CommentWidth,
			Reporter:     rep,
		})
		timer.End(ph, "")
	}
	if opts.Passes.Imports {
		ph = timer.Begin("imports")
		f := scratch.Get(scratch.AddVirtual(file.Path, out))
		out = imports.Organize(f, rep)
		timer.End(ph, "")
	}
	if opts.Passes.Refactor {
		ph = timer.Begin("refactor")
		ops := opts.Refactors.orAll()
		if ops.Unused {
			f := scratch.Get(scratch.AddVirtual(file.Path, out))
			out = refactor.RemoveUnusedImports(f, rep).Output
		}
		if ops.BoolReturns {
			f := scratch.Get(scratch.AddVirtual(file.Path, out))
			out = refactor.SimplifyBoolReturns(f, rep).Output
		}
		if ops.FStrings {
			f := scratch.Get(scratch.AddVirtual(file.Path, out))
			out = refactor.ConvertFStrings(f, rep).Output
		}
		timer.End(ph, "")
	}

	res.Output = out
	res.Changed = string(out) != string(originalBytes(file))
	finish(res, timer, opts)

	if opts.Cache != nil {
		payload := toPayload(res)
		// промах кэша не фатален
		_ = opts.Cache.Put(cacheKey(file, opts), payload)
	}
	return res
}

func finish(res *FileResult, timer *observ.Timer, opts Options) {
	if opts.Timings {
		report := timer.Report()
		res.Timing = &report
	}
}

// originalBytes restores the on-disk representation for change detection:
// the FileSet normalizes CRLF away, the emitter puts it back.
func originalBytes(file *source.File) []byte {
	if file.Flags&source.FileHadCRLF == 0 {
		return file.Content
	}
	return []byte(strings.ReplaceAll(string(file.Content), "\n", "\r\n"))
}
