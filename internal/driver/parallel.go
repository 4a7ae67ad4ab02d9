package driver

import (
	"context"
	"io/fs"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"retab/internal/diag"
	"retab/internal/indent"
	"retab/internal/source"
)

// ListPyFiles возвращает отсортированный список всех *.py файлов в директории.
func ListPyFiles(dir string) ([]string, error) {
	var files []string

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			// скрытые каталоги и виртуальные окружения не обходим
			name := d.Name()
			if path != dir && (strings.HasPrefix(name, ".") || name == "__pycache__" || name == "venv") {
				return filepath.SkipDir
			}
			return nil
		}
		if strings.HasSuffix(path, ".py") {
			files = append(files, path)
		}
		return nil
	})

	if err != nil {
		return nil, err
	}

	// Сортируем для детерминированного порядка
	sort.Strings(files)
	return files, nil
}

// ProcessDir прогоняет конвейер по всем *.py файлам директории параллельно.
// Результаты возвращаются в порядке отсортированных путей.
func ProcessDir(ctx context.Context, dir string, opts Options) (*source.FileSet, []*FileResult, error) {
	files, err := ListPyFiles(dir)
	if err != nil {
		return nil, nil, err
	}
	if len(files) == 0 {
		return source.NewFileSetWithBase(dir), nil, nil
	}

	// Загружаем все файлы заранее: FileSet не потокобезопасен на запись.
	fileSet := source.NewFileSetWithBase(dir)
	fileIDs := make(map[string]source.FileID, len(files))
	loadErrors := make(map[string]error, len(files))

	for _, path := range files {
		fileID, err := fileSet.Load(path)
		if err != nil {
			loadErrors[path] = err
			continue
		}
		fileIDs[path] = fileID
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	// Индексы уникальны для каждой горутины, мьютекс не нужен.
	results := make([]*FileResult, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(files)))

	for i, path := range files {
		i, path := i, path
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}

			if loadErr, hadError := loadErrors[path]; hadError {
				bag := diag.NewBag(opts.MaxDiagnostics)
				bag.Add(diag.Diagnostic{
					Severity: diag.SevError,
					Code:     diag.IOLoadFileError,
					Message:  "failed to load file: " + loadErr.Error(),
					Primary:  source.Span{},
				})
				results[i] = &FileResult{Path: path, Bag: bag}
				emit(opts.Events, path, StageLoad, StatusError)
				return nil
			}

			emit(opts.Events, path, StageIndent, StatusWorking)
			res := ProcessFile(fileSet, fileIDs[path], opts)
			results[i] = res
			if res.Status == indent.StatusRejected || res.Bag.HasErrors() {
				emit(opts.Events, path, StageIndent, StatusError)
			} else {
				emit(opts.Events, path, StageRefactor, StatusDone)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return fileSet, results, err
	}
	return fileSet, results, nil
}
