package driver

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
)

// WalkOptions controls directory traversal.
type WalkOptions struct {
	// Ignore holds glob patterns (filepath.Match syntax) checked against
	// each entry's base name and its path relative to the walk root.
	Ignore []string
	// FollowSymlinks lets the walk descend into symlinked files.
	// Каталоги-симлинки WalkDir не раскрывает в любом случае.
	FollowSymlinks bool
}

// Каталоги систем контроля версий: RANCID держит дампы в CVS, поэтому
// пропуск служебных каталогов обязателен, иначе каждый дамп найдётся дважды.
var skippedDirs = map[string]bool{
	".git": true,
	"CVS":  true,
	".svn": true,
}

// ListDumpFiles returns every candidate dump file under root in sorted
// order. A root that is itself a regular file is returned as the single
// candidate, ignore patterns notwithstanding.
func ListDumpFiles(root string, opts WalkOptions) ([]string, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return []string{root}, nil
	}

	var files []string
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != root && skippedDirs[d.Name()] {
				return filepath.SkipDir
			}
			return nil
		}
		if d.Type()&fs.ModeSymlink != 0 {
			if !opts.FollowSymlinks {
				return nil
			}
			// Симлинк берём только когда он ведёт на обычный файл.
			st, err := os.Stat(path)
			if err != nil || !st.Mode().IsRegular() {
				return nil
			}
		} else if !d.Type().IsRegular() {
			return nil
		}
		if ignored(root, path, d.Name(), opts.Ignore) {
			return nil
		}
		files = append(files, path)
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Детерминированный порядок обхода и вывода.
	sort.Strings(files)
	return files, nil
}

func ignored(root, path, base string, patterns []string) bool {
	rel, relErr := filepath.Rel(root, path)
	for _, pattern := range patterns {
		if ok, err := filepath.Match(pattern, base); err == nil && ok {
			return true
		}
		if relErr == nil {
			if ok, err := filepath.Match(pattern, rel); err == nil && ok {
				return true
			}
		}
	}
	return false
}
