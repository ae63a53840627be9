package store

import (
	"context"
	"fmt"
	"io/fs"
	"path"
	"sort"

	"go.uber.org/zap"

	"github.com/Clark-Hu/rtfilms/db"
)

type script struct {
	name string
	fsys fs.FS
}

func migrationScripts(dialect string) []script {
	return listScripts(db.Migrations, path.Join("migrations", dialect), "*_*.up.sql")
}

func seedScripts() []script {
	return listScripts(db.Seeds, "seeds", "*.sql")
}

func listScripts(fsys fs.FS, dir, pattern string) []script {
	names, err := fs.Glob(fsys, path.Join(dir, pattern))
	if err != nil {
		// only reachable with a malformed pattern
		panic(err)
	}
	sort.Strings(names)
	scripts := make([]script, 0, len(names))
	for _, name := range names {
		scripts = append(scripts, script{name: name, fsys: fsys})
	}
	return scripts
}

func applyScripts(ctx context.Context, scripts []script, exec func(context.Context, string) error, logger *zap.Logger) error {
	if len(scripts) == 0 {
		return fmt.Errorf("no scripts found")
	}
	for _, sc := range scripts {
		payload, err := fs.ReadFile(sc.fsys, sc.name)
		if err != nil {
			return fmt.Errorf("read %s: %w", sc.name, err)
		}
		if err := exec(ctx, string(payload)); err != nil {
			return fmt.Errorf("apply %s: %w", sc.name, err)
		}
		logger.Debug("applied script", zap.String("script", sc.name))
	}
	return nil
}
