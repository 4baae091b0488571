package migration

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

const (
	upSuffix   = ".up.sql"
	downSuffix = ".down.sql"
)

// Load, dizindeki "<ad>.up.sql" ve "<ad>.down.sql" dosyalarını ada göre
// sıralı Migration listesine çevirir. Down dosyası opsiyoneldir, up dosyası
// olmayan down dosyası hatadır.
//
// Örnek dizin:
//
//	migrations/
//	    001_create_users.up.sql
//	    001_create_users.down.sql
//	    002_add_orders.up.sql
func Load(dir string) ([]Migration, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read migrations directory: %w", err)
	}

	byName := make(map[string]*Migration)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		file := entry.Name()
		var name string
		var up bool
		switch {
		case strings.HasSuffix(file, upSuffix):
			name, up = strings.TrimSuffix(file, upSuffix), true
		case strings.HasSuffix(file, downSuffix):
			name = strings.TrimSuffix(file, downSuffix)
		default:
			continue
		}

		content, err := os.ReadFile(filepath.Join(dir, file))
		if err != nil {
			return nil, fmt.Errorf("failed to read migration %s: %w", file, err)
		}

		mig, ok := byName[name]
		if !ok {
			mig = &Migration{Name: name}
			byName[name] = mig
		}
		if up {
			mig.Up = string(content)
		} else {
			mig.Down = string(content)
		}
	}

	names := make([]string, 0, len(byName))
	for name, mig := range byName {
		if strings.TrimSpace(mig.Up) == "" {
			return nil, fmt.Errorf("migration %s has no %s file", name, upSuffix)
		}
		names = append(names, name)
	}
	sort.Strings(names)

	migrations := make([]Migration, len(names))
	for i, name := range names {
		migrations[i] = *byName[name]
	}
	return migrations, nil
}
