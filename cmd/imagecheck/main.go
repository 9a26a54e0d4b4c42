// Command imagecheck reports dishes whose stored image does not exist in
// the image bucket and, with -orphans, bucket objects no dish points at.
// It reads the same environment as the server and exits with status 2
// when any image is missing.
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"bukhara/internal/config"
	"bukhara/internal/database"
	"bukhara/internal/menu"
	"bukhara/internal/models"
	"bukhara/internal/rest"
	"bukhara/internal/storage"
	"bukhara/internal/store"
)

// Exit codes.
const (
	exitOK      = 0
	exitFailed  = 1
	exitMissing = 2
)

type dishSource interface {
	Dishes(ctx context.Context) ([]models.Product, error)
}

// objectStore is the part of the storage client the audit needs.
type objectStore interface {
	Bucket() string
	ExtractS3Key(rawURL string) (string, bool)
	Exists(ctx context.Context, key string) (bool, error)
	ListKeys(ctx context.Context, prefix string) ([]string, error)
}

func main() {
	os.Exit(run(os.Args[1:]))
}

// run performs the audit and returns the process exit code. Deferred
// cleanup runs before main exits.
func run(args []string) int {
	fs := flag.NewFlagSet("imagecheck", flag.ContinueOnError)
	timeout := fs.Duration("timeout", 2*time.Minute, "overall time limit")
	orphans := fs.Bool("orphans", false, "also list bucket objects no dish references")
	prefix := fs.String("prefix", "", "object key prefix scanned by -orphans")
	if err := fs.Parse(args); err != nil {
		return exitFailed
	}

	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		slog.Warn("failed to read .env file", "error", err)
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		return exitFailed
	}

	objects, err := storage.New(
		cfg.S3Endpoint, cfg.S3Region, cfg.S3AccessKey, cfg.S3SecretKey,
		cfg.S3Bucket, cfg.S3PublicURL,
	)
	if err != nil {
		slog.Error("failed to initialize S3 storage", "error", err)
		return exitFailed
	}
	if objects == nil {
		slog.Error("S3_ENDPOINT, S3_ACCESS_KEY and S3_SECRET_KEY are required")
		return exitFailed
	}

	var source dishSource
	if cfg.MenuSource == config.SourceREST {
		source = rest.NewClient(cfg.RestURL, cfg.RestKey)
	} else {
		db, err := database.Connect(cfg.DSN())
		if err != nil {
			slog.Error("failed to connect to database", "error", err)
			return exitFailed
		}
		defer db.Close()
		source = store.NewSource(db)
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	dishes, err := source.Dishes(ctx)
	if err != nil {
		slog.Error("failed to list dishes", "error", err)
		return exitFailed
	}

	rep, err := audit(ctx, objects, dishes)
	if err != nil {
		slog.Error("image check failed", "error", err)
		return exitFailed
	}
	for _, m := range rep.missing {
		slog.Warn("image missing", "dish", m.dish, "name", m.name, "key", m.key)
	}
	slog.Info("image check finished",
		"bucket", objects.Bucket(),
		"dishes", len(dishes),
		"checked", rep.checked,
		"missing", len(rep.missing),
	)

	if *orphans {
		unused, err := orphanKeys(ctx, objects, *prefix, rep.referenced)
		if err != nil {
			slog.Error("orphan scan failed", "error", err)
			return exitFailed
		}
		for _, key := range unused {
			slog.Info("object not referenced by any dish", "key", key)
		}
		slog.Info("orphan scan finished", "prefix", *prefix, "orphans", len(unused))
	}

	if len(rep.missing) > 0 {
		return exitMissing
	}
	return exitOK
}

type missingImage struct {
	dish string
	name string
	key  string
}

type report struct {
	checked    int
	missing    []missingImage
	referenced map[string]bool
}

// audit checks every dish image that lives in the bucket.
func audit(ctx context.Context, objects objectStore, dishes []models.Product) (report, error) {
	rep := report{referenced: make(map[string]bool)}
	for i := range dishes {
		d := &dishes[i]
		key, ok := objectKey(objects, menu.ImageRef(d))
		if !ok {
			continue
		}
		rep.referenced[key] = true
		rep.checked++
		exists, err := objects.Exists(ctx, key)
		if err != nil {
			return rep, err
		}
		if !exists {
			rep.missing = append(rep.missing, missingImage{dish: d.Field("id"), name: d.Field("name"), key: key})
		}
	}
	return rep, nil
}

// orphanKeys lists keys under prefix that no dish references, sorted.
func orphanKeys(ctx context.Context, objects objectStore, prefix string, referenced map[string]bool) ([]string, error) {
	keys, err := objects.ListKeys(ctx, prefix)
	if err != nil {
		return nil, err
	}
	var out []string
	for _, key := range keys {
		if !referenced[key] && !strings.HasSuffix(key, "/") {
			out = append(out, key)
		}
	}
	slices.Sort(out)
	return out, nil
}

// objectKey maps an image reference to a bucket key. Bucket URLs and bare
// keys are checked; site-local paths and foreign URLs are not.
func objectKey(objects objectStore, ref string) (string, bool) {
	ref = strings.TrimSpace(ref)
	switch {
	case ref == "":
		return "", false
	case strings.HasPrefix(ref, "http://"), strings.HasPrefix(ref, "https://"):
		return objects.ExtractS3Key(ref)
	case strings.HasPrefix(ref, "/"):
		return "", false
	}
	return ref, true
}
