package main

import (
	"errors"
	"fmt"
	"log"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}
	if err := run(strings.ToLower(strings.TrimSpace(os.Args[1])), os.Args[2:]); err != nil {
		log.Fatal(err)
	}
}

func run(command string, args []string) error {
	dbURL := strings.TrimSpace(os.Getenv("DB_URL"))
	if dbURL == "" {
		return errors.New("DB_URL is required")
	}
	if boolEnv("DB_DISABLE_PREPARED_BINARY_RESULT") {
		dbURL = appendDisablePreparedBinaryResult(dbURL)
	}

	dir, err := migrationsDir()
	if err != nil {
		return err
	}

	migrator, err := migrate.New("file://"+filepath.ToSlash(dir), dbURL)
	if err != nil {
		return fmt.Errorf("create migrator: %w", err)
	}
	defer func() {
		if srcErr, dbErr := migrator.Close(); srcErr != nil || dbErr != nil {
			log.Printf("close migrator: source=%v db=%v", srcErr, dbErr)
		}
	}()

	switch command {
	case "up":
		if err := swallowNoChange(migrator.Up()); err != nil {
			return err
		}
		log.Printf("migrations applied from %s", dir)
		return nil

	case "down":
		steps := 1
		if len(args) > 0 {
			steps, err = strconv.Atoi(strings.TrimSpace(args[0]))
			if err != nil || steps <= 0 {
				return fmt.Errorf("down steps must be a positive integer, got %q", args[0])
			}
		}
		if err := swallowNoChange(migrator.Steps(-steps)); err != nil {
			return err
		}
		log.Printf("rolled back %d migration(s)", steps)
		return nil

	case "version":
		version, dirty, err := migrator.Version()
		if errors.Is(err, migrate.ErrNilVersion) {
			fmt.Println("version: none")
			fmt.Println("dirty: false")
			return nil
		}
		if err != nil {
			return fmt.Errorf("read version: %w", err)
		}
		fmt.Printf("version: %d\n", version)
		fmt.Printf("dirty: %t\n", dirty)
		return nil

	case "force":
		if len(args) == 0 {
			return errors.New("force requires a version argument")
		}
		version, err := strconv.Atoi(strings.TrimSpace(args[0]))
		if err != nil || version < 0 {
			return fmt.Errorf("force version must be a non-negative integer, got %q", args[0])
		}
		if err := migrator.Force(version); err != nil {
			return fmt.Errorf("force version %d: %w", version, err)
		}
		log.Printf("forced version to %d", version)
		return nil

	case "goto", "migrate":
		if len(args) == 0 {
			return errors.New("goto requires a target version argument")
		}
		target, err := strconv.ParseUint(strings.TrimSpace(args[0]), 10, 64)
		if err != nil {
			return fmt.Errorf("goto target must be a version number, got %q", args[0])
		}
		if err := swallowNoChange(migrator.Migrate(uint(target))); err != nil {
			return err
		}
		log.Printf("migrated to version %d", target)
		return nil

	default:
		usage()
		os.Exit(2)
		return nil
	}
}

func swallowNoChange(err error) error {
	if errors.Is(err, migrate.ErrNoChange) {
		log.Print("no migration changes")
		return nil
	}
	return err
}

// migrationsDir prefers the explicit env overrides, then the repo-relative
// directory, then the container image path.
func migrationsDir() (string, error) {
	for _, candidate := range []string{
		os.Getenv("MIGRATIONS_DIR"),
		os.Getenv("MIGRATIONS_PATH"),
		"./db/migrations",
		"/app/db/migrations",
	} {
		candidate = strings.TrimSpace(candidate)
		if candidate == "" {
			continue
		}
		abs, err := filepath.Abs(candidate)
		if err != nil {
			continue
		}
		if info, err := os.Stat(abs); err == nil && info.IsDir() {
			return abs, nil
		}
	}
	return "", errors.New("migration directory not found (checked MIGRATIONS_DIR, MIGRATIONS_PATH, ./db/migrations, /app/db/migrations)")
}

func appendDisablePreparedBinaryResult(raw string) string {
	parsed, err := url.Parse(raw)
	if err != nil || parsed == nil {
		return raw
	}
	query := parsed.Query()
	if query.Get("disable_prepared_binary_result") == "" {
		query.Set("disable_prepared_binary_result", "yes")
		parsed.RawQuery = query.Encode()
	}
	return parsed.String()
}

func boolEnv(key string) bool {
	switch strings.TrimSpace(strings.ToLower(os.Getenv(key))) {
	case "1", "true", "t", "yes", "y", "on":
		return true
	}
	return false
}

func usage() {
	bin := filepath.Base(os.Args[0])
	fmt.Fprintf(os.Stderr, "usage: %s <up|down|version|force|goto> [args]\n", bin)
	fmt.Fprintln(os.Stderr, "examples:")
	fmt.Fprintf(os.Stderr, "  %s up\n", bin)
	fmt.Fprintf(os.Stderr, "  %s down 1\n", bin)
	fmt.Fprintf(os.Stderr, "  %s version\n", bin)
	fmt.Fprintf(os.Stderr, "  %s force 20260801120000\n", bin)
	fmt.Fprintf(os.Stderr, "  %s goto 20260801120200\n", bin)
}
