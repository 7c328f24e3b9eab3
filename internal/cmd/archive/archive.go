// Package archive parses archive maintenance flags and runs the subcommands:
// list stored sessions, show one snapshot document, and import a directory
// of snapshot files into the SQLite store.
package archive

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"

	"github.com/louisbranch/highnoon.cards/internal/platform/config"
	"github.com/louisbranch/highnoon.cards/internal/storage"
	"github.com/louisbranch/highnoon.cards/internal/storage/snapfile"
	"github.com/louisbranch/highnoon.cards/internal/storage/sqlite"
)

// Config holds archive command configuration.
type Config struct {
	DBPath      string `env:"HIGHNOON_ARCHIVE_DB" envDefault:"highnoon.db"`
	SnapshotDir string `env:"HIGHNOON_SNAPSHOT_DIR" envDefault:"snapshots"`
	// Backend picks where list and show read from: sqlite or files.
	Backend string `env:"HIGHNOON_ARCHIVE_BACKEND" envDefault:"sqlite"`

	Command string
	Args    []string
}

// ParseConfig parses environment and flags into Config. The first positional
// argument is the subcommand.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := config.ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	fs.StringVar(&cfg.DBPath, "db", cfg.DBPath, "path to the SQLite archive database")
	fs.StringVar(&cfg.SnapshotDir, "dir", cfg.SnapshotDir, "directory holding snapshot files")
	fs.StringVar(&cfg.Backend, "backend", cfg.Backend, "store to read from: sqlite or files")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	rest := fs.Args()
	if len(rest) == 0 {
		return Config{}, fmt.Errorf("a command is required: list, show, import")
	}
	cfg.Command = rest[0]
	cfg.Args = rest[1:]
	return cfg, nil
}

// Run executes the archive subcommand.
func Run(ctx context.Context, cfg Config, out io.Writer) error {
	if out == nil {
		out = io.Discard
	}
	switch cfg.Command {
	case "list":
		return runList(ctx, cfg, out)
	case "show":
		return runShow(ctx, cfg, out)
	case "import":
		return runImport(ctx, cfg, out)
	default:
		return fmt.Errorf("unknown command %q: want list, show, or import", cfg.Command)
	}
}

func runList(ctx context.Context, cfg Config, out io.Writer) error {
	store, closeStore, err := openReadStore(cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	infos, err := store.List(ctx)
	if err != nil {
		return err
	}
	if len(infos) == 0 {
		fmt.Fprintln(out, "no stored sessions")
		return nil
	}
	for _, info := range infos {
		status := "setup"
		if info.StatusGame {
			status = "in progress"
		}
		fmt.Fprintf(out, "%s\t%s\t%s\n", info.Name, status, info.SavedAt.Format("2006-01-02 15:04:05"))
	}
	return nil
}

func runShow(ctx context.Context, cfg Config, out io.Writer) error {
	if len(cfg.Args) != 1 {
		return fmt.Errorf("show needs exactly one session name")
	}
	store, closeStore, err := openReadStore(cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	document, err := store.Load(ctx, cfg.Args[0])
	if err != nil {
		return err
	}
	var pretty json.RawMessage = document
	indented, err := json.MarshalIndent(pretty, "", "  ")
	if err != nil {
		return fmt.Errorf("format snapshot: %w", err)
	}
	fmt.Fprintln(out, string(indented))
	return nil
}

func runImport(ctx context.Context, cfg Config, out io.Writer) error {
	dir := cfg.SnapshotDir
	if len(cfg.Args) == 1 {
		dir = cfg.Args[0]
	} else if len(cfg.Args) > 1 {
		return fmt.Errorf("import takes at most one directory")
	}

	source, err := snapfile.Open(dir)
	if err != nil {
		return err
	}
	dest, err := sqlite.Open(cfg.DBPath)
	if err != nil {
		return err
	}
	defer dest.Close()

	infos, err := source.List(ctx)
	if err != nil {
		return err
	}
	imported := 0
	for _, info := range infos {
		document, err := source.Load(ctx, info.Name)
		if err != nil {
			return fmt.Errorf("read %s: %w", info.Name, err)
		}
		if err := dest.Save(ctx, info.Name, info.StatusGame, document); err != nil {
			return fmt.Errorf("import %s: %w", info.Name, err)
		}
		imported++
	}
	fmt.Fprintf(out, "imported %d sessions into %s\n", imported, cfg.DBPath)
	return nil
}

func openReadStore(cfg Config) (storage.SnapshotStore, func(), error) {
	switch cfg.Backend {
	case "files":
		store, err := snapfile.Open(cfg.SnapshotDir)
		if err != nil {
			return nil, nil, err
		}
		return store, func() {}, nil
	case "sqlite":
		store, err := sqlite.Open(cfg.DBPath)
		if err != nil {
			return nil, nil, err
		}
		return store, func() { _ = store.Close() }, nil
	default:
		return nil, nil, fmt.Errorf("unknown backend %q: want sqlite or files", cfg.Backend)
	}
}
