// Command yatubectl performs administrative tasks against the yatube database and page cache.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/cppla/yatube/config"
	"github.com/cppla/yatube/models"
	"github.com/cppla/yatube/repository"
	"github.com/cppla/yatube/utils"
)

const usage = `usage: yatubectl [-config path] <command> [flags]

commands:
  createuser  -username NAME -password SECRET
  deleteuser  -username NAME
  creategroup -title TITLE -slug SLUG [-description TEXT]
  deletegroup -slug SLUG
  clearcache
`

var (
	// errUsage marks command line mistakes.
	errUsage = errors.New("invalid usage")
	// errCacheNotShared is returned by clearcache when the configured cache lives inside the server process.
	errCacheNotShared = errors.New("page cache is process local; set CACHE_BACKEND=redis to clear it from here, or restart the server")
)

type admin struct {
	store *repository.Store
	cache utils.CacheStore
	out   io.Writer
}

func main() {
	global := flag.NewFlagSet("yatubectl", flag.ExitOnError)
	configPath := global.String("config", "config/config.json", "path to the JSON config file")
	global.Usage = func() { fmt.Fprint(os.Stderr, usage) }
	_ = global.Parse(os.Args[1:])

	cfg, err := config.LoadFrom(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}
	db, err := config.InitDatabase(cfg, models.All()...)
	if err != nil {
		fmt.Fprintf(os.Stderr, "open database: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a := &admin{store: repository.New(db), cache: utils.NewCacheStore(cfg), out: os.Stdout}
	if err := a.run(ctx, global.Args()); err != nil {
		if errors.Is(err, errUsage) {
			fmt.Fprint(os.Stderr, usage)
		}
		fmt.Fprintf(os.Stderr, "yatubectl: %v\n", err)
		os.Exit(2)
	}
}

func (a *admin) run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("%w: missing command", errUsage)
	}
	cmd, rest := args[0], args[1:]
	switch cmd {
	case "createuser":
		return a.createUser(ctx, rest)
	case "deleteuser":
		return a.deleteUser(ctx, rest)
	case "creategroup":
		return a.createGroup(ctx, rest)
	case "deletegroup":
		return a.deleteGroup(ctx, rest)
	case "clearcache":
		return a.clearCache(ctx)
	default:
		return fmt.Errorf("%w: unknown command %q", errUsage, cmd)
	}
}

func (a *admin) clearCache(ctx context.Context) error {
	if !utils.Shared(a.cache) {
		return errCacheNotShared
	}
	if err := a.cache.Clear(ctx); err != nil {
		return fmt.Errorf("clear cache: %w", err)
	}
	fmt.Fprintln(a.out, "page cache cleared")
	return nil
}

func newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	return fs
}

func required(pairs ...string) error {
	for i := 0; i+1 < len(pairs); i += 2 {
		if strings.TrimSpace(pairs[i+1]) == "" {
			return fmt.Errorf("%w: -%s is required", errUsage, pairs[i])
		}
	}
	return nil
}

func (a *admin) createUser(ctx context.Context, args []string) error {
	fs := newFlagSet("createuser")
	username := fs.String("username", "", "login name")
	password := fs.String("password", "", "plain text password")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %v", errUsage, err)
	}
	if err := required("username", *username, "password", *password); err != nil {
		return err
	}
	if len([]rune(*username)) > 150 {
		return fmt.Errorf("%w: username longer than 150 characters", errUsage)
	}

	hash, err := utils.HashPassword(*password)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	user := models.User{Username: *username, PasswordHash: hash}
	if err := a.store.Users.Create(ctx, &user); err != nil {
		return fmt.Errorf("create user %q: %w", *username, err)
	}
	fmt.Fprintf(a.out, "created user %s (id %d)\n", user.Username, user.ID)
	return nil
}

func (a *admin) deleteUser(ctx context.Context, args []string) error {
	fs := newFlagSet("deleteuser")
	username := fs.String("username", "", "login name")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %v", errUsage, err)
	}
	if err := required("username", *username); err != nil {
		return err
	}
	if err := a.store.Users.DeleteByUsername(ctx, *username); err != nil {
		return fmt.Errorf("delete user %q: %w", *username, err)
	}
	fmt.Fprintf(a.out, "deleted user %s\n", *username)
	return nil
}

func (a *admin) createGroup(ctx context.Context, args []string) error {
	fs := newFlagSet("creategroup")
	title := fs.String("title", "", "display title")
	slug := fs.String("slug", "", "unique address part")
	description := fs.String("description", "", "group description")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %v", errUsage, err)
	}
	if err := required("title", *title, "slug", *slug); err != nil {
		return err
	}

	group := models.Group{Title: *title, Slug: *slug, Description: *description}
	if err := a.store.Groups.Create(ctx, &group); err != nil {
		return fmt.Errorf("create group %q: %w", *slug, err)
	}
	fmt.Fprintf(a.out, "created group %s (id %d)\n", group.Slug, group.ID)
	return nil
}

func (a *admin) deleteGroup(ctx context.Context, args []string) error {
	fs := newFlagSet("deletegroup")
	slug := fs.String("slug", "", "unique address part")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %v", errUsage, err)
	}
	if err := required("slug", *slug); err != nil {
		return err
	}
	if err := a.store.Groups.DeleteBySlug(ctx, *slug); err != nil {
		return fmt.Errorf("delete group %q: %w", *slug, err)
	}
	fmt.Fprintf(a.out, "deleted group %s\n", *slug)
	return nil
}
