// Command tally-cli is the local-first client. The ledger lives in the
// local SQLite store; when a remote is configured, writes are mirrored
// to it on a best-effort basis and never block the local result.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"tally/internal/cli"
	"tally/internal/core"
	"tally/internal/idgen"
	"tally/internal/ledger"
	"tally/internal/mirror"
	"tally/internal/services"
	"tally/internal/session"
)

func main() {
	cli.LoadEnvFile()
	logger := cli.SetupLogger()
	cfg := cli.LoadAndValidateConfig(logger)

	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	kv := cli.InitStorage(logger, cfg.SQLiteDBPath)
	defer kv.Close()

	ctx := context.Background()
	sessions := session.NewHolder(ctx, kv)

	var remote *mirror.RemoteClient
	var rec mirror.Recorder
	if cfg.MirrorBaseURL != "" {
		remote = mirror.NewRemoteClient(cfg.MirrorBaseURL, cfg.MirrorTimeout)
		rec = mirror.NewHTTPMirror(remote, mirror.LogFailures)
	}

	app := &app{
		ctx:      ctx,
		sessions: sessions,
		remote:   remote,
		ledger:   services.NewLedgerService(ledger.NewStore(kv), rec, idgen.UUID{}),
	}

	if err := app.run(os.Args[1], os.Args[2:]); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

type app struct {
	ctx      context.Context
	sessions *session.Holder
	remote   *mirror.RemoteClient
	ledger   *services.LedgerService
}

func (a *app) run(cmd string, args []string) error {
	switch cmd {
	case "register":
		return a.register(args)
	case "login":
		return a.login(args)
	case "logout":
		return a.logout()
	case "whoami":
		return a.whoami()
	case "add":
		return a.add(args)
	case "rm":
		return a.remove(args)
	case "list":
		return a.list(args)
	case "summary":
		return a.summary(args)
	case "categories":
		return a.categories(args)
	case "trend":
		return a.trend(args)
	default:
		usage()
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `usage: tally-cli <command> [flags]

commands:
  register   create an account (remote, or -local for an offline profile)
  login      authenticate against the remote and start a session
  logout     clear the current session
  whoami     show the current session
  add        record a transaction in the local ledger
  rm         delete a transaction by id
  list       list transactions, newest first
  summary    show income, expense and balance totals
  categories show the top expense categories
  trend      show monthly income/expense flows`)
}

func (a *app) register(args []string) error {
	fs := flag.NewFlagSet("register", flag.ExitOnError)
	name := fs.String("name", "", "display name")
	email := fs.String("email", "", "email address")
	password := fs.String("password", "", "password")
	local := fs.Bool("local", false, "create an offline profile without a remote account")
	_ = fs.Parse(args)

	if *local {
		// Offline profiles have no password, so only the name and email
		// rules apply.
		if err := core.ValidateRegistration(*name, *email, "offline-only"); err != nil {
			return err
		}
		u := core.User{ID: idgen.UUID{}.Next(), Name: *name, Email: *email}
		if err := a.sessions.Set(a.ctx, u); err != nil {
			return err
		}
		fmt.Printf("registered offline profile %s (%s)\n", u.Name, u.ID)
		return nil
	}

	if a.remote == nil {
		return fmt.Errorf("no remote configured: set MIRROR_BASE_URL or use -local")
	}
	u, err := a.remote.Register(a.ctx, *name, *email, *password)
	if err != nil {
		return err
	}
	if err := a.sessions.Set(a.ctx, u); err != nil {
		return err
	}
	fmt.Printf("registered %s (%s)\n", u.Name, u.ID)
	return nil
}

func (a *app) login(args []string) error {
	fs := flag.NewFlagSet("login", flag.ExitOnError)
	email := fs.String("email", "", "email address")
	password := fs.String("password", "", "password")
	_ = fs.Parse(args)

	if a.remote == nil {
		return fmt.Errorf("no remote configured: set MIRROR_BASE_URL")
	}
	u, err := a.remote.Login(a.ctx, *email, *password)
	if err != nil {
		return err
	}
	if err := a.sessions.Set(a.ctx, u); err != nil {
		return err
	}
	fmt.Printf("logged in as %s (%s)\n", u.Name, u.ID)
	return nil
}

func (a *app) logout() error {
	if err := a.sessions.Clear(a.ctx); err != nil {
		return err
	}
	fmt.Println("logged out")
	return nil
}

func (a *app) whoami() error {
	u, ok := a.sessions.Current()
	if !ok {
		fmt.Println("not logged in")
		return nil
	}
	fmt.Printf("%s <%s> (%s)\n", u.Name, u.Email, u.ID)
	return nil
}

func (a *app) currentUser() (core.User, error) {
	u, ok := a.sessions.Current()
	if !ok {
		return core.User{}, fmt.Errorf("not logged in")
	}
	return u, nil
}

func (a *app) add(args []string) error {
	fs := flag.NewFlagSet("add", flag.ExitOnError)
	kind := fs.String("type", "expense", "income or expense")
	amount := fs.String("amount", "", "amount, e.g. 12.50")
	description := fs.String("description", "", "free-text description")
	category := fs.String("category", "Other", "category")
	date := fs.String("date", "", "date as YYYY-MM-DD, defaults to today")
	_ = fs.Parse(args)

	u, err := a.currentUser()
	if err != nil {
		return err
	}
	txDate := core.Date(*date)
	if *date == "" {
		txDate = core.NewDate(time.Now())
	}
	cents, err := core.ParseDecimalToCents(*amount)
	if err != nil {
		return fmt.Errorf("invalid amount %q: %w", *amount, err)
	}

	tx := core.Transaction{
		UserID:      u.ID,
		Kind:        core.Kind(*kind),
		Amount:      core.Money{Cents: cents},
		Description: *description,
		Category:    *category,
		Date:        txDate,
	}
	created, err := a.ledger.Create(a.ctx, tx)
	if err != nil {
		return err
	}
	fmt.Printf("added %s %s %s on %s (%s)\n", created.Kind, created.Amount, created.Category, created.Date, created.ID)
	return nil
}

func (a *app) remove(args []string) error {
	fs := flag.NewFlagSet("rm", flag.ExitOnError)
	_ = fs.Parse(args)
	if fs.NArg() != 1 {
		return fmt.Errorf("usage: tally-cli rm <transaction-id>")
	}

	u, err := a.currentUser()
	if err != nil {
		return err
	}
	if err := a.ledger.Delete(a.ctx, u.ID, fs.Arg(0)); err != nil {
		return err
	}
	fmt.Println("deleted", fs.Arg(0))
	return nil
}

// parseFilterFlags registers the shared filter flags on fs and returns a
// closure building the filter after parsing.
func parseFilterFlags(fs *flag.FlagSet) func() (core.Filter, error) {
	kind := fs.String("type", "", "filter by type (income or expense)")
	category := fs.String("category", "", "filter by category")
	from := fs.String("from", "", "inclusive start date YYYY-MM-DD")
	to := fs.String("to", "", "inclusive end date YYYY-MM-DD")

	return func() (core.Filter, error) {
		var f core.Filter
		if *kind != "" {
			k := core.Kind(*kind)
			if !k.Valid() {
				return f, fmt.Errorf("invalid type %q", *kind)
			}
			f.Kind = k
		}
		f.Category = *category
		if *from != "" {
			d := core.Date(*from)
			if err := d.Validate(); err != nil {
				return f, fmt.Errorf("invalid from date %q", *from)
			}
			f.From = d
		}
		if *to != "" {
			d := core.Date(*to)
			if err := d.Validate(); err != nil {
				return f, fmt.Errorf("invalid to date %q", *to)
			}
			f.To = d
		}
		return f, nil
	}
}

func (a *app) filteredTransactions(name string, args []string) ([]core.Transaction, error) {
	fs := flag.NewFlagSet(name, flag.ExitOnError)
	buildFilter := parseFilterFlags(fs)
	_ = fs.Parse(args)

	u, err := a.currentUser()
	if err != nil {
		return nil, err
	}
	filter, err := buildFilter()
	if err != nil {
		return nil, err
	}
	return filter.Apply(a.ledger.List(a.ctx, u.ID)), nil
}

func (a *app) list(args []string) error {
	txs, err := a.filteredTransactions("list", args)
	if err != nil {
		return err
	}
	if len(txs) == 0 {
		fmt.Println("no transactions")
		return nil
	}
	for _, t := range txs {
		desc := t.Description
		if desc != "" {
			desc = "  " + desc
		}
		fmt.Printf("%s  %s  %-7s %10s  %s%s\n", t.ID, t.Date, t.Kind, t.Amount, t.Category, desc)
	}
	return nil
}

func (a *app) summary(args []string) error {
	txs, err := a.filteredTransactions("summary", args)
	if err != nil {
		return err
	}
	s := core.Summarize(txs)
	fmt.Printf("income:   %s\nexpenses: %s\nbalance:  %s\n", s.Income, s.Expenses, s.Balance)
	return nil
}

func (a *app) categories(args []string) error {
	txs, err := a.filteredTransactions("categories", args)
	if err != nil {
		return err
	}
	breakdown := core.CategoryBreakdown(txs, core.DefaultTopCategories)
	if len(breakdown) == 0 {
		fmt.Println("no expenses")
		return nil
	}
	for _, c := range breakdown {
		fmt.Printf("%-15s %10s\n", c.Category, c.Total)
	}
	return nil
}

func (a *app) trend(args []string) error {
	txs, err := a.filteredTransactions("trend", args)
	if err != nil {
		return err
	}
	flows := core.MonthlyTrend(txs)
	if len(flows) == 0 {
		fmt.Println("no transactions")
		return nil
	}
	for _, f := range flows {
		fmt.Printf("%s  income %10s  expenses %10s\n", f.Month, f.Income, f.Expenses)
	}
	return nil
}
