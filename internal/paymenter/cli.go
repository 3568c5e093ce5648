package paymenter

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
)

// Run dispatches a non-interactive subcommand. The interactive menu lives in
// internal/tui and is started by main when no arguments are given.
func Run(args []string) error {
	if len(args) < 1 {
		usage()
		os.Exit(1)
	}

	cmd := args[0]
	cmdArgs := args[1:]

	switch cmd {
	case "install":
		return graceful(cmdInstall(cmdArgs))
	case "update":
		return graceful(cmdAutoUpdate(cmdArgs))
	case "upgrade":
		return graceful(cmdManualUpdate(cmdArgs))
	case "backup":
		return graceful(cmdBackup(cmdArgs))
	case "remove":
		return graceful(cmdRemove(cmdArgs))
	case "doctor":
		return cmdDoctor()
	case "history":
		return cmdHistory(cmdArgs)
	case "help", "--help", "-h":
		usage()
		return nil
	default:
		return fmt.Errorf("unknown command: %s", cmd)
	}
}

// graceful maps an operator-declined run onto a clean exit. Declining a
// confirmation is not a failure; real errors pass through untouched.
func graceful(err error) error {
	if errors.Is(err, ErrUserCancelled) {
		fmt.Println("cancelled, nothing was changed")
		return nil
	}
	return err
}

func usage() {
	fmt.Println(`paymenterctl - install, update, back up and remove Paymenter

Usage:
  paymenterctl                       interactive menu
  paymenterctl install --domain billing.example.com --db-pass <pass>
  paymenterctl install --ip --db-pass <pass>
  paymenterctl update                application self-update (snapshot first)
  paymenterctl upgrade               manual release upgrade (snapshot first)
  paymenterctl backup                snapshot files + database
  paymenterctl remove [--yes] [--no-backup]
  paymenterctl doctor                host pre-flight checks
  paymenterctl history [--limit n]   recent pipeline runs`)
}

func bootstrap() (Config, *Pipelines, *History, error) {
	cfg, err := LoadConfig("")
	if err != nil {
		return cfg, nil, nil, err
	}
	log, err := NewLogger(cfg)
	if err != nil {
		return cfg, nil, nil, err
	}
	store, err := OpenHistory(cfg.HistoryDB)
	if err != nil {
		// History is best-effort; the run proceeds without persistence.
		log.Warnf("history unavailable: %v", err)
		store = nil
	}
	return cfg, NewPipelines(cfg, log, store), store, nil
}

func cmdInstall(args []string) error {
	fs := flag.NewFlagSet("install", flag.ContinueOnError)
	domain := fs.String("domain", "", "server name for the nginx vhost")
	useIP := fs.Bool("ip", false, "install against the host's detected IPv4 address")
	dbName := fs.String("db-name", "paymenter", "database name")
	dbUser := fs.String("db-user", "paymenter", "database user")
	dbPass := fs.String("db-pass", "", "database password (min 8 characters)")
	noAdmin := fs.Bool("no-admin", false, "skip interactive admin account creation")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if err := CheckRoot(); err != nil {
		return err
	}

	params := InstallParams{
		InstallType: InstallDomain,
		ServerName:  *domain,
		DB:          DBCredentials{Name: *dbName, User: *dbUser, Password: *dbPass},
		CreateAdmin: !*noAdmin,
	}
	if *useIP {
		ip, err := DetectIPv4()
		if err != nil {
			return err
		}
		params.InstallType = InstallIP
		params.ServerName = ip
	}
	if err := params.Validate(); err != nil {
		return err
	}

	_, pipelines, store, err := bootstrap()
	if err != nil {
		return err
	}
	defer closeStore(store)

	return pipelines.Install(params).Err()
}

func cmdAutoUpdate(args []string) error {
	if err := CheckRoot(); err != nil {
		return err
	}
	_, pipelines, store, err := bootstrap()
	if err != nil {
		return err
	}
	defer closeStore(store)
	return pipelines.AutoUpdate().Err()
}

func cmdManualUpdate(args []string) error {
	if err := CheckRoot(); err != nil {
		return err
	}
	_, pipelines, store, err := bootstrap()
	if err != nil {
		return err
	}
	defer closeStore(store)
	return pipelines.ManualUpdate().Err()
}

func cmdBackup(args []string) error {
	if err := CheckRoot(); err != nil {
		return err
	}
	_, pipelines, store, err := bootstrap()
	if err != nil {
		return err
	}
	defer closeStore(store)
	return pipelines.Backup().Err()
}

func cmdRemove(args []string) error {
	fs := flag.NewFlagSet("remove", flag.ContinueOnError)
	yes := fs.Bool("yes", false, "skip interactive confirmations")
	noBackup := fs.Bool("no-backup", false, "do not snapshot before removal")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if err := CheckRoot(); err != nil {
		return err
	}

	params := RemoveParams{Confirmed: *yes, TakeBackup: !*noBackup}
	if !*yes {
		params.TakeBackup = promptYesNo("Take a backup before removing?")
		if !promptYesNo("Remove Paymenter, its database and all configuration?") {
			return ErrUserCancelled
		}
		// Second, irreversible-action confirmation.
		params.Confirmed = promptYesNo("This cannot be undone. Really remove?")
	}

	_, pipelines, store, err := bootstrap()
	if err != nil {
		return err
	}
	defer closeStore(store)
	return pipelines.Remove(params).Err()
}

func cmdDoctor() error {
	cfg, err := LoadConfig("")
	if err != nil {
		return err
	}
	fmt.Println("paymenterctl doctor")
	for _, r := range RunChecks(cfg) {
		if r.OK {
			fmt.Printf("[ OK ] %s\n", r.Name)
		} else {
			fmt.Printf("[WARN] %s: %v\n", r.Name, r.Err)
		}
	}
	return nil
}

func cmdHistory(args []string) error {
	fs := flag.NewFlagSet("history", flag.ContinueOnError)
	limit := fs.Int("limit", 20, "number of runs to show")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := LoadConfig("")
	if err != nil {
		return err
	}
	store, err := OpenHistory(cfg.HistoryDB)
	if err != nil {
		return err
	}
	defer store.Close()

	runs, err := store.RecentRuns(*limit)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("no runs recorded")
		return nil
	}
	for _, r := range runs {
		line := fmt.Sprintf("%4d  %-14s %-10s %s", r.ID, r.Operation, r.Outcome,
			r.StartedAt.Format("2006-01-02 15:04:05"))
		if r.FailedStep != "" {
			line += "  at: " + r.FailedStep
		}
		fmt.Println(line)
	}
	return nil
}

func promptYesNo(question string) bool {
	fmt.Printf("%s [y/N]: ", question)
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}

func closeStore(store *History) {
	if store != nil {
		_ = store.Close()
	}
}
