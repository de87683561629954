package system

import (
	"errors"
	"fmt"
	"time"

	"github.com/julianstephens/hard75/internal/cli"
	"github.com/julianstephens/hard75/internal/keyring"
	"github.com/julianstephens/hard75/internal/storage/postgres"
)

type DoctorCmd struct{}

// doctorCheck is one diagnostic. Warnings are reported but do not fail the run;
// checks that need the database are skipped when it is unreachable.
type doctorCheck struct {
	name    string
	needsDB bool
	warning bool
	run     func(ctx *cli.Context) error
}

var doctorChecks = []doctorCheck{
	{name: "Schema version", needsDB: true, run: checkSchemaVersion},
	{name: "Migrations complete", needsDB: true, run: checkMigrationsComplete},
	{name: "Backups present", warning: true, run: checkBackupsPresent},
	{name: "Data validation", needsDB: true, run: checkValidation},
	{name: "Clock/timezone", run: checkClockTimezone},
	{name: "Keyring", warning: true, run: checkKeyring},
}

func (cmd *DoctorCmd) Run(ctx *cli.Context) error {
	fmt.Println("Running diagnostics...")
	fmt.Println()

	hasError := false
	dbReachable := false

	if err := checkDBReachable(ctx); err != nil {
		fmt.Printf("❌ Database reachable: FAIL\n")
		fmt.Printf("   Error: %v\n", err)
		hasError = true
	} else {
		fmt.Printf("✓ Database reachable: OK\n")
		dbReachable = true
	}

	for _, check := range doctorChecks {
		if check.needsDB && !dbReachable {
			fmt.Printf("⊘ %s: SKIPPED (database not reachable)\n", check.name)
			continue
		}
		err := check.run(ctx)
		switch {
		case err == nil:
			fmt.Printf("✓ %s: OK\n", check.name)
		case check.warning:
			fmt.Printf("⚠ %s: WARNING\n", check.name)
			fmt.Printf("   %v\n", err)
		default:
			fmt.Printf("❌ %s: FAIL\n", check.name)
			fmt.Printf("   Error: %v\n", err)
			hasError = true
		}
	}

	fmt.Println()
	if hasError {
		fmt.Println("Diagnostics completed with errors.")
		return errors.New("one or more health checks failed")
	}

	fmt.Println("All diagnostics passed!")
	return nil
}

func checkDBReachable(ctx *cli.Context) error {
	m, ok := ctx.Store.(migrator)
	if !ok {
		return errors.New("storage backend is not a SQL database")
	}
	// Connect skips the schema version check, which is reported separately.
	if err := m.Connect(); err != nil {
		return err
	}
	if _, err := ctx.Store.ListUsers(); err != nil {
		return fmt.Errorf("failed to query database: %w", err)
	}
	return nil
}

func schemaVersions(ctx *cli.Context) (int, int, error) {
	m, ok := ctx.Store.(migrator)
	if !ok {
		return 0, 0, errors.New("storage backend does not report a schema version")
	}
	current, latest, err := m.SchemaVersion()
	if err != nil {
		return 0, 0, fmt.Errorf("failed to read schema version: %w", err)
	}
	return current, latest, nil
}

func checkSchemaVersion(ctx *cli.Context) error {
	current, latest, err := schemaVersions(ctx)
	if err != nil {
		return err
	}
	if current > latest {
		return fmt.Errorf("database schema version (%d) is newer than supported version (%d)", current, latest)
	}
	return nil
}

func checkMigrationsComplete(ctx *cli.Context) error {
	current, latest, err := schemaVersions(ctx)
	if err != nil {
		return err
	}
	if current < latest {
		return fmt.Errorf("migrations incomplete: current version %d, latest version %d (run 'hard75 migrate')", current, latest)
	}
	return nil
}

func checkBackupsPresent(ctx *cli.Context) error {
	if postgres.IsConnString(ctx.Store.GetConfigPath()) || ctx.Backups == nil {
		return errors.New("backups are managed by PostgreSQL, not hard75")
	}
	backups, err := ctx.Backups.ListBackups()
	if err != nil {
		return fmt.Errorf("failed to list backups: %w", err)
	}
	if len(backups) == 0 {
		return errors.New("no backups found - consider creating one with 'hard75 backup create'")
	}
	return nil
}

func checkValidation(ctx *cli.Context) error {
	result, err := ctx.Service.Verify()
	if err != nil {
		return err
	}
	if result.HasConflicts() {
		return errors.New(result.FormatReport())
	}
	return nil
}

func checkClockTimezone(ctx *cli.Context) error {
	now := time.Now()
	if now.Year() < 2020 || now.Year() > 2100 {
		return fmt.Errorf("system time appears incorrect: %s", now.Format(time.RFC3339))
	}
	if ctx.Service != nil && ctx.Service.Location() == nil {
		return errors.New("no timezone configured")
	}
	return nil
}

func checkKeyring(ctx *cli.Context) error {
	if !keyring.IsAvailable() {
		return errors.New("OS keyring is not available; PostgreSQL credentials must come from the environment or .pgpass")
	}
	return nil
}
