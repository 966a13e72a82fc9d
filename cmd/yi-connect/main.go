// Command yi-connect is the Yi Connect authorization service binary.
//
// Subcommands:
//
//	serve   — HTTP policy-decision server (default for production)
//	check   — one-shot authorization decision from the command line
//	roles   — dump the effective role→permission grant table as JSON
//	verify  — assert the policy-table invariants and exit
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	// Embeds the IANA timezone database in the binary so that
	// time.LoadLocation works inside distroless containers that have no
	// /usr/share/zoneinfo.
	_ "time/tzdata"

	// Automatically sets GOMEMLIMIT from the cgroup memory limit so that
	// the Go GC triggers before the OOM killer fires in containers.
	_ "github.com/KimMachineGun/automemlimit"

	"github.com/spf13/cobra"

	"github.com/JKKN-Institutions/yi-connect-sub010/internal/api"
	"github.com/JKKN-Institutions/yi-connect-sub010/internal/authz"
	"github.com/JKKN-Institutions/yi-connect-sub010/internal/config"
)

func main() {
	root := &cobra.Command{
		Use:   "yi-connect",
		Short: "Yi Connect — chapter authorization service",
		// Silence default error printing; we print it ourselves with slog.
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	root.AddCommand(
		serveCmd(),
		checkCmd(),
		rolesCmd(),
		verifyCmd(),
	)

	if err := root.Execute(); err != nil {
		slog.Error("command failed", "error", err)
		os.Exit(1)
	}
}

// ── serve ─────────────────────────────────────────────────────────────────────

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP policy-decision server",
		RunE:  runServe,
	}
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if cfg.JWTSecret == "" {
		return errors.New("JWT_SECRET is required for serve")
	}

	logger := newLogger(cfg)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	// NewServer runs authz.Verify; an inconsistent grant table refuses to boot.
	apiSrv, err := api.NewServer(cfg)
	if err != nil {
		return fmt.Errorf("policy tables: %w", err)
	}

	// Explicit timeouts to prevent Slowloris attacks. All responses are small
	// JSON documents, so a write timeout is safe here.
	srv := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           apiSrv.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		slog.Info("server started", "addr", cfg.ListenAddr)
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
		stop() // release signal notification
	}

	slog.Info("shutting down", "timeout_seconds", cfg.ShutdownTimeoutSeconds)
	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.ShutdownTimeoutSeconds)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown: %w", err)
	}
	slog.Info("server stopped")
	return nil
}

// ── check ─────────────────────────────────────────────────────────────────────

func checkCmd() *cobra.Command {
	var roleNames []string
	var permission string

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Decide whether the given roles hold a permission",
		Long: "Exits 0 when allowed and 1 when denied. Unknown role or permission\n" +
			"tokens are an error, not a deny — fix the caller.",
		RunE: func(_ *cobra.Command, _ []string) error {
			perm, err := authz.ParsePermission(permission)
			if err != nil {
				return err
			}
			roles := make([]authz.Role, 0, len(roleNames))
			for _, name := range roleNames {
				role, err := authz.ParseRole(name)
				if err != nil {
					return err
				}
				roles = append(roles, role)
			}

			allowed, matched, err := authz.AnyHasPermission(roles, perm)
			if err != nil {
				return err
			}
			minLevel, err := authz.MinimumLevelFor(perm)
			if err != nil {
				return err
			}

			result := map[string]any{
				"allowed":        allowed,
				"required_level": minLevel.String(),
			}
			if allowed {
				result["matched_role"] = string(matched)
			}
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			if err := enc.Encode(result); err != nil {
				return err
			}
			if !allowed {
				os.Exit(1)
			}
			return nil
		},
	}

	cmd.Flags().StringSliceVar(&roleNames, "roles", nil, "role names held by the actor")
	cmd.Flags().StringVar(&permission, "permission", "", "permission token to check")
	_ = cmd.MarkFlagRequired("roles")
	_ = cmd.MarkFlagRequired("permission")
	return cmd
}

// ── roles ─────────────────────────────────────────────────────────────────────

func rolesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "roles",
		Short: "Dump the effective role→permission grant table as JSON",
		RunE: func(_ *cobra.Command, _ []string) error {
			type roleDump struct {
				Role        string   `json:"role"`
				Level       int      `json:"level"`
				LevelName   string   `json:"level_name"`
				Domain      string   `json:"stakeholder_domain"`
				Permissions []string `json:"permissions"`
			}

			var out []roleDump
			for _, r := range authz.Roles() {
				level, err := authz.LevelOf(r)
				if err != nil {
					return err
				}
				domain, err := authz.StakeholderDomainFor(r)
				if err != nil {
					return err
				}
				grants, err := authz.Grants(r)
				if err != nil {
					return err
				}
				perms := grants.Sorted()
				names := make([]string, len(perms))
				for i, p := range perms {
					names[i] = string(p)
				}
				out = append(out, roleDump{
					Role:        string(r),
					Level:       int(level),
					LevelName:   level.String(),
					Domain:      string(domain),
					Permissions: names,
				})
			}

			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(out)
		},
	}
}

// ── verify ────────────────────────────────────────────────────────────────────

func verifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "verify",
		Short: "Assert policy-table invariants (hierarchy monotonicity, classifier totality)",
		RunE: func(_ *cobra.Command, _ []string) error {
			if err := authz.Verify(); err != nil {
				return fmt.Errorf("policy tables: %w", err)
			}
			slog.Info("policy tables verified",
				"roles", len(authz.Roles()),
				"permissions", len(authz.Permissions()),
				"user_types", len(authz.UserTypes()),
			)
			return nil
		},
	}
}

// ── helpers ───────────────────────────────────────────────────────────────────

func newLogger(cfg *config.Config) *slog.Logger {
	level := slog.LevelInfo
	switch cfg.LogLevel {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	opts := &slog.HandlerOptions{Level: level}
	if cfg.LogFormat == "text" || cfg.IsDevelopment() {
		return slog.New(slog.NewTextHandler(os.Stderr, opts))
	}
	return slog.New(slog.NewJSONHandler(os.Stderr, opts))
}
