package main

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/sigap/sigap/internal/api"
	"github.com/sigap/sigap/internal/config"
	"github.com/sigap/sigap/internal/config/data"
	"github.com/sigap/sigap/internal/dao"
	"github.com/sigap/sigap/internal/view"
)

const (
	appName    = "sigap"
	appVersion = "0.1.0"
)

var (
	sigapFlags *data.Flags

	loginURL    string
	loginServer string
	loginEmail  string

	rootCmd = &cobra.Command{
		Use:   appName,
		Short: "Terminal console for social welfare case management",
		Long:  `sigap is a terminal UI for browsing and managing social welfare case records: families, children, guardians, staff and program data.`,
		RunE:  run,
	}

	loginCmd = &cobra.Command{
		Use:   "login",
		Short: "Authenticate against a backend server",
		RunE:  runLogin,
	}

	logoutCmd = &cobra.Command{
		Use:   "logout",
		Short: "Remove the stored session",
		RunE:  runLogout,
	}

	versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("%s version %s\n", appName, appVersion)
		},
	}
)

func init() {
	sigapFlags = config.NewFlags()
	initSigapFlags()

	loginCmd.Flags().StringVar(&loginURL, "url", "", "Backend server base URL")
	loginCmd.Flags().StringVar(&loginServer, "server", "default", "Server profile name")
	loginCmd.Flags().StringVar(&loginEmail, "email", "", "Login email")

	logoutCmd.Flags().StringVar(&loginServer, "server", "default", "Server profile name")

	rootCmd.AddCommand(loginCmd, logoutCmd, versionCmd)
}

func initSigapFlags() {
	rootCmd.Flags().Float32VarP(sigapFlags.RefreshRate, "refresh", "r", config.DefaultRefreshRate, "Refresh rate in seconds")
	rootCmd.Flags().StringVarP(sigapFlags.LogLevel, "logLevel", "l", config.DefaultLogLevel, "Log level (debug, info, warn, error)")
	rootCmd.Flags().StringVar(sigapFlags.LogFile, "logFile", "", "Log file path")
	rootCmd.Flags().StringVarP(sigapFlags.Command, "command", "c", "", "Startup command/view")
	rootCmd.Flags().BoolVar(sigapFlags.ReadOnly, "readonly", false, "Enable read-only mode")
	rootCmd.Flags().BoolVar(sigapFlags.Write, "write", false, "Enable write mode (overrides readonly)")
	rootCmd.Flags().StringVar(sigapFlags.Server, "server", "", "Server profile to use")
	rootCmd.Flags().IntVar(sigapFlags.PageSize, "pageSize", 0, "Table rows per page")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}

func run(cmd *cobra.Command, args []string) error {
	if err := config.InitLocs(); err != nil {
		return fmt.Errorf("failed to initialize locations: %w", err)
	}
	if err := config.InitLogLoc(); err != nil {
		return fmt.Errorf("failed to initialize log location: %w", err)
	}

	logFile, err := setupLogging()
	if err != nil {
		return err
	}
	defer logFile.Close()

	cfg := config.NewConfig()
	if err := cfg.Load(config.AppConfigFile, false); err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	cfg.Sigap.Override(sigapFlags)
	cfg.Sigap.Validate()
	_ = cfg.Save(false)

	sessions := api.NewSessionStore(config.AppCredentialsFile)
	sessions.SetActive(cfg.Sigap.ActiveServer())

	sess, err := sessions.Current()
	if err != nil {
		return fmt.Errorf("no stored session, run `%s login` first: %w", appName, err)
	}

	timeout, err := cfg.Sigap.GetAPITimeout()
	if err != nil {
		timeout = config.DefaultAPITimeout
	}

	client, err := api.NewClient(&api.ClientConfig{
		Server:  sess.Server,
		BaseURL: sess.BaseURL,
		Timeout: timeout,
	}, sessions)
	if err != nil {
		return fmt.Errorf("failed to create API client: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	if !client.CheckConnectivity(ctx) {
		slog.Warn("Server unreachable at startup", "server", sess.Server, "url", sess.BaseURL)
	}
	cancel()

	factory := dao.NewAPIFactory(client)

	app := view.NewApp(cfg, appVersion)
	app.SetFactory(factory)

	if err := app.Init(); err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}

	return app.Run()
}

func runLogin(cmd *cobra.Command, args []string) error {
	if err := config.InitLocs(); err != nil {
		return fmt.Errorf("failed to initialize locations: %w", err)
	}

	reader := bufio.NewReader(os.Stdin)

	url := loginURL
	if url == "" {
		fmt.Print("Server URL: ")
		line, err := reader.ReadString('\n')
		if err != nil {
			return err
		}
		url = strings.TrimSpace(line)
	}
	if url == "" {
		return fmt.Errorf("server URL is required")
	}

	email := loginEmail
	if email == "" {
		fmt.Print("Email: ")
		line, err := reader.ReadString('\n')
		if err != nil {
			return err
		}
		email = strings.TrimSpace(line)
	}
	if email == "" {
		return fmt.Errorf("email is required")
	}

	fmt.Print("Password: ")
	password, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Println()
	if err != nil {
		return fmt.Errorf("failed to read password: %w", err)
	}

	sessions := api.NewSessionStore(config.AppCredentialsFile)
	client, err := api.NewClient(&api.ClientConfig{
		Server:  loginServer,
		BaseURL: url,
		Timeout: config.DefaultAPITimeout,
	}, sessions)
	if err != nil {
		return fmt.Errorf("failed to create API client: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), config.DefaultAPITimeout)
	defer cancel()

	token, user, err := client.Login(ctx, email, string(password))
	if err != nil {
		return fmt.Errorf("login failed: %w", err)
	}

	if err := sessions.Save(&api.Session{
		Server:    loginServer,
		BaseURL:   url,
		Email:     email,
		BearerTok: token,
		IssuedAt:  time.Now(),
	}); err != nil {
		return fmt.Errorf("failed to store session: %w", err)
	}

	name, _ := user["name"].(string)
	if name == "" {
		name = email
	}
	fmt.Printf("Logged in as %s on %q\n", name, loginServer)
	return nil
}

func runLogout(cmd *cobra.Command, args []string) error {
	if err := config.InitLocs(); err != nil {
		return fmt.Errorf("failed to initialize locations: %w", err)
	}

	sessions := api.NewSessionStore(config.AppCredentialsFile)
	if err := sessions.Delete(loginServer); err != nil {
		return fmt.Errorf("failed to remove session: %w", err)
	}

	fmt.Printf("Session %q removed\n", loginServer)
	return nil
}

// setupLogging routes slog to the log file so the TUI stays clean.
func setupLogging() (*os.File, error) {
	path := config.AppLogFile
	if data.IsStringSet(sigapFlags.LogFile) {
		path = *sigapFlags.LogFile
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0600)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}

	var level slog.Level
	switch strings.ToLower(*sigapFlags.LogLevel) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: level})))
	return f, nil
}
