package commands

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/forkline-dev/forkline/internal/cli/userconfig"
	"github.com/forkline-dev/forkline/internal/client/api"
	"github.com/forkline-dev/forkline/internal/client/gateway"
	"github.com/forkline-dev/forkline/internal/client/session"
)

// defaultHost is used when neither FORKLINE_HOST nor the user config names
// a backend.
const defaultHost = "forkline-app.onrender.com"

// newAPIClient builds the SDK client shared by all commands: session store,
// gateway bound to the resolved base address, and a bounded HTTP client.
func newAPIClient() (*api.Client, error) {
	store, err := newSessionStore()
	if err != nil {
		return nil, err
	}

	gw := gateway.New(resolveBase(), store, cliLogger())
	// The gateway itself carries no timeout; the CLI wants one
	gw.SetHTTPClient(&http.Client{Timeout: 30 * time.Second})

	return api.New(gw, store), nil
}

// newSessionStore wires the session store with its persistent backend and
// the logout navigation hook.
func newSessionStore() (*session.Store, error) {
	backend, err := newSessionBackend()
	if err != nil {
		return nil, err
	}

	return session.NewStore(backend, session.WithNavigator(func() {
		fmt.Println("Logged out. Run 'forkline login' to sign in again.")
	})), nil
}

func newSessionBackend() (session.Backend, error) {
	if os.Getenv("FORKLINE_SESSION_BACKEND") == "file" {
		return session.NewFileBackend()
	}

	backend, err := session.NewKeyringBackend()
	if err != nil {
		// Headless machines have no keyring; the file backend still works
		return session.NewFileBackend()
	}
	return backend, nil
}

// resolveBase determines the API base address once per invocation:
// explicit FORKLINE_API_BASE, else the host from FORKLINE_HOST or the user
// config mapped through gateway.ResolveBase.
func resolveBase() string {
	if base := os.Getenv("FORKLINE_API_BASE"); base != "" {
		return base
	}

	host := os.Getenv("FORKLINE_HOST")
	if host == "" {
		host, _ = userconfig.GetSelectedHost()
	}
	if host == "" {
		host = defaultHost
	}

	return gateway.ResolveBase(host)
}

func cliLogger() zerolog.Logger {
	level := zerolog.WarnLevel
	if os.Getenv("FORKLINE_DEBUG") != "" {
		level = zerolog.DebugLevel
	}
	output := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	return zerolog.New(output).Level(level).With().Timestamp().Logger()
}

// requireAuth fails fast with a friendly message instead of letting the
// backend answer 401.
func requireAuth(client *api.Client) error {
	if !client.Session().IsAuthenticated() {
		return fmt.Errorf("not authenticated. Please run 'forkline login' first")
	}
	return nil
}
