// Package cli консольный клиент галереи: просмотр ссылок, переходы и курирование через gRPC
package cli

import (
	"io"
	"net/http"
	"os"
	"time"

	"github.com/cli/browser"
	"github.com/spf13/cobra"
)

// Переменные окружения со значениями флагов по умолчанию
const (
	EnvServer = "BODACIOUS_URL"
	EnvGRPC   = "BODACIOUS_GRPC"
	EnvToken  = "BODACIOUS_TOKEN"
)

// Options зависимости команд, подменяются в тестах
type Options struct {
	Server string
	GRPC   string
	Token  string
	Out    io.Writer
	HTTP   *http.Client
	Open   func(url string) error
}

// NewRootCmd корневая команда bodactl
func NewRootCmd() *cobra.Command {
	return newRootCmd(&Options{
		Out:  os.Stdout,
		HTTP: &http.Client{Timeout: 20 * time.Second},
		Open: browser.OpenURL,
	})
}

func newRootCmd(o *Options) *cobra.Command {
	root := &cobra.Command{
		Use:   "bodactl",
		Short: "Browse the bodacious gallery from the command line",
		Long: `bodactl lists the gallery links, opens them in the browser and records the click.

The admin subcommands talk to the gRPC API and need a token from "bodactl admin login".`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(o.Out)
	root.PersistentFlags().StringVarP(&o.Server, "server", "s", envOr(EnvServer, "http://localhost:8080"), "gallery base URL")

	root.AddCommand(
		newListCmd(o),
		newOpenCmd(o),
		newSheetCmd(o),
		newAdminCmd(o),
	)
	return root
}

func envOr(key string, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
