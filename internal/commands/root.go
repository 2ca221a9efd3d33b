package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/vfg2006/budget-pacing-api/internal/usecases/reviewing"
	"github.com/vfg2006/budget-pacing-api/pkg/utils"
)

// Loader monta o serviço de revisão sob demanda; close libera conexões
type Loader func(ctx context.Context) (service reviewing.ReviewService, close func() error, err error)

// Migrator aplica o schema do banco configurado
type Migrator func(ctx context.Context) error

// NewRootCommand cria a CLI com todos os subcomandos registrados
func NewRootCommand(load Loader, migrate Migrator) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "budget-review",
		Short: "Revisão de ritmo de gasto das contas de anúncio",
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}

	rootCmd.AddCommand(
		newRunCommand(load),
		newLatestCommand(load),
		newHistoryCommand(load),
		newBudgetCommand(load),
		newMigrateCommand(migrate),
	)

	return rootCmd
}

func newMigrateCommand(migrate Migrator) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Cria as tabelas do pipeline caso ainda não existam",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := migrate(cmd.Context()); err != nil {
				return err
			}
			_, err := fmt.Fprintln(cmd.OutOrStdout(), "Migrações aplicadas")
			return err
		},
	}
}

// withService carrega o serviço, executa fn e sempre fecha as conexões
func withService(cmd *cobra.Command, load Loader, fn func(reviewing.ReviewService) error) error {
	service, closeFn, err := load(cmd.Context())
	if err != nil {
		return err
	}
	defer closeFn()

	return fn(service)
}

func printJSON(cmd *cobra.Command, v any) error {
	out, err := utils.PrettyJSON(v)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), out)
	return err
}
