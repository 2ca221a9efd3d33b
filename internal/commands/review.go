package commands

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/vfg2006/budget-pacing-api/internal/domain"
	"github.com/vfg2006/budget-pacing-api/internal/usecases/reviewing"
	"github.com/vfg2006/budget-pacing-api/pkg/utils"
)

const SourceCLI = "cli"

func newRunCommand(load Loader) *cobra.Command {
	var (
		clientID  string
		platform  string
		accountID string
		dryRun    bool
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Revisa um cliente ou, sem --client, todos os clientes ativos",
		RunE: func(cmd *cobra.Command, args []string) error {
			if clientID == "" {
				if platform != "" || accountID != "" {
					return fmt.Errorf("--platform e --account exigem --client")
				}
				if dryRun {
					return fmt.Errorf("--dry-run disponível apenas com --client")
				}
			}

			var parsed domain.Platform
			if platform != "" {
				p, err := domain.ParsePlatform(platform)
				if err != nil {
					return err
				}
				parsed = p
			}
			if accountID != "" && parsed == "" {
				return fmt.Errorf("--account exige --platform")
			}

			return withService(cmd, load, func(service reviewing.ReviewService) error {
				if clientID == "" {
					result, err := service.ReviewAllActive(cmd.Context(), SourceCLI)
					if err != nil {
						return err
					}
					if err := printJSON(cmd, result); err != nil {
						return err
					}
					if len(result.Failed) > 0 {
						return fmt.Errorf("%d de %d revisões falharam", len(result.Failed), result.Total)
					}
					return nil
				}

				outcomes, err := service.ReviewOne(cmd.Context(), domain.ReviewRequest{
					ClientID:  clientID,
					Platform:  parsed,
					AccountID: accountID,
					DryRun:    dryRun,
				})
				if err != nil {
					return err
				}
				if err := printJSON(cmd, outcomes); err != nil {
					return err
				}

				var failed []string
				for _, outcome := range outcomes {
					if !outcome.Success && !outcome.Skipped {
						failed = append(failed, fmt.Sprintf("%s: %s", outcome.Platform, outcome.Error))
					}
				}
				if len(failed) > 0 {
					return fmt.Errorf("revisão falhou (%s)", strings.Join(failed, "; "))
				}
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&clientID, "client", "", "ID do cliente")
	cmd.Flags().StringVar(&platform, "platform", "", "Plataforma (meta ou google)")
	cmd.Flags().StringVar(&accountID, "account", "", "Conta de anúncio específica")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Calcula sem gravar o snapshot")

	return cmd
}

func newLatestCommand(load Loader) *cobra.Command {
	return &cobra.Command{
		Use:   "latest <client-id> <platform>",
		Short: "Mostra o último snapshot do cliente",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			platform, err := domain.ParsePlatform(args[1])
			if err != nil {
				return err
			}

			return withService(cmd, load, func(service reviewing.ReviewService) error {
				snapshot, err := service.Latest(cmd.Context(), args[0], platform)
				if err != nil {
					return err
				}
				if snapshot == nil {
					return fmt.Errorf("nenhuma revisão para %s em %s", args[0], platform)
				}
				return printJSON(cmd, snapshot)
			})
		},
	}
}

func newHistoryCommand(load Loader) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history <client-id> <platform>",
		Short: "Lista os snapshots mais recentes do cliente",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			platform, err := domain.ParsePlatform(args[1])
			if err != nil {
				return err
			}

			return withService(cmd, load, func(service reviewing.ReviewService) error {
				snapshots, err := service.History(cmd.Context(), args[0], platform, limit)
				if err != nil {
					return err
				}
				return printJSON(cmd, snapshots)
			})
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 30, "Quantidade máxima de snapshots")

	return cmd
}

func newBudgetCommand(load Loader) *cobra.Command {
	var (
		accountID string
		date      string
	)

	cmd := &cobra.Command{
		Use:   "budget <client-id> <platform>",
		Short: "Mostra o orçamento mensal vigente, considerando overrides",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			platform, err := domain.ParsePlatform(args[1])
			if err != nil {
				return err
			}

			parsed, err := utils.ParseDate(date, time.UTC)
			if err != nil {
				return fmt.Errorf("data inválida %q, use YYYY-MM-DD", date)
			}

			var day time.Time
			if parsed != nil {
				day = *parsed
			}

			return withService(cmd, load, func(service reviewing.ReviewService) error {
				budget, err := service.ResolveBudget(cmd.Context(), args[0], platform, accountID, day)
				if err != nil {
					return err
				}
				return printJSON(cmd, budget)
			})
		},
	}

	cmd.Flags().StringVar(&accountID, "account", "", "Conta de anúncio específica")
	cmd.Flags().StringVar(&date, "date", "", "Data de referência (YYYY-MM-DD); padrão hoje")

	return cmd
}
