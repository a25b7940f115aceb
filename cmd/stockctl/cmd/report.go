package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/mamadbah2/stockbot/internal/repository/mongodb"
	reportingsvc "github.com/mamadbah2/stockbot/internal/service/reporting"
)

const historyDateLayout = "2006-01-02"

var historyLimit int64

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Print today's report",
	Long:  `Print the daily report for the current day without archiving or sending it.`,
	Args:  cobra.NoArgs,
	RunE:  runReport,
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List archived daily reports",
	Long:  `List the most recent daily reports archived in MongoDB. Requires MONGODB_URI.`,
	Args:  cobra.NoArgs,
	RunE:  runHistory,
}

func init() {
	historyCmd.Flags().Int64Var(&historyLimit, "limit", 7, "number of reports to list")
}

func runReport(cmd *cobra.Command, args []string) error {
	s, err := openSession(cmd.Context())
	if err != nil {
		return err
	}
	defer s.close()

	svc := reportingsvc.NewService(s.engine, nil, s.cfg.Location(), s.logger.Named("svc.reporting"))
	_, text, err := svc.GenerateDailyReport(cmd.Context(), time.Now())
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), text)
	return nil
}

func runHistory(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if cfg.MongoDB.URI == "" {
		return fmt.Errorf("MONGODB_URI is not set")
	}

	repo, err := mongodb.NewMongoDBRepository(cmd.Context(), cfg.MongoDB.URI, cfg.MongoDB.DBName)
	if err != nil {
		return err
	}
	defer func() { _ = repo.Close(context.Background()) }()

	reports, err := repo.RecentReports(cmd.Context(), historyLimit)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(reports) == 0 {
		fmt.Fprintln(out, "No archived reports.")
		return nil
	}
	fmt.Fprintf(out, "%-10s  %12s  %12s  %12s  %12s\n", "date", "profit", "total", "cash", "stock")
	for _, r := range reports {
		fmt.Fprintf(out, "%-10s  %12.2f  %12.2f  %12.2f  %12.2f\n",
			r.Date.Format(historyDateLayout), r.ProfitToday, r.TotalProfit, r.Cash, r.StockValue)
	}
	return nil
}
