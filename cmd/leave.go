package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/worksync/worksync/internal/identity"
	"github.com/worksync/worksync/internal/leave"
	"github.com/worksync/worksync/internal/report"
	"github.com/worksync/worksync/pkg/logger"
)

var (
	listAll      bool
	listMine     bool
	draftType    string
	draftStart   string
	draftEnd     string
	draftReason  string
	rejectReason string
	exportPath   string
)

// resolveAdmin picks the listing scope: explicit flags win, otherwise the
// advisory role hint decoded from the stored token.
func (a *app) resolveAdmin() (bool, error) {
	cred, err := a.sessions.Get()
	if err != nil {
		return false, err
	}
	admin := identity.IsAdmin(cred.Token)
	if listAll {
		admin = true
	}
	if listMine {
		admin = false
	}
	return admin, nil
}

const (
	colorReset  = "\033[0m"
	colorGreen  = "\033[32m"
	colorRed    = "\033[31m"
	colorYellow = "\033[33m"
)

func statusBadge(status string) string {
	switch leave.StatusStyle(status) {
	case leave.StatusApproved:
		return colorGreen + status + colorReset
	case leave.StatusRejected:
		return colorRed + status + colorReset
	default:
		return colorYellow + status + colorReset
	}
}

func renderLeaves(leaves []leave.LeaveRequest, admin bool) {
	if len(leaves) == 0 {
		fmt.Println("No leave requests yet.")
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	if admin {
		fmt.Fprintln(w, "ID\tEMPLOYEE\tTYPE\tDURATION\tREASON\tSTATUS")
		for _, l := range leaves {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
				l.ID, l.DisplayName(), l.Type, l.DateRange(), l.Reason, statusBadge(l.Status))
		}
	} else {
		fmt.Fprintln(w, "ID\tTYPE\tDURATION\tREASON\tSTATUS")
		for _, l := range leaves {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
				l.ID, l.Type, l.DateRange(), l.Reason, statusBadge(l.Status))
		}
	}
	w.Flush()
}

var leaveCmd = &cobra.Command{
	Use:   "leave",
	Short: "View and manage leave requests",
}

var leaveListCmd = &cobra.Command{
	Use:   "list",
	Short: "List leave requests",
	Long: `Lists leave requests. Administrators see every employee's requests,
regular users see their own. Use --all or --mine to override the scope the
token suggests; the API still enforces what you may actually see.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp()
		if err != nil {
			return err
		}

		admin, err := app.resolveAdmin()
		if err != nil {
			return err
		}

		ctx := logger.With(cmd.Context(), "command", "leave list", "admin_scope", admin)
		leaves, err := app.leaves.Load(ctx, admin)
		if err != nil {
			return err
		}
		renderLeaves(leaves, admin)
		return nil
	},
}

var leaveCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Submit a new leave request",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp()
		if err != nil {
			return err
		}

		dto := leave.CreateLeaveDTO{
			Type:      draftType,
			StartDate: draftStart,
			EndDate:   draftEnd,
			Reason:    draftReason,
		}

		created, err := app.leaves.Create(cmd.Context(), dto, false)
		if err != nil {
			return err
		}

		fmt.Printf("Leave request %s submitted (%s).\n", created.ID, created.DateRange())
		renderLeaves(app.leaves.Current(), false)
		return nil
	},
}

var leaveApproveCmd = &cobra.Command{
	Use:   "approve <id>",
	Short: "Approve a pending leave request",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp()
		if err != nil {
			return err
		}

		admin, err := app.resolveAdmin()
		if err != nil {
			return err
		}

		if err := app.leaves.SetStatus(cmd.Context(), args[0], leave.StatusApproved, "", admin); err != nil {
			return err
		}
		fmt.Printf("Leave request %s approved.\n", args[0])
		renderLeaves(app.leaves.Current(), admin)
		return nil
	},
}

var leaveRejectCmd = &cobra.Command{
	Use:   "reject <id>",
	Short: "Reject a pending leave request",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp()
		if err != nil {
			return err
		}

		admin, err := app.resolveAdmin()
		if err != nil {
			return err
		}

		if err := app.leaves.SetStatus(cmd.Context(), args[0], leave.StatusRejected, rejectReason, admin); err != nil {
			return err
		}
		fmt.Printf("Leave request %s rejected.\n", args[0])
		renderLeaves(app.leaves.Current(), admin)
		return nil
	},
}

var leaveExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export leave requests to a spreadsheet",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp()
		if err != nil {
			return err
		}

		admin, err := app.resolveAdmin()
		if err != nil {
			return err
		}

		leaves, err := app.leaves.Load(cmd.Context(), admin)
		if err != nil {
			return err
		}

		if err := report.WriteXLSX(exportPath, leaves); err != nil {
			return err
		}
		fmt.Printf("Wrote %d leave requests to %s\n", len(leaves), exportPath)
		return nil
	},
}

func init() {
	leaveListCmd.Flags().BoolVar(&listAll, "all", false, "list every employee's requests")
	leaveListCmd.Flags().BoolVar(&listMine, "mine", false, "list only your own requests")

	leaveCreateCmd.Flags().StringVar(&draftType, "type", "", "leave type (annual, sick, casual)")
	leaveCreateCmd.Flags().StringVar(&draftStart, "start", "", "first day of leave (YYYY-MM-DD)")
	leaveCreateCmd.Flags().StringVar(&draftEnd, "end", "", "last day of leave (YYYY-MM-DD)")
	leaveCreateCmd.Flags().StringVar(&draftReason, "reason", "", "reason for the request")

	leaveRejectCmd.Flags().StringVar(&rejectReason, "reason", "", "reason for rejecting (required)")

	leaveExportCmd.Flags().StringVarP(&exportPath, "out", "o", "leave-report.xlsx", "output file path")
	leaveExportCmd.Flags().BoolVar(&listAll, "all", false, "export every employee's requests")
	leaveExportCmd.Flags().BoolVar(&listMine, "mine", false, "export only your own requests")

	leaveCmd.AddCommand(leaveListCmd)
	leaveCmd.AddCommand(leaveCreateCmd)
	leaveCmd.AddCommand(leaveApproveCmd)
	leaveCmd.AddCommand(leaveRejectCmd)
	leaveCmd.AddCommand(leaveExportCmd)
}
