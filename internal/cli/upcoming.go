package cli

import (
	"fmt"
	"text/tabwriter"
	"time"

	"go-hrdash/internal/promotionschedule"

	"github.com/fatih/color"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

var urgencyColors = map[promotionschedule.Urgency]*color.Color{
	promotionschedule.UrgencyOverdue:  color.New(color.FgRed, color.Bold),
	promotionschedule.UrgencyThisWeek: color.New(color.FgYellow),
	promotionschedule.UrgencySoon:     color.New(color.FgCyan),
	promotionschedule.UrgencyLater:    color.New(color.FgGreen),
}

// UpcomingCmd returns the upcoming command
func UpcomingCmd(open Opener, now func() time.Time) *cobra.Command {
	var days int

	cmd := &cobra.Command{
		Use:   "upcoming",
		Short: "List open promotion schedules due within the window",
		Long: `List pending and approved promotion schedules whose scheduled date falls
within --days from now, overdue ones included, earliest first.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			backend, err := open()
			if err != nil {
				return err
			}
			defer backend.Close()

			schedules, err := backend.Services.PromotionSchedule.ListUpcoming(cmd.Context(), days)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(schedules) == 0 {
				fmt.Fprintf(out, "No promotions due in the next %d days.\n", days)
				return nil
			}

			current := now()
			w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tEMPLOYEE\tTARGET\tSALARY\tSCHEDULED\tSTATUS\tURGENCY")
			fmt.Fprintln(w, "--\t--------\t------\t------\t---------\t------\t-------")
			for _, s := range schedules {
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\t%s\n",
					s.ID,
					employeeLabel(s),
					s.TargetPosition,
					decimal.NewFromFloat(s.TargetSalary).StringFixed(2),
					dateOnly(s.ScheduledDate),
					s.Status,
					urgencyBadge(s.ScheduledDate, current),
				)
			}
			return w.Flush()
		},
	}

	cmd.Flags().IntVar(&days, "days", promotionschedule.DefaultDaysAhead, "window in days")
	return cmd
}

func employeeLabel(s promotionschedule.PromotionScheduleResponse) string {
	if s.EmployeeName != "" {
		return s.EmployeeName
	}
	return fmt.Sprintf("#%d", s.EmployeeID)
}

func urgencyBadge(scheduledDate string, now time.Time) string {
	scheduled, err := time.Parse(time.RFC3339Nano, scheduledDate)
	if err != nil {
		return "-"
	}
	urgency := promotionschedule.UrgencyOf(scheduled, now)
	days := promotionschedule.DaysUntil(scheduled, now)

	label := fmt.Sprintf("%s (%dd)", urgency.Label(), days)
	if c, ok := urgencyColors[urgency]; ok {
		return c.Sprint(label)
	}
	return label
}

func dateOnly(v string) string {
	if t, err := time.Parse(time.RFC3339Nano, v); err == nil {
		return t.UTC().Format("2006-01-02")
	}
	return v
}
