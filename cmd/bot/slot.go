package main

import (
	"context"
	"fmt"
	"io"

	"github.com/Freeeeeet/reservation_bot/internal/controller/format"
	"github.com/Freeeeeet/reservation_bot/internal/model"
	"github.com/Freeeeeet/reservation_bot/internal/notify"
	"github.com/Freeeeeet/reservation_bot/internal/service"
	"github.com/spf13/cobra"
)

func NewSlotCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "slot",
		Short: "Manage open slots as the approver",
	}
	cmd.AddCommand(newSlotChangeCmd("add", "Open a slot", (*service.ReservationService).AddSlot))
	cmd.AddCommand(newSlotChangeCmd("delete", "Close an open slot", (*service.ReservationService).DeleteSlot))
	cmd.AddCommand(newSlotListCmd())
	return cmd
}

type slotChange func(s *service.ReservationService, ctx context.Context, actorID int64, date, clock string) ([]model.Notification, error)

func newSlotChangeCmd(use, short string, change slotChange) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <YYYY-MM-DD> <HH:MM>",
		Short: short,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := bootstrap(cmd.Context())
			if err != nil {
				return err
			}
			defer rt.Close()

			svc := rt.reservationService()
			notifications, err := change(svc, cmd.Context(), svc.ApproverID(), args[0], args[1])
			printNotifications(cmd.OutOrStdout(), notifications)
			return err
		},
	}
}

func newSlotListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List open slots by date",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := bootstrap(cmd.Context())
			if err != nil {
				return err
			}
			defer rt.Close()

			svc := rt.reservationService()
			dates, err := svc.ListDates(cmd.Context())
			if err != nil {
				return fmt.Errorf("list dates: %w", err)
			}

			out := cmd.OutOrStdout()
			for _, date := range dates {
				times, err := svc.ListTimes(cmd.Context(), date)
				if err != nil {
					return fmt.Errorf("list times for %s: %w", date, err)
				}
				fmt.Fprintf(out, "%s\t%v\n", format.Date(date), times)
			}
			return nil
		},
	}
}

func printNotifications(w io.Writer, notifications []model.Notification) {
	for _, n := range notifications {
		text, _ := notify.Render(n)
		fmt.Fprintln(w, text)
	}
}
