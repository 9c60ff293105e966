package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"google.golang.org/grpc"

	notifpb "planetpal/api/v1/notification"
	relpb "planetpal/api/v1/relationship"
	taskpb "planetpal/api/v1/tasks"
	userpb "planetpal/api/v1/user"
)

var (
	signupDisplayName string
	signupPlanetName  string
	notifLimit        int
	notifOffset       int
	historyDays       int
)

func registerCommands(root *cobra.Command) {
	signupCmd := &cobra.Command{
		Use:   "signup [email] [password]",
		Short: "Create an account and print its session token",
		Args:  cobra.ExactArgs(2),
		RunE:  runSignup,
	}
	signupCmd.Flags().StringVar(&signupDisplayName, "name", "", "display name")
	signupCmd.Flags().StringVar(&signupPlanetName, "planet", "", "planet name")
	_ = signupCmd.MarkFlagRequired("name")
	_ = signupCmd.MarkFlagRequired("planet")

	notificationsCmd := &cobra.Command{
		Use:   "notifications",
		Short: "List your notifications",
		Args:  cobra.NoArgs,
		RunE:  runNotifications,
	}
	notificationsCmd.Flags().IntVar(&notifLimit, "limit", 20, "page size")
	notificationsCmd.Flags().IntVar(&notifOffset, "offset", 0, "page offset")

	tasksCmd := &cobra.Command{
		Use:   "tasks",
		Short: "Show today's wellness tasks, or recent days with --history",
		Args:  cobra.NoArgs,
		RunE:  runTasks,
	}
	tasksCmd.Flags().IntVar(&historyDays, "history", 0, "show this many recent days instead of today")

	root.AddCommand(
		signupCmd,
		&cobra.Command{Use: "login [email] [password]", Short: "Log in and print a session token", Args: cobra.ExactArgs(2), RunE: runLogin},
		&cobra.Command{Use: "profile", Short: "Show your account", Args: cobra.NoArgs, RunE: runProfile},
		&cobra.Command{Use: "search [query]", Short: "Find accounts by display name prefix", Args: cobra.ExactArgs(1), RunE: runSearch},
		&cobra.Command{Use: "status [account-id]", Short: "Show your relationship with an account", Args: cobra.ExactArgs(1), RunE: runStatus},
		&cobra.Command{Use: "snapshot", Short: "Show friends and pending requests", Args: cobra.NoArgs, RunE: runSnapshot},
		&cobra.Command{Use: "send [account-id]", Short: "Send a friend request", Args: cobra.ExactArgs(1), RunE: runSend},
		&cobra.Command{Use: "accept [request-id]", Short: "Accept a friend request", Args: cobra.ExactArgs(1), RunE: runAccept},
		&cobra.Command{Use: "reject [request-id]", Short: "Reject a friend request", Args: cobra.ExactArgs(1), RunE: runReject},
		&cobra.Command{Use: "cancel [request-id]", Short: "Withdraw a friend request you sent", Args: cobra.ExactArgs(1), RunE: runCancel},
		&cobra.Command{Use: "friends", Short: "List your friends", Args: cobra.NoArgs, RunE: runFriends},
		&cobra.Command{Use: "planet [friend-id]", Short: "Show a friend's planet", Args: cobra.ExactArgs(1), RunE: runPlanet},
		&cobra.Command{Use: "watch", Short: "Stream relationship changes until interrupted", Args: cobra.NoArgs, RunE: runWatch},
		notificationsCmd,
		&cobra.Command{Use: "read [notification-id]", Short: "Mark a notification as read", Args: cobra.ExactArgs(1), RunE: runRead},
		tasksCmd,
		&cobra.Command{
			Use:   "task [water|meals|exercise|sleep] [done|missed|clear]",
			Short: "Answer one of today's wellness tasks",
			Args:  cobra.ExactArgs(2),
			RunE:  runTask,
		},
	)
}

func runSignup(cmd *cobra.Command, args []string) error {
	return withConn(cmd.Context(), false, callTimeout, func(ctx context.Context, conn *grpc.ClientConn) error {
		resp, err := userpb.NewClient(conn).Signup(ctx, &userpb.SignupRequest{
			Email:       args[0],
			Password:    args[1],
			DisplayName: signupDisplayName,
			PlanetName:  signupPlanetName,
		})
		if err != nil {
			return err
		}
		return printAuth(cmd.OutOrStdout(), resp)
	})
}

func runLogin(cmd *cobra.Command, args []string) error {
	return withConn(cmd.Context(), false, callTimeout, func(ctx context.Context, conn *grpc.ClientConn) error {
		resp, err := userpb.NewClient(conn).Login(ctx, &userpb.LoginRequest{Email: args[0], Password: args[1]})
		if err != nil {
			return err
		}
		return printAuth(cmd.OutOrStdout(), resp)
	})
}

func printAuth(w io.Writer, resp *userpb.AuthResponse) error {
	if jsonOutput {
		return printJSON(w, resp)
	}
	fmt.Fprintf(w, "logged in as %s (%s)\n", resp.Profile.DisplayName, resp.Profile.ID)
	fmt.Fprintf(w, "export PLANETPAL_TOKEN=%s\n", resp.Token)
	return nil
}

func runProfile(cmd *cobra.Command, _ []string) error {
	return withConn(cmd.Context(), true, callTimeout, func(ctx context.Context, conn *grpc.ClientConn) error {
		resp, err := userpb.NewClient(conn).Profile(ctx, &userpb.ProfileRequest{})
		if err != nil {
			return err
		}
		return printJSON(cmd.OutOrStdout(), resp)
	})
}

func runSearch(cmd *cobra.Command, args []string) error {
	return withConn(cmd.Context(), true, callTimeout, func(ctx context.Context, conn *grpc.ClientConn) error {
		resp, err := relpb.NewClient(conn).Search(ctx, &relpb.SearchRequest{Query: args[0]})
		if err != nil {
			return err
		}
		if jsonOutput {
			return printJSON(cmd.OutOrStdout(), resp)
		}
		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "ID\tNAME\tPLANET\tFRIENDS")
		for _, a := range resp.Accounts {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%d\n", a.ID, a.DisplayName, a.PlanetName, a.FriendCount)
		}
		return tw.Flush()
	})
}

func runStatus(cmd *cobra.Command, args []string) error {
	return withConn(cmd.Context(), true, callTimeout, func(ctx context.Context, conn *grpc.ClientConn) error {
		resp, err := relpb.NewClient(conn).Status(ctx, &relpb.StatusRequest{OtherID: args[0]})
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), resp.Status)
		return nil
	})
}

func runSnapshot(cmd *cobra.Command, _ []string) error {
	return withConn(cmd.Context(), true, callTimeout, func(ctx context.Context, conn *grpc.ClientConn) error {
		resp, err := relpb.NewClient(conn).Snapshot(ctx, &relpb.SnapshotRequest{})
		if err != nil {
			return err
		}
		return printJSON(cmd.OutOrStdout(), resp)
	})
}

func runSend(cmd *cobra.Command, args []string) error {
	return withConn(cmd.Context(), true, callTimeout, func(ctx context.Context, conn *grpc.ClientConn) error {
		resp, err := relpb.NewClient(conn).SendRequest(ctx, &relpb.SendRequestRequest{ToID: args[0]})
		if err != nil {
			return err
		}
		if jsonOutput {
			return printJSON(cmd.OutOrStdout(), resp)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "request %s sent to %s\n", resp.Request.ID, resp.Request.ToName)
		return nil
	})
}

func runAccept(cmd *cobra.Command, args []string) error {
	return withConn(cmd.Context(), true, callTimeout, func(ctx context.Context, conn *grpc.ClientConn) error {
		resp, err := relpb.NewClient(conn).AcceptRequest(ctx, &relpb.RequestRef{RequestID: args[0]})
		if err != nil {
			return err
		}
		return printJSON(cmd.OutOrStdout(), resp)
	})
}

func runReject(cmd *cobra.Command, args []string) error {
	return withConn(cmd.Context(), true, callTimeout, func(ctx context.Context, conn *grpc.ClientConn) error {
		if _, err := relpb.NewClient(conn).RejectRequest(ctx, &relpb.RequestRef{RequestID: args[0]}); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "rejected", args[0])
		return nil
	})
}

func runCancel(cmd *cobra.Command, args []string) error {
	return withConn(cmd.Context(), true, callTimeout, func(ctx context.Context, conn *grpc.ClientConn) error {
		if _, err := relpb.NewClient(conn).CancelRequest(ctx, &relpb.RequestRef{RequestID: args[0]}); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "cancelled", args[0])
		return nil
	})
}

func runFriends(cmd *cobra.Command, _ []string) error {
	return withConn(cmd.Context(), true, callTimeout, func(ctx context.Context, conn *grpc.ClientConn) error {
		resp, err := relpb.NewClient(conn).ListFriends(ctx, &relpb.ListFriendsRequest{})
		if err != nil {
			return err
		}
		if jsonOutput {
			return printJSON(cmd.OutOrStdout(), resp)
		}
		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "ID\tNAME\tPLANET\tSINCE")
		for _, f := range resp.Friends {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", f.ID, f.DisplayName, f.PlanetName, f.Since.Format("2006-01-02"))
		}
		return tw.Flush()
	})
}

func runPlanet(cmd *cobra.Command, args []string) error {
	return withConn(cmd.Context(), true, callTimeout, func(ctx context.Context, conn *grpc.ClientConn) error {
		resp, err := relpb.NewClient(conn).FriendPlanet(ctx, &relpb.FriendPlanetRequest{FriendID: args[0]})
		if err != nil {
			return err
		}
		return printJSON(cmd.OutOrStdout(), resp)
	})
}

func runWatch(cmd *cobra.Command, _ []string) error {
	return withConn(cmd.Context(), true, 0, func(ctx context.Context, conn *grpc.ClientConn) error {
		stream, err := relpb.NewClient(conn).Watch(ctx, &relpb.WatchRequest{})
		if err != nil {
			return err
		}
		for {
			ev, err := stream.Recv()
			if errors.Is(err, io.EOF) {
				return nil
			}
			if err != nil {
				return err
			}
			if err := printJSON(cmd.OutOrStdout(), ev); err != nil {
				return err
			}
		}
	})
}

func runNotifications(cmd *cobra.Command, _ []string) error {
	return withConn(cmd.Context(), true, callTimeout, func(ctx context.Context, conn *grpc.ClientConn) error {
		resp, err := notifpb.NewClient(conn).List(ctx, &notifpb.ListRequest{Limit: notifLimit, Offset: notifOffset})
		if err != nil {
			return err
		}
		return printJSON(cmd.OutOrStdout(), resp)
	})
}

func runRead(cmd *cobra.Command, args []string) error {
	return withConn(cmd.Context(), true, callTimeout, func(ctx context.Context, conn *grpc.ClientConn) error {
		if _, err := notifpb.NewClient(conn).MarkRead(ctx, &notifpb.MarkReadRequest{ID: args[0]}); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "marked", args[0], "as read")
		return nil
	})
}

func runTasks(cmd *cobra.Command, _ []string) error {
	return withConn(cmd.Context(), true, callTimeout, func(ctx context.Context, conn *grpc.ClientConn) error {
		client := taskpb.NewClient(conn)
		if historyDays > 0 {
			resp, err := client.History(ctx, &taskpb.HistoryRequest{Days: historyDays})
			if err != nil {
				return err
			}
			if jsonOutput {
				return printJSON(cmd.OutOrStdout(), resp)
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "DATE\tWATER\tMEALS\tEXERCISE\tSLEEP\tDONE")
			for _, d := range resp.Days {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%d%%\n", d.Date,
					taskMark(d.Tasks.Water), taskMark(d.Tasks.Meals), taskMark(d.Tasks.Exercise), taskMark(d.Tasks.Sleep),
					d.CompletionPercent)
			}
			return tw.Flush()
		}

		resp, err := client.Today(ctx, &taskpb.TodayRequest{})
		if err != nil {
			return err
		}
		return printDay(cmd.OutOrStdout(), resp)
	})
}

func runTask(cmd *cobra.Command, args []string) error {
	return withConn(cmd.Context(), true, callTimeout, func(ctx context.Context, conn *grpc.ClientConn) error {
		resp, err := taskpb.NewClient(conn).SetTask(ctx, &taskpb.SetTaskRequest{Task: args[0], State: args[1]})
		if err != nil {
			return err
		}
		return printDay(cmd.OutOrStdout(), resp)
	})
}

func printDay(w io.Writer, day *taskpb.DailyTasks) error {
	if jsonOutput {
		return printJSON(w, day)
	}
	fmt.Fprintf(w, "%s  %d%% complete\n", day.Date, day.CompletionPercent)
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "water\t%s\n", taskMark(day.Tasks.Water))
	fmt.Fprintf(tw, "meals\t%s\n", taskMark(day.Tasks.Meals))
	fmt.Fprintf(tw, "exercise\t%s\n", taskMark(day.Tasks.Exercise))
	fmt.Fprintf(tw, "sleep\t%s\n", taskMark(day.Tasks.Sleep))
	return tw.Flush()
}

func taskMark(v *bool) string {
	switch {
	case v == nil:
		return "-"
	case *v:
		return "done"
	default:
		return "missed"
	}
}
