package cli

import (
	"campus-chat/auth"
	"campus-chat/domain/chat"
	"campus-chat/repositories"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

func NewQueueCommand(opts *RootOptions) *cobra.Command {
	var status string
	cmd := &cobra.Command{
		Use:   "queue",
		Short: "List delivery queue entries",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			db, err := opts.openReadOnly()
			if err != nil {
				return err
			}
			defer func() { _ = db.Close() }()

			entries, err := repositories.NewQueueRepository(db).ListEntries(chat.QueueStatus(strings.ToUpper(status)))
			if err != nil {
				return err
			}
			table := newTable(cmd.OutOrStdout(), "Message", "Room", "Status", "Retries", "Next retry", "Last error")
			for _, e := range entries {
				table.Append([]string{
					e.MessageID.String(),
					string(e.Room),
					opts.status(string(e.Status)),
					fmt.Sprintf("%d/%d", e.RetryCount, e.MaxRetries),
					stamp(e.NextRetryAt),
					e.LastError,
				})
			}
			table.Render()
			return nil
		},
	}
	cmd.Flags().StringVar(&status, "status", "", "only entries in this status (PENDING, RETRY, DELIVERED, FAILED)")
	return cmd
}

func NewMessagesCommand(opts *RootOptions) *cobra.Command {
	var limit, skip int
	cmd := &cobra.Command{
		Use:   "messages <room>",
		Short: "Print the ordered history of a room",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := opts.openReadOnly()
			if err != nil {
				return err
			}
			defer func() { _ = db.Close() }()

			log := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: slog.LevelWarn}))
			messages, err := repositories.NewMessageRepository(db, log).GetMessages(chat.RoomID(args[0]), limit, skip)
			if err != nil {
				return err
			}
			table := newTable(cmd.OutOrStdout(), "Lamport", "Sender", "Status", "Type", "Content", "Created")
			for _, m := range messages {
				table.Append([]string{
					strconv.FormatInt(m.LogicalTimestamp, 10),
					m.SenderID,
					opts.status(string(m.Status)),
					string(m.Type),
					lo.Ellipsis(m.Content, 60),
					stamp(m.CreatedAt),
				})
			}
			table.Render()
			return nil
		},
	}
	cmd.Flags().IntVar(&limit, "limit", chat.DefaultHistoryLimit, "maximum number of messages")
	cmd.Flags().IntVar(&skip, "skip", 0, "number of messages to skip")
	return cmd
}

func NewSeedCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Create directory records for local runs",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "room <id> <name>",
		Short: "Create a room",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := opts.openReadWrite()
			if err != nil {
				return err
			}
			defer func() { _ = db.Close() }()

			room := chat.Room{ID: chat.RoomID(args[0]), Name: args[1], CreatedAt: time.Now().UTC()}
			if err := repositories.NewRoomRepository(db).CreateRoom(room); err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "room %s created\n", room.ID)
			return err
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "user <id> <name>",
		Short: "Create or rename a user",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := opts.openReadWrite()
			if err != nil {
				return err
			}
			defer func() { _ = db.Close() }()

			if err := repositories.NewUserRepository(db).SaveUser(chat.User{ID: args[0], Name: args[1]}); err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "user %s saved\n", args[0])
			return err
		},
	})
	return cmd
}

func NewTokenCommand(opts *RootOptions) *cobra.Command {
	var secret string
	var duration time.Duration
	cmd := &cobra.Command{
		Use:   "token <user>",
		Short: "Mint a session token",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if secret == "" {
				return fmt.Errorf("a secret is required: set CHATCTL_JWT_SECRET or --secret")
			}
			token, err := auth.NewTokenIssuer(secret, duration).Generate(args[0])
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), token)
			return err
		},
	}
	cmd.Flags().StringVar(&secret, "secret", opts.config.JWTSecret, "signing secret, same as the server JWT_SECRET")
	cmd.Flags().DurationVar(&duration, "duration", opts.config.TokenDuration, "token lifetime")
	return cmd
}
