package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"binder/internal/catalog"
	"binder/internal/config"
	"binder/internal/ledger"
	"binder/internal/ledger/store"
	"binder/internal/textutil"
)

func newAddCommand(ctx *commandContext) *cobra.Command {
	var quantity int
	var condition, language, location string
	var foil bool

	cmd := &cobra.Command{
		Use:   "add <entry-id>",
		Short: "Record acquiring copies of a printing",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			entry := catalog.EntryID(strings.TrimSpace(args[0]))
			if entry == "" {
				return fmt.Errorf("entry id is required")
			}
			if quantity <= 0 {
				return fmt.Errorf("quantity must be positive, got %d", quantity)
			}
			return ctx.withStore(func(s *store.Store, _ *config.Config) error {
				ev := ledger.Add{
					Meta:      ledger.NewMeta(entry, time.Now()),
					Quantity:  quantity,
					Condition: strings.TrimSpace(condition),
					Language:  strings.TrimSpace(language),
					Foil:      foil,
					Location:  textutil.SanitizeToken(location),
				}
				if err := s.Append(cmd.Context(), ev); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Added %d x %s\n", quantity, entry)
				return nil
			})
		},
	}

	cmd.Flags().IntVarP(&quantity, "quantity", "q", 1, "Number of copies")
	cmd.Flags().StringVar(&condition, "condition", "", "Card condition (e.g. NM, LP)")
	cmd.Flags().StringVar(&language, "language", "", "Card language")
	cmd.Flags().BoolVar(&foil, "foil", false, "Foil printing")
	cmd.Flags().StringVar(&location, "location", "", "Storage location label")
	return cmd
}

func newRemoveCommand(ctx *commandContext) *cobra.Command {
	var quantity int
	var location string

	cmd := &cobra.Command{
		Use:   "remove <entry-id>",
		Short: "Record giving up copies of a printing",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			entry := catalog.EntryID(strings.TrimSpace(args[0]))
			if entry == "" {
				return fmt.Errorf("entry id is required")
			}
			if quantity <= 0 {
				return fmt.Errorf("quantity must be positive, got %d", quantity)
			}
			return ctx.withStore(func(s *store.Store, _ *config.Config) error {
				ev := ledger.Remove{
					Meta:     ledger.NewMeta(entry, time.Now()),
					Quantity: quantity,
					Location: textutil.SanitizeToken(location),
				}
				if err := s.Append(cmd.Context(), ev); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Removed %d x %s\n", quantity, entry)
				return nil
			})
		},
	}

	cmd.Flags().IntVarP(&quantity, "quantity", "q", 1, "Number of copies")
	cmd.Flags().StringVar(&location, "location", "", "Storage location label")
	return cmd
}

func newMoveCommand(ctx *commandContext) *cobra.Command {
	var quantity int
	var from, to string

	cmd := &cobra.Command{
		Use:   "move <entry-id>",
		Short: "Shift copies between storage locations",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			entry := catalog.EntryID(strings.TrimSpace(args[0]))
			if entry == "" {
				return fmt.Errorf("entry id is required")
			}
			if quantity <= 0 {
				return fmt.Errorf("quantity must be positive, got %d", quantity)
			}
			fromToken := textutil.SanitizeToken(from)
			toToken := textutil.SanitizeToken(to)
			if fromToken == "" || toToken == "" {
				return fmt.Errorf("both --from and --to locations are required")
			}
			if fromToken == toToken {
				return fmt.Errorf("source and destination locations are the same: %s", fromToken)
			}
			return ctx.withStore(func(s *store.Store, _ *config.Config) error {
				ev := ledger.Move{
					Meta:     ledger.NewMeta(entry, time.Now()),
					Quantity: quantity,
					From:     fromToken,
					To:       toToken,
				}
				if err := s.Append(cmd.Context(), ev); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Moved %d x %s: %s -> %s\n", quantity, entry, fromToken, toToken)
				return nil
			})
		},
	}

	cmd.Flags().IntVarP(&quantity, "quantity", "q", 1, "Number of copies")
	cmd.Flags().StringVar(&from, "from", "", "Source location label")
	cmd.Flags().StringVar(&to, "to", "", "Destination location label")
	return cmd
}

func newSetCommand(ctx *commandContext) *cobra.Command {
	setCmd := &cobra.Command{
		Use:   "set",
		Short: "Record observed card attributes",
	}

	setCmd.AddCommand(newSetAttributeCommand(ctx, "condition", "Record the observed condition",
		func(entry catalog.EntryID, value string) ledger.Event {
			return ledger.SetCondition{Meta: ledger.NewMeta(entry, time.Now()), Condition: value}
		}))
	setCmd.AddCommand(newSetAttributeCommand(ctx, "language", "Record the observed language",
		func(entry catalog.EntryID, value string) ledger.Event {
			return ledger.SetLanguage{Meta: ledger.NewMeta(entry, time.Now()), Language: value}
		}))
	setCmd.AddCommand(newSetAttributeCommand(ctx, "note", "Attach a free-form note",
		func(entry catalog.EntryID, value string) ledger.Event {
			return ledger.SetNote{Meta: ledger.NewMeta(entry, time.Now()), Note: value}
		}))

	return setCmd
}

func newSetAttributeCommand(ctx *commandContext, attribute, short string, build func(catalog.EntryID, string) ledger.Event) *cobra.Command {
	return &cobra.Command{
		Use:   fmt.Sprintf("%s <entry-id> <value>", attribute),
		Short: short,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			entry := catalog.EntryID(strings.TrimSpace(args[0]))
			value := strings.TrimSpace(args[1])
			if entry == "" {
				return fmt.Errorf("entry id is required")
			}
			if value == "" {
				return fmt.Errorf("%s value is required", attribute)
			}
			return ctx.withStore(func(s *store.Store, _ *config.Config) error {
				if err := s.Append(cmd.Context(), build(entry, value)); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Set %s for %s\n", attribute, entry)
				return nil
			})
		},
	}
}
