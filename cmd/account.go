package cmd

import (
	"context"
	"fmt"
	"time"

	"ambi-feed/internal/model"
	"ambi-feed/internal/redisclient"
	"ambi-feed/internal/registry"
	"ambi-feed/internal/storage"

	"github.com/spf13/cobra"
)

var accountName string

// accountCmd groups registry management subcommands. Mutations go through
// registry.Registry, then the resulting state is written back, so selection
// reassignment follows one code path.
var accountCmd = &cobra.Command{
	Use:   "account",
	Short: "Manage the account registry",
}

var accountAddCmd = &cobra.Command{
	Use:   "add <id>",
	Short: "Create an account",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withRegistry(func(ctx context.Context, store *storage.RedisStore, reg registry.Registry) (registry.Registry, error) {
			if _, exists := reg.Accounts[args[0]]; exists {
				return reg, fmt.Errorf("account already exists: %s", args[0])
			}
			acc := model.Account{ID: args[0], Name: accountName}
			next, err := reg.Add(acc)
			if err != nil {
				return reg, err
			}
			if err := store.SaveAccount(ctx, acc); err != nil {
				return reg, err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "added %s\n", acc.ID)
			return next, nil
		})
	},
}

var accountRmCmd = &cobra.Command{
	Use:   "rm <id>",
	Short: "Delete an account",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withRegistry(func(ctx context.Context, store *storage.RedisStore, reg registry.Registry) (registry.Registry, error) {
			next, err := reg.Remove(args[0])
			if err != nil {
				return reg, err
			}
			if err := store.DeleteAccount(ctx, args[0]); err != nil {
				return reg, err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "removed %s, active is now %q\n", args[0], next.ActiveID)
			return next, nil
		})
	},
}

var accountUseCmd = &cobra.Command{
	Use:   "use <id>",
	Short: "Select the active account",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withRegistry(func(ctx context.Context, store *storage.RedisStore, reg registry.Registry) (registry.Registry, error) {
			next, err := reg.SetActive(args[0])
			if err != nil {
				return reg, err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "active account: %s\n", next.ActiveID)
			return next, nil
		})
	},
}

var accountLsCmd = &cobra.Command{
	Use:   "ls",
	Short: "List accounts",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withRegistry(func(ctx context.Context, store *storage.RedisStore, reg registry.Registry) (registry.Registry, error) {
			out := cmd.OutOrStdout()
			for _, id := range reg.IDs() {
				marker := " "
				if id == reg.ActiveID {
					marker = "*"
				}
				acc := reg.Accounts[id]
				fmt.Fprintf(out, "%s %-16s %-20s %d signals · %s\n",
					marker, acc.ID, acc.Name, len(acc.Signals), acc.Lifetime.PresenceEra)
			}
			return reg, nil
		})
	},
}

// withRegistry loads the registry, runs one mutation, and persists the
// selection when it changed.
func withRegistry(fn func(context.Context, *storage.RedisStore, registry.Registry) (registry.Registry, error)) error {
	cfg := GetConfig()
	rdb := redisclient.New(cfg.Redis)
	defer rdb.Close()
	store := storage.NewRedisStore(rdb)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	ids, err := store.ListAccountIDs(ctx)
	if err != nil {
		return err
	}
	accounts := make([]model.Account, 0, len(ids))
	for _, id := range ids {
		acc, err := store.GetAccount(ctx, id)
		if err != nil {
			return err
		}
		accounts = append(accounts, acc)
	}
	activeID, err := store.ActiveAccountID(ctx)
	if err != nil {
		return err
	}

	reg := registry.New(accounts, activeID)
	next, err := fn(ctx, store, reg)
	if err != nil {
		return err
	}
	if next.ActiveID != activeID {
		return store.SetActiveAccountID(ctx, next.ActiveID)
	}
	return nil
}

func init() {
	accountAddCmd.Flags().StringVar(&accountName, "name", "", "display name")
	accountCmd.AddCommand(accountAddCmd, accountRmCmd, accountUseCmd, accountLsCmd)
	rootCmd.AddCommand(accountCmd)
}
